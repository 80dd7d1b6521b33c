// Package nlpdoc is the NLP provider contract: tokenization with
// per-token lemma/POS/morph, sentence segmentation, noun-chunk
// iteration, named-entity recognition, a token-level matcher, and an
// entity ruler. No widely-used Go library provides a full
// dependency-parsing NLP stack, so this package defines the capability
// set as an interface — any conforming library is acceptable — and
// nlpdoc/heuristic ships one concrete, regex/heuristic-based
// implementation.
package nlpdoc

// POS is the coarse part-of-speech tag set the contract requires.
type POS string

const (
	POSVerb  POS = "VERB"
	POSNoun  POS = "NOUN"
	POSProp  POS = "PROPN"
	POSAdj   POS = "ADJ"
	POSAdv   POS = "ADV"
	POSOther POS = "X"
)

// Token is one tokenized word with its linguistic attributes.
type Token struct {
	Text  string
	Lemma string
	POS   POS
	Morph map[string]string
	Start int
	End   int
}

// NounChunk is a contiguous noun-phrase span.
type NounChunk struct {
	Text  string
	Start int
	End   int
}

// EntityLabel is the closed NER label set the contract requires.
type EntityLabel string

const (
	EntityPerson   EntityLabel = "PERSON"
	EntityOrg      EntityLabel = "ORG"
	EntityGPE      EntityLabel = "GPE"
	EntityLoc      EntityLabel = "LOC"
	EntityDate     EntityLabel = "DATE"
	EntityTime     EntityLabel = "TIME"
	EntityMoney    EntityLabel = "MONEY"
	EntityCardinal EntityLabel = "CARDINAL"
	EntityQuantity EntityLabel = "QUANTITY"
	EntityURL      EntityLabel = "URL"
)

// Entity is one recognized named entity span.
type Entity struct {
	Text  string
	Label EntityLabel
	Start int
	End   int
}

// Doc is a parsed document: the read-only view every downstream
// analyzer consumes. The NLP handle is shared and internally safe for
// these read-only operations.
type Doc interface {
	Text() string
	Tokens() []Token
	Sentences() []string
	NounChunks() []NounChunk
	Entities() []Entity
}

// MatchToken is one element of a Matcher pattern: a set of acceptable
// lowercased surface forms plus an optional quantifier operator
// ("?", "+", "*", "" for exactly-once).
type MatchToken struct {
	Lower []string
	Op    string
}

// Match is one span the Matcher found for a named pattern.
type Match struct {
	Name  string
	Start int
	End   int
	Text  string
}

// Matcher runs token-level patterns over a Doc.
type Matcher interface {
	AddPattern(name string, pattern []MatchToken)
	Matches(doc Doc) []Match
}

// EntityRuler augments NER with label+regex rules, layered on top of
// (and taking precedence over) the base entity recognizer.
type EntityRuler interface {
	AddRule(label EntityLabel, pattern string)
}

// Provider parses raw text into a Doc. Acquired once at configuration
// construction and held by the configuration for the lifetime of the
// encoder.
type Provider interface {
	Parse(text string) Doc
}
