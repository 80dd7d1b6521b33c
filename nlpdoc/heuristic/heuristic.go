// Package heuristic is the one necessarily-stdlib-grounded NLP
// provider this module ships: a regex/word-list implementation of the
// nlpdoc.Provider contract, since no widely-used Go library provides a
// full dependency-parsing, POS-tagging, and NER stack (see DESIGN.md
// for the stdlib-fallback justification).
package heuristic

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clmhq/clm/nlpdoc"
)

var (
	sentenceSplit = regexp.MustCompile(`(?m)[^.!?]+[.!?]*`)
	wordSplit     = regexp.MustCompile(`[A-Za-z][A-Za-z'-]*|\d+(?:\.\d+)?`)

	reURL        = regexp.MustCompile(`(?i)\bhttps?://[^\s]+`)
	reEmail      = regexp.MustCompile(`(?i)\b[\w.+-]+@[\w-]+\.[\w.-]+\b`)
	reMoney      = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{1,2})?`)
	reCardinal   = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	reDate       = regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	reTime       = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s?(?:am|pm)\b`)
	rePersonIntro = regexp.MustCompile(`\b(?i:my name is|i'?m|this is)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	reOrgSuffix  = regexp.MustCompile(`\b([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)*)\s+(?:Inc|LLC|Corp|Corporation|Ltd|Co)\.?\b`)
	reGPEWord    = regexp.MustCompile(`\b(?:New York|California|Texas|London|Paris|Berlin|Tokyo|USA|UK|Canada|France|Germany)\b`)

	verbSuffixes = []string{"ize", "ise", "ate", "ify", "fy"}
	verbSet      = map[string]struct{}{}
)

func init() {
	for _, v := range []string{
		"analyze", "analyse", "extract", "generate", "create", "write", "predict",
		"forecast", "validate", "verify", "transform", "convert", "format", "rank",
		"order", "debug", "fix", "search", "find", "execute", "run", "summarize",
		"summarise", "classify", "categorize", "compare", "optimize", "explain",
		"describe", "calculate", "compute", "list", "enumerate", "review",
		"examine", "assess", "evaluate", "is", "are", "was", "were", "be",
	} {
		verbSet[v] = struct{}{}
	}
}

// Provider is the heuristic nlpdoc.Provider.
type Provider struct{}

// New returns a Provider. It holds no state.
func New() Provider { return Provider{} }

var _ nlpdoc.Provider = Provider{}

// Parse tokenizes, segments, chunks, and tags entities in text using
// regex and closed word lists rather than a trained model.
func (Provider) Parse(text string) nlpdoc.Doc {
	return &doc{text: text}
}

type doc struct {
	text      string
	tokens    []nlpdoc.Token
	sentences []string
	chunks    []nlpdoc.NounChunk
	entities  []nlpdoc.Entity
	built     bool
}

func (d *doc) Text() string { return d.text }

func (d *doc) Tokens() []nlpdoc.Token {
	d.ensure()
	return d.tokens
}

func (d *doc) Sentences() []string {
	d.ensure()
	return d.sentences
}

func (d *doc) NounChunks() []nlpdoc.NounChunk {
	d.ensure()
	return d.chunks
}

func (d *doc) Entities() []nlpdoc.Entity {
	d.ensure()
	return d.entities
}

func (d *doc) ensure() {
	if d.built {
		return
	}
	d.built = true
	d.tokens = tokenize(d.text)
	d.sentences = segmentSentences(d.text)
	d.chunks = nounChunks(d.tokens)
	d.entities = recognizeEntities(d.text)
}

func tokenize(text string) []nlpdoc.Token {
	locs := wordSplit.FindAllStringIndex(text, -1)
	tokens := make([]nlpdoc.Token, 0, len(locs))
	for _, loc := range locs {
		word := text[loc[0]:loc[1]]
		tokens = append(tokens, nlpdoc.Token{
			Text:  word,
			Lemma: lemmatize(word),
			POS:   guessPOS(word),
			Morph: map[string]string{},
			Start: loc[0],
			End:   loc[1],
		})
	}
	return tokens
}

func lemmatize(word string) string {
	lw := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lw, "ing") && len(lw) > 5:
		return strings.TrimSuffix(lw, "ing")
	case strings.HasSuffix(lw, "ies") && len(lw) > 4:
		return strings.TrimSuffix(lw, "ies") + "y"
	case strings.HasSuffix(lw, "es") && len(lw) > 4:
		return strings.TrimSuffix(lw, "es")
	case strings.HasSuffix(lw, "s") && len(lw) > 3 && !strings.HasSuffix(lw, "ss"):
		return strings.TrimSuffix(lw, "s")
	default:
		return lw
	}
}

func guessPOS(word string) nlpdoc.POS {
	lw := strings.ToLower(word)
	if _, ok := verbSet[lw]; ok {
		return nlpdoc.POSVerb
	}
	for _, suf := range verbSuffixes {
		if strings.HasSuffix(lw, suf) {
			return nlpdoc.POSVerb
		}
	}
	if strings.HasSuffix(lw, "ly") {
		return nlpdoc.POSAdv
	}
	if strings.HasSuffix(lw, "ous") || strings.HasSuffix(lw, "ful") || strings.HasSuffix(lw, "ive") || strings.HasSuffix(lw, "able") {
		return nlpdoc.POSAdj
	}
	if word != "" && word[0] >= 'A' && word[0] <= 'Z' {
		return nlpdoc.POSProp
	}
	if _, err := parseDigits(word); err == nil {
		return nlpdoc.POSOther
	}
	return nlpdoc.POSNoun
}

func parseDigits(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errNotDigits
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 && s == "" {
		return 0, errNotDigits
	}
	return n, nil
}

var errNotDigits = &notDigitsError{}

type notDigitsError struct{}

func (*notDigitsError) Error() string { return "not digits" }

func segmentSentences(text string) []string {
	matches := sentenceSplit.FindAllString(text, -1)
	sentences := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// nounChunks approximates noun-chunk iteration by grouping runs of
// NOUN/PROPN/ADJ tokens, the adjective acting only as a modifier
// within the run.
func nounChunks(tokens []nlpdoc.Token) []nlpdoc.NounChunk {
	var chunks []nlpdoc.NounChunk
	start := -1
	var words []string
	flush := func(end int) {
		if start >= 0 && len(words) > 0 {
			chunks = append(chunks, nlpdoc.NounChunk{
				Text:  strings.Join(words, " "),
				Start: start,
				End:   end,
			})
		}
		start = -1
		words = nil
	}
	for _, t := range tokens {
		if t.POS == nlpdoc.POSNoun || t.POS == nlpdoc.POSProp || t.POS == nlpdoc.POSAdj {
			if start < 0 {
				start = t.Start
			}
			words = append(words, t.Text)
		} else {
			flush(t.Start)
		}
	}
	if len(tokens) > 0 {
		flush(tokens[len(tokens)-1].End)
	}
	return chunks
}

func recognizeEntities(text string) []nlpdoc.Entity {
	var entities []nlpdoc.Entity

	add := func(loc []int, label nlpdoc.EntityLabel) {
		entities = append(entities, nlpdoc.Entity{
			Text:  text[loc[0]:loc[1]],
			Label: label,
			Start: loc[0],
			End:   loc[1],
		})
	}

	for _, loc := range reURL.FindAllStringIndex(text, -1) {
		add(loc, nlpdoc.EntityURL)
	}
	for _, loc := range reMoney.FindAllStringIndex(text, -1) {
		add(loc, nlpdoc.EntityMoney)
	}
	for _, loc := range reDate.FindAllStringIndex(text, -1) {
		add(loc, nlpdoc.EntityDate)
	}
	for _, loc := range reTime.FindAllStringIndex(text, -1) {
		add(loc, nlpdoc.EntityTime)
	}
	for _, m := range rePersonIntro.FindAllStringSubmatchIndex(text, -1) {
		add([]int{m[2], m[3]}, nlpdoc.EntityPerson)
	}
	for _, loc := range reOrgSuffix.FindAllStringIndex(text, -1) {
		add(loc, nlpdoc.EntityOrg)
	}
	for _, loc := range reGPEWord.FindAllStringIndex(text, -1) {
		add(loc, nlpdoc.EntityGPE)
	}
	for _, loc := range reCardinal.FindAllStringIndex(text, -1) {
		if overlapsAny(entities, loc) {
			continue
		}
		add(loc, nlpdoc.EntityCardinal)
	}

	sort.Slice(entities, func(i, j int) bool { return entities[i].Start < entities[j].Start })
	return entities
}

func overlapsAny(entities []nlpdoc.Entity, loc []int) bool {
	for _, e := range entities {
		if loc[0] < e.End && e.Start < loc[1] {
			return true
		}
	}
	return false
}
