package lang

import "regexp"

// LabeledPattern binds a compiled regular expression to the label it
// contributes when it matches (an aspect value, a domain name, a
// programming language, an issue type, …).
type LabeledPattern struct {
	Pattern *regexp.Regexp
	Label   string
}

// Rules is the per-language compiled pattern-bundle contract: all the
// regex families the attribute parser, attribute enhancer, output-
// schema analyzer, and transcript analyzers consult. Implementations
// compile their patterns once, at package init, so a pattern that
// fails to compile is fatal at configuration time rather than at
// first use.
type Rules interface {
	// Comparison matches comparative constructions ("better than",
	// "versus", …). No encoder in this module calls it.
	Comparison() []*regexp.Regexp
	// Audience, Length, Style, Tone each return ordered candidate
	// patterns; the first (and, for longest-match categories, the
	// longest) match wins.
	Audience() []LabeledPattern
	Length() []LabeledPattern
	Style() []LabeledPattern
	Tone() []LabeledPattern
	// ContextPatterns covers the remaining generic CTX aspects:
	// LANGUAGE, REGION, PRIORITY, SLA, FORMAT.
	ContextPatterns() map[string][]LabeledPattern
	// NumberWords maps a spelled-out cardinal ("three") to its value.
	NumberWords() map[string]int
	// SpecPatterns extracts numeric specifications like "under 500
	// words" into a label ("WORDS") plus captured integer.
	SpecPatterns() []LabeledPattern
	// QuantifierUnits are the nouns ("tips", "items", "examples", …)
	// that complete a quantifier phrase.
	QuantifierUnits() []string
	// QuestionPatterns, ExplainPatterns, ConceptPatterns,
	// ProcedurePatterns, SubjectPatterns each capture a TOPIC or
	// SUBJECT candidate from their respective sentence shapes.
	QuestionPatterns() []*regexp.Regexp
	ExplainPatterns() []*regexp.Regexp
	ConceptPatterns() []*regexp.Regexp
	ProcedurePatterns() []*regexp.Regexp
	SubjectPatterns() []LabeledPattern
	// TypeMap and ContextMap are substring->label lookup tables used
	// by the attribute enhancer's TYPE and CONTEXT attributes.
	TypeMap() map[string]string
	ContextMap() map[string]string
	// DurationPatterns extracts a duration expression; matched hour
	// units are converted to minutes by the caller.
	DurationPatterns() []*regexp.Regexp
	// IssuePatterns captures an ISSUE attribute for COMPLAINT/TICKET
	// targets.
	IssuePatterns() []*regexp.Regexp
	// DomainRegexes contributes +2 per match (vs. +1 for a plain
	// keyword hit) to the DOMAIN scoring in the attribute enhancer.
	DomainRegexes() map[string][]*regexp.Regexp
	// DomainPriority breaks DOMAIN scoring ties.
	DomainPriority() []string
	// ProgrammingLanguages matches a LANG attribute from code-shaped
	// text; first win, rendered upper-case.
	ProgrammingLanguages() []LabeledPattern
	// CodeIndicators are keywords whose presence in a prompt gates
	// LANG detection and the has_code_indicators metadata flag.
	CodeIndicators() []string
	// AddressAbbreviations maps a street-suffix word to its
	// abbreviation for CUSTOMER.ADDRESS compression.
	AddressAbbreviations() map[string]string
	// IssueTypeKeywords maps an issue type to its trigger keywords,
	// scanned longest-keyword-first by the transcript aggregator.
	IssueTypeKeywords() map[string][]string
	// SeverityKeywords maps a Severity to its trigger keywords.
	SeverityKeywords() map[string][]string
	// BillingCauseKeywords maps a cause label to its trigger keywords.
	BillingCauseKeywords() map[string][]string
	// TechnicalIssueMap maps a cause label to its trigger keywords for
	// CONNECTIVITY/TECHNICAL issues.
	TechnicalIssueMap() map[string][]string
	// ActionTokens maps an action type to its trigger phrases; values
	// in ExplicitOnlyActions require an exact phrase match rather than
	// a loose keyword hit.
	ActionTokens() map[string][]string
	ExplicitOnlyActions() map[string]struct{}
	IssueConfirmationPhrases() []string
	TroubleshootingPhrases() map[string][]string
	// ResolutionKeywords maps a ResolutionType to its trigger phrases,
	// scanned over the last five agent turns in reverse.
	ResolutionKeywords() map[string][]string
	// PaymentMethodKeywords maps a payment method label to its
	// trigger keywords.
	PaymentMethodKeywords() map[string][]string
	// EmotionKeywords maps a sentiment label to its trigger keywords
	// and intensity, scanned in declaration order (first match wins).
	EmotionKeywords() []EmotionRule
	// StylisticIntentKeywords gate context-parsing: at least one must
	// be present for any CTX aspect to be extracted.
	StylisticIntentKeywords() []string
	// SchemaMarkers, when present, veto the stylistic-intent gate
	// (schemas are not CTX).
	SchemaMarkers() []string
}

// EmotionRule binds a sentiment label to its trigger keywords and the
// intensity assigned when one of them matches.
type EmotionRule struct {
	Label     string
	Keywords  []string
	Intensity float64
}
