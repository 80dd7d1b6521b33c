// Package lang defines the Vocabulary and Rules contracts every
// per-language pack must satisfy. A LanguagePack bundles one of each
// and is loaded once at configuration time; it is immutable and
// passed by reference to every encoder, so no per-process global
// state exists.
package lang

import (
	"sort"
	"strings"
)

// ImperativePattern binds a set of leading-verb triggers to the
// REQ/TARGET pair an imperative sentence starting with one resolves
// to, e.g. (["list", "enumerate"], "LIST", "ITEMS").
type ImperativePattern struct {
	Triggers    []string
	ReqToken    string
	TargetToken string
}

// Vocabulary is the per-language keyword-set contract: REQ verbs,
// TARGET nouns, noise verbs, imperative patterns, question words,
// domain candidates, quantifiers, demonstratives, and compound
// phrases. Implementations hold only data; the lookup behavior below
// is shared across every language.
type Vocabulary interface {
	// REQTokens maps a REQ name to its trigger-word synonyms.
	REQTokens() map[string][]string
	// TargetTokens maps a TARGET name to its trigger-word synonyms.
	TargetTokens() map[string][]string
	// NoiseVerbs are verbs that must never resolve to a REQ even
	// though they parse as verbs.
	NoiseVerbs() map[string]struct{}
	// ContextFilters maps a verb to phrases that, when present in the
	// surrounding context, veto that verb as non-actionable.
	ContextFilters() map[string][]string
	// ExtractFields lists the field names the attribute parser may
	// recognize, in declaration order.
	ExtractFields() []string
	// OutputFormats maps a FormatType name to its trigger phrases.
	OutputFormats() map[string][]string
	// ImperativePatterns lists (triggers, REQ, TARGET) triples used by
	// the imperative extractor and, historically, by
	// DetectImperativePattern below.
	ImperativePatterns() []ImperativePattern
	// QuestionWords lists interrogative words that open a question.
	QuestionWords() []string
	// EpistemicKeywords buckets keywords under "future", "uncertainty",
	// and "real_world" for PROBABILITY-artifact grounding.
	EpistemicKeywords() map[string][]string
	// QuantifierWords lists number-words recognized by the quantifier
	// parser in addition to digits.
	QuantifierWords() []string
	// Demonstratives lists demonstrative pronouns ("this", "that", …)
	// used by the pattern extractor and the TOPIC-cleaning step.
	Demonstratives() []string
	// CompoundPhrases maps a multi-word TARGET synonym, verbatim, to
	// its TARGET token.
	CompoundPhrases() map[string]string
	// DomainCandidates maps a DOMAIN name to its keyword list.
	DomainCandidates() map[string][]string
	// MeetingWords and ProposalWords are synonym lists the imperative
	// and pattern extractors test membership against directly.
	MeetingWords() []string
	ProposalWords() []string
}

// GetReqToken returns the REQ token for word, or "" if word is noise,
// vetoed by a context filter, or unrecognized.
func GetReqToken(v Vocabulary, word, context string) string {
	wl := strings.ToLower(word)
	if _, noise := v.NoiseVerbs()[wl]; noise {
		return ""
	}
	if patterns, ok := v.ContextFilters()[wl]; ok {
		cl := strings.ToLower(context)
		for _, p := range patterns {
			if strings.Contains(cl, p) {
				return ""
			}
		}
	}
	reqs := v.REQTokens()
	for _, token := range sortedTokenKeys(reqs) {
		for _, s := range reqs[token] {
			if s == wl {
				return token
			}
		}
	}
	return ""
}

// sortedTokenKeys fixes the lookup order for synonym tables: a word
// appearing under two tokens ("call" under CALL and MEETING,
// "reformat" under FORMAT and TRANSFORM) must resolve the same way on
// every run.
func sortedTokenKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetTargetToken returns the TARGET token for word, or "" when
// unrecognized.
func GetTargetToken(v Vocabulary, word string) string {
	wl := strings.ToLower(word)
	targets := v.TargetTokens()
	for _, token := range sortedTokenKeys(targets) {
		for _, s := range targets[token] {
			if s == wl {
				return token
			}
		}
	}
	return ""
}

// GetOutputFormat returns the first FormatType whose trigger phrases
// appear in text, or "" when none match.
func GetOutputFormat(v Vocabulary, text string) string {
	tl := strings.ToLower(text)
	formats := v.OutputFormats()
	for _, format := range sortedTokenKeys(formats) {
		for _, t := range formats[format] {
			if strings.Contains(tl, t) {
				return format
			}
		}
	}
	return ""
}

// DetectImperativePattern returns the (REQ, TARGET) pair for the first
// ImperativePattern whose trigger text starts the (lowercased,
// trimmed) input, or ("", "", false). Superseded in the canonical
// pipeline by the extractor-driven equivalent, but kept as a shared
// vocabulary-level primitive.
func DetectImperativePattern(v Vocabulary, text string) (req, target string, ok bool) {
	tl := strings.ToLower(strings.TrimSpace(text))
	for _, p := range v.ImperativePatterns() {
		for _, trigger := range p.Triggers {
			if strings.HasPrefix(tl, trigger+" ") {
				return p.ReqToken, p.TargetToken, true
			}
		}
	}
	return "", "", false
}

// GetQuestionReq returns "QUERY" when text ends in "?" and opens with
// one of the vocabulary's question words, else "".
func GetQuestionReq(v Vocabulary, text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasSuffix(trimmed, "?") {
		return ""
	}
	tl := strings.ToLower(trimmed)
	for _, w := range v.QuestionWords() {
		if strings.HasPrefix(tl, w) {
			return "QUERY"
		}
	}
	return ""
}
