package prompt

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc"
)

// imperativeSimpleDispatch maps an imperative leading REQ to its
// default TARGET when no extra text inspection is needed. REQs needing
// extra inspection (ANALYZE, CLASSIFY, SUMMARIZE, OPTIMIZE, TRANSFORM)
// are handled directly in ExtractImperative.
var imperativeSimpleDispatch = map[string]string{
	"LIST":      "ITEMS",
	"CALCULATE": "RESULT",
	"EXTRACT":   "DATA",
	"GENERATE":  "CONTENT",
	"DEBUG":     "CODE",
}

var reLeadingVerb = regexp.MustCompile(`^([a-z]+)\s+`)

func synonymsIn(v lang.Vocabulary, target, text string, window int) bool {
	if window > 0 && window < len(text) {
		text = text[:window]
	}
	for _, s := range v.TargetTokens()[target] {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// ExtractImperative dispatches on the text's leading verb when it
// resolves to a known REQ.
func ExtractImperative(v lang.Vocabulary, text string) *model.Target {
	tl := strings.ToLower(strings.TrimSpace(text))
	m := reLeadingVerb.FindStringSubmatch(tl)
	if m == nil {
		return nil
	}
	req := lang.GetReqToken(v, m[1], text)
	if req == "" {
		return nil
	}

	if target, ok := imperativeSimpleDispatch[req]; ok {
		return model.NewTarget(target)
	}

	switch req {
	case "ANALYZE":
		switch {
		case synonymsIn(v, "CODE", tl, 30):
			return model.NewTarget("CODE")
		case synonymsIn(v, "DATA", tl, 30):
			return model.NewTarget("DATA")
		default:
			return model.NewTarget("DOCUMENT")
		}
	case "CLASSIFY":
		switch {
		case synonymsIn(v, "TICKET", tl, 30):
			return model.NewTarget("TICKET")
		case synonymsIn(v, "EMAIL", tl, 30):
			return model.NewTarget("EMAIL")
		default:
			return model.NewTarget("CONTENT")
		}
	case "SUMMARIZE":
		return model.NewTarget(detectSummarizeTarget(v, tl))
	case "OPTIMIZE":
		if synonymsIn(v, "QUERY", tl, 30) {
			return model.NewTarget("QUERY")
		}
		return model.NewTarget("CODE")
	case "TRANSFORM":
		return model.NewTarget(detectTransformTarget(v, tl))
	}
	return nil
}

func detectSummarizeTarget(v lang.Vocabulary, tl string) string {
	switch {
	case synonymsIn(v, "TRANSCRIPT", tl, 0):
		return "TRANSCRIPT"
	case synonymsIn(v, "CALL", tl, 0):
		return "CALL"
	case containsAny(tl, v.MeetingWords()):
		return "MEETING"
	case synonymsIn(v, "DOCUMENT", tl, 0):
		return "DOCUMENT"
	default:
		return "DOCUMENT"
	}
}

func detectTransformTarget(v lang.Vocabulary, tl string) string {
	switch {
	case synonymsIn(v, "TRANSCRIPT", tl, 40):
		return "TRANSCRIPT"
	case synonymsIn(v, "DOCUMENT", tl, 40):
		return "DOCUMENT"
	case containsAny(trimWindow(tl, 40), v.ProposalWords()):
		return "DOCUMENT"
	default:
		return "CONTENT"
	}
}

func trimWindow(text string, window int) string {
	if window > 0 && window < len(text) {
		return text[:window]
	}
	return text
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// ExtractQuestion resolves a CONCEPT target when text reads as a
// question.
func ExtractQuestion(v lang.Vocabulary, text string) *model.Target {
	if lang.GetQuestionReq(v, text) == "" {
		return nil
	}
	return model.NewTarget("CONCEPT")
}

// ExtractNouns collects every NOUN/PROPN token and noun chunk matching
// a TARGET vocabulary entry, in first-seen order, deduplicated by
// token.
func ExtractNouns(v lang.Vocabulary, doc nlpdoc.Doc) []*model.Target {
	seen := map[string]struct{}{}
	var out []*model.Target
	add := func(token string) {
		if token == "" {
			return
		}
		if _, ok := seen[token]; ok {
			return
		}
		seen[token] = struct{}{}
		out = append(out, model.NewTarget(token))
	}
	for _, t := range doc.Tokens() {
		if t.POS != nlpdoc.POSNoun && t.POS != nlpdoc.POSProp {
			continue
		}
		add(lang.GetTargetToken(v, t.Text))
	}
	for _, chunk := range doc.NounChunks() {
		add(lang.GetTargetToken(v, chunk.Text))
	}
	return out
}

// ExtractCompound matches any multi-word TARGET synonym present
// verbatim (case-insensitive). Phrases are scanned in sorted order so
// the candidate list is stable across runs.
func ExtractCompound(v lang.Vocabulary, text string) []*model.Target {
	tl := strings.ToLower(text)
	compounds := v.CompoundPhrases()
	phrases := make([]string, 0, len(compounds))
	for p := range compounds {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)

	var out []*model.Target
	for _, phrase := range phrases {
		if strings.Contains(tl, phrase) {
			out = append(out, model.NewTarget(compounds[phrase]))
		}
	}
	return out
}

var reDemonstrativeNoun = regexp.MustCompile(`(?i)\b(this|that|these|those)\s+([a-z]+)\b`)
var reForTarget = regexp.MustCompile(`(?i)\bfor\s+([a-z]+)\b`)

var knownConcepts = map[string]struct{}{
	"machine learning": {}, "artificial intelligence": {}, "blockchain": {},
	"quantum computing": {}, "kubernetes": {}, "microservices": {},
}

// ExtractPattern matches demonstrative+NOUN, for+TARGET-synonym, and
// concept-phrase patterns.
func ExtractPattern(v lang.Vocabulary, rules lang.Rules, text string) []*model.Target {
	var out []*model.Target
	tl := strings.ToLower(text)

	if m := reDemonstrativeNoun.FindStringSubmatch(tl); m != nil {
		if token := lang.GetTargetToken(v, m[2]); token != "" {
			out = append(out, model.NewTarget(token))
		}
	}

	if m := reForTarget.FindStringSubmatch(tl); m != nil {
		if token := lang.GetTargetToken(v, m[1]); token != "" {
			out = append(out, model.NewTarget(token))
		}
	}

	hasExplainSynonym := false
	for _, re := range rules.ExplainPatterns() {
		if re.MatchString(tl) {
			hasExplainSynonym = true
			break
		}
	}
	isConcept := strings.Contains(tl, "concept of") ||
		(hasExplainSynonym && !synonymsIn(v, "CODE", tl, 0) && !synonymsIn(v, "DATA", tl, 0) && !synonymsIn(v, "DOCUMENT", tl, 0))
	if !isConcept {
		for concept := range knownConcepts {
			if strings.Contains(tl, concept) {
				isConcept = true
				break
			}
		}
	}
	if isConcept {
		out = append(out, model.NewTarget("CONCEPT"))
	}

	return out
}

var listIndicatorWords = []string{"list", "items", "points", "tips", "examples", "several", "a few", "many"}

// ExtractFallback picks a default target from the resolved REQ alone,
// used when every other extractor comes up empty.
func ExtractFallback(req model.REQ, text string) *model.Target {
	tl := strings.ToLower(text)
	switch req {
	case model.REQGenerate:
		if containsAny(tl, listIndicatorWords) {
			return model.NewTarget("ITEMS")
		}
		return model.NewTarget("CONTENT")
	case model.REQExplain:
		return model.NewTarget("CONCEPT")
	default:
		return model.NewTarget("ANSWER")
	}
}

// ExtractTarget runs the full extractor pipeline and returns the
// single normalized Target.
func ExtractTarget(v lang.Vocabulary, rules lang.Rules, doc nlpdoc.Doc, text string, req model.REQ) *model.Target {
	if t := ExtractImperative(v, text); t != nil {
		return t
	}
	if t := ExtractQuestion(v, text); t != nil {
		return t
	}

	var candidates []*model.Target
	candidates = append(candidates, ExtractNouns(v, doc)...)
	candidates = append(candidates, ExtractCompound(v, text)...)
	candidates = append(candidates, ExtractPattern(v, rules, text)...)

	if len(candidates) == 0 {
		return ExtractFallback(req, text)
	}
	return model.NormalizeTargets(candidates)
}
