package prompt

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc"
)

// Quantifier is the result of ParseQuantifier: a display label (e.g.
// "NUM_3" or "THREE") and, where resolvable, the numeric value.
type Quantifier struct {
	Label string
	Value int
}

var reDigitQuantifier = regexp.MustCompile(`(?i)\b(\d+)\s+(\w+)\b`)

// ParseQuantifier resolves a quantifier in priority order: digit+unit,
// number-word+unit, bare number-word, then an NLP CARDINAL entity.
func ParseQuantifier(rules lang.Rules, doc nlpdoc.Doc, text string) (Quantifier, bool) {
	units := map[string]struct{}{}
	for _, u := range rules.QuantifierUnits() {
		units[u] = struct{}{}
	}

	for _, m := range reDigitQuantifier.FindAllStringSubmatch(text, -1) {
		if _, ok := units[strings.ToLower(m[2])]; ok {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return Quantifier{Label: "NUM_" + m[1], Value: n}, true
			}
		}
	}

	words := strings.Fields(strings.ToLower(text))
	numberWords := rules.NumberWords()
	for i, w := range words {
		n, ok := numberWords[w]
		if !ok {
			continue
		}
		if i+1 < len(words) {
			if _, unit := units[strings.TrimRight(words[i+1], ".,;:")]; unit {
				return Quantifier{Label: strings.ToUpper(w), Value: n}, true
			}
		}
	}
	for _, w := range words {
		if n, ok := numberWords[w]; ok {
			return Quantifier{Label: strings.ToUpper(w), Value: n}, true
		}
	}

	for _, e := range doc.Entities() {
		if e.Label == nlpdoc.EntityCardinal {
			if n, err := strconv.Atoi(e.Text); err == nil {
				return Quantifier{Label: "NUM_" + e.Text, Value: n}, true
			}
		}
	}

	return Quantifier{}, false
}

// ParseSpecifications iterates the configured spec patterns and
// collects label->int, plus the word-number/NLP-cardinal COUNT/LINES
// extensions.
func ParseSpecifications(rules lang.Rules, doc nlpdoc.Doc, text string) map[string]int {
	out := map[string]int{}
	for _, lp := range rules.SpecPatterns() {
		m := lp.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if n, err := strconv.Atoi(group); err == nil {
				out[lp.Label] = n
				break
			}
		}
	}

	words := strings.Fields(strings.ToLower(text))
	numberWords := rules.NumberWords()
	for i, w := range words {
		n, ok := numberWords[w]
		if !ok || i+1 >= len(words) {
			continue
		}
		next := strings.TrimRight(words[i+1], ".,;:")
		switch next {
		case "tips", "examples", "items", "ways", "methods", "steps":
			out["COUNT"] = n
		}
	}

	for i, e := range doc.Entities() {
		if e.Label != nlpdoc.EntityCardinal {
			continue
		}
		n, err := strconv.Atoi(e.Text)
		if err != nil {
			continue
		}
		rest := strings.ToLower(restAfterEntity(doc, text, i))
		if strings.HasPrefix(rest, "line") {
			out["LINES"] = n
		} else if strings.HasPrefix(rest, "item") {
			out["COUNT"] = n
		}
	}
	return out
}

func restAfterEntity(doc nlpdoc.Doc, text string, idx int) string {
	entities := doc.Entities()
	if idx >= len(entities) {
		return ""
	}
	end := entities[idx].End
	if end >= len(text) {
		return ""
	}
	return strings.TrimSpace(text[end:])
}

// ParseContexts runs stylistic-intent-gated context extraction:
// AUDIENCE, LENGTH, STYLE (skipped if LENGTH
// matched), TONE, then generic aspects at most once each, then the
// "as <role>" AUDIENCE fallback, deduplicated by (aspect, value).
func ParseContexts(rules lang.Rules, text string) []model.Context {
	tl := strings.ToLower(text)

	hasIntent := false
	for _, kw := range rules.StylisticIntentKeywords() {
		if strings.Contains(tl, kw) {
			hasIntent = true
			break
		}
	}
	if !hasIntent {
		return nil
	}
	for _, marker := range rules.SchemaMarkers() {
		if strings.Contains(tl, marker) {
			return nil
		}
	}

	var out []model.Context
	seen := map[string]struct{}{}
	add := func(aspect model.ContextAspect, value string) {
		if value == "" {
			return
		}
		key := string(aspect) + "|" + value
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, model.Context{Aspect: aspect, Value: value})
	}

	audience := longestLabel(rules.Audience(), text)
	add(model.AspectAudience, audience)

	length := longestLabel(rules.Length(), text)
	add(model.AspectLength, length)

	if length == "" {
		style := longestLabel(rules.Style(), text)
		add(model.AspectStyle, style)
	}

	tone := longestLabel(rules.Tone(), text)
	add(model.AspectTone, tone)

	genericOrder := []model.ContextAspect{
		model.AspectLanguage, model.AspectRegion, model.AspectPriority,
		model.AspectSLA, model.AspectFormat,
	}
	for _, aspect := range genericOrder {
		patterns := rules.ContextPatterns()[string(aspect)]
		for _, lp := range patterns {
			m := lp.Pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			value := lp.Label
			if value == "" && len(m) > 1 {
				value = strings.ToUpper(m[len(m)-1])
			}
			add(aspect, value)
			break
		}
	}

	if audience == "" && strings.HasPrefix(tl, "as ") {
		fields := strings.Fields(tl)
		if len(fields) >= 3 {
			switch fields[2] {
			case "manager", "developer", "engineer", "analyst":
				add(model.AspectAudience, "BUSINESS")
			}
		}
	}

	return out
}

func longestLabel(patterns []lang.LabeledPattern, text string) string {
	best, bestLen := "", -1
	for _, lp := range patterns {
		m := lp.Pattern.FindString(text)
		if m == "" {
			continue
		}
		if len(m) > bestLen {
			best, bestLen = lp.Label, len(m)
		}
	}
	return best
}

var reWordSplit = regexp.MustCompile(`[a-z0-9_]+`)

// ParseExtractionFields returns the EXTRACT_FIELDS mentioned in text,
// in declaration order, with an optional DOMAIN qualifier when a "QA"
// cue is present. Fields match on whole words only; "provide" must not
// count as a mention of "id".
func ParseExtractionFields(v lang.Vocabulary, text string) *model.ExtractionField {
	tl := strings.ToLower(text)
	words := map[string]struct{}{}
	for _, w := range reWordSplit.FindAllString(tl, -1) {
		words[w] = struct{}{}
	}

	var fields []string
	for _, f := range v.ExtractFields() {
		if _, ok := words[f]; ok {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	ef := &model.ExtractionField{Fields: fields, Attributes: map[string]string{}}
	if _, ok := words["qa"]; ok || strings.Contains(tl, "quality assurance") {
		ef.Attributes["DOMAIN"] = "QA"
	}
	return ef
}

// sortedKeys returns m's keys in sorted order. Nothing in this
// package calls it.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
