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

var topicSensitiveTargets = map[string]struct{}{
	"CONCEPT": {}, "PROCEDURE": {}, "ANSWER": {}, "FACT": {},
}
var subjectSensitiveTargets = map[string]struct{}{
	"CONTENT": {}, "ITEMS": {}, "ANSWER": {}, "DOCUMENT": {},
}

// EnhanceTarget adds TOPIC, SUBJECT, TYPE, DURATION, ISSUE, DOMAIN,
// and LANG attributes to target, following per-token-kind rules. A
// CONTEXT value is derived too, but Target.Set drops it as a banned
// key. It mutates and returns target.
func EnhanceTarget(v lang.Vocabulary, rules lang.Rules, doc nlpdoc.Doc, text string, target *model.Target) *model.Target {
	if _, ok := topicSensitiveTargets[target.Token]; ok {
		if topic := deriveTopic(v, rules, doc, text); topic != "" {
			target.Set("TOPIC", topic)
		}
	}
	if _, ok := subjectSensitiveTargets[target.Token]; ok {
		if subject := deriveSubject(rules, text); subject != "" {
			target.Set("SUBJECT", subject)
		}
	}
	if target.Token == "RESULT" {
		if t := deriveResultType(text); t != "" {
			target.Set("TYPE", t)
		}
	}
	if target.Token == "TRANSCRIPT" || target.Token == "DOCUMENT" {
		if t := deriveTypeFromMap(v, rules, text); t != "" {
			target.Set("TYPE", t)
		}
	}
	if target.Token == "TRANSCRIPT" || target.Token == "CALL" || target.Token == "MEETING" {
		if d := deriveDuration(rules, text); d != "" {
			target.Set("DURATION", d)
		}
	}
	if c := deriveContext(rules, text); c != "" {
		target.Set("CONTEXT", c)
	}
	if target.Token == "TICKET" {
		if issue := deriveIssue(rules, text); issue != "" {
			target.Set("ISSUE", issue)
		}
	}
	if domain := deriveDomain(v, rules, doc, text); domain != "" {
		target.Domain = domain
	}
	if lng := deriveLang(rules, text); lng != "" {
		target.Set("LANG", lng)
	}
	return target
}

func upperSnake(s string) string {
	fields := strings.Fields(s)
	return strings.ToUpper(strings.Join(fields, "_"))
}

var reNonWord = regexp.MustCompile(`^[\d\W_]+$`)

func isMeaningless(s string, demonstratives []string) bool {
	if len(s) <= 1 {
		return true
	}
	if reNonWord.MatchString(s) {
		return true
	}
	lw := strings.ToLower(s)
	for _, d := range demonstratives {
		if lw == d || strings.HasPrefix(lw, d+"_") {
			return true
		}
	}
	return false
}

var stripWords = map[string]struct{}{
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"will": {}, "would": {}, "can": {}, "could": {}, "should": {}, "must": {},
	"a": {}, "an": {}, "the": {},
}

func cleanTopicWords(text string, v lang.Vocabulary) string {
	words := strings.Fields(text)
	var kept []string
	demonstratives := map[string]struct{}{}
	for _, d := range v.Demonstratives() {
		demonstratives[d] = struct{}{}
	}
	for _, w := range words {
		lw := strings.ToLower(w)
		if _, strip := stripWords[lw]; strip {
			continue
		}
		if _, dem := demonstratives[lw]; dem {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func deriveTopic(v lang.Vocabulary, rules lang.Rules, doc nlpdoc.Doc, text string) string {
	var raw string
	switch {
	case matchFirst(rules.QuestionPatterns(), text, 3) != "":
		raw = matchFirst(rules.QuestionPatterns(), text, 3)
	case matchFirst(rules.ExplainPatterns(), text, 1) != "":
		raw = matchFirst(rules.ExplainPatterns(), text, 1)
	case matchFirst(rules.ConceptPatterns(), text, 1) != "":
		raw = matchFirst(rules.ConceptPatterns(), text, 1)
	case matchFirst(rules.ProcedurePatterns(), text, 1) != "":
		raw = matchFirst(rules.ProcedurePatterns(), text, 1)
	default:
		for _, chunk := range doc.NounChunks() {
			cleaned := cleanTopicWords(chunk.Text, v)
			if cleaned != "" && !isMeaningless(cleaned, v.Demonstratives()) {
				raw = cleaned
				break
			}
		}
	}
	if raw == "" {
		return ""
	}
	raw = cleanTopicWords(raw, v)
	if isMeaningless(raw, v.Demonstratives()) {
		return ""
	}
	return upperSnake(raw)
}

func matchFirst(patterns []*regexp.Regexp, text string, group int) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil && len(m) > group {
			return strings.TrimSpace(m[group])
		}
	}
	return ""
}

func deriveSubject(rules lang.Rules, text string) string {
	for _, lp := range rules.SubjectPatterns() {
		if m := lp.Pattern.FindStringSubmatch(text); m != nil && len(m) > 1 {
			return lp.Label
		}
	}
	return ""
}

var reResultType = regexp.MustCompile(`(?i)(?:calculate|compute|find)\s+(?:the\s+)?([a-z ]{2,30}?)(?:\s+of|\s+for|[.,?]|$)`)

func deriveResultType(text string) string {
	m := reResultType.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return upperSnake(strings.TrimSpace(m[1]))
}

// deriveTypeFromMap looks up a TYPE label by keyword. A label that is
// itself a TARGET token ("call", "meeting") names a competing target,
// not a type qualifier — target normalization already ranked it — so
// those entries are skipped.
func deriveTypeFromMap(v lang.Vocabulary, rules lang.Rules, text string) string {
	tl := strings.ToLower(text)
	typeMap := rules.TypeMap()
	keys := make([]string, 0, len(typeMap))
	for k := range typeMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, keyword := range keys {
		if !strings.Contains(tl, keyword) {
			continue
		}
		label := typeMap[keyword]
		if _, isTarget := v.TargetTokens()[label]; isTarget {
			continue
		}
		return label
	}
	return ""
}

func deriveDuration(rules lang.Rules, text string) string {
	for _, re := range rules.DurationPatterns() {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(m[0]), "hour") || strings.Contains(strings.ToLower(m[0]), "hr") {
			n *= 60
		}
		return strconv.Itoa(n)
	}
	return ""
}

func deriveContext(rules lang.Rules, text string) string {
	tl := strings.ToLower(text)
	ctxMap := rules.ContextMap()
	keys := make([]string, 0, len(ctxMap))
	for k := range ctxMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, keyword := range keys {
		if strings.Contains(tl, keyword) {
			return ctxMap[keyword]
		}
	}
	return ""
}

func deriveIssue(rules lang.Rules, text string) string {
	for _, re := range rules.IssuePatterns() {
		if m := re.FindStringSubmatch(text); m != nil {
			return upperSnake(m[1])
		}
	}
	return ""
}

func deriveDomain(v lang.Vocabulary, rules lang.Rules, doc nlpdoc.Doc, text string) string {
	tl := strings.ToLower(text)
	scores := map[string]float64{}

	candidates := v.DomainCandidates()
	keys := make([]string, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, domain := range keys {
		for _, kw := range candidates[domain] {
			if strings.Contains(tl, kw) {
				scores[domain]++
			}
		}
	}

	regexKeys := make([]string, 0, len(rules.DomainRegexes()))
	for k := range rules.DomainRegexes() {
		regexKeys = append(regexKeys, k)
	}
	sort.Strings(regexKeys)
	for _, domain := range regexKeys {
		for _, re := range rules.DomainRegexes()[domain] {
			if re.MatchString(text) {
				scores[domain] += 2
			}
		}
	}

	for _, chunk := range doc.NounChunks() {
		cl := strings.ToLower(chunk.Text)
		for _, domain := range keys {
			for _, kw := range candidates[domain] {
				if strings.Contains(cl, kw) {
					scores[domain] += 1.5
				}
			}
		}
	}

	priority := rules.DomainPriority()
	rank := func(d string) int {
		for i, p := range priority {
			if p == d {
				return i
			}
		}
		return len(priority)
	}

	best, bestScore := "", 0.0
	for domain, score := range scores {
		if score == 0 {
			continue
		}
		switch {
		case best == "":
			best, bestScore = domain, score
		case score > bestScore:
			best, bestScore = domain, score
		case score == bestScore && rank(domain) < rank(best):
			best = domain
		}
	}
	if best == "" {
		return "DEFAULT"
	}
	return best
}

func deriveLang(rules lang.Rules, text string) string {
	tl := strings.ToLower(text)
	hasIndicator := false
	for _, kw := range rules.CodeIndicators() {
		if strings.Contains(tl, kw) {
			hasIndicator = true
			break
		}
	}
	if !hasIndicator {
		return ""
	}
	for _, lp := range rules.ProgrammingLanguages() {
		if lp.Pattern.MatchString(text) {
			return lp.Label
		}
	}
	return ""
}
