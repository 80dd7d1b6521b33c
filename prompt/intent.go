// Package prompt implements the system-prompt encoder: intent
// detection, target extraction, attribute parsing, output-schema
// inference, and final tokenization into a CLMOutput.
package prompt

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc"
)

// signal is the internal vocabulary-mapped cue kind the intent
// detector resolves before picking a REQ.
type signal string

const (
	signalExtraction     signal = "EXTRACTION"
	signalPrediction     signal = "PREDICTION"
	signalTransformation signal = "TRANSFORMATION"
	signalFormatting     signal = "FORMATTING"
	signalValidation     signal = "VALIDATION"
	signalRanking        signal = "RANKING"
	signalDebugging      signal = "DEBUGGING"
	signalSearch         signal = "SEARCH"
	signalExecution      signal = "EXECUTION"
)

// reqToSignal maps a REQ vocabulary key to the signal kind it
// contributes, per a fixed REQ-to-signal table.
var reqToSignal = map[string]signal{
	"EXTRACT":   signalExtraction,
	"PREDICT":   signalPrediction,
	"TRANSFORM": signalTransformation,
	"FORMAT":    signalFormatting,
	"VALIDATE":  signalValidation,
	"RANK":      signalRanking,
	"DEBUG":     signalDebugging,
	"SEARCH":    signalSearch,
	"EXECUTE":   signalExecution,
}

// artifact is a structural cue detected by regex over the raw text.
type artifact string

const (
	artifactStructured artifact = "STRUCTURED"
	artifactProbability artifact = "PROBABILITY"
	artifactList        artifact = "LIST"
	artifactValidation  artifact = "VALIDATION"
	artifactDecision    artifact = "DECISION"
	artifactText        artifact = "TEXT"
)

var (
	reBraceBlock   = regexp.MustCompile(`\{[\s\S]*?\}`)
	reProbability  = regexp.MustCompile(`(?i)\b(probability|odds|chance|likelihood)\b`)
	reListLine     = regexp.MustCompile(`(?m)^\s*[-*]\s+`)
	reValidation   = regexp.MustCompile(`(?i)\b(validate|verify|check compliance|ensure)\b`)
	reDecision     = regexp.MustCompile(`(?i)\b(recommend|best option|choose|decision)\b`)
)

func detectArtifacts(text string) map[artifact]struct{} {
	out := map[artifact]struct{}{}
	if reBraceBlock.MatchString(text) {
		out[artifactStructured] = struct{}{}
	}
	if reProbability.MatchString(text) {
		out[artifactProbability] = struct{}{}
	}
	if reListLine.MatchString(text) {
		out[artifactList] = struct{}{}
	}
	if reValidation.MatchString(text) {
		out[artifactValidation] = struct{}{}
	}
	if reDecision.MatchString(text) {
		out[artifactDecision] = struct{}{}
	}
	tl := strings.ToLower(text)
	if strings.Contains(tl, "report") || strings.Contains(tl, "analysis") {
		out[artifactText] = struct{}{}
	}
	return out
}

// detectSignals scans text for any REQ vocabulary phrase and maps the
// first REQ found per trigger word to its signal kind.
func detectSignals(v lang.Vocabulary, text string) map[signal]struct{} {
	tl := strings.ToLower(text)
	out := map[signal]struct{}{}
	reqs := v.REQTokens()
	// Deterministic order so signal detection never depends on Go's
	// randomized map iteration.
	keys := make([]string, 0, len(reqs))
	for k := range reqs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, reqKey := range keys {
		for _, phrase := range reqs[reqKey] {
			if strings.Contains(tl, phrase) {
				if sig, ok := reqToSignal[reqKey]; ok {
					out[sig] = struct{}{}
				}
				break
			}
		}
	}
	return out
}

func detectEpistemicGrounding(v lang.Vocabulary, text string) bool {
	tl := strings.ToLower(text)
	keywords := v.EpistemicKeywords()
	hasAny := func(bucket string) bool {
		for _, kw := range keywords[bucket] {
			if strings.Contains(tl, kw) {
				return true
			}
		}
		return false
	}
	return hasAny("uncertainty") && (hasAny("future") || hasAny("real_world"))
}

// resolveREQ implements the 12-step first-match-wins resolution order.
func resolveREQ(signals map[signal]struct{}, artifacts map[artifact]struct{}, epistemic bool) model.REQ {
	_, hasValidationSignal := signals[signalValidation]
	_, hasValidationArtifact := artifacts[artifactValidation]
	if hasValidationArtifact || hasValidationSignal {
		return model.REQValidate
	}
	if _, ok := signals[signalExtraction]; ok {
		if _, prob := artifacts[artifactProbability]; !prob {
			return model.REQExtract
		}
	}
	if _, ok := signals[signalPrediction]; ok {
		return model.REQPredict
	}
	if _, ok := signals[signalTransformation]; ok {
		return model.REQTransform
	}
	if _, ok := signals[signalFormatting]; ok {
		return model.REQFormat
	}
	if _, ok := artifacts[artifactProbability]; ok {
		if epistemic {
			return model.REQPredict
		}
		return model.REQGenerate
	}
	_, structured := artifacts[artifactStructured]
	_, text := artifacts[artifactText]
	_, list := artifacts[artifactList]
	if structured || text || list {
		return model.REQGenerate
	}
	_, decision := artifacts[artifactDecision]
	if _, ok := signals[signalRanking]; ok || decision {
		return model.REQRank
	}
	if _, ok := signals[signalDebugging]; ok {
		return model.REQDebug
	}
	if _, ok := signals[signalSearch]; ok {
		return model.REQSearch
	}
	if _, ok := signals[signalExecution]; ok {
		return model.REQExecute
	}
	return model.REQAnalyze
}

// modifiersByREQ binds modifier keywords to the REQ they refine. At
// most one modifier is kept.
var modifiersByREQ = map[model.REQ]map[string]string{
	model.REQAnalyze:   {"deep": "DEEP", "in-depth": "DEEP", "quick": "QUICK", "surface": "SURFACE", "surface-level": "SURFACE"},
	model.REQSummarize: {"brief": "BRIEF", "detailed": "DETAILED"},
	model.REQExplain:   {"simple": "SIMPLE", "simply": "SIMPLE", "technical": "TECHNICAL", "deep": "DEEP"},
	model.REQGenerate:  {"creative": "CREATIVE", "formal": "FORMAL"},
}

func detectModifier(req model.REQ, text string) string {
	tl := strings.ToLower(text)
	keywords, ok := modifiersByREQ[req]
	if !ok {
		return ""
	}
	// Deterministic scan order.
	keys := make([]string, 0, len(keywords))
	for k := range keywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, kw := range keys {
		if strings.Contains(tl, kw) {
			return keywords[kw]
		}
	}
	return ""
}

// specOntology is the closed set extract_specs filters its candidates
// down to.
var specOntology = map[string]struct{}{
	"SUPPORT_RESPONSE": {}, "TROUBLESHOOTING_GUIDE": {}, "BETTING_ODDS": {},
	"PROBABILITY_DISTRIBUTION": {}, "FORECAST": {}, "REPORT": {}, "SUMMARY": {},
	"RECOMMENDATION": {}, "RANKING": {}, "JSON_OBJECT": {}, "JSON_SCHEMA": {},
	"FIELDS": {}, "ENTITIES": {}, "VALIDATION_RESULT": {},
}

var nonDomainSpecs = map[string]struct{}{
	"JSON_OBJECT": {}, "JSON_SCHEMA": {}, "PROBABILITY_DISTRIBUTION": {},
}

var artifactToSpec = map[artifact]string{
	artifactValidation: "VALIDATION_RESULT",
	artifactDecision:   "RECOMMENDATION",
}

var specKeywords = map[string][]string{
	"BETTING_ODDS":          {"odds", "betting", "bookmaker"},
	"FORECAST":              {"forecast", "projection"},
	"SUMMARY":               {"summary", "recap"},
	"REPORT":                {"report", "analysis document"},
	"SUPPORT_RESPONSE":      {"support", "ticket", "incident"},
	"TROUBLESHOOTING_GUIDE": {"troubleshoot", "troubleshooting", "steps"},
}

var reExplicitOutput = regexp.MustCompile(`(?i)(?:generate|return|provide|output|produce)\s+(?:a|an|the)?\s*([a-zA-Z_ ]{2,40})`)

// extractSpec scores candidate SPEC labels from explicit patterns
// (+3), artifact mapping (+2), and keyword tables (+1), then returns
// at most one member of the closed ontology.
func extractSpec(text string, artifacts map[artifact]struct{}, req model.REQ) string {
	scores := map[string]int{}

	for _, m := range reExplicitOutput.FindAllStringSubmatch(text, -1) {
		phrase := strings.ToUpper(strings.Join(strings.Fields(m[1]), "_"))
		scores[phrase] += 3
	}

	for art := range artifacts {
		if s, ok := artifactToSpec[art]; ok {
			scores[s] += 2
		}
	}

	tl := strings.ToLower(text)
	keys := make([]string, 0, len(specKeywords))
	for k := range specKeywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, label := range keys {
		for _, kw := range specKeywords[label] {
			if strings.Contains(tl, kw) {
				scores[label]++
				break
			}
		}
	}

	type candidate struct {
		label string
		score int
	}
	var candidates []candidate
	for label, score := range scores {
		if _, ok := specOntology[label]; !ok {
			continue
		}
		if _, nonDomain := nonDomainSpecs[label]; nonDomain {
			continue
		}
		if label == "VALIDATION_RESULT" && req != model.REQValidate {
			continue
		}
		candidates = append(candidates, candidate{label, score})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].label < candidates[j].label
	})
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0].label
}

var reLeadingWord = regexp.MustCompile(`^([a-z]+)\b`)

// canonicalREQs is the closed set the detector may emit. Vocabulary
// REQ keys outside it (LIST, CALCULATE) exist for the target
// extractor's imperative dispatch and are folded onto a canonical
// action here.
var canonicalREQs = map[model.REQ]struct{}{
	model.REQAnalyze: {}, model.REQExtract: {}, model.REQGenerate: {},
	model.REQPredict: {}, model.REQValidate: {}, model.REQTransform: {},
	model.REQFormat: {}, model.REQRank: {}, model.REQDebug: {},
	model.REQSearch: {}, model.REQExecute: {}, model.REQSummarize: {},
	model.REQClassify: {}, model.REQCompare: {}, model.REQOptimize: {},
	model.REQExplain: {},
}

var vocabREQAliases = map[string]model.REQ{
	"LIST":      model.REQGenerate,
	"CREATE":    model.REQGenerate,
	"CALCULATE": model.REQAnalyze,
}

// leadingVerbREQ resolves the REQ named by an imperative leading verb
// ("Summarize this …" → SUMMARIZE). Signal resolution only covers the
// REQs with a signal kind; the rest (SUMMARIZE, EXPLAIN, CLASSIFY, …)
// are reachable through this path alone.
func leadingVerbREQ(v lang.Vocabulary, text string) (req, trigger string) {
	tl := strings.ToLower(strings.TrimSpace(text))
	m := reLeadingWord.FindStringSubmatch(tl)
	if m == nil {
		return "", ""
	}
	return lang.GetReqToken(v, m[1], text), m[1]
}

// DetectIntent resolves the single primary Intent for text: an
// imperative leading verb wins outright; otherwise the signal/artifact
// resolution order decides.
func DetectIntent(v lang.Vocabulary, doc nlpdoc.Doc, text string) *model.Intent {
	signals := detectSignals(v, text)
	artifacts := detectArtifacts(text)
	epistemic := detectEpistemicGrounding(v, text)

	var req model.REQ
	trigger := ""
	if imperative, word := leadingVerbREQ(v, text); imperative != "" {
		if alias, ok := vocabREQAliases[imperative]; ok {
			req, trigger = alias, word
		} else if _, ok := canonicalREQs[model.REQ(imperative)]; ok {
			req, trigger = model.REQ(imperative), word
		}
	}
	if req == "" {
		req = resolveREQ(signals, artifacts, epistemic)
	}
	modifier := detectModifier(req, text)
	spec := extractSpec(text, artifacts, req)

	var unmatched []string
	for _, t := range doc.Tokens() {
		if t.POS != nlpdoc.POSVerb {
			continue
		}
		if lang.GetReqToken(v, t.Lemma, text) == "" {
			unmatched = append(unmatched, t.Lemma)
		}
	}

	return &model.Intent{
		Token:          req,
		Confidence:     1.0,
		TriggerWord:    trigger,
		Modifier:       modifier,
		Spec:           spec,
		UnmatchedVerbs: unmatched,
	}
}
