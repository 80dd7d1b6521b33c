// Package en is the English LanguagePack data: the concrete
// Vocabulary and Rules that the dictionary contract in package lang
// declares. It is treated as data, not design, and laid out the way a
// Portuguese/Spanish/French dictionary would shape its own
// vocabulary.
package en

import "github.com/clmhq/clm/lang"

// Vocabulary is the English Vocabulary implementation.
type Vocabulary struct{}

// NewVocabulary returns the English Vocabulary value. It holds no
// state beyond its method set, so NewVocabulary always returns the
// same shape.
func NewVocabulary() Vocabulary { return Vocabulary{} }

var _ lang.Vocabulary = Vocabulary{}

func (Vocabulary) REQTokens() map[string][]string {
	return map[string][]string{
		"ANALYZE":   {"analyze", "analyse", "examine", "review", "inspect", "assess", "evaluate"},
		"EXTRACT":   {"extract", "pull", "pull out", "get", "retrieve", "identify and list"},
		"GENERATE":  {"generate", "create", "write", "draft", "produce", "compose", "build"},
		"PREDICT":   {"predict", "forecast", "project", "estimate the future", "anticipate"},
		"VALIDATE":  {"validate", "verify", "check compliance", "confirm", "ensure"},
		"TRANSFORM": {"transform", "convert", "translate", "rewrite", "rephrase", "reformat"},
		"FORMAT":    {"format", "reformat", "restructure", "lay out"},
		"RANK":      {"rank", "order", "prioritize", "sort"},
		"DEBUG":     {"debug", "fix", "troubleshoot", "diagnose", "resolve the bug"},
		"SEARCH":    {"search", "find", "look up", "locate"},
		"EXECUTE":   {"execute", "run", "invoke", "call", "trigger"},
		"SUMMARIZE": {"summarize", "summarise", "recap", "condense", "digest"},
		"CLASSIFY":  {"classify", "categorize", "label", "tag", "bucket"},
		"COMPARE":   {"compare", "contrast", "weigh"},
		"OPTIMIZE":  {"optimize", "optimise", "improve the performance of", "speed up", "tune"},
		"EXPLAIN":   {"explain", "describe", "clarify", "walk through", "elaborate on"},
		"CALCULATE": {"calculate", "compute", "figure out"},
		"LIST":      {"list", "enumerate"},
	}
}

func (Vocabulary) TargetTokens() map[string][]string {
	return map[string][]string{
		"CODE":       {"code", "script", "function", "program", "snippet", "module", "codebase"},
		"DATA":       {"data", "dataset", "records", "numbers", "figures"},
		"QUERY":      {"query", "sql", "search query", "statement"},
		"DOCUMENT":   {"document", "doc", "file", "paper", "memo", "proposal"},
		"EMAIL":      {"email", "e-mail", "message"},
		"TRANSCRIPT": {"transcript", "conversation", "call log"},
		"CALL":       {"call", "phone call", "support call"},
		"TICKET":     {"ticket", "support ticket", "case"},
		"CONCEPT":    {"concept", "idea", "topic", "term"},
		"PROCEDURE":  {"procedure", "process", "workflow", "steps"},
		"ITEMS":      {"items", "things", "points", "tips", "ideas", "examples"},
		"RESULT":     {"result", "answer", "value", "outcome"},
		"ANSWER":     {"answer", "response", "reply"},
		"CONTENT":    {"content", "text", "copy", "piece", "article", "story", "post"},
		"REPORT":     {"report", "summary report", "analysis report"},
		"PLAN":       {"plan", "roadmap", "strategy"},
		"MEETING":    {"meeting", "standup", "call"},
	}
}

func (Vocabulary) NoiseVerbs() map[string]struct{} {
	return map[string]struct{}{
		"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
		"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
		"will": {}, "would": {}, "can": {}, "could": {}, "should": {}, "may": {}, "might": {},
		"make": {}, "get": {}, "go": {}, "say": {}, "said": {}, "think": {}, "seem": {},
	}
}

func (Vocabulary) ContextFilters() map[string][]string {
	return map[string][]string{
		"run":   {"in production", "running smoothly", "already running"},
		"build": {"is built", "was built", "already built"},
		"check": {"check in", "checking in"},
	}
}

func (Vocabulary) ExtractFields() []string {
	return []string{
		"name", "date", "amount", "email", "phone", "address", "id",
		"status", "price", "quantity", "title", "description",
	}
}

func (Vocabulary) OutputFormats() map[string][]string {
	return map[string][]string{
		"JSON":       {"json", "json object", "json schema"},
		"LIST":       {"list of", "bullet", "bulleted list", "numbered list"},
		"YAML":       {"yaml"},
		"STRUCTURED": {"structured", "fields are", "keys:", "fields:"},
	}
}

func (Vocabulary) ImperativePatterns() []lang.ImperativePattern {
	return []lang.ImperativePattern{
		{Triggers: []string{"list", "enumerate"}, ReqToken: "LIST", TargetToken: "ITEMS"},
		{Triggers: []string{"calculate", "compute"}, ReqToken: "CALCULATE", TargetToken: "RESULT"},
		{Triggers: []string{"extract", "pull"}, ReqToken: "EXTRACT", TargetToken: "DATA"},
		{Triggers: []string{"debug", "troubleshoot"}, ReqToken: "DEBUG", TargetToken: "CODE"},
	}
}

func (Vocabulary) QuestionWords() []string {
	return []string{"what", "who", "where", "when", "why", "how", "which", "whose", "whom"}
}

func (Vocabulary) EpistemicKeywords() map[string][]string {
	return map[string][]string{
		"future":      {"will", "going to", "next", "upcoming", "future", "tomorrow", "soon"},
		"uncertainty": {"likely", "probably", "might", "could", "chance", "odds", "uncertain"},
		"real_world":  {"market", "weather", "election", "game", "match", "stock", "economy"},
	}
}

func (Vocabulary) QuantifierWords() []string {
	return []string{
		"one", "two", "three", "four", "five", "six", "seven", "eight",
		"nine", "ten", "a few", "several", "a couple", "a dozen",
	}
}

func (Vocabulary) Demonstratives() []string {
	return []string{"this", "that", "these", "those"}
}

func (Vocabulary) CompoundPhrases() map[string]string {
	return map[string]string{
		"support ticket":   "TICKET",
		"source code":      "CODE",
		"business plan":    "PLAN",
		"phone call":       "CALL",
		"customer support": "TICKET",
		"call transcript":  "TRANSCRIPT",
		"meeting notes":    "MEETING",
		"sql query":        "QUERY",
		"search query":     "QUERY",
	}
}

func (Vocabulary) DomainCandidates() map[string][]string {
	return map[string][]string{
		"SUPPORT":   {"ticket", "customer", "complaint", "refund", "support"},
		"TECHNICAL": {"bug", "error", "code", "server", "deploy", "crash", "exception"},
		"FINANCE":   {"invoice", "payment", "budget", "revenue", "expense", "billing"},
		"SECURITY":  {"vulnerability", "exploit", "breach", "attack", "malware", "auth"},
		"LEGAL":     {"contract", "clause", "compliance", "liability", "terms"},
		"BUSINESS":  {"strategy", "roadmap", "stakeholder", "market", "revenue"},
		"DOCUMENT":  {"report", "memo", "proposal", "document", "paper"},
		"SALES":     {"lead", "quota", "pipeline", "deal", "prospect"},
		"EDUCATION": {"student", "course", "lesson", "curriculum", "grade"},
		"MEDICAL":   {"patient", "diagnosis", "treatment", "symptom", "prescription"},
	}
}

func (Vocabulary) MeetingWords() []string {
	return []string{"meeting", "standup", "sync", "huddle", "call"}
}

func (Vocabulary) ProposalWords() []string {
	return []string{"proposal", "pitch", "rfp", "bid"}
}
