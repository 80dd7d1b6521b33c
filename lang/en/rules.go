package en

import (
	"regexp"

	"github.com/clmhq/clm/lang"
)

// Rules is the English Rules implementation. Every pattern is
// compiled once, at package init, so a bad regex panics at import
// time rather than surfacing mid-encode.
type Rules struct{}

// New returns the English Rules value.
func New() Rules { return Rules{} }

var _ lang.Rules = Rules{}

func must(pattern string) *regexp.Regexp { return regexp.MustCompile(pattern) }

var (
	comparisonPatterns = []*regexp.Regexp{
		must(`(?i)\b(better than|worse than|versus|vs\.?|compared to|rather than)\b`),
	}

	audiencePatterns = []lang.LabeledPattern{
		{Pattern: must(`(?i)\bfor (a |an )?(business|technical|engineering) audience\b`), Label: "BUSINESS"},
		{Pattern: must(`(?i)\bfor (a |an )?(developer|engineer)s?\b`), Label: "TECHNICAL"},
		{Pattern: must(`(?i)\bfor (a |an )?(beginner|novice|layperson|non-technical)\b`), Label: "GENERAL"},
		{Pattern: must(`(?i)\bfor (a |an )?(executive|manager|stakeholder)s?\b`), Label: "BUSINESS"},
	}

	lengthPatterns = []lang.LabeledPattern{
		{Pattern: must(`(?i)\b(brief|short|concise|a few sentences)\b`), Label: "SHORT"},
		{Pattern: must(`(?i)\b(detailed|long|comprehensive|in depth|in-depth|thorough)\b`), Label: "LONG"},
		{Pattern: must(`(?i)\bone (paragraph|sentence)\b`), Label: "SHORT"},
	}

	stylePatterns = []lang.LabeledPattern{
		{Pattern: must(`(?i)\b(bullet point|bulleted|as a list)\b`), Label: "BULLETED"},
		{Pattern: must(`(?i)\b(narrative|prose|story form)\b`), Label: "NARRATIVE"},
		{Pattern: must(`(?i)\b(formal)\b`), Label: "FORMAL"},
		{Pattern: must(`(?i)\b(casual|conversational|informal)\b`), Label: "CASUAL"},
	}

	tonePatterns = []lang.LabeledPattern{
		{Pattern: must(`(?i)\b(friendly|warm|empathetic)\b`), Label: "FRIENDLY"},
		{Pattern: must(`(?i)\b(professional|businesslike)\b`), Label: "PROFESSIONAL"},
		{Pattern: must(`(?i)\b(stern|firm|assertive)\b`), Label: "FIRM"},
		{Pattern: must(`(?i)\b(playful|fun|humorous)\b`), Label: "PLAYFUL"},
	}

	contextPatterns = map[string][]lang.LabeledPattern{
		"LANGUAGE": {{Pattern: must(`(?i)\bin (spanish|french|portuguese|german|english)\b`), Label: ""}},
		"REGION":   {{Pattern: must(`(?i)\bfor (the )?(us|eu|uk|latam|apac) (market|region)\b`), Label: ""}},
		"PRIORITY": {
			{Pattern: must(`(?i)\burgent\b`), Label: "URGENT"},
			{Pattern: must(`(?i)\bhigh priority\b`), Label: "HIGH"},
			{Pattern: must(`(?i)\blow priority\b`), Label: "LOW"},
		},
		"SLA":    {{Pattern: must(`(?i)\bwithin (\d+) (hour|day)s?\b`), Label: ""}},
		"FORMAT": {{Pattern: must(`(?i)\bas (a |an )?(markdown|table|csv|plain text)\b`), Label: ""}},
	}

	numberWords = map[string]int{
		"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	}

	specPatterns = []lang.LabeledPattern{
		{Pattern: must(`(?i)\bunder (\d+) words?\b`), Label: "WORDS"},
		{Pattern: must(`(?i)\b(\d+) words? or (less|fewer)\b`), Label: "WORDS"},
		{Pattern: must(`(?i)\bwithin (\d+) lines?\b`), Label: "LINES"},
		{Pattern: must(`(?i)\bno more than (\d+)\b`), Label: "COUNT"},
		{Pattern: must(`(?i)\bat least (\d+)\b`), Label: "MIN_COUNT"},
	}

	quantifierUnits = []string{"tips", "items", "examples", "steps", "ways", "methods", "ideas", "points"}

	questionPatterns = []*regexp.Regexp{
		must(`(?i)^(what|how|why) (is|are|does|do)\s+(.+?)\??$`),
	}

	explainPatterns = []*regexp.Regexp{
		must(`(?i)\bexplain\s+(?:what\s+)?(.+?)\s+(?:is|means|works)\b`),
		must(`(?i)\bdescribe\s+(.+?)\s+(?:is|means|works)\b`),
	}

	conceptPatterns = []*regexp.Regexp{
		must(`(?i)\bconcept of\s+([a-z0-9 _-]{2,40})`),
	}

	procedurePatterns = []*regexp.Regexp{
		must(`(?i)\bhow to\s+(.+)$`),
		must(`(?i)\bsteps? (?:to|for)\s+(.+)$`),
	}

	subjectPatterns = []lang.LabeledPattern{
		{Pattern: must(`(?i)\babout\s+([a-z0-9 _-]{2,40})`), Label: "TOPIC"},
		{Pattern: must(`(?i)\bregarding\s+([a-z0-9 _-]{2,40})`), Label: "TOPIC"},
		{Pattern: must(`(?i)\btip(?:s)? (?:for|on)\s+([a-z0-9 _-]{2,40})`), Label: "TIP"},
		{Pattern: must(`(?i)\bmethod(?:s)? (?:for|of)\s+([a-z0-9 _-]{2,40})`), Label: "METHOD"},
	}

	typeMap = map[string]string{
		"call":    "CALL",
		"meeting": "MEETING",
		"chat":    "CHAT",
		"email":   "EMAIL",
		"memo":    "MEMO",
	}

	contextMap = map[string]string{
		"customer": "CUSTOMER",
		"support":  "SUPPORT",
		"internal": "INTERNAL",
		"external": "EXTERNAL",
		"sales":    "SALES",
	}

	durationPatterns = []*regexp.Regexp{
		must(`(?i)\b(\d+)[\s-]?(minute|min)s?\b`),
		must(`(?i)\b(\d+)[\s-]?(hour|hr)s?\b`),
	}

	issuePatterns = []*regexp.Regexp{
		must(`(?i)\b(?:issue|problem|complaint) (?:about|with|regarding)\s+([a-z0-9 _-]{2,40})`),
	}

	domainRegexes = map[string][]*regexp.Regexp{
		"TECHNICAL": {must(`(?i)\bstack ?trace\b`), must(`(?i)\b5\d{2} error\b`)},
		"FINANCE":   {must(`(?i)\$\d+(\.\d{1,2})?\b`)},
		"SECURITY":  {must(`(?i)\bcve-\d{4}-\d+\b`)},
	}

	domainPriority = []string{
		"SUPPORT", "TECHNICAL", "FINANCE", "SECURITY", "LEGAL",
		"BUSINESS", "DOCUMENT", "SALES", "EDUCATION", "MEDICAL",
	}

	programmingLanguages = []lang.LabeledPattern{
		{Pattern: must(`(?i)\bpython\b`), Label: "PYTHON"},
		{Pattern: must(`(?i)\b(javascript|js)\b`), Label: "JAVASCRIPT"},
		{Pattern: must(`(?i)\btypescript\b`), Label: "TYPESCRIPT"},
		{Pattern: must(`(?i)\bgo(lang)?\b`), Label: "GO"},
		{Pattern: must(`(?i)\bjava\b`), Label: "JAVA"},
		{Pattern: must(`(?i)\brust\b`), Label: "RUST"},
		{Pattern: must(`(?i)\bc\+\+\b`), Label: "CPP"},
		{Pattern: must(`(?i)\bruby\b`), Label: "RUBY"},
	}

	codeIndicators = []string{"code", "script", "function", "program", "class", "method", "bug", "stack trace"}

	addressAbbreviations = map[string]string{
		"street":    "St",
		"avenue":    "Ave",
		"lane":      "Ln",
		"drive":     "Dr",
		"boulevard": "Blvd",
		"road":      "Rd",
		"court":     "Ct",
		"place":     "Pl",
	}

	issueTypeKeywords = map[string][]string{
		"BILLING_DISPUTE":   {"charged twice", "double charge", "wrong amount", "billing error", "incorrect charge"},
		"UNEXPECTED_CHARGE": {"unexpected charge", "charge i didn't authorize", "surprise charge"},
		"REFUND_REQUEST":    {"want a refund", "refund please", "asking for a refund"},
		"OVERCHARGE":        {"overcharged", "charged too much"},
		"CONNECTIVITY":      {"can't connect", "connection drops", "no internet", "keeps disconnecting"},
		"TECHNICAL":         {"error message", "crashes", "not working", "bug"},
		"LATE_DELIVERY":     {"hasn't arrived", "late delivery", "still waiting for"},
		"PRODUCT_DEFECT":    {"broken", "defective", "doesn't work"},
	}

	severityKeywords = map[string][]string{
		"CRITICAL": {"completely down", "can't use it at all", "emergency"},
		"HIGH":     {"very frustrated", "extremely", "unacceptable"},
		"MEDIUM":   {"annoying", "frustrating"},
		"LOW":      {"minor", "small issue"},
	}

	billingCauseKeywords = map[string][]string{
		"DUPLICATE_CHARGE": {"charged twice", "double charge"},
		"PLAN_CHANGE":      {"upgrade", "downgrade", "changed my plan"},
		"PRORATION":        {"prorated", "proration"},
		"SYSTEM_ERROR":     {"system error", "billing glitch"},
	}

	technicalIssueMap = map[string][]string{
		"ROUTER_ISSUE":   {"router", "modem"},
		"SOFTWARE_BUG":   {"bug", "crash"},
		"NETWORK_OUTAGE": {"outage", "service down"},
	}

	actionTokens = map[string][]string{
		"REFUND":       {"refund", "refunded", "issued a refund"},
		"ESCALATION":   {"escalate", "escalated", "escalating"},
		"TROUBLESHOOT": {"troubleshoot", "tried restarting", "reset the"},
		"CREDIT":       {"credit", "account credit"},
		"REPLACEMENT":  {"send a replacement", "replacement unit"},
		"CANCELLATION": {"cancel", "cancelled", "canceling"},
	}

	explicitOnlyActions = map[string]struct{}{
		"CANCELLATION": {},
	}

	issueConfirmationPhrases = []string{
		"i understand", "i see the issue", "i can confirm", "that makes sense",
	}

	troubleshootingPhrases = map[string][]string{
		"RESTART":   {"restart", "reboot", "power cycle"},
		"RESET":     {"reset", "factory reset"},
		"REINSTALL": {"reinstall", "re-install"},
	}

	resolutionKeywords = map[string][]string{
		"RESOLVED":            {"resolved", "all set", "fixed now", "working now"},
		"ESCALATED":           {"escalated to", "escalating this to"},
		"PENDING_REPLACEMENT": {"sending a replacement", "replacement is on its way"},
		"PENDING":             {"will follow up", "we'll get back to you"},
	}

	paymentMethodKeywords = map[string][]string{
		"PAYPAL":         {"paypal"},
		"CHECK":          {"check", "cheque"},
		"CARD_CREDIT":    {"credit card", "debit card", "card"},
		"ACCOUNT_CREDIT": {"account credit"},
	}

	emotionKeywords = []lang.EmotionRule{
		{Label: "ANGRY", Keywords: []string{"furious", "angry", "ridiculous", "unacceptable", "outraged"}, Intensity: 0.9},
		{Label: "FRUSTRATED", Keywords: []string{"frustrated", "annoyed", "fed up"}, Intensity: 0.7},
		{Label: "CONFUSED", Keywords: []string{"confused", "don't understand", "not sure"}, Intensity: 0.5},
		{Label: "GRATEFUL", Keywords: []string{"thank you", "thanks", "appreciate"}, Intensity: 0.8},
		{Label: "SATISFIED", Keywords: []string{"great", "perfect", "that works", "happy"}, Intensity: 0.7},
	}

	stylisticIntentKeywords = []string{
		"write", "give", "provide", "explain", "describe", "summarize",
		"make it", "in a", "as a", "keep it", "brief", "short", "long",
		"detailed", "simple", "concise",
	}

	schemaMarkers = []string{
		"{", "}", "output format", "criteria", "scoring", "compliance",
		"policy adherence",
	}
)

func (Rules) Comparison() []*regexp.Regexp { return comparisonPatterns }
func (Rules) Audience() []lang.LabeledPattern { return audiencePatterns }
func (Rules) Length() []lang.LabeledPattern { return lengthPatterns }
func (Rules) Style() []lang.LabeledPattern { return stylePatterns }
func (Rules) Tone() []lang.LabeledPattern { return tonePatterns }
func (Rules) ContextPatterns() map[string][]lang.LabeledPattern { return contextPatterns }
func (Rules) NumberWords() map[string]int { return numberWords }
func (Rules) SpecPatterns() []lang.LabeledPattern { return specPatterns }
func (Rules) QuantifierUnits() []string { return quantifierUnits }
func (Rules) QuestionPatterns() []*regexp.Regexp { return questionPatterns }
func (Rules) ExplainPatterns() []*regexp.Regexp { return explainPatterns }
func (Rules) ConceptPatterns() []*regexp.Regexp { return conceptPatterns }
func (Rules) ProcedurePatterns() []*regexp.Regexp { return procedurePatterns }
func (Rules) SubjectPatterns() []lang.LabeledPattern { return subjectPatterns }
func (Rules) TypeMap() map[string]string { return typeMap }
func (Rules) ContextMap() map[string]string { return contextMap }
func (Rules) DurationPatterns() []*regexp.Regexp { return durationPatterns }
func (Rules) IssuePatterns() []*regexp.Regexp { return issuePatterns }
func (Rules) DomainRegexes() map[string][]*regexp.Regexp { return domainRegexes }
func (Rules) DomainPriority() []string { return domainPriority }
func (Rules) ProgrammingLanguages() []lang.LabeledPattern { return programmingLanguages }
func (Rules) CodeIndicators() []string { return codeIndicators }
func (Rules) AddressAbbreviations() map[string]string { return addressAbbreviations }
func (Rules) IssueTypeKeywords() map[string][]string { return issueTypeKeywords }
func (Rules) SeverityKeywords() map[string][]string { return severityKeywords }
func (Rules) BillingCauseKeywords() map[string][]string { return billingCauseKeywords }
func (Rules) TechnicalIssueMap() map[string][]string { return technicalIssueMap }
func (Rules) ActionTokens() map[string][]string { return actionTokens }
func (Rules) ExplicitOnlyActions() map[string]struct{} { return explicitOnlyActions }
func (Rules) IssueConfirmationPhrases() []string { return issueConfirmationPhrases }
func (Rules) TroubleshootingPhrases() map[string][]string { return troubleshootingPhrases }
func (Rules) ResolutionKeywords() map[string][]string { return resolutionKeywords }
func (Rules) PaymentMethodKeywords() map[string][]string { return paymentMethodKeywords }
func (Rules) EmotionKeywords() []lang.EmotionRule { return emotionKeywords }
func (Rules) StylisticIntentKeywords() []string { return stylisticIntentKeywords }
func (Rules) SchemaMarkers() []string { return schemaMarkers }
