package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clmhq/clm/lang/en"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc/heuristic"
)

func TestUpperSnake(t *testing.T) {
	assert.Equal(t, "HELLO_WORLD", upperSnake("hello world"))
}

func TestIsMeaningless(t *testing.T) {
	demonstratives := []string{"this", "that", "these", "those"}
	assert.True(t, isMeaningless("a", demonstratives))
	assert.True(t, isMeaningless("123", demonstratives))
	assert.True(t, isMeaningless("this", demonstratives))
	assert.False(t, isMeaningless("pizza", demonstratives))
}

func TestDeriveDomain_SupportKeywords(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	text := "I have a ticket about a refund for a customer complaint."
	doc := heuristic.New().Parse(text)

	assert.Equal(t, "SUPPORT", deriveDomain(v, rules, doc, text))
}

func TestDeriveDomain_DefaultsWhenNoKeywordsMatch(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	text := "The weather is nice today."
	doc := heuristic.New().Parse(text)

	assert.Equal(t, "DEFAULT", deriveDomain(v, rules, doc, text))
}

func TestDeriveLang_DetectsPythonWhenCodeIndicatorPresent(t *testing.T) {
	rules := en.New()
	assert.Equal(t, "PYTHON", deriveLang(rules, "Please fix this python script."))
}

func TestDeriveLang_EmptyWithoutCodeIndicator(t *testing.T) {
	rules := en.New()
	assert.Equal(t, "", deriveLang(rules, "Please write a nice poem about python."))
}

func TestDeriveDuration_HoursConvertedToMinutes(t *testing.T) {
	rules := en.New()
	assert.Equal(t, "120", deriveDuration(rules, "The call lasted 2 hours."))
}

func TestDeriveDuration_MinutesPassThrough(t *testing.T) {
	rules := en.New()
	assert.Equal(t, "15", deriveDuration(rules, "Let's keep this meeting to 15 minutes."))
}

func TestDeriveContext_SingleKeywordMatch(t *testing.T) {
	rules := en.New()
	assert.Equal(t, "INTERNAL", deriveContext(rules, "This is an internal memo."))
}

func TestDeriveTypeFromMap_SingleKeywordMatch(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	assert.Equal(t, "CHAT", deriveTypeFromMap(v, rules, "Please review this chat thread."))
}

func TestDeriveTypeFromMap_SkipsLabelsThatNameTargets(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	assert.Equal(t, "", deriveTypeFromMap(v, rules, "Summarize this customer call transcript."))
}

func TestDeriveIssue_CapturesPhraseAfterTrigger(t *testing.T) {
	rules := en.New()
	assert.Equal(t, "THE_BILLING_SYSTEM", deriveIssue(rules, "There's an issue with the billing system."))
}

func TestDeriveResultType_CapturesLazyPhrase(t *testing.T) {
	assert.Equal(t, "TOTAL_COST", deriveResultType("Calculate the total cost of the order."))
}

func TestDeriveSubject_ReturnsPatternLabel(t *testing.T) {
	rules := en.New()
	assert.Equal(t, "TOPIC", deriveSubject(rules, "Let's talk about the refund policy."))
}

func TestEnhanceTarget_ConceptGetsTopicFromConceptOf(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	text := "Explain the concept of blockchain simply."
	doc := heuristic.New().Parse(text)

	target := model.NewTarget("CONCEPT")
	got := EnhanceTarget(v, rules, doc, text, target)

	assert.Equal(t, "BLOCKCHAIN_SIMPLY", got.Attributes["TOPIC"])
	assert.Equal(t, "DEFAULT", got.Domain)
}

func TestEnhanceTarget_DocumentGetsTypeButNotContextOrSubject(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	text := "Please review this document about the refund policy, it's a memo for support purposes."
	doc := heuristic.New().Parse(text)

	target := model.NewTarget("DOCUMENT")
	got := EnhanceTarget(v, rules, doc, text, target)

	require.Equal(t, "MEMO", got.Attributes["TYPE"])
	_, hasContext := got.Attributes["CONTEXT"]
	assert.False(t, hasContext, "CONTEXT is a banned target attribute key")
	assert.Equal(t, "SUPPORT", got.Domain)
	_, hasSubject := got.Attributes["SUBJECT"]
	assert.False(t, hasSubject, "DOCUMENT does not allow a SUBJECT attribute")
}

func TestEnhanceTarget_CallGetsDurationInMinutes(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	text := "The call lasted 2 hours regarding the refund."
	doc := heuristic.New().Parse(text)

	target := model.NewTarget("CALL")
	got := EnhanceTarget(v, rules, doc, text, target)

	assert.Equal(t, "120", got.Attributes["DURATION"])
	assert.Equal(t, "SUPPORT", got.Domain)
}

func TestEnhanceTarget_TicketGetsIssueAndFinanceDomain(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	text := "There's an issue with the billing system."
	doc := heuristic.New().Parse(text)

	target := model.NewTarget("TICKET")
	got := EnhanceTarget(v, rules, doc, text, target)

	assert.Equal(t, "THE_BILLING_SYSTEM", got.Attributes["ISSUE"])
	assert.Equal(t, "FINANCE", got.Domain)
}
