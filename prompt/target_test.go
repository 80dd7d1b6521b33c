package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clmhq/clm/lang/en"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc/heuristic"
)

func TestExtractImperative_SimpleDispatch(t *testing.T) {
	v := en.NewVocabulary()
	got := ExtractImperative(v, "List the top reasons for churn.")
	require.NotNil(t, got)
	assert.Equal(t, "ITEMS", got.Token)
}

func TestExtractImperative_AnalyzeCode(t *testing.T) {
	v := en.NewVocabulary()
	got := ExtractImperative(v, "Analyze this code snippet for bugs.")
	require.NotNil(t, got)
	assert.Equal(t, "CODE", got.Token)
}

func TestExtractImperative_ClassifyTicket(t *testing.T) {
	v := en.NewVocabulary()
	got := ExtractImperative(v, "Classify this support ticket urgently.")
	require.NotNil(t, got)
	assert.Equal(t, "TICKET", got.Token)
}

func TestExtractImperative_SummarizeTranscript(t *testing.T) {
	v := en.NewVocabulary()
	got := ExtractImperative(v, "Summarize this call transcript quickly.")
	require.NotNil(t, got)
	assert.Equal(t, "TRANSCRIPT", got.Token)
}

func TestExtractImperative_OptimizeQueryVsCode(t *testing.T) {
	v := en.NewVocabulary()

	withQuery := ExtractImperative(v, "Optimize this sql query please.")
	require.NotNil(t, withQuery)
	assert.Equal(t, "QUERY", withQuery.Token)

	withoutQuery := ExtractImperative(v, "Optimize this function for speed.")
	require.NotNil(t, withoutQuery)
	assert.Equal(t, "CODE", withoutQuery.Token)
}

func TestExtractImperative_TransformDocument(t *testing.T) {
	v := en.NewVocabulary()
	got := ExtractImperative(v, "Transform this document into a summary.")
	require.NotNil(t, got)
	assert.Equal(t, "DOCUMENT", got.Token)
}

func TestExtractImperative_UnrecognizedVerbReturnsNil(t *testing.T) {
	v := en.NewVocabulary()
	assert.Nil(t, ExtractImperative(v, "Hmm interesting weather today."))
}

func TestExtractQuestion_MatchesLeadingQuestionWord(t *testing.T) {
	v := en.NewVocabulary()
	got := ExtractQuestion(v, "What is the capital of France?")
	require.NotNil(t, got)
	assert.Equal(t, "CONCEPT", got.Token)
}

func TestExtractQuestion_NoLeadingQuestionWordReturnsNil(t *testing.T) {
	v := en.NewVocabulary()
	assert.Nil(t, ExtractQuestion(v, "The deadline is tomorrow?"))
}

func TestExtractNouns_CollectsVocabularyMatchingTokens(t *testing.T) {
	v := en.NewVocabulary()
	text := "the report highlights several items today"
	doc := heuristic.New().Parse(text)

	got := ExtractNouns(v, doc)

	require.Len(t, got, 2)
	assert.Equal(t, "REPORT", got[0].Token)
	assert.Equal(t, "ITEMS", got[1].Token)
}

func TestExtractCompound_MatchesMultiWordSynonym(t *testing.T) {
	v := en.NewVocabulary()
	got := ExtractCompound(v, "I need help with a support ticket today.")
	require.Len(t, got, 1)
	assert.Equal(t, "TICKET", got[0].Token)
}

func TestExtractPattern_DemonstrativeNoun(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	got := ExtractPattern(v, rules, "Review this ticket for errors.")
	require.Len(t, got, 1)
	assert.Equal(t, "TICKET", got[0].Token)
}

func TestExtractPattern_ForTarget(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	got := ExtractPattern(v, rules, "Please write documentation for code quality.")
	require.Len(t, got, 1)
	assert.Equal(t, "CODE", got[0].Token)
}

func TestExtractPattern_ConceptPhrase(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	got := ExtractPattern(v, rules, "Explain the concept of blockchain simply.")
	require.Len(t, got, 1)
	assert.Equal(t, "CONCEPT", got[0].Token)
}

func TestExtractFallback_GenerateWithListIndicator(t *testing.T) {
	got := ExtractFallback(model.REQGenerate, "give me several points")
	assert.Equal(t, "ITEMS", got.Token)
}

func TestExtractFallback_GenerateWithoutListIndicator(t *testing.T) {
	got := ExtractFallback(model.REQGenerate, "write something nice")
	assert.Equal(t, "CONTENT", got.Token)
}

func TestExtractFallback_Explain(t *testing.T) {
	got := ExtractFallback(model.REQExplain, "anything")
	assert.Equal(t, "CONCEPT", got.Token)
}

func TestExtractFallback_DefaultsToAnswer(t *testing.T) {
	got := ExtractFallback(model.REQAnalyze, "anything")
	assert.Equal(t, "ANSWER", got.Token)
}

func TestExtractTarget_ImperativeWinsWithoutNLP(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	got := ExtractTarget(v, rules, nil, "List the top pain points.", model.REQGenerate)
	require.NotNil(t, got)
	assert.Equal(t, "ITEMS", got.Token)
}

func TestExtractTarget_QuestionWinsWithoutNLP(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	got := ExtractTarget(v, rules, nil, "What is quantum computing?", model.REQAnalyze)
	require.NotNil(t, got)
	assert.Equal(t, "CONCEPT", got.Token)
}

func TestExtractTarget_FallsThroughToCandidates(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	text := "I'd like help with my support ticket please."
	doc := heuristic.New().Parse(text)

	got := ExtractTarget(v, rules, doc, text, model.REQAnalyze)

	require.NotNil(t, got)
	assert.Equal(t, "TICKET", got.Token)
}

func TestExtractTarget_FallsBackWhenNoCandidates(t *testing.T) {
	v := en.NewVocabulary()
	rules := en.New()
	text := "Hmm interesting weather today."
	doc := heuristic.New().Parse(text)

	got := ExtractTarget(v, rules, doc, text, model.REQAnalyze)

	require.NotNil(t, got)
	assert.Equal(t, "ANSWER", got.Token)
}
