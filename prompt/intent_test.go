package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clmhq/clm/lang/en"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc/heuristic"
)

func detectIntentFor(text string) *model.Intent {
	v := en.NewVocabulary()
	doc := heuristic.New().Parse(text)
	return DetectIntent(v, doc, text)
}

func TestDetectIntent_ValidationWinsOverExtraction(t *testing.T) {
	got := detectIntentFor("Please validate the data and extract the fields.")
	assert.Equal(t, model.REQValidate, got.Token)
}

func TestDetectIntent_ExtractionSignalWithoutProbabilityArtifact(t *testing.T) {
	got := detectIntentFor("Extract the name and email from this document.")
	assert.Equal(t, model.REQExtract, got.Token)
}

func TestDetectIntent_ProbabilityWithEpistemicGroundingPredicts(t *testing.T) {
	got := detectIntentFor("What are the odds it will rain tomorrow?")
	assert.Equal(t, model.REQPredict, got.Token)
}

func TestDetectIntent_ProbabilityWithoutEpistemicGroundingGenerates(t *testing.T) {
	got := detectIntentFor("What's the probability of success?")
	assert.Equal(t, model.REQGenerate, got.Token)
}

func TestDetectIntent_StructuredArtifactGenerates(t *testing.T) {
	got := detectIntentFor("Return the result as {name, id, date}.")
	assert.Equal(t, model.REQGenerate, got.Token)
}

func TestDetectIntent_DecisionArtifactRanks(t *testing.T) {
	got := detectIntentFor("Please recommend the best option for us.")
	assert.Equal(t, model.REQRank, got.Token)
}

func TestDetectIntent_DebugSignal(t *testing.T) {
	got := detectIntentFor("Can you debug this script?")
	assert.Equal(t, model.REQDebug, got.Token)
}

func TestDetectIntent_ImperativeLeadingVerbWins(t *testing.T) {
	// "call" would otherwise trip the EXECUTION signal.
	got := detectIntentFor("Summarize this customer call transcript.")
	assert.Equal(t, model.REQSummarize, got.Token)
	assert.Equal(t, "summarize", got.TriggerWord)
}

func TestDetectIntent_VocabOnlyVerbsFoldToCanonicalActions(t *testing.T) {
	got := detectIntentFor("List five ways to reduce churn.")
	assert.Equal(t, model.REQGenerate, got.Token)

	got = detectIntentFor("Calculate the total cost of the order.")
	assert.Equal(t, model.REQAnalyze, got.Token)
}

func TestDetectIntent_DefaultsToAnalyze(t *testing.T) {
	got := detectIntentFor("Hmm interesting weather today.")
	assert.Equal(t, model.REQAnalyze, got.Token)
}

func TestDetectIntent_ModifierDeep(t *testing.T) {
	got := detectIntentFor("Take a deep look at this.")
	require.Equal(t, model.REQAnalyze, got.Token)
	assert.Equal(t, "DEEP", got.Modifier)
}

func TestDetectIntent_SpecFromKeywordTable(t *testing.T) {
	got := detectIntentFor("Please provide a summary of the situation.")
	assert.Equal(t, "SUMMARY", got.Spec)
}

func TestDetectIntent_UnmatchedVerbsCollected(t *testing.T) {
	got := detectIntentFor("Please finalize the report before tomorrow.")
	assert.Equal(t, model.REQGenerate, got.Token)
	assert.Contains(t, got.UnmatchedVerbs, "finalize")
}
