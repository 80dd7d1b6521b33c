package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clmhq/clm/lang/en"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc/heuristic"
)

func buildAnalyzedTurns(t *testing.T, text string) []*model.Turn {
	t.Helper()
	turns := ParseTurns(text)
	AnalyzeTurns(turns, en.NewVocabulary(), en.New(), heuristic.New())
	return turns
}

func TestAggregate_BillingIssue(t *testing.T) {
	text := "Customer: I was charged twice, my account number: ACC-9988. This is unacceptable.\n" +
		"Agent: Let me issue a refund right away.\n" +
		"Agent: The refund has been processed."
	turns := buildAnalyzedTurns(t, text)

	analysis := Aggregate(turns, en.New(), map[string]any{"channel": "CHAT"})

	require.Len(t, analysis.Issues, 1)
	assert.Equal(t, "BILLING_DISPUTE", analysis.Issues[0].Type)
	assert.Equal(t, "CHAT", analysis.Call.Channel)
	assert.Equal(t, "ACC-9988", analysis.Customer.Account)

	require.Len(t, analysis.Actions, 1)
	assert.Equal(t, "REFUND", analysis.Actions[0].Type)
	assert.Equal(t, model.ActionCompleted, analysis.Actions[0].Result)
}

func TestAggregate_NoCustomerTurnsYieldsNoIssues(t *testing.T) {
	turns := buildAnalyzedTurns(t, "Agent: Hello there.")
	analysis := Aggregate(turns, en.New(), nil)
	assert.Empty(t, analysis.Issues)
}

func TestAggregate_ResolutionFromRecentAgentTurns(t *testing.T) {
	text := "Customer: my internet keeps disconnecting.\n" +
		"Agent: Let's try resetting the router.\n" +
		"Agent: Great, everything is resolved now."
	turns := buildAnalyzedTurns(t, text)

	analysis := Aggregate(turns, en.New(), nil)

	assert.Equal(t, model.ResolutionResolved, analysis.Resolution.Type)
}

func TestAggregate_SentimentTrajectory(t *testing.T) {
	text := "Customer: I am furious about this charge.\n" +
		"Agent: I'm sorry to hear that.\n" +
		"Customer: Thank you for fixing it."
	turns := buildAnalyzedTurns(t, text)

	analysis := Aggregate(turns, en.New(), nil)

	assert.Equal(t, "ANGRY", analysis.SentimentTrajectory.Start)
	assert.Equal(t, "GRATEFUL", analysis.SentimentTrajectory.End)
}
