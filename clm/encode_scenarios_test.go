package clm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clmhq/clm/envelope"
)

func encodeText(t *testing.T, text string, opts ...Option) *envelope.CLMOutput {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	out, err := c.Encode(text, false, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

func TestEncode_ImperativeCodeAnalysis(t *testing.T) {
	out := encodeText(t, "Analyze this Python code for security issues")

	assert.Contains(t, out.Compressed, "[REQ:ANALYZE]")
	assert.Contains(t, out.Compressed, "[TARGET:CODE:LANG=PYTHON]")
}

func TestEncode_SummarizeTranscriptWithDuration(t *testing.T) {
	out := encodeText(t, "Summarize this 30-minute customer call transcript")

	assert.Contains(t, out.Compressed, "[REQ:SUMMARIZE]")
	assert.Contains(t, out.Compressed, "[TARGET:TRANSCRIPT:DURATION=30]")
}

const qaSchemaPrompt = "Review the call and return the QA evaluation as JSON:\n" +
	"```json\n" +
	`{"summary": "one paragraph", "qa_scores": {"verification": 0.85, "policy_adherence": 0.72}, "violations": "list any", "recommendations": "next steps"}` +
	"\n```\n" +
	"Scoring bands:\n" +
	"0.00-0.49: Fail\n" +
	"0.50-0.74: Needs Improvement\n"

func TestEncode_OutputSchemaPreservesFieldOrder(t *testing.T) {
	out := encodeText(t, qaSchemaPrompt)

	assert.Contains(t, out.Compressed,
		"[OUT_JSON:{summary,qa_scores:{verification,policy_adherence},violations,recommendations}")
	assert.Contains(t, out.Compressed, "ENUMS=")
	assert.Contains(t, out.Compressed, `"ranges":["0.00-0.49:Fail","0.50-0.74:Needs Improvement"]`)
}

func TestEncode_OutputSchemaWithTypeInference(t *testing.T) {
	cfg := envelope.DefaultPromptConfig()
	cfg.InferTypes = true

	out := encodeText(t, qaSchemaPrompt, WithPrompt(cfg))

	assert.Contains(t, out.Compressed, "summary:STR")
	assert.Contains(t, out.Compressed, "verification:FLOAT")
	assert.Contains(t, out.Compressed, "ENUMS=")
}

const billingDisputeTranscript = "Agent: Thank you for calling support, my name is Sarah. How can I help you today?\n" +
	"Customer: I'm furious, I was charged twice on my bill this month, there's a $29.99 charge I don't recognize.\n" +
	"Agent: I understand, let me look at the duplicate charge on your statement right away.\n" +
	"Customer: Yes, the second $29.99 charge on my statement needs to go.\n" +
	"Agent: I can confirm the double charge, I have issued a refund of $29.99 and it has been processed, reference REF-10293.\n" +
	"Customer: Thank you so much, I appreciate it.\n" +
	"Agent: The refund is processed and you're all set now."

func TestEncode_BillingDisputeDeduplicatesAmounts(t *testing.T) {
	out := encodeText(t, billingDisputeTranscript)

	require.Equal(t, envelope.ComponentTranscript, out.Component)
	assert.Contains(t, out.Compressed, "[ISSUE:BILLING_DISPUTE:AMOUNTS=$29.99")
	assert.NotContains(t, out.Compressed, "$29.99+$29.99")
	assert.Contains(t, out.Compressed, "[ACTION:REFUND")
	assert.Contains(t, out.Compressed, "RESULT=COMPLETED")
	assert.Contains(t, out.Compressed, "[RESOLUTION:RESOLVED")
	assert.Contains(t, out.Compressed, "[CALL:SUPPORT:AGENT=Sarah:DURATION=3m:CHANNEL=VOICE]")
}

func TestEncode_SentimentTrajectoryWithoutDuplicates(t *testing.T) {
	out := encodeText(t, billingDisputeTranscript)

	assert.Contains(t, out.Compressed, "[SENTIMENT:ANGRY→GRATEFUL]")
}

func TestEncode_StructuredDataExcludedFields(t *testing.T) {
	cfg := envelope.DefaultStructuredDataConfig()
	cfg.ExcludedFields = []string{"warehouse", "created_date"}

	c, err := New(WithStructured(cfg))
	require.NoError(t, err)

	input := []any{
		map[string]any{"id": "P1", "name": "Widget", "description": "Steel widget", "warehouse": "X", "created_date": "2024-01-01"},
		map[string]any{"id": "P2", "name": "Gadget", "description": "Brass gadget", "warehouse": "Y", "created_date": "2024-01-02"},
	}
	out, err := c.Encode(input, false, nil)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Contains(t, out.Compressed, "{id,name,description}")
	assert.Contains(t, out.Compressed, "[P1,Widget,Steel widget]")
	assert.Contains(t, out.Compressed, "[P2,Gadget,Brass gadget]")
	assert.NotContains(t, out.Compressed, "warehouse")
	assert.NotContains(t, out.Compressed, "X")
}

func TestEncode_CompressedNeverContainsWhitespaceRuns(t *testing.T) {
	for _, text := range []string{
		"Analyze this Python code for security issues",
		billingDisputeTranscript,
		qaSchemaPrompt,
	} {
		out := encodeText(t, text)
		assert.NotContains(t, out.Compressed, "\n")
		assert.NotContains(t, out.Compressed, "\t")
		assert.NotContains(t, out.Compressed, "  ")
	}
}

func TestEncode_PromptTokenHeadOrder(t *testing.T) {
	out := encodeText(t, qaSchemaPrompt)

	reqIdx := strings.Index(out.Compressed, "[REQ:")
	targetIdx := strings.Index(out.Compressed, "[TARGET:")
	outIdx := strings.Index(out.Compressed, "[OUT_")

	require.GreaterOrEqual(t, reqIdx, 0)
	require.Greater(t, targetIdx, reqIdx)
	require.Greater(t, outIdx, targetIdx)
}
