package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clmhq/clm/envelope"
	"github.com/clmhq/clm/lang/en"
	"github.com/clmhq/clm/nlpdoc/heuristic"
)

func TestEncoder_Encode(t *testing.T) {
	enc := NewEncoder(en.NewVocabulary(), en.New(), heuristic.New())

	text := "Customer: Hi, I'm calling because I noticed I was charged twice on my last statement, and honestly this is completely unacceptable at this point.\n" +
		"Agent: I'm really sorry to hear that happened to you, let me take a look at your account and issue a refund for the duplicate charge right away.\n" +
		"Agent: Good news, the refund has been processed successfully and you should see it reflected on your statement within a few business days."

	out := enc.Encode(text, map[string]any{"channel": "PHONE"})

	assert.Equal(t, envelope.ComponentTranscript, out.Component)
	assert.Contains(t, out.Compressed, "[CALL:")
	assert.Contains(t, out.Compressed, "[CUSTOMER")
	assert.Contains(t, out.Compressed, "[ISSUE:BILLING_DISPUTE")
	assert.Contains(t, out.Compressed, "[ACTION:REFUND")
	assert.Contains(t, out.Compressed, "[RESOLUTION:")
	assert.Equal(t, 3, out.Metadata["num_turns"])
	assert.Equal(t, 1, out.Metadata["num_issues"])
}

func TestAssemble_TokenOrder(t *testing.T) {
	enc := NewEncoder(en.NewVocabulary(), en.New(), heuristic.New())
	text := "Customer: Hi there, I wanted to follow up on something from earlier this week if you have a moment to help me out.\n" +
		"Agent: Of course, happy to help, go right ahead and tell me what's going on so I can take a look for you."
	out := enc.Encode(text, nil)

	callIdx := indexOf(out.Compressed, "[CALL:")
	customerIdx := indexOf(out.Compressed, "[CUSTOMER")
	resolutionIdx := indexOf(out.Compressed, "[RESOLUTION:")

	assert.Greater(t, customerIdx, callIdx)
	assert.Greater(t, resolutionIdx, customerIdx)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestCompressAddress(t *testing.T) {
	got := compressAddress("123 Main Street", en.New().AddressAbbreviations())
	assert.Equal(t, "123_Main_St", got)
}
