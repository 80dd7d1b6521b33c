package tokencount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateChars(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty string", text: "", want: 0},
		{name: "short string rounds up", text: "hi", want: 1},
		{name: "exact multiple of four", text: "12345678", want: 2},
		{name: "partial chunk rounds up", text: "123456789", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateChars(tt.text))
		})
	}
}

// TestTiktoken exercises the real cl100k_base BPE ranks, which
// tiktoken-go fetches on first use; skip rather than fail when no
// cache or network access is available in the test environment.
func TestTiktoken(t *testing.T) {
	tok, err := NewTiktoken("cl100k_base")
	if err != nil {
		t.Skipf("cl100k_base encoding unavailable: %v", err)
	}

	assert.Equal(t, "cl100k_base", tok.EncodingType())

	text := "hello world"
	ids := tok.EncodeTokens(text)
	assert.NotEmpty(t, ids)
	assert.Equal(t, text, tok.DecodeTokens(ids))

	n, toks := tok.EstimateTokens(text)
	assert.Equal(t, len(toks), n)
	assert.Equal(t, len(ids), tok.Estimate(text))
}
