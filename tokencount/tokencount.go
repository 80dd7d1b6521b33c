// Package tokencount provides token-count estimators for CLMOutput:
// the exact char/4 approximation envelope.CLMOutput's formula uses
// internally, and a tiktoken-backed Tokenizer callers can plug into
// CLMOutput.PreciseTokenCounts for a real encode-based count.
package tokencount

import "github.com/pkoukk/tiktoken-go"

// Tokenizer is the precise-count interface Tiktoken implements. Its
// Estimate method satisfies the single-method interface
// envelope.CLMOutput.PreciseTokenCounts accepts.
type Tokenizer interface {
	EncodingType() string
	Estimate(text string) int
	EstimateTokens(text string) (int, []int)
	EncodeTokens(text string) []int
	DecodeTokens(tokens []int) string
}

// EstimateChars implements the `⌈len/4⌉` approximation
// envelope.CLMOutput's compression-ratio formula uses.
func EstimateChars(text string) int {
	return (len(text) + 3) / 4
}

var _ Tokenizer = (*Tiktoken)(nil)

// Tiktoken wraps github.com/pkoukk/tiktoken-go for a precise,
// encode-based token count. It is never used for the
// compression-ratio formula itself — only exposed for a caller that
// wants a benchmarking-grade count via
// envelope.CLMOutput.PreciseTokenCounts.
type Tiktoken struct {
	encodingType string
	encoding     *tiktoken.Tiktoken
}

// NewTiktoken constructs a Tiktoken for the given encoding (e.g.
// "cl100k_base").
func NewTiktoken(encodingType string) (*Tiktoken, error) {
	encoding, err := tiktoken.GetEncoding(encodingType)
	if err != nil {
		return nil, err
	}
	return &Tiktoken{encodingType: encodingType, encoding: encoding}, nil
}

func (t *Tiktoken) EncodingType() string { return t.encodingType }

func (t *Tiktoken) Estimate(text string) int {
	return len(t.EncodeTokens(text))
}

func (t *Tiktoken) EstimateTokens(text string) (int, []int) {
	toks := t.EncodeTokens(text)
	return len(toks), toks
}

func (t *Tiktoken) EncodeTokens(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

func (t *Tiktoken) DecodeTokens(tokens []int) string {
	return t.encoding.Decode(tokens)
}
