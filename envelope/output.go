// Package envelope defines CLMOutput, the output envelope every
// encoder returns, together with the compression-ratio accounting and
// expansion safeguard.
package envelope

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
)

// Component names an encoder's identity in the output envelope.
type Component string

const (
	ComponentStructuredData Component = "ds_compression"
	ComponentTranscript     Component = "TRANSCRIPT"
	ComponentSystemPrompt   Component = "SYSTEM_PROMPT"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CLMOutput is the envelope every encoder returns: the original input,
// which component produced it, the compressed token stream, and
// arbitrary metadata. NTokens, CTokens, and CompressionRatio are
// computed on demand rather than stored.
type CLMOutput struct {
	Original   any
	Component  Component
	Compressed string
	Metadata   map[string]any
}

// New builds a CLMOutput, applying whitespace normalization and the
// expansion safeguard before returning. original may be a string,
// map[string]any, or []any/[]map[string]any — anything JSON-encodable.
func New(original any, component Component, compressed string, metadata map[string]any) *CLMOutput {
	if metadata == nil {
		metadata = map[string]any{}
	}
	out := &CLMOutput{
		Original:   original,
		Component:  component,
		Compressed: normalizeWhitespace(compressed),
		Metadata:   metadata,
	}
	out.applyExpansionSafeguard()
	return out
}

// normalizeWhitespace collapses every run of whitespace (tabs,
// newlines, repeated spaces) to a single space and trims the ends.
func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// estimateTokens implements the `⌈len/4⌉` approximation used for the
// compression-ratio formula. Non-string values are serialized to JSON
// first.
func estimateTokens(data any) int {
	var text string
	if s, ok := data.(string); ok {
		text = s
	} else {
		b, err := json.Marshal(data)
		if err != nil {
			text = ""
		} else {
			text = string(b)
		}
	}
	return (len(text) + 3) / 4
}

// NTokens is the estimated input token count.
func (o *CLMOutput) NTokens() int {
	return estimateTokens(o.Original)
}

// CTokens is the estimated compressed token count.
func (o *CLMOutput) CTokens() int {
	return estimateTokens(o.Compressed)
}

// CompressionRatio is the percentage of tokens saved, rounded to one
// decimal place.
func (o *CLMOutput) CompressionRatio() float64 {
	n := o.NTokens()
	if n == 0 {
		return 0
	}
	ratio := (1 - float64(o.CTokens())/float64(n)) * 100
	return math.Round(ratio*10) / 10
}

// applyExpansionSafeguard swaps the compressed output for a serialized
// form of the original when compression expanded rather than shrank
// the input.
func (o *CLMOutput) applyExpansionSafeguard() {
	if o.CTokens() <= o.NTokens() {
		return
	}

	var serialized string
	if s, ok := o.Original.(string); ok {
		serialized = s
	} else if b, err := json.Marshal(o.Original); err == nil {
		serialized = string(b)
	}
	o.Compressed = normalizeWhitespace(serialized)
	o.Metadata["description"] = "CL Tokens greater than NL token. Keeping NL input"
}

// String renders a human-readable summary, implementing fmt.Stringer.
func (o *CLMOutput) String() string {
	return string(o.Component) + ": " + o.Compressed
}

// MarshalJSON emits the stored fields alongside the computed ones, so
// serialized output always carries n_tokens/c_tokens/compression_ratio
// without the caller recomputing them.
func (o *CLMOutput) MarshalJSON() ([]byte, error) {
	type alias struct {
		Original         any            `json:"original"`
		Component        Component      `json:"component"`
		Compressed       string         `json:"compressed"`
		Metadata         map[string]any `json:"metadata"`
		NTokens          int            `json:"n_tokens"`
		CTokens          int            `json:"c_tokens"`
		CompressionRatio float64        `json:"compression_ratio"`
	}
	return json.Marshal(alias{
		Original:         o.Original,
		Component:        o.Component,
		Compressed:       o.Compressed,
		Metadata:         o.Metadata,
		NTokens:          o.NTokens(),
		CTokens:          o.CTokens(),
		CompressionRatio: o.CompressionRatio(),
	})
}

// PreciseTokenCounts recomputes NTokens/CTokens using a caller-supplied
// Tokenizer instead of the char/4 approximation, for benchmarking or
// diagnostics. It never mutates the envelope or the formula used by
// CompressionRatio.
func (o *CLMOutput) PreciseTokenCounts(tokenizer interface{ Estimate(string) int }) (nTokens, cTokens int) {
	original := o.Compressed
	if s, ok := o.Original.(string); ok {
		original = s
	} else if b, err := json.Marshal(o.Original); err == nil {
		original = string(b)
	}
	return tokenizer.Estimate(original), tokenizer.Estimate(o.Compressed)
}
