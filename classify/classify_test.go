package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Kind
	}{
		{
			name:  "single record map",
			input: map[string]any{"id": 1},
			want:  KindStructuredData,
		},
		{
			name:  "slice of maps",
			input: []map[string]any{{"id": 1}, {"id": 2}},
			want:  KindStructuredData,
		},
		{
			name:  "empty slice of maps",
			input: []map[string]any{},
			want:  KindUnknown,
		},
		{
			name:  "any slice of maps",
			input: []any{map[string]any{"id": 1}},
			want:  KindStructuredData,
		},
		{
			name:  "any slice of mixed types",
			input: []any{map[string]any{"id": 1}, "not a map"},
			want:  KindUnknown,
		},
		{
			name:  "empty any slice",
			input: []any{},
			want:  KindUnknown,
		},
		{
			name:  "transcript text with multiple speaker lines",
			input: "Agent: Hello, how can I help?\nCustomer: I have a billing issue.\nAgent: Let me check that.",
			want:  KindTranscript,
		},
		{
			name:  "prompt text with no speaker lines",
			input: "Summarize the quarterly report in three bullet points.",
			want:  KindPrompt,
		},
		{
			name:  "single speaker line is not a transcript",
			input: "Agent: just one line here",
			want:  KindPrompt,
		},
		{
			name:  "empty string",
			input: "",
			want:  KindUnknown,
		},
		{
			name:  "unsupported type",
			input: 42,
			want:  KindUnknown,
		},
		{
			name:  "nil input",
			input: nil,
			want:  KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestClassifyText_CaseInsensitiveSpeakerLabels(t *testing.T) {
	text := "CUSTOMER: my order is late\nrep: let me look into that for you"
	assert.Equal(t, KindTranscript, Classify(text))
}
