package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clmhq/clm/envelope"
)

func TestEncoder_Encode_SingleRecord(t *testing.T) {
	enc := NewEncoder(envelope.DefaultStructuredDataConfig())

	out, err := enc.Encode(map[string]any{
		"id":     "T-100",
		"status": "open",
		"notes":  "",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, envelope.ComponentStructuredData, out.Component)
	assert.Equal(t, true, out.Metadata["single_record"])
	assert.Equal(t, 1, out.Metadata["num_records"])
	assert.Contains(t, out.Compressed, "T-100")
	assert.Contains(t, out.Compressed, "open")
	// "notes" defaults to low importance, below the 0.5 threshold.
	assert.NotContains(t, out.Compressed, "notes")
}

func TestEncoder_Encode_MultipleRecords(t *testing.T) {
	enc := NewEncoder(envelope.DefaultStructuredDataConfig())

	out, err := enc.Encode([]map[string]any{
		{"id": "A", "status": "open"},
		{"id": "B", "status": "closed"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, false, out.Metadata["single_record"])
	assert.Equal(t, 2, out.Metadata["num_records"])
	assert.Contains(t, out.Compressed, "{id,status}")
}

func TestEncoder_Encode_NoRecords(t *testing.T) {
	enc := NewEncoder(envelope.DefaultStructuredDataConfig())

	_, err := enc.Encode([]map[string]any{}, nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = enc.Encode("not a record", nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestFilterFields(t *testing.T) {
	cfg := envelope.DefaultStructuredDataConfig()
	cfg.ExcludedFields = []string{"internal_notes"}
	cfg.RequiredFields = []string{"always_keep"}

	rec := map[string]any{
		"id":             "1",
		"internal_notes": "secret",
		"always_keep":    "",
		"name":           "widget",
	}
	kept := filterFields(recordFields(rec), rec, cfg)

	assert.Contains(t, kept, "id")
	assert.Contains(t, kept, "always_keep")
	assert.Contains(t, kept, "name")
	assert.NotContains(t, kept, "internal_notes")
}

func TestOrderFields(t *testing.T) {
	cfg := envelope.DefaultStructuredDataConfig()
	cfg.SimpleFields = []string{"id", "name"}
	cfg.DefaultFieldsOrder = []string{"name", "id"}

	ordered := orderFields([]string{"zeta", "id", "alpha", "name"}, cfg)

	assert.Equal(t, []string{"name", "id", "alpha", "zeta"}, ordered)
}

func TestFormatValue_Nested(t *testing.T) {
	cfg := envelope.DefaultStructuredDataConfig()
	cfg.SimpleFields = []string{"id"}

	got := formatValue("address", map[string]any{"id": "1"}, cfg)
	assert.Equal(t, "{id}[1]", got)
}

func TestFormatValue_TruncatesLongComplexStrings(t *testing.T) {
	cfg := envelope.DefaultStructuredDataConfig()
	cfg.SimpleFields = []string{"title"}
	cfg.MaxDescriptionLength = 5

	assert.Equal(t, "hi", formatValue("title", "hi", cfg))
	assert.Equal(t, "hello...", formatValue("description", "hello world", cfg))
}
