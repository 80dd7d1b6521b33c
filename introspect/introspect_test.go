package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutput(t *testing.T) {
	schema := Output()
	require.NotNil(t, schema)
	assert.Greater(t, schema.Properties.Len(), 0)
}

func TestIntent(t *testing.T) {
	schema := Intent()
	require.NotNil(t, schema)
	assert.Greater(t, schema.Properties.Len(), 0)
}

func TestTarget(t *testing.T) {
	schema := Target()
	require.NotNil(t, schema)
	assert.Greater(t, schema.Properties.Len(), 0)
}

func TestOutputSchema(t *testing.T) {
	schema := OutputSchema()
	require.NotNil(t, schema)
	assert.Greater(t, schema.Properties.Len(), 0)
}

func TestTranscriptAnalysis(t *testing.T) {
	schema := TranscriptAnalysis()
	require.NotNil(t, schema)
	assert.Greater(t, schema.Properties.Len(), 0)
}

func TestDescribe_ReflectsArbitraryTypes(t *testing.T) {
	schema := Describe(&struct{ Name string }{})
	require.NotNil(t, schema)
	assert.Greater(t, schema.Properties.Len(), 0)
}
