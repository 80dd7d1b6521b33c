package clm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clmhq/clm/envelope"
)

func TestNew_DefaultsToEnglish(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestNew_UnsupportedLanguage(t *testing.T) {
	_, err := New(WithLang("klingon"))
	assert.ErrorIs(t, err, ErrUnsupportedLang)
}

func TestEncode_RoutesPromptText(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	out, err := c.Encode("Summarize this quarter's sales figures in three bullet points.", false, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, envelope.ComponentSystemPrompt, out.Component)
}

func TestEncode_RoutesTranscriptText(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	transcript := "Agent: Thanks for calling, how can I help?\nCustomer: My internet is down.\nAgent: Let me check that for you."
	out, err := c.Encode(transcript, false, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, envelope.ComponentTranscript, out.Component)
}

func TestEncode_RoutesStructuredData(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	out, err := c.Encode(map[string]any{"id": "1", "status": "open"}, false, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, envelope.ComponentStructuredData, out.Component)
}

func TestEncode_UnknownInputReturnsNilWithoutError(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	out, err := c.Encode(42, false, nil)
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestWithStructured_OverridesConfig(t *testing.T) {
	cfg := envelope.DefaultStructuredDataConfig()
	cfg.ExcludedFields = []string{"status"}

	c, err := New(WithStructured(cfg))
	require.NoError(t, err)

	out, err := c.Encode(map[string]any{"id": "1", "status": "open"}, false, nil)
	require.NoError(t, err)
	assert.NotContains(t, out.Compressed, "open")
}
