package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clmhq/clm/lang/en"
)

func TestAnalyzeSentiment_FirstMatchWins(t *testing.T) {
	rules := en.New()

	got := AnalyzeSentiment(rules, "This is completely unacceptable, I am furious!")
	assert.Equal(t, "ANGRY", got.Label)
	assert.Equal(t, 0.9, got.Intensity)
}

func TestAnalyzeSentiment_DefaultsToNeutral(t *testing.T) {
	rules := en.New()

	got := AnalyzeSentiment(rules, "My order number is 12345.")
	assert.Equal(t, "NEUTRAL", got.Label)
	assert.Equal(t, 0.5, got.Intensity)
}

func TestAnalyzeSentiment_Grateful(t *testing.T) {
	rules := en.New()

	got := AnalyzeSentiment(rules, "Thank you so much for your help!")
	assert.Equal(t, "GRATEFUL", got.Label)
}
