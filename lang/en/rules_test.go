package en

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_AudiencePatterns(t *testing.T) {
	r := New()

	found := false
	for _, lp := range r.Audience() {
		if lp.Pattern.MatchString("please write this for a technical audience") {
			assert.Equal(t, "BUSINESS", lp.Label)
			found = true
			break
		}
	}
	require.True(t, found, "expected an Audience pattern to match")
}

func TestRules_LengthPatterns(t *testing.T) {
	r := New()

	matched := false
	for _, lp := range r.Length() {
		if lp.Pattern.MatchString("keep it brief") {
			assert.Equal(t, "SHORT", lp.Label)
			matched = true
		}
	}
	assert.True(t, matched)
}

func TestRules_NumberWords(t *testing.T) {
	r := New()
	words := r.NumberWords()
	assert.Contains(t, words, "three")
	assert.Equal(t, 3, words["three"])
}

func TestRules_AddressAbbreviations(t *testing.T) {
	r := New()
	abbrev := r.AddressAbbreviations()
	assert.NotEmpty(t, abbrev)
}

func TestRules_EmotionKeywords(t *testing.T) {
	r := New()
	rules := r.EmotionKeywords()
	require.NotEmpty(t, rules)
	for _, er := range rules {
		assert.NotEmpty(t, er.Label)
		assert.NotEmpty(t, er.Keywords)
	}
}
