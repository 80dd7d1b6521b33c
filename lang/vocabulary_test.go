package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/lang/en"
)

func TestGetReqToken(t *testing.T) {
	v := en.NewVocabulary()

	assert.Equal(t, "SUMMARIZE", lang.GetReqToken(v, "summarize", ""))
	assert.Equal(t, "SUMMARIZE", lang.GetReqToken(v, "SUMMARIZE", ""))
	assert.Equal(t, "", lang.GetReqToken(v, "nonsense-verb", ""))
}

func TestGetReqToken_ContextFilterVetoesMatch(t *testing.T) {
	v := en.NewVocabulary()

	filters := v.ContextFilters()
	for verb, phrases := range filters {
		if len(phrases) == 0 {
			continue
		}
		assert.Equal(t, "", lang.GetReqToken(v, verb, phrases[0]))
		return
	}
}

func TestGetTargetToken(t *testing.T) {
	v := en.NewVocabulary()

	found := false
	for token, synonyms := range v.TargetTokens() {
		if len(synonyms) == 0 {
			continue
		}
		assert.Equal(t, token, lang.GetTargetToken(v, synonyms[0]))
		found = true
		break
	}
	assert.True(t, found, "expected at least one TARGET synonym to test against")

	assert.Equal(t, "", lang.GetTargetToken(v, "not-a-target-word"))
}

func TestGetOutputFormat(t *testing.T) {
	v := en.NewVocabulary()

	for format, triggers := range v.OutputFormats() {
		if len(triggers) == 0 {
			continue
		}
		assert.Equal(t, format, lang.GetOutputFormat(v, "please respond using "+triggers[0]))
		return
	}
}

func TestGetQuestionReq(t *testing.T) {
	v := en.NewVocabulary()

	assert.Equal(t, "QUERY", lang.GetQuestionReq(v, "What is the capital of France?"))
	assert.Equal(t, "", lang.GetQuestionReq(v, "Summarize this document."))
	assert.Equal(t, "", lang.GetQuestionReq(v, "What is the capital of France"))
}
