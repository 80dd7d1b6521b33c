package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clmhq/clm/model"
)

func TestParseTurns(t *testing.T) {
	text := "Agent: Hello, how can I help?\n" +
		"Customer: My order hasn't arrived yet.\n" +
		"\n" +
		"not a turn line\n" +
		"Rep: Let me check that for you.\n" +
		"caller: thanks"

	turns := ParseTurns(text)

	assert.Len(t, turns, 4)
	assert.Equal(t, model.SpeakerAgent, turns[0].Speaker)
	assert.Equal(t, "Hello, how can I help?", turns[0].Text)
	assert.Equal(t, model.SpeakerCustomer, turns[1].Speaker)
	assert.Equal(t, model.SpeakerAgent, turns[2].Speaker)
	assert.Equal(t, model.SpeakerCustomer, turns[3].Speaker)
}

func TestParseTurns_UnknownSpeakerDefaultsToSystem(t *testing.T) {
	turns := ParseTurns("ivr: please hold")
	assert.Len(t, turns, 1)
	assert.Equal(t, model.SpeakerSystem, turns[0].Speaker)
}

func TestParseTurns_SkipsEmptyBody(t *testing.T) {
	turns := ParseTurns("Agent:   \nCustomer: hello")
	assert.Len(t, turns, 1)
	assert.Equal(t, "hello", turns[0].Text)
}

func TestParseTurns_InitializesEntitiesMap(t *testing.T) {
	turns := ParseTurns("Agent: hi")
	assert.NotNil(t, turns[0].Entities)
}
