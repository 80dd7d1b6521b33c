// Package transcript implements the conversational analyzer: it
// splits a raw transcript into speaker turns, derives per-turn
// intent/targets/sentiment/entities, aggregates them into call
// metadata, issues, an action chain, a resolution, and a sentiment
// trajectory, then serializes the result into the
// `[CALL][CUSTOMER][ID][CONTACT][ISSUE][ACTION][RESOLUTION][SENTIMENT]`
// token stream.
package transcript

import (
	"strings"

	"github.com/clmhq/clm/model"
)

var speakerNormalize = map[string]model.Speaker{
	"agent":    model.SpeakerAgent,
	"rep":      model.SpeakerAgent,
	"customer": model.SpeakerCustomer,
	"caller":   model.SpeakerCustomer,
	"user":     model.SpeakerCustomer,
	"system":   model.SpeakerSystem,
}

// ParseTurns splits on newlines, skips lines without a colon, splits
// once on the first colon, and normalizes the speaker label.
func ParseTurns(text string) []*model.Turn {
	var turns []*model.Turn
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		speakerRaw := strings.ToLower(strings.TrimSpace(line[:idx]))
		body := strings.TrimSpace(line[idx+1:])
		if body == "" {
			continue
		}
		speaker, ok := speakerNormalize[speakerRaw]
		if !ok {
			speaker = model.SpeakerSystem
		}
		turns = append(turns, &model.Turn{
			Speaker:  speaker,
			Text:     body,
			Entities: map[string][]string{},
		})
	}
	return turns
}
