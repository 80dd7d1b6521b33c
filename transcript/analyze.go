package transcript

import (
	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/model"
	"github.com/clmhq/clm/nlpdoc"
	"github.com/clmhq/clm/prompt"
)

// AnalyzeTurns populates each turn's Intent, Targets, Sentiment, and
// Entities in place, reusing the prompt encoder's intent detector for
// each turn's primary intent and the prompt target extractor for each
// turn's target.
func AnalyzeTurns(turns []*model.Turn, v lang.Vocabulary, rules lang.Rules, provider nlpdoc.Provider) {
	for _, t := range turns {
		doc := provider.Parse(t.Text)
		intent := prompt.DetectIntent(v, doc, t.Text)
		target := prompt.ExtractTarget(v, rules, doc, t.Text, intent.Token)
		target = prompt.EnhanceTarget(v, rules, doc, t.Text, target)

		t.Intent = intent
		if target != nil {
			t.Targets = []*model.Target{target}
		}
		t.Sentiment = AnalyzeSentiment(rules, t.Text)
		t.Entities = ExtractEntities(doc, t.Text)
	}
}
