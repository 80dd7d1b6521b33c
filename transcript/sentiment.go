package transcript

import (
	"strings"

	"github.com/clmhq/clm/lang"
	"github.com/clmhq/clm/model"
)

// AnalyzeSentiment scans EmotionRules in declaration order; the first
// keyword match wins. Absent any match, it returns NEUTRAL at
// intensity 0.5.
func AnalyzeSentiment(rules lang.Rules, text string) *model.Sentiment {
	tl := strings.ToLower(text)
	for _, rule := range rules.EmotionKeywords() {
		for _, kw := range rule.Keywords {
			if strings.Contains(tl, kw) {
				return &model.Sentiment{Label: rule.Label, Intensity: rule.Intensity}
			}
		}
	}
	return &model.Sentiment{Label: "NEUTRAL", Intensity: 0.5}
}
