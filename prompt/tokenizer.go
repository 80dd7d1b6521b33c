package prompt

import (
	"sort"
	"strings"

	"github.com/clmhq/clm/model"
)

// Assemble serializes the prompt IR into the canonical bracket-token
// stream, in fixed order: REQ, TARGET, EXTRACT, CTX, OUT.
func Assemble(intent *model.Intent, target *model.Target, extraction *model.ExtractionField, contexts []model.Context, schema *model.OutputSchema) string {
	var parts []string

	if req := reqToken(intent, extraction); req != "" {
		parts = append(parts, req)
	}

	if target != nil {
		parts = append(parts, target.BuildToken())
	}

	embedded := intent != nil && intent.Token == model.REQExtract && extraction != nil && len(extraction.Fields) > 0
	if extraction != nil && len(extraction.Fields) > 0 && !embedded {
		parts = append(parts, extraction.BuildToken())
	}

	modifier := ""
	if intent != nil {
		modifier = intent.Modifier
	}
	for _, ctx := range contexts {
		if modifier != "" && strings.EqualFold(ctx.Value, modifier) {
			continue
		}
		parts = append(parts, ctx.BuildToken())
	}

	if schema != nil {
		parts = append(parts, schema.BuildToken())
	}

	return strings.Join(parts, " ")
}

// reqToken renders the REQ token, folding extraction fields directly
// into `[REQ:EXTRACT:...]` when the resolved intent is EXTRACT and
// fields were found, otherwise delegating to model.Intent.BuildToken.
func reqToken(intent *model.Intent, extraction *model.ExtractionField) string {
	if intent == nil {
		return ""
	}
	if intent.Token != model.REQExtract || extraction == nil || len(extraction.Fields) == 0 {
		return intent.BuildToken()
	}

	var b strings.Builder
	b.WriteString("[REQ:EXTRACT:")
	b.WriteString(strings.Join(extraction.Fields, ","))

	keys := make([]string, 0, len(extraction.Attributes))
	for k := range extraction.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(":")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(extraction.Attributes[k])
	}
	b.WriteString("]")
	return b.String()
}
