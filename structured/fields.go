// Package structured implements a schema-first structured-data
// encoder: field ordering, field filtering, value formatting, and the
// header+rows / single-record layout.
package structured

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/clmhq/clm/envelope"
)

// recordFields returns the keys of rec with no ordering guarantee
// (map iteration order); callers must run them through orderFields.
func recordFields(rec map[string]any) []string {
	return lo.Keys(rec)
}

// filterFields applies the field-filtering pipeline in order:
// excluded_fields drops a key outright; then required_fields always
// keeps it; then field_importance (explicit or auto-detected) is
// thresholded by importance_threshold.
func filterFields(keys []string, rec map[string]any, cfg envelope.StructuredDataConfig) []string {
	excluded := toSet(cfg.ExcludedFields)
	required := toSet(cfg.RequiredFields)

	return lo.Filter(keys, func(k string, _ int) bool {
		if _, drop := excluded[k]; drop {
			return false
		}
		if _, keep := required[k]; keep {
			return true
		}
		return importance(k, rec[k], cfg) >= cfg.ImportanceThreshold
	})
}

func toSet(items []string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// importance resolves a field's importance: an explicit
// field_importance entry wins; otherwise, when auto_detect is
// enabled, a known key name falls back to the configured
// default_fields_importance table, and an unknown one to
// substring/value heuristics; otherwise the field is always kept
// (importance 1).
func importance(key string, value any, cfg envelope.StructuredDataConfig) float64 {
	if v, ok := cfg.FieldImportance[key]; ok {
		return v
	}
	if !cfg.AutoDetect {
		return 1.0
	}
	if v, ok := cfg.DefaultFieldsImportance[key]; ok {
		return float64(v)
	}
	return float64(autoDetectImportance(key, value))
}

func autoDetectImportance(key string, value any) envelope.FieldImportance {
	lower := strings.ToLower(key)
	words := keyWords(key)

	if isEmptyValue(value) {
		return envelope.ImportanceNever
	}
	if strings.HasSuffix(lower, "_at") || strings.HasSuffix(lower, "_date") {
		return envelope.ImportanceNever
	}
	if strings.HasPrefix(key, "_") || containsAny(words, "internal") {
		return envelope.ImportanceLow
	}
	if containsAny(words, "id", "status") {
		return envelope.ImportanceCritical
	}
	if containsAny(words, "name", "title", "type", "category", "tags", "description", "priority", "severity", "resolution", "owner", "channel") {
		return envelope.ImportanceHigh
	}
	if s, ok := value.(string); ok {
		if len(s) > 500 {
			return envelope.ImportanceMedium
		}
		if len(s) < 3 {
			return envelope.ImportanceLow
		}
	}
	return envelope.ImportanceMedium
}

var reKeyWord = regexp.MustCompile(`[a-z]+|\d+`)

// keyWords splits a field key into its lowercase word tokens:
// "externalId" and "external_id" both yield {external, id}.
func keyWords(key string) map[string]struct{} {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	words := map[string]struct{}{}
	for _, w := range reKeyWord.FindAllString(strings.ToLower(b.String()), -1) {
		words[w] = struct{}{}
	}
	return words
}

// containsAny reports whether any of words' whole tokens match one of
// wanted, avoiding the false positives a raw substring match gives
// (e.g. "guidance" containing "id").
func containsAny(words map[string]struct{}, wanted ...string) bool {
	for _, w := range wanted {
		if _, ok := words[w]; ok {
			return true
		}
	}
	return false
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// orderFields sorts keys belonging to the configured simple_fields
// set by position in default_fields_order (unknowns at the end); the
// rest (complex fields) are concatenated afterward. Go map iteration
// does not preserve source key order, so complex fields are sorted
// lexicographically for determinism rather than approximating a
// "first-seen" order.
func orderFields(keys []string, cfg envelope.StructuredDataConfig) []string {
	simpleSet := toSet(cfg.SimpleFields)
	orderIndex := make(map[string]int, len(cfg.DefaultFieldsOrder))
	for i, k := range cfg.DefaultFieldsOrder {
		orderIndex[k] = i
	}

	var simple, complexFields []string
	for _, k := range keys {
		if _, ok := simpleSet[k]; ok {
			simple = append(simple, k)
		} else {
			complexFields = append(complexFields, k)
		}
	}

	sort.SliceStable(simple, func(i, j int) bool {
		oi, iok := orderIndex[simple[i]]
		oj, jok := orderIndex[simple[j]]
		if iok && jok {
			return oi < oj
		}
		if iok != jok {
			return iok
		}
		return simple[i] < simple[j]
	})
	sort.Strings(complexFields)

	return append(simple, complexFields...)
}

// isComplexField reports whether key is outside the configured
// simple_fields set, gating string-truncation in value formatting.
func isComplexField(key string, cfg envelope.StructuredDataConfig) bool {
	for _, s := range cfg.SimpleFields {
		if s == key {
			return false
		}
	}
	return true
}
