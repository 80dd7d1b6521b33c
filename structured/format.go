package structured

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/clmhq/clm/envelope"
)

// formatValue renders a value per its runtime type. key and cfg are
// threaded through so nested dicts/lists can recurse
// with the same field-ordering and truncation rules, and so string
// truncation only applies to complex (non-simple) fields.
func formatValue(key string, v any, cfg envelope.StructuredDataConfig) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return formatString(key, val, cfg)
	case map[string]any:
		if !cfg.PreserveStructure {
			return formatString(key, cast.ToString(val), cfg)
		}
		return formatDict(val, cfg)
	case []map[string]any:
		if !cfg.PreserveStructure {
			return formatString(key, cast.ToString(val), cfg)
		}
		return formatDictSlice(val, cfg)
	case []any:
		if isDictSlice(val) {
			if !cfg.PreserveStructure {
				return formatString(key, cast.ToString(val), cfg)
			}
			dicts := make([]map[string]any, 0, len(val))
			for _, item := range val {
				if m, ok := item.(map[string]any); ok {
					dicts = append(dicts, m)
				}
			}
			return formatDictSlice(dicts, cfg)
		}
		return formatScalarSlice(val, cfg)
	default:
		return cast.ToString(val)
	}
}

func isDictSlice(items []any) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return false
		}
	}
	return true
}

func formatString(key, s string, cfg envelope.StructuredDataConfig) string {
	s = strings.ReplaceAll(s, delimiter(cfg), ";")
	if isComplexField(key, cfg) && cfg.MaxDescriptionLength > 0 && len(s) > cfg.MaxDescriptionLength {
		s = s[:cfg.MaxDescriptionLength] + "..."
	}
	return s
}

func formatScalarSlice(items []any, cfg envelope.StructuredDataConfig) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, formatValue("", item, cfg))
	}
	return strings.Join(parts, "+")
}

// formatDict renders a nested object as `{schema}[values]`, recursing
// through formatValue for each field.
func formatDict(m map[string]any, cfg envelope.StructuredDataConfig) string {
	keys := orderFields(filterFields(recordFields(m), m, cfg), cfg)
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, formatValue(k, m[k], cfg))
	}
	return "{" + strings.Join(keys, ",") + "}[" + strings.Join(values, delimiter(cfg)) + "]"
}

// formatDictSlice renders a list of objects as `|`-separated
// `{schema}[values]` rows.
func formatDictSlice(items []map[string]any, cfg envelope.StructuredDataConfig) string {
	rows := make([]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, formatDict(item, cfg))
	}
	return strings.Join(rows, "|")
}

func delimiter(cfg envelope.StructuredDataConfig) string {
	if cfg.Delimiter == "" {
		return ","
	}
	return cfg.Delimiter
}
