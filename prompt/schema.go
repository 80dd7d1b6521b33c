package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/clmhq/clm/model"
)

// inferredType renders the STR/INT/FLOAT/BOOL/ANY leaf type set used
// for structured-path type inference.
func inferredType(v any) string {
	switch val := v.(type) {
	case string:
		return "STR"
	case bool:
		return "BOOL"
	case float64:
		if val == float64(int64(val)) {
			return "INT"
		}
		return "FLOAT"
	case nil:
		return "ANY"
	default:
		return "ANY"
	}
}

// BuildStructuredSchema renders the canonical schema string for a
// mapping value: nested dict structure with optional per-leaf types
// and array element types.
func BuildStructuredSchema(value map[string]any, inferTypes bool) string {
	keys := make([]string, 0, len(value))
	for k := range value {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, schemaField(k, value[k], inferTypes))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func schemaField(key string, v any, inferTypes bool) string {
	switch val := v.(type) {
	case map[string]any:
		return key + ":" + BuildStructuredSchema(val, inferTypes)
	case []any:
		if len(val) == 0 {
			return key + ":[]"
		}
		if obj, ok := val[0].(map[string]any); ok {
			return key + ":[" + BuildStructuredSchema(obj, inferTypes) + "]"
		}
		if inferTypes {
			return key + ":[" + inferredType(val[0]) + "]"
		}
		return key + ":[]"
	default:
		if inferTypes {
			return key + ":" + inferredType(v)
		}
		return key
	}
}

// orderedObject is a JSON object that remembers its source key order.
// encoding/json's map[string]any forgets it, and a schema block's
// field order is part of its meaning.
type orderedObject struct {
	keys   []string
	values map[string]any
}

var _ json.Unmarshaler = (*orderedObject)(nil)

// UnmarshalJSON decodes a JSON object, recording keys in source order;
// nested objects (including inside arrays) decode as *orderedObject.
func (o *orderedObject) UnmarshalJSON(data []byte) error {
	o.keys = nil
	o.values = map[string]any{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("prompt: expected a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("prompt: expected an object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if _, dup := o.values[key]; !dup {
			o.keys = append(o.keys, key)
		}
		o.values[key] = decodeOrderedValue(raw)
	}
	return nil
}

// decodeOrderedValue keeps objects ordered at every depth and leaves
// scalars to encoding/json's native decoding.
func decodeOrderedValue(raw json.RawMessage) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		nested := &orderedObject{}
		if err := json.Unmarshal(trimmed, nested); err == nil {
			return nested
		}
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			out := make([]any, 0, len(items))
			for _, item := range items {
				out = append(out, decodeOrderedValue(item))
			}
			return out
		}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// buildOrderedSchema renders the same canonical schema string as
// BuildStructuredSchema, but walks an orderedObject instead of a
// native map so that a JSON block's own field order survives into the
// schema string rather than being re-sorted alphabetically.
func buildOrderedSchema(value *orderedObject, inferTypes bool) string {
	parts := make([]string, 0, len(value.keys))
	for _, k := range value.keys {
		parts = append(parts, orderedSchemaField(k, value.values[k], inferTypes))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func orderedSchemaField(key string, v any, inferTypes bool) string {
	switch val := v.(type) {
	case *orderedObject:
		return key + ":" + buildOrderedSchema(val, inferTypes)
	case []any:
		if len(val) == 0 {
			return key + ":[]"
		}
		if obj, ok := val[0].(*orderedObject); ok {
			return key + ":[" + buildOrderedSchema(obj, inferTypes) + "]"
		}
		if inferTypes {
			return key + ":[" + inferredType(val[0]) + "]"
		}
		return key + ":[]"
	default:
		if inferTypes {
			return key + ":" + inferredType(v)
		}
		return key
	}
}

var (
	reRangeLine   = regexp.MustCompile(`(?m)^\s*([\d.]+)\s*[-–]\s*([\d.]+)\s*:\s*(.+?)\s*$`)
	reInlineEnum  = regexp.MustCompile(`(\w+)\(([^()]+\|[^()]+)\)`)
	reSpecsBlock  = regexp.MustCompile(`(?is)SPECS\s*=\s*(\{.*?\})`)
	reTypeRule    = regexp.MustCompile(`(?i)\b(\w+)\s+is\s+(float|int|integer|string|bool|boolean)\b`)
	reKeysList    = regexp.MustCompile(`(?i)(?:contain|include|have)(?: the following)? keys?:\s*(.+)`)
	reRequiredTag = regexp.MustCompile(`(?i)\b(\w+)\s+(required|optional)\b`)
)

// ExtractEnums extracts ENUMS candidates: numeric ranges, inline
// field(VAL1|VAL2) categoricals, and bullet blocks under an
// imperative/categorical header.
func ExtractEnums(text string) string {
	var ranges []string
	for _, m := range reRangeLine.FindAllStringSubmatch(text, -1) {
		ranges = append(ranges, m[1]+"-"+m[2]+":"+strings.TrimSpace(m[3]))
	}

	var categoricals []string
	for _, m := range reInlineEnum.FindAllStringSubmatch(text, -1) {
		values := strings.Split(m[2], "|")
		if len(values) >= 2 {
			categoricals = append(categoricals, m[1]+"="+strings.Join(trimAll(values), "|"))
		}
	}

	if len(ranges) == 0 && len(categoricals) == 0 {
		return ""
	}

	b, _ := json.Marshal(map[string][]string{"ranges": ranges, "categories": categoricals})
	return string(b)
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// ExtractSpecs extracts SPECS candidates: an explicit `SPECS={...}`
// block, or natural-language type/keys/required-optional heuristics.
func ExtractSpecs(text string) string {
	if m := reSpecsBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	rules := map[string]string{}
	for _, m := range reTypeRule.FindAllStringSubmatch(text, -1) {
		rules[strings.ToLower(m[1])] = strings.ToUpper(m[2])
	}
	if m := reKeysList.FindStringSubmatch(text); m != nil {
		for _, k := range strings.Split(m[1], ",") {
			k = strings.TrimSpace(strings.TrimRight(k, "."))
			if k != "" {
				rules[strings.ToLower(k)] = "ANY"
			}
		}
	}
	for _, m := range reRequiredTag.FindAllStringSubmatch(text, -1) {
		rules[strings.ToLower(m[1])] = strings.ToUpper(m[2])
	}
	if len(rules) == 0 {
		return ""
	}
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+rules[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}

var (
	reArrowBullet    = regexp.MustCompile(`(?m)^\s*(?:→|->)\s*`)
	reSmartQuote     = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`)
	reFencedJSON     = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	reBareJSON       = regexp.MustCompile(`(?s)\{.*\}`)
	reListOfObjects  = regexp.MustCompile(`(?i)\blist of (dicts|objects|maps)\b|\bwhere each\b`)
	reDictWord       = regexp.MustCompile(`(?i)\b(dictionary|object)\b`)
	reYAMLWord       = regexp.MustCompile(`(?i)\byaml\b`)
	reKeysFieldsWord = regexp.MustCompile(`(?i)\b(keys|fields)\s*:`)
	reEnumerationLine = regexp.MustCompile(`(?i)fields? (?:is|are):\s*(.+)`)
	reNestingWord    = regexp.MustCompile(`(?i)\b(nested|hierarch\w*|each item contains|each object contains)\b`)
)

func normalizeSchemaText(text string) string {
	text = reSmartQuote.Replace(text)
	text = strings.ReplaceAll(text, "—", "-")
	text = reArrowBullet.ReplaceAllString(text, "-> ")
	return text
}

// detectFormat picks an output format from free-text cues: list-of-
// objects, dict/object words, YAML, or a keys/fields header.
func detectFormat(text string) model.FormatType {
	switch {
	case reListOfObjects.MatchString(text):
		return model.FormatList
	case reDictWord.MatchString(text):
		return model.FormatJSON
	case reYAMLWord.MatchString(text):
		return model.FormatYAML
	case reKeysFieldsWord.MatchString(text):
		return model.FormatList
	default:
		return model.FormatStructured
	}
}

// The dash grammars require spaces around the dash so hyphenated
// words ("30-minute", "e-mail") never read as key-description pairs.
var fieldGrammars = []*regexp.Regexp{
	regexp.MustCompile(`^\s*"([^"]+)"\s*:\s*(.+)$`),
	regexp.MustCompile(`^\s*([\w ]+?)\s*->\s*(.+)$`),
	regexp.MustCompile(`^\s*-\s*([\w ]+?)\s+[—-]\s+(.+)$`),
	regexp.MustCompile(`^\s*([\w ]+?)\s*:\s*(.+)$`),
	regexp.MustCompile(`^\s*([\w ]+?)\s*\((.+)\)\s*$`),
	regexp.MustCompile(`^\s*([\w]+)\s*$`),
	regexp.MustCompile(`^\s*([\w ]+?)\s+-\s+(.+)$`),
}

func normalizeFieldKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
}

// extractFieldsFromLines runs enumeration expansion then
// grammar-priority field extraction over free text.
func extractFieldsFromLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if m := reEnumerationLine.FindStringSubmatch(line); m != nil {
			for _, item := range splitRespectingQuotes(m[1]) {
				lines = append(lines, item)
			}
			continue
		}
		lines = append(lines, line)
	}

	seen := map[string]struct{}{}
	var fields []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if trimmed == "" {
			continue
		}
		for _, re := range fieldGrammars {
			m := re.FindStringSubmatch(trimmed)
			if m == nil {
				continue
			}
			key := normalizeFieldKey(m[1])
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				break
			}
			seen[key] = struct{}{}
			fields = append(fields, key)
			break
		}
	}
	return fields
}

func splitRespectingQuotes(s string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, strings.TrimSpace(cur.String()))
	}
	return out
}

// AnalyzeOutputSchema resolves an output schema end to end: the
// structured path for a mapping, the natural-language path for free
// text. inferTypes and addAttrs mirror PromptConfig's like-named
// fields.
func AnalyzeOutputSchema(input any, text string, inferTypes, addAttrs bool) *model.OutputSchema {
	if m, ok := input.(map[string]any); ok {
		schema := model.NewOutputSchema(model.FormatJSON)
		schema.RawSchema = BuildStructuredSchema(m, inferTypes)
		if addAttrs {
			enhanceSchemaAttrs(schema, text, addAttrs)
		}
		return schema
	}

	normalized := normalizeSchemaText(text)

	if m := reFencedJSON.FindStringSubmatch(normalized); m != nil {
		if obj := tryParseOrderedJSON(m[1]); obj != nil {
			schema := model.NewOutputSchema(model.FormatJSON)
			schema.RawSchema = buildOrderedSchema(obj, inferTypes)
			if addAttrs {
				enhanceSchemaAttrs(schema, text, addAttrs)
			}
			return schema
		}
	}
	if m := reBareJSON.FindString(normalized); m != "" {
		if obj := tryParseOrderedJSON(m); obj != nil {
			schema := model.NewOutputSchema(model.FormatJSON)
			schema.RawSchema = buildOrderedSchema(obj, inferTypes)
			if addAttrs {
				enhanceSchemaAttrs(schema, text, addAttrs)
			}
			return schema
		}
	}

	format := detectFormat(normalized)
	fields := extractFieldsFromLines(normalized)
	schema := model.NewOutputSchema(format)
	if len(fields) > 0 {
		schema.RawSchema = "{" + strings.Join(fields, ",") + "}"
		schema.Attributes["KEYS"] = strings.Join(fields, "+")
	}
	if reNestingWord.MatchString(normalized) {
		schema.Attributes["NESTED"] = "true"
	}
	if addAttrs {
		enhanceSchemaAttrs(schema, text, addAttrs)
	}
	// A prompt with no schema cue at all resolves to no OUT token, not
	// an empty STRUCTURED one.
	if schema.FormatType == model.FormatStructured && schema.RawSchema == "" && len(schema.Attributes) == 0 {
		return nil
	}
	return schema
}

func enhanceSchemaAttrs(schema *model.OutputSchema, text string, addAttrs bool) {
	if !addAttrs {
		return
	}
	if enums := ExtractEnums(text); enums != "" {
		schema.Attributes["ENUMS"] = enums
	}
	if specs := ExtractSpecs(text); specs != "" {
		schema.Attributes["SPECS"] = specs
	}
}

// tryParseOrderedJSON parses a JSON object preserving its source key
// order. A JSON-looking block that fails to parse degrades to the
// natural-language path rather than failing the encode.
func tryParseOrderedJSON(s string) *orderedObject {
	out := &orderedObject{}
	if err := json.Unmarshal([]byte(s), out); err != nil {
		return nil
	}
	return out
}
