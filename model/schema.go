package model

import (
	"sort"
	"strings"
)

// FormatType is the closed set of output-schema encodings.
type FormatType string

const (
	FormatJSON       FormatType = "JSON"
	FormatList       FormatType = "LIST"
	FormatStructured FormatType = "STRUCTURED"
	FormatYAML       FormatType = "YAML"
)

// OutputField is one leaf or branch of an inferred output schema.
type OutputField struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Nested      []OutputField
}

// OutputSchema is the compact representation of an expected output
// structure.
type OutputSchema struct {
	FormatType FormatType
	Fields     []OutputField
	Attributes map[string]string
	RawSchema  string
	FormatHint string
}

// NewOutputSchema returns an OutputSchema with an initialized
// attribute map.
func NewOutputSchema(format FormatType) *OutputSchema {
	return &OutputSchema{
		FormatType: format,
		Attributes: map[string]string{},
	}
}

// BuildToken renders
// `[OUT_<FMT>:<schema>(:KEYS=...)?(:ENUMS=...)?(:SPECS=...)?(:<other>=...)*]`
// with attribute keys in the fixed order SCHEMA -> KEYS -> ENUMS ->
// SPECS -> remaining sorted.
func (o *OutputSchema) BuildToken() string {
	var b strings.Builder
	b.WriteString("[OUT_")
	b.WriteString(string(o.FormatType))
	if o.RawSchema != "" {
		b.WriteString(":")
		b.WriteString(o.RawSchema)
	}

	ordered := []string{"KEYS", "ENUMS", "SPECS"}
	seen := map[string]struct{}{}
	for _, key := range ordered {
		if v, ok := o.Attributes[key]; ok && v != "" {
			b.WriteString(":")
			b.WriteString(key)
			b.WriteString("=")
			b.WriteString(v)
			seen[key] = struct{}{}
		}
	}

	rest := make([]string, 0, len(o.Attributes))
	for k := range o.Attributes {
		if _, done := seen[k]; done {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		if o.Attributes[k] == "" {
			continue
		}
		b.WriteString(":")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(o.Attributes[k])
	}

	b.WriteString("]")
	return b.String()
}
