package structured

import (
	"errors"
	"strings"

	"github.com/clmhq/clm/envelope"
)

// ErrNoRecords is returned by Encode when the input normalizes to an
// empty record set.
var ErrNoRecords = errors.New("structured: no records")

// Encoder is the structured-data encoder facade.
type Encoder struct {
	Config envelope.StructuredDataConfig
}

// NewEncoder constructs a structured Encoder from a configuration.
func NewEncoder(cfg envelope.StructuredDataConfig) *Encoder {
	return &Encoder{Config: cfg}
}

// Encode accepts a single record (map[string]any) or a record
// sequence ([]map[string]any or []any of maps) and returns the
// envelope the caller serializes or inspects.
func (e *Encoder) Encode(data any, metadata map[string]any) (*envelope.CLMOutput, error) {
	records, single, err := normalize(data)
	if err != nil {
		return nil, err
	}

	compressed := Assemble(records, single, e.Config)

	meta := map[string]any{}
	for k, v := range metadata {
		meta[k] = v
	}
	meta["num_records"] = len(records)
	meta["single_record"] = single

	out := envelope.New(data, envelope.ComponentStructuredData, compressed, meta)
	out.Metadata["compressed_length"] = len(out.Compressed)
	return out, nil
}

// normalize folds the closed InputKind union for structured data
// (map[string]any, []map[string]any, []any-of-maps) into a uniform
// record slice plus whether the caller passed a single record.
func normalize(data any) (records []map[string]any, single bool, err error) {
	switch v := data.(type) {
	case map[string]any:
		return []map[string]any{v}, true, nil
	case []map[string]any:
		if len(v) == 0 {
			return nil, false, ErrNoRecords
		}
		return v, false, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false, ErrNoRecords
			}
			out = append(out, m)
		}
		if len(out) == 0 {
			return nil, false, ErrNoRecords
		}
		return out, false, nil
	default:
		return nil, false, ErrNoRecords
	}
}

// Assemble renders a single `[…]` value row for one record, or one
// `{k1,k2,…}` header followed by one `[…]` per record for a sequence.
// Field selection (ordering plus filtering) is computed once from the
// first record and reused for every row, so every row shares one
// schema.
func Assemble(records []map[string]any, single bool, cfg envelope.StructuredDataConfig) string {
	if len(records) == 0 {
		return ""
	}

	fields := orderFields(filterFields(recordFields(records[0]), records[0], cfg), cfg)

	if single {
		return formatRow(records[0], fields, cfg)
	}

	var b strings.Builder
	b.WriteString("{")
	b.WriteString(strings.Join(fields, ","))
	b.WriteString("}")
	for _, rec := range records {
		b.WriteString(formatRow(rec, fields, cfg))
	}
	return b.String()
}

func formatRow(rec map[string]any, fields []string, cfg envelope.StructuredDataConfig) string {
	values := make([]string, 0, len(fields))
	for _, k := range fields {
		values = append(values, formatValue(k, rec[k], cfg))
	}
	return "[" + strings.Join(values, delimiter(cfg)) + "]"
}
