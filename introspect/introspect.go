// Package introspect generates JSON Schema descriptions of the
// envelope and intermediate-representation types, for callers (docs
// generators, client SDKs, validators) that want a machine-readable
// description of the shapes an Encoder produces without hand-writing
// one.
package introspect

import (
	"github.com/invopop/jsonschema"

	"github.com/clmhq/clm/envelope"
	"github.com/clmhq/clm/model"
)

// reflector is shared across Describe calls: every call reflects a
// type independent of any other, so one immutable Reflector suffices.
var reflector = &jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
}

// Describe reflects v's Go type into a JSON Schema document. v is
// typically a pointer to a zero value of the type being described
// (e.g. (*envelope.CLMOutput)(nil)).
func Describe(v any) *jsonschema.Schema {
	return reflector.Reflect(v)
}

// Output returns the JSON Schema for the output envelope every
// encoder returns.
func Output() *jsonschema.Schema {
	return Describe(&envelope.CLMOutput{})
}

// Intent returns the JSON Schema for the prompt encoder's intent IR.
func Intent() *jsonschema.Schema {
	return Describe(&model.Intent{})
}

// Target returns the JSON Schema for the prompt/transcript target IR.
func Target() *jsonschema.Schema {
	return Describe(&model.Target{})
}

// OutputSchema returns the JSON Schema for the prompt encoder's
// inferred output-format IR.
func OutputSchema() *jsonschema.Schema {
	// OutputField nests itself (Nested []OutputField), which the shared
	// DoNotReference reflector would inline without end; this schema
	// keeps $ref definitions and expands only the root struct.
	r := &jsonschema.Reflector{AllowAdditionalProperties: false, ExpandedStruct: true}
	return r.Reflect(&model.OutputSchema{})
}

// TranscriptAnalysis returns the JSON Schema for the transcript
// encoder's aggregated analysis IR.
func TranscriptAnalysis() *jsonschema.Schema {
	return Describe(&model.TranscriptAnalysis{})
}
