package envelope

// FieldImportance is the five-level ordinal the structured-data
// encoder uses to decide field inclusion.
type FieldImportance float64

const (
	ImportanceCritical FieldImportance = 1.0
	ImportanceHigh     FieldImportance = 0.8
	ImportanceMedium   FieldImportance = 0.5
	ImportanceLow      FieldImportance = 0.2
	ImportanceNever    FieldImportance = 0.0
)

// StructuredDataConfig configures the structured-data encoder.
type StructuredDataConfig struct {
	RequiredFields          []string
	ExcludedFields          []string
	FieldImportance         map[string]float64
	ImportanceThreshold     float64
	AutoDetect              bool
	MaxDescriptionLength    int
	PreserveStructure       bool
	SimpleFields            []string
	DefaultFieldsOrder      []string
	DefaultFieldsImportance map[string]FieldImportance
	Delimiter               string
}

// DefaultStructuredDataConfig returns the structured-data encoder's
// default configuration.
func DefaultStructuredDataConfig() StructuredDataConfig {
	return StructuredDataConfig{
		ImportanceThreshold:  0.5,
		AutoDetect:           true,
		MaxDescriptionLength: 200,
		PreserveStructure:    true,
		Delimiter:            ",",
		SimpleFields: []string{
			"id", "uuid", "title", "name", "type", "priority",
			"article_id", "product_id",
		},
		DefaultFieldsOrder: []string{
			"id", "uuid", "priority", "article_id", "product_id",
			"title", "name", "type",
		},
		DefaultFieldsImportance: map[string]FieldImportance{
			"id":          ImportanceCritical,
			"uuid":        ImportanceCritical,
			"external_id": ImportanceCritical,
			"name":        ImportanceHigh,
			"title":       ImportanceHigh,
			"type":        ImportanceHigh,
			"category":    ImportanceHigh,
			"subcategory": ImportanceMedium,
			"tags":        ImportanceHigh,
			"description": ImportanceHigh,
			"details":     ImportanceMedium,
			"notes":       ImportanceLow,
			"status":      ImportanceCritical,
			"priority":    ImportanceHigh,
			"severity":    ImportanceHigh,
			"resolution":  ImportanceHigh,
			"owner":       ImportanceHigh,
			"assignee":    ImportanceMedium,
			"department":  ImportanceMedium,
			"channel":     ImportanceHigh,
			"language":    ImportanceMedium,
			"source":      ImportanceLow,
			"metadata":    ImportanceLow,
			"created_at":  ImportanceLow,
			"updated_at":  ImportanceLow,
			"version":     ImportanceLow,
		},
	}
}

// PromptConfig configures the prompt (system prompt) encoder.
type PromptConfig struct {
	Lang        string
	InferTypes  bool
	AddAttrs    bool
	AddExamples bool
}

// DefaultPromptConfig returns the prompt encoder's default
// configuration.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		Lang:     "en",
		AddAttrs: true,
	}
}
