package widgetspec

import (
	"encoding/json"
	"fmt"
)

// ParseSpec decodes a raw JSON document and validates it as a widget spec.
// Malformed JSON is reported distinctly from schema errors, before schema
// validation runs. The spec pointer is nil whenever validation failed.
func ParseSpec(raw string) (*WidgetSpec, ValidationResult) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Path:    "",
				Message: "JSON parse error: " + err.Error(),
				Code:    CodeInvalidType,
			}},
		}
	}

	result := Validate(doc)
	if !result.Valid {
		return nil, result
	}

	var spec WidgetSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Path:    "",
				Message: "JSON parse error: " + err.Error(),
				Code:    CodeInvalidType,
			}},
		}
	}
	return &spec, result
}

// ExportSpec serializes a spec as indented JSON. Export then import must
// reproduce an equivalent, validator-accepting document.
func ExportSpec(spec *WidgetSpec) (string, error) {
	if spec == nil {
		return "", fmt.Errorf("widgetspec: cannot export nil spec")
	}
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("widgetspec: export spec: %w", err)
	}
	return string(data), nil
}
