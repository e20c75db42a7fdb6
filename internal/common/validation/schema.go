// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidationResult is the outcome of validating a document against a schema.
// MissingFields lists required properties absent from the document, a
// convenience for wizard UIs highlighting incomplete steps.
type ValidationResult struct {
	Valid         bool              `json:"valid"`
	Errors        []ValidationError `json:"errors,omitempty"`
	MissingFields []string          `json:"missingFields,omitempty"`
}

// ValidateAgainstSchema validates a document against a JSON Schema string.
// Schema errors (not document errors) are returned as a Go error.
func ValidateAgainstSchema(doc map[string]interface{}, schemaJSON string) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	docLoader := gojsonschema.NewGoLoader(doc)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	result := &ValidationResult{Valid: res.Valid()}
	for _, e := range res.Errors() {
		ve := ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		}
		if e.Type() == "required" {
			if prop, ok := e.Details()["property"].(string); ok {
				ve.Field = prop
				result.MissingFields = append(result.MissingFields, prop)
			}
		}
		result.Errors = append(result.Errors, ve)
	}

	return result, nil
}
