// internal/workers/listing/validate-listing-step/models.go
package validatelistingstep

import "property-workers/internal/common/validation"

type Input struct {
	FlowType string                 `json:"flowType"`
	Step     string                 `json:"step"`
	Data     map[string]interface{} `json:"data"`
}

type Output struct {
	Valid         bool                         `json:"valid"`
	Errors        []validation.ValidationError `json:"errors,omitempty"`
	MissingFields []string                     `json:"missingFields,omitempty"`
}
