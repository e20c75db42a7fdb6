// internal/workers/search/parse-search-filters/models.go
package parsesearchfilters

import "property-workers/internal/models"

// Filter mutation actions accepted from the process.
const (
	ActionUpdateFilter    = "updateFilter"
	ActionClearFilter     = "clearFilter"
	ActionClearAllFilters = "clearAllFilters"
)

// Filter field names as they appear in process variables.
const (
	FieldSearchQuery  = "searchQuery"
	FieldLocation     = "location"
	FieldActionType   = "actionType"
	FieldPropertyType = "propertyType"
	FieldSubType      = "subType"
	FieldBHK          = "bhk"
	FieldPriceRange   = "priceRange"
)

type Input struct {
	// CurrentFilters is nil on the first mutation of a session; defaults apply.
	CurrentFilters *models.FilterModel `json:"currentFilters"`
	Action         string              `json:"action"`
	Field          string              `json:"field"`
	Value          string              `json:"value"`
	IsCoworking    bool                `json:"isCoworking"`
}

type Output struct {
	Filters models.FilterModel `json:"filters"`
	IsEmpty bool               `json:"isEmpty"`

	// Derived UI state recomputed after every mutation.
	AvailablePropertyTypes []string          `json:"availablePropertyTypes"`
	AvailableSubtypes      map[string]string `json:"availableSubtypes"`
	ShowBHK                bool              `json:"showBHK"`

	// Six-char code detected in the query, "" when the query is free text.
	PropertyCode string `json:"propertyCode"`
}
