// internal/models/search.go
package models

// Action type values as they arrive from the search UI.
const (
	ActionAny  = "any"
	ActionBuy  = "buy"
	ActionSell = "sell"
	ActionRent = "rent"
)

// Property type values as they arrive from the search UI.
const (
	PropertyTypeAny         = "any"
	PropertyTypeResidential = "residential"
	PropertyTypeCommercial  = "commercial"
	PropertyTypeLand        = "land"
	PropertyTypePGHostel    = "pghostel"
	PropertyTypeFlatmates   = "flatmates"
)

// FilterModel is the canonical client-side search filter state. Every field
// is always present; "any" (or "" for the free-text fields) means unset.
type FilterModel struct {
	SearchQuery          string `json:"searchQuery"`
	SelectedLocation     string `json:"selectedLocation"`
	ActionType           string `json:"actionType"`
	SelectedPropertyType string `json:"selectedPropertyType"`
	SelectedSubType      string `json:"selectedSubType"`
	SelectedBHK          string `json:"selectedBHK"`
	SelectedPriceRange   string `json:"selectedPriceRange"`
}

// DefaultFilters returns a filter model with every facet unset.
func DefaultFilters() FilterModel {
	return FilterModel{
		SearchQuery:          "",
		SelectedLocation:     "any",
		ActionType:           "any",
		SelectedPropertyType: "any",
		SelectedSubType:      "any",
		SelectedBHK:          "any",
		SelectedPriceRange:   "any",
	}
}

// IsEmpty reports whether no facet and no query text is set.
func (f FilterModel) IsEmpty() bool {
	return f.SearchQuery == "" &&
		(f.SelectedLocation == "any" || f.SelectedLocation == "") &&
		(f.ActionType == "any" || f.ActionType == "") &&
		(f.SelectedPropertyType == "any" || f.SelectedPropertyType == "") &&
		(f.SelectedSubType == "any" || f.SelectedSubType == "") &&
		(f.SelectedBHK == "any" || f.SelectedBHK == "") &&
		(f.SelectedPriceRange == "any" || f.SelectedPriceRange == "")
}

// SearchOptions carries pagination and ordering preferences alongside the
// filter model. Zero values mean "use defaults".
type SearchOptions struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}
