// internal/workers/search/parse-search-filters/filters.go
package parsesearchfilters

import "property-workers/internal/models"

// FilterEvent is a single mutation of the filter state.
type FilterEvent struct {
	Action string
	Field  string
	Value  string
}

// sellActions are the actions under which land listings are reachable.
var sellActions = map[string]bool{
	models.ActionBuy:  true,
	models.ActionSell: true,
}

// Apply is the pure state-transition function over the filter model.
// Subtype and BHK vocabularies are defined per property type, so any change
// of property type (direct, cleared, or forced by an action-type change)
// resets both dependent fields together.
func Apply(state models.FilterModel, ev FilterEvent) models.FilterModel {
	switch ev.Action {
	case ActionClearAllFilters:
		return models.DefaultFilters()

	case ActionClearFilter:
		switch ev.Field {
		case FieldSearchQuery:
			state.SearchQuery = ""
		case FieldLocation:
			state.SelectedLocation = "any"
		case FieldActionType:
			state.ActionType = "any"
		case FieldPropertyType:
			state.SelectedPropertyType = "any"
			state.SelectedSubType = "any"
			state.SelectedBHK = "any"
		case FieldSubType:
			state.SelectedSubType = "any"
		case FieldBHK:
			state.SelectedBHK = "any"
		case FieldPriceRange:
			state.SelectedPriceRange = "any"
		}
		return state

	case ActionUpdateFilter:
		switch ev.Field {
		case FieldSearchQuery:
			state.SearchQuery = ev.Value
		case FieldLocation:
			state.SelectedLocation = ev.Value
		case FieldActionType:
			state.ActionType = ev.Value
			// Land is only reachable from a sale action.
			if !sellActions[ev.Value] && state.SelectedPropertyType == models.PropertyTypeLand {
				state.SelectedPropertyType = "any"
				state.SelectedSubType = "any"
				state.SelectedBHK = "any"
			}
		case FieldPropertyType:
			state.SelectedPropertyType = ev.Value
			state.SelectedSubType = "any"
			state.SelectedBHK = "any"
		case FieldSubType:
			state.SelectedSubType = ev.Value
		case FieldBHK:
			state.SelectedBHK = ev.Value
		case FieldPriceRange:
			state.SelectedPriceRange = ev.Value
		}
		return state
	}

	return state
}

// AvailablePropertyTypes returns the property types selectable under the
// given action. Land is sale-only; PG hostels and flatmates are rent-only.
func AvailablePropertyTypes(actionType string) []string {
	switch actionType {
	case models.ActionBuy, models.ActionSell:
		return []string{
			models.PropertyTypeResidential,
			models.PropertyTypeCommercial,
			models.PropertyTypeLand,
		}
	case models.ActionRent:
		return []string{
			models.PropertyTypeResidential,
			models.PropertyTypeCommercial,
			models.PropertyTypePGHostel,
			models.PropertyTypeFlatmates,
		}
	default:
		return []string{
			models.PropertyTypeResidential,
			models.PropertyTypeCommercial,
			models.PropertyTypeLand,
			models.PropertyTypePGHostel,
			models.PropertyTypeFlatmates,
		}
	}
}

var residentialSubtypes = map[string]string{
	"apartment":         "Apartment",
	"independent_house": "Independent House",
	"villa":             "Villa",
	"penthouse":         "Penthouse",
	"studio_apartment":  "Studio Apartment",
	"service_apartment": "Service Apartment",
}

var commercialSubtypes = map[string]string{
	"office_space":        "Office Space",
	"shop":                "Shop",
	"showroom":            "Showroom",
	"godown_warehouse":    "Godown / Warehouse",
	"industrial_shed":     "Industrial Shed",
	"industrial_building": "Industrial Building",
}

var coworkingSubtypes = map[string]string{
	"private_office":  "Private Office",
	"dedicated_desk":  "Dedicated Desk",
	"hot_desk":        "Hot Desk",
	"meeting_room":    "Meeting Room",
	"conference_room": "Conference Room",
}

var landSubtypes = map[string]string{
	"residential_plot":  "Residential Plot",
	"commercial_plot":   "Commercial Plot",
	"agricultural_land": "Agricultural Land",
	"industrial_land":   "Industrial Land",
}

var pgHostelSubtypes = map[string]string{
	"single":       "Single Sharing",
	"double":       "Double Sharing",
	"triple":       "Triple Sharing",
	"four_sharing": "Four Sharing",
	"dormitory":    "Dormitory",
}

var flatmatesSubtypes = map[string]string{
	"single_room": "Single Room",
	"shared_room": "Shared Room",
	"studio":      "Studio",
}

// SubtypesForProperty returns the subtype vocabulary for a property type
// under the given action. An empty map means no subtype facet applies,
// either because no property type is selected or because the combination
// is invalid (e.g. land under rent). The coworking flag swaps the
// commercial vocabulary for the coworking one.
func SubtypesForProperty(propertyType, actionType string, isCoworking bool) map[string]string {
	if propertyType == "" || propertyType == "any" {
		return map[string]string{}
	}

	allowed := false
	for _, pt := range AvailablePropertyTypes(actionType) {
		if pt == propertyType {
			allowed = true
			break
		}
	}
	if !allowed {
		return map[string]string{}
	}

	switch propertyType {
	case models.PropertyTypeResidential:
		return residentialSubtypes
	case models.PropertyTypeCommercial:
		if isCoworking {
			return coworkingSubtypes
		}
		return commercialSubtypes
	case models.PropertyTypeLand:
		return landSubtypes
	case models.PropertyTypePGHostel:
		return pgHostelSubtypes
	case models.PropertyTypeFlatmates:
		return flatmatesSubtypes
	default:
		return map[string]string{}
	}
}

// ShouldShowBHK reports whether the BHK facet applies. Only plain
// residential qualifies, not the residential-adjacent PG or flatmate types.
func ShouldShowBHK(propertyType string) bool {
	return propertyType == models.PropertyTypeResidential
}
