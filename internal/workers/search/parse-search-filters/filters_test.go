// internal/workers/search/parse-search-filters/filters_test.go
package parsesearchfilters

import (
	"testing"

	"property-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func filtersWith(mutate func(f *models.FilterModel)) models.FilterModel {
	f := models.DefaultFilters()
	mutate(&f)
	return f
}

// ==========================
// Apply: reset rules
// ==========================

func TestApplyPropertyTypeChangeResetsDependents(t *testing.T) {
	states := []models.FilterModel{
		models.DefaultFilters(),
		filtersWith(func(f *models.FilterModel) {
			f.SelectedPropertyType = "residential"
			f.SelectedSubType = "villa"
			f.SelectedBHK = "3bhk"
		}),
		filtersWith(func(f *models.FilterModel) {
			f.SelectedPropertyType = "commercial"
			f.SelectedSubType = "shop"
			f.SelectedPriceRange = "1cr-2cr"
		}),
	}

	for _, state := range states {
		next := Apply(state, FilterEvent{Action: ActionUpdateFilter, Field: FieldPropertyType, Value: "commercial"})
		assert.Equal(t, "commercial", next.SelectedPropertyType)
		assert.Equal(t, "any", next.SelectedSubType)
		assert.Equal(t, "any", next.SelectedBHK)

		// Applying the same change twice yields the same state.
		again := Apply(next, FilterEvent{Action: ActionUpdateFilter, Field: FieldPropertyType, Value: "commercial"})
		assert.Equal(t, next, again)
	}
}

func TestApplyActionTypeToRentClearsLand(t *testing.T) {
	state := filtersWith(func(f *models.FilterModel) {
		f.ActionType = "buy"
		f.SelectedPropertyType = "land"
		f.SelectedSubType = "residential_plot"
	})

	next := Apply(state, FilterEvent{Action: ActionUpdateFilter, Field: FieldActionType, Value: "rent"})

	assert.Equal(t, "rent", next.ActionType)
	assert.Equal(t, "any", next.SelectedPropertyType)
	assert.Equal(t, "any", next.SelectedSubType)
	assert.Equal(t, "any", next.SelectedBHK)
}

func TestApplyActionTypeToBuyKeepsLand(t *testing.T) {
	state := filtersWith(func(f *models.FilterModel) {
		f.ActionType = "any"
		f.SelectedPropertyType = "land"
		f.SelectedSubType = "commercial_plot"
	})

	next := Apply(state, FilterEvent{Action: ActionUpdateFilter, Field: FieldActionType, Value: "buy"})

	assert.Equal(t, "buy", next.ActionType)
	assert.Equal(t, "land", next.SelectedPropertyType)
	assert.Equal(t, "commercial_plot", next.SelectedSubType)
}

func TestApplyActionTypeChangeKeepsNonLandSelection(t *testing.T) {
	state := filtersWith(func(f *models.FilterModel) {
		f.ActionType = "buy"
		f.SelectedPropertyType = "residential"
		f.SelectedSubType = "villa"
		f.SelectedBHK = "2bhk"
	})

	next := Apply(state, FilterEvent{Action: ActionUpdateFilter, Field: FieldActionType, Value: "rent"})

	assert.Equal(t, "residential", next.SelectedPropertyType)
	assert.Equal(t, "villa", next.SelectedSubType)
	assert.Equal(t, "2bhk", next.SelectedBHK)
}

func TestApplyClearPropertyTypeResetsAllThree(t *testing.T) {
	state := filtersWith(func(f *models.FilterModel) {
		f.SelectedPropertyType = "residential"
		f.SelectedSubType = "penthouse"
		f.SelectedBHK = "4bhk"
		f.SelectedPriceRange = "2cr-3cr"
	})

	next := Apply(state, FilterEvent{Action: ActionClearFilter, Field: FieldPropertyType})

	assert.Equal(t, "any", next.SelectedPropertyType)
	assert.Equal(t, "any", next.SelectedSubType)
	assert.Equal(t, "any", next.SelectedBHK)
	// Unrelated facets are untouched.
	assert.Equal(t, "2cr-3cr", next.SelectedPriceRange)
}

func TestApplyClearAllFilters(t *testing.T) {
	state := filtersWith(func(f *models.FilterModel) {
		f.SearchQuery = "gachibowli"
		f.SelectedLocation = "gachibowli"
		f.ActionType = "rent"
		f.SelectedPropertyType = "residential"
		f.SelectedSubType = "apartment"
		f.SelectedBHK = "2bhk"
		f.SelectedPriceRange = "under-10l"
	})

	next := Apply(state, FilterEvent{Action: ActionClearAllFilters})

	assert.Equal(t, models.DefaultFilters(), next)
	assert.True(t, next.IsEmpty())
}

// ==========================
// Property type availability
// ==========================

func TestAvailablePropertyTypes(t *testing.T) {
	tests := []struct {
		action   string
		included []string
		excluded []string
	}{
		{"buy", []string{"residential", "commercial", "land"}, []string{"pghostel", "flatmates"}},
		{"rent", []string{"residential", "commercial", "pghostel", "flatmates"}, []string{"land"}},
		{"any", []string{"residential", "commercial", "land", "pghostel", "flatmates"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			types := AvailablePropertyTypes(tt.action)
			for _, want := range tt.included {
				assert.Contains(t, types, want)
			}
			for _, not := range tt.excluded {
				assert.NotContains(t, types, not)
			}
		})
	}
}

// ==========================
// Subtype vocabularies
// ==========================

func TestSubtypesForProperty(t *testing.T) {
	assert.Empty(t, SubtypesForProperty("any", "any", false))
	assert.Empty(t, SubtypesForProperty("", "buy", false))

	// Invalid combination: land is not reachable under rent.
	assert.Empty(t, SubtypesForProperty("land", "rent", false))

	assert.Contains(t, SubtypesForProperty("residential", "rent", false), "apartment")
	assert.Contains(t, SubtypesForProperty("land", "buy", false), "agricultural_land")

	// Coworking flag swaps the commercial vocabulary.
	commercial := SubtypesForProperty("commercial", "rent", false)
	coworking := SubtypesForProperty("commercial", "rent", true)
	assert.Contains(t, commercial, "shop")
	assert.NotContains(t, coworking, "shop")
	assert.Contains(t, coworking, "hot_desk")
}

func TestShouldShowBHK(t *testing.T) {
	assert.True(t, ShouldShowBHK("residential"))
	assert.False(t, ShouldShowBHK("pghostel"))
	assert.False(t, ShouldShowBHK("flatmates"))
	assert.False(t, ShouldShowBHK("commercial"))
	assert.False(t, ShouldShowBHK("any"))
}
