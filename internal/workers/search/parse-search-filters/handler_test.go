// internal/workers/search/parse-search-filters/handler_test.go
package parsesearchfilters

import (
	"context"
	"testing"

	"property-workers/internal/common/logger"
	"property-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return LoadConfig()
}

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_FirstMutationUsesDefaults(t *testing.T) {
	h := createTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Action: ActionUpdateFilter,
		Field:  FieldLocation,
		Value:  "gachibowli",
	})

	assert.NoError(t, err)
	assert.Equal(t, "gachibowli", output.Filters.SelectedLocation)
	assert.Equal(t, "any", output.Filters.ActionType)
	assert.False(t, output.IsEmpty)
}

func TestHandler_Execute_CarriesCurrentState(t *testing.T) {
	h := createTestHandler(t)
	current := models.DefaultFilters()
	current.ActionType = "rent"
	current.SelectedPropertyType = "residential"

	output, err := h.Execute(context.Background(), &Input{
		CurrentFilters: &current,
		Action:         ActionUpdateFilter,
		Field:          FieldBHK,
		Value:          "2bhk",
	})

	assert.NoError(t, err)
	assert.Equal(t, "2bhk", output.Filters.SelectedBHK)
	assert.Equal(t, "rent", output.Filters.ActionType)
	assert.True(t, output.ShowBHK)
	assert.Contains(t, output.AvailableSubtypes, "apartment")
	assert.NotContains(t, output.AvailablePropertyTypes, "land")
}

func TestHandler_Execute_ClearAllFilters(t *testing.T) {
	h := createTestHandler(t)
	current := models.DefaultFilters()
	current.SearchQuery = "hitech city"
	current.SelectedPropertyType = "commercial"

	output, err := h.Execute(context.Background(), &Input{
		CurrentFilters: &current,
		Action:         ActionClearAllFilters,
	})

	assert.NoError(t, err)
	assert.True(t, output.IsEmpty)
	assert.Equal(t, models.DefaultFilters(), output.Filters)
}

func TestHandler_Execute_DetectsPropertyCode(t *testing.T) {
	h := createTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Action: ActionUpdateFilter,
		Field:  FieldSearchQuery,
		Value:  "rx0ad8",
	})

	assert.NoError(t, err)
	assert.Equal(t, "RX0AD8", output.PropertyCode)
}

// ==========================
// Error Cases
// ==========================

func TestHandler_Execute_UnknownAction(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Action: "toggleFilter", Field: FieldBHK})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFilterFormat)
}

func TestHandler_Execute_UnknownField(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Action: ActionUpdateFilter, Field: "bathrooms"})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFilterFormat)
}
