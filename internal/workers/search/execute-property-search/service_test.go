// internal/workers/search/execute-property-search/service_test.go
package executepropertysearch

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"testing"
	"time"

	"property-workers/internal/common/logger"
	"property-workers/internal/models"
	"property-workers/internal/store"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeStore lets each test script the backend per query type.
type fakeStore struct {
	residentialFn func(store.ResidentialSearchParams) ([]models.PropertyRow, error)
	commercialFn  func(store.CommercialSearchParams) ([]models.PropertyRow, error)
	landFn        func(store.LandSearchParams) ([]models.PropertyRow, error)
	byCodeFn      func(code string) ([]models.PropertyRow, error)
	latestFn      func(limit, offset int) ([]models.PropertyRow, error)

	residentialCalls int
	commercialCalls  int
	landCalls        int
	byCodeCalls      int
	latestCalls      int
}

func (f *fakeStore) SearchResidential(_ context.Context, p store.ResidentialSearchParams) ([]models.PropertyRow, error) {
	f.residentialCalls++
	if f.residentialFn == nil {
		return nil, nil
	}
	return f.residentialFn(p)
}

func (f *fakeStore) SearchCommercial(_ context.Context, p store.CommercialSearchParams) ([]models.PropertyRow, error) {
	f.commercialCalls++
	if f.commercialFn == nil {
		return nil, nil
	}
	return f.commercialFn(p)
}

func (f *fakeStore) SearchLand(_ context.Context, p store.LandSearchParams) ([]models.PropertyRow, error) {
	f.landCalls++
	if f.landFn == nil {
		return nil, nil
	}
	return f.landFn(p)
}

func (f *fakeStore) SearchByCode(_ context.Context, code string) ([]models.PropertyRow, error) {
	f.byCodeCalls++
	if f.byCodeFn == nil {
		return nil, nil
	}
	return f.byCodeFn(code)
}

func (f *fakeStore) GetLatest(_ context.Context, limit, offset int) ([]models.PropertyRow, error) {
	f.latestCalls++
	if f.latestFn == nil {
		return nil, nil
	}
	return f.latestFn(limit, offset)
}

func createTestHandler(t *testing.T, st PropertyStore) *Handler {
	return NewHandler(LoadConfig(), st, rand.New(rand.NewSource(1)), logger.NewTestLogger(t))
}

func rowAt(id, flowType string, created time.Time, total int64) models.PropertyRow {
	return models.PropertyRow{
		ID:         id,
		OwnerID:    "owner-1",
		Title:      "Listing " + id,
		FlowType:   flowType,
		Status:     "active",
		CreatedAt:  created,
		UpdatedAt:  created,
		TotalCount: total,
		City:       sql.NullString{String: "Kondapur", Valid: true},
		State:      sql.NullString{String: "Telangana", Valid: true},
	}
}

// ==========================
// Dispatch branches
// ==========================

func TestHandler_Execute_EmptySearchUsesLatest(t *testing.T) {
	st := &fakeStore{
		latestFn: func(limit, offset int) ([]models.PropertyRow, error) {
			assert.Equal(t, 50, limit)
			return []models.PropertyRow{rowAt("p1", "residential_rent", time.Now(), 7)}, nil
		},
	}
	h := createTestHandler(t, st)

	output, err := h.Execute(context.Background(), &Input{Filters: models.DefaultFilters()})

	assert.NoError(t, err)
	assert.Equal(t, 1, st.latestCalls)
	assert.Zero(t, st.residentialCalls)
	assert.Zero(t, st.commercialCalls)
	assert.Zero(t, st.landCalls)
	assert.Zero(t, st.byCodeCalls)
	assert.Equal(t, int64(7), output.TotalCount)
	assert.Len(t, output.Results, 1)
}

func TestHandler_Execute_CodeLookupShortCircuits(t *testing.T) {
	st := &fakeStore{
		byCodeFn: func(code string) ([]models.PropertyRow, error) {
			assert.Equal(t, "AB12XY", code)
			return []models.PropertyRow{rowAt("p1", "residential_sale", time.Now(), 1)}, nil
		},
	}
	h := createTestHandler(t, st)

	filters := models.DefaultFilters()
	filters.SearchQuery = " AB12XY "
	filters.SelectedPropertyType = "commercial"

	output, err := h.Execute(context.Background(), &Input{Filters: filters})

	assert.NoError(t, err)
	assert.Equal(t, 1, st.byCodeCalls)
	assert.Zero(t, st.commercialCalls)
	assert.Equal(t, int64(1), output.TotalCount)
	assert.Equal(t, "buy", output.Results[0].TransactionType)
}

func TestHandler_Execute_CodeMissFallsBackToLatest(t *testing.T) {
	st := &fakeStore{
		byCodeFn: func(code string) ([]models.PropertyRow, error) {
			return nil, nil
		},
		latestFn: func(limit, offset int) ([]models.PropertyRow, error) {
			return []models.PropertyRow{rowAt("p9", "residential_rent", time.Now(), 3)}, nil
		},
	}
	h := createTestHandler(t, st)

	filters := models.DefaultFilters()
	filters.SearchQuery = "AB12XY"

	output, err := h.Execute(context.Background(), &Input{Filters: filters})

	assert.NoError(t, err)
	assert.Equal(t, 1, st.byCodeCalls)
	assert.Equal(t, 1, st.latestCalls)
	assert.Zero(t, st.residentialCalls)
	assert.Equal(t, int64(3), output.TotalCount)
}

func TestHandler_Execute_ConcreteCategorySingleQuery(t *testing.T) {
	st := &fakeStore{
		commercialFn: func(p store.CommercialSearchParams) ([]models.PropertyRow, error) {
			assert.Equal(t, "rent", p.TransactionType)
			return []models.PropertyRow{rowAt("c1", "commercial_rent", time.Now(), 12)}, nil
		},
	}
	h := createTestHandler(t, st)

	filters := models.DefaultFilters()
	filters.ActionType = "rent"
	filters.SelectedPropertyType = "commercial"

	output, err := h.Execute(context.Background(), &Input{Filters: filters})

	assert.NoError(t, err)
	assert.Equal(t, 1, st.commercialCalls)
	assert.Zero(t, st.residentialCalls)
	assert.Zero(t, st.landCalls)
	assert.Equal(t, int64(12), output.TotalCount)
}

func TestHandler_Execute_PGHostelRoutesThroughResidential(t *testing.T) {
	st := &fakeStore{
		residentialFn: func(p store.ResidentialSearchParams) ([]models.PropertyRow, error) {
			assert.Equal(t, "pghostel", p.TransactionType)
			return []models.PropertyRow{rowAt("pg1", "pghostel", time.Now(), 4)}, nil
		},
	}
	h := createTestHandler(t, st)

	filters := models.DefaultFilters()
	filters.ActionType = "rent"
	filters.SelectedPropertyType = "pghostel"

	output, err := h.Execute(context.Background(), &Input{Filters: filters})

	assert.NoError(t, err)
	assert.Equal(t, 1, st.residentialCalls)
	assert.Equal(t, int64(4), output.TotalCount)
}

func TestHandler_Execute_SingleCategoryFailurePropagates(t *testing.T) {
	st := &fakeStore{
		landFn: func(p store.LandSearchParams) ([]models.PropertyRow, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := createTestHandler(t, st)

	filters := models.DefaultFilters()
	filters.ActionType = "buy"
	filters.SelectedPropertyType = "land"

	_, err := h.Execute(context.Background(), &Input{Filters: filters})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchDispatchFailed)
}

// ==========================
// Fan-out
// ==========================

func TestHandler_Execute_FanOutToleratesPartialFailure(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	st := &fakeStore{
		residentialFn: func(p store.ResidentialSearchParams) ([]models.PropertyRow, error) {
			return nil, errors.New("residential backend down")
		},
		commercialFn: func(p store.CommercialSearchParams) ([]models.PropertyRow, error) {
			assert.Equal(t, 16, p.Limit) // floor(50/3)
			return []models.PropertyRow{rowAt("c1", "commercial_rent", base.Add(2*time.Hour), 20)}, nil
		},
		landFn: func(p store.LandSearchParams) ([]models.PropertyRow, error) {
			return []models.PropertyRow{
				rowAt("l1", "land_sale", base.Add(3*time.Hour), 10),
				rowAt("l2", "land_sale", base.Add(1*time.Hour), 10),
			}, nil
		},
	}
	h := createTestHandler(t, st)

	filters := models.DefaultFilters()
	filters.SelectedLocation = "kondapur"

	output, err := h.Execute(context.Background(), &Input{Filters: filters})

	assert.NoError(t, err)
	assert.Equal(t, 1, st.residentialCalls)
	assert.Equal(t, 1, st.commercialCalls)
	assert.Equal(t, 1, st.landCalls)

	// Only the succeeding categories contribute rows and counts.
	assert.Len(t, output.Results, 3)
	assert.Equal(t, int64(30), output.TotalCount)

	// Merged rows are sorted most recent first.
	assert.Equal(t, "l1", output.Results[0].ID)
	assert.Equal(t, "c1", output.Results[1].ID)
	assert.Equal(t, "l2", output.Results[2].ID)
}

func TestHandler_Execute_FanOutAllFail(t *testing.T) {
	backendErr := errors.New("backend down")
	st := &fakeStore{
		residentialFn: func(store.ResidentialSearchParams) ([]models.PropertyRow, error) { return nil, backendErr },
		commercialFn:  func(store.CommercialSearchParams) ([]models.PropertyRow, error) { return nil, backendErr },
		landFn:        func(store.LandSearchParams) ([]models.PropertyRow, error) { return nil, backendErr },
	}
	h := createTestHandler(t, st)

	filters := models.DefaultFilters()
	filters.SelectedLocation = "uppal"

	_, err := h.Execute(context.Background(), &Input{Filters: filters})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchDispatchFailed)
}

// ==========================
// Validation warnings
// ==========================

func TestHandler_Execute_WarningsDoNotBlock(t *testing.T) {
	st := &fakeStore{
		residentialFn: func(p store.ResidentialSearchParams) ([]models.PropertyRow, error) {
			return []models.PropertyRow{rowAt("p1", "residential_rent", time.Now(), 1)}, nil
		},
	}
	h := createTestHandler(t, st)

	filters := models.DefaultFilters()
	filters.SelectedPropertyType = "residential"

	output, err := h.Execute(context.Background(), &Input{
		Filters: filters,
		Options: models.SearchOptions{Limit: 5000},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, output.Warnings)
	assert.Len(t, output.Results, 1)
}
