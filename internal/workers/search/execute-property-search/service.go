// internal/workers/search/execute-property-search/service.go
package executepropertysearch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"property-workers/internal/models"
	"property-workers/internal/store"
)

// PropertyStore is the slice of the storage layer this worker needs.
type PropertyStore interface {
	SearchResidential(ctx context.Context, p store.ResidentialSearchParams) ([]models.PropertyRow, error)
	SearchCommercial(ctx context.Context, p store.CommercialSearchParams) ([]models.PropertyRow, error)
	SearchLand(ctx context.Context, p store.LandSearchParams) ([]models.PropertyRow, error)
	SearchByCode(ctx context.Context, code string) ([]models.PropertyRow, error)
	GetLatest(ctx context.Context, limit, offset int) ([]models.PropertyRow, error)
}

// search routes the request to the right backend query: direct code lookup,
// latest listings for an empty search, a single category query, or a
// three-way fan-out when no property type is selected.
func (h *Handler) search(ctx context.Context, filters models.FilterModel, options models.SearchOptions) ([]models.PropertyRow, int64, error) {
	trimmed := strings.TrimSpace(filters.SearchQuery)
	codeDetected := models.IsPropertyCode(trimmed)

	if codeDetected {
		rows, err := h.store.SearchByCode(ctx, trimmed)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: code lookup: %v", ErrSearchDispatchFailed, err)
		}
		if len(rows) > 0 {
			return rows, totalOf(rows), nil
		}
		h.logger.Info("code lookup found nothing, falling back to faceted search", map[string]interface{}{
			"code": trimmed,
		})
	}

	// A query that was consumed as a code candidate does not count as a
	// facet when deciding whether the search is empty.
	facets := filters
	if codeDetected {
		facets.SearchQuery = ""
	}
	if facets.IsEmpty() {
		rows, err := h.store.GetLatest(ctx, h.config.LatestLimit, 0)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: latest properties: %v", ErrSearchDispatchFailed, err)
		}
		return rows, totalOf(rows), nil
	}

	_, limit, offset := normalizeOptions(options, h.config.DefaultLimit)

	switch filters.SelectedPropertyType {
	case models.PropertyTypeResidential, models.PropertyTypePGHostel, models.PropertyTypeFlatmates:
		rows, err := h.store.SearchResidential(ctx, BuildResidentialParams(filters, limit, offset))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: residential: %v", ErrSearchDispatchFailed, err)
		}
		return rows, totalOf(rows), nil

	case models.PropertyTypeCommercial:
		rows, err := h.store.SearchCommercial(ctx, BuildCommercialParams(filters, limit, offset))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: commercial: %v", ErrSearchDispatchFailed, err)
		}
		return rows, totalOf(rows), nil

	case models.PropertyTypeLand:
		rows, err := h.store.SearchLand(ctx, BuildLandParams(filters, limit, offset))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: land: %v", ErrSearchDispatchFailed, err)
		}
		return rows, totalOf(rows), nil
	}

	return h.fanOut(ctx, filters, limit, offset)
}

type branchResult struct {
	category models.PropertyCategory
	rows     []models.PropertyRow
	err      error
}

// fanOut queries all three categories concurrently, each capped at a third
// of the requested limit. A failing category is logged and omitted; the
// search only fails when every branch fails.
func (h *Handler) fanOut(ctx context.Context, filters models.FilterModel, limit, offset int) ([]models.PropertyRow, int64, error) {
	perCategory := limit / 3
	if perCategory < 1 {
		perCategory = 1
	}

	branches := make([]branchResult, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		rows, err := h.store.SearchResidential(ctx, BuildResidentialParams(filters, perCategory, offset))
		branches[0] = branchResult{models.CategoryResidential, rows, err}
	}()
	go func() {
		defer wg.Done()
		rows, err := h.store.SearchCommercial(ctx, BuildCommercialParams(filters, perCategory, offset))
		branches[1] = branchResult{models.CategoryCommercial, rows, err}
	}()
	go func() {
		defer wg.Done()
		rows, err := h.store.SearchLand(ctx, BuildLandParams(filters, perCategory, offset))
		branches[2] = branchResult{models.CategoryLand, rows, err}
	}()

	wg.Wait()

	var merged []models.PropertyRow
	var total int64
	failures := 0
	for _, b := range branches {
		if b.err != nil {
			failures++
			h.logger.Warn("category query failed, omitting from results", map[string]interface{}{
				"category": string(b.category),
				"error":    b.err.Error(),
			})
			continue
		}
		merged = append(merged, b.rows...)
		total += totalOf(b.rows)
	}

	if failures == len(branches) {
		return nil, 0, fmt.Errorf("%w: all category queries failed", ErrSearchDispatchFailed)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged, total, nil
}

// totalOf reads the row-embedded total count convention: every row of a
// page repeats the query's full match count.
func totalOf(rows []models.PropertyRow) int64 {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].TotalCount
}
