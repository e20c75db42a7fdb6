// internal/workers/search/execute-property-search/models.go
package executepropertysearch

import "property-workers/internal/models"

type Input struct {
	Filters models.FilterModel   `json:"filters"`
	Options models.SearchOptions `json:"options"`
}

type Output struct {
	Results    []models.SearchResult `json:"results"`
	TotalCount int64                 `json:"totalCount"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	Warnings   []string              `json:"warnings,omitempty"`
}
