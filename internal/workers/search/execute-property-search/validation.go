// internal/workers/search/execute-property-search/validation.go
package executepropertysearch

import "fmt"

// ValidateSearchParams checks the normalized pagination and filter bounds.
// Violations come back as human-readable warnings; the caller logs them and
// proceeds rather than aborting the search. A non-positive maxLimit falls
// back to 1000.
func ValidateSearchParams(limit, offset, maxLimit int, minPrice, maxPrice *float64, bedrooms, bathrooms *int) []string {
	var warnings []string

	if maxLimit <= 0 {
		maxLimit = 1000
	}
	if limit < 1 || limit > maxLimit {
		warnings = append(warnings, fmt.Sprintf("limit %d out of range [1,%d]", limit, maxLimit))
	}
	if offset < 0 {
		warnings = append(warnings, fmt.Sprintf("offset %d must not be negative", offset))
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		warnings = append(warnings, fmt.Sprintf("min price %.0f exceeds max price %.0f", *minPrice, *maxPrice))
	}
	if bedrooms != nil && (*bedrooms < 1 || *bedrooms > 10) {
		warnings = append(warnings, fmt.Sprintf("bedrooms %d out of range [1,10]", *bedrooms))
	}
	if bathrooms != nil && (*bathrooms < 1 || *bathrooms > 10) {
		warnings = append(warnings, fmt.Sprintf("bathrooms %d out of range [1,10]", *bathrooms))
	}

	return warnings
}
