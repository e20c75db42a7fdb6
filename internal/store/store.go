// internal/store/store.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"property-workers/internal/models"

	"github.com/lib/pq"
)

// PropertyStore executes the search functions defined in Postgres and scans
// their result sets into PropertyRow values.
type PropertyStore struct {
	db *sql.DB
}

// NewPropertyStore creates a store over an open database handle.
func NewPropertyStore(db *sql.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// SearchResidential queries residential listings.
func (s *PropertyStore) SearchResidential(ctx context.Context, p ResidentialSearchParams) ([]models.PropertyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT * FROM search_residential_properties($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		nullStr(p.Query), nullStr(p.City), nullStr(p.State), nullStr(p.TransactionType),
		pq.Array(p.Subtypes), p.Bedrooms, p.Bathrooms,
		p.MinPrice, p.MaxPrice, p.MinArea, p.MaxArea, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("residential search query failed: %w", err)
	}
	return scanRows(rows, models.CategoryResidential)
}

// SearchCommercial queries commercial listings.
func (s *PropertyStore) SearchCommercial(ctx context.Context, p CommercialSearchParams) ([]models.PropertyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT * FROM search_commercial_properties($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		nullStr(p.Query), nullStr(p.City), nullStr(p.State), nullStr(p.TransactionType),
		pq.Array(p.Subtypes), p.MinPrice, p.MaxPrice, p.MinArea, p.MaxArea, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("commercial search query failed: %w", err)
	}
	return scanRows(rows, models.CategoryCommercial)
}

// SearchLand queries land listings.
func (s *PropertyStore) SearchLand(ctx context.Context, p LandSearchParams) ([]models.PropertyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT * FROM search_land_properties($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		nullStr(p.Query), nullStr(p.City), nullStr(p.State), nullStr(p.TransactionType),
		pq.Array(p.Subtypes), p.MinPrice, p.MaxPrice, p.MinArea, p.MaxArea, p.Limit, p.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("land search query failed: %w", err)
	}
	return scanRows(rows, models.CategoryLand)
}

// SearchByCode looks a listing up by its six-character code. The exact-case
// lookup runs first; only when it returns nothing does the case-insensitive
// variant run.
func (s *PropertyStore) SearchByCode(ctx context.Context, code string) ([]models.PropertyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT * FROM search_property_by_code($1)`, code)
	if err != nil {
		return nil, fmt.Errorf("code lookup failed: %w", err)
	}
	found, err := scanRows(rows, "")
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		return found, nil
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT * FROM search_property_by_code_ci($1)`, code)
	if err != nil {
		return nil, fmt.Errorf("case-insensitive code lookup failed: %w", err)
	}
	return scanRows(rows, "")
}

// GetLatest returns the newest active listings across all categories.
func (s *PropertyStore) GetLatest(ctx context.Context, limit, offset int) ([]models.PropertyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT * FROM get_latest_properties($1, $2)`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("latest properties query failed: %w", err)
	}
	return scanRows(rows, "")
}

// GetTitleSuggestions returns listing titles matching the prefix.
func (s *PropertyStore) GetTitleSuggestions(ctx context.Context, prefix string, max int) ([]string, error) {
	return s.querySuggestions(ctx,
		`SELECT * FROM get_title_suggestions($1, $2)`, prefix, max)
}

// GetLocationSuggestions returns city names matching the prefix.
func (s *PropertyStore) GetLocationSuggestions(ctx context.Context, prefix string, max int) ([]string, error) {
	return s.querySuggestions(ctx,
		`SELECT * FROM get_location_suggestions($1, $2)`, prefix, max)
}

func (s *PropertyStore) querySuggestions(ctx context.Context, query, prefix string, max int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, prefix, max)
	if err != nil {
		return nil, fmt.Errorf("suggestion query failed: %w", err)
	}
	defer rows.Close()

	var suggestions []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

// GetOwnerContact resolves a listing owner's email and phone.
func (s *PropertyStore) GetOwnerContact(ctx context.Context, ownerID string) (email, phone string, err error) {
	var e, p sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT email, phone FROM users WHERE id = $1`, ownerID,
	).Scan(&e, &p)
	if err != nil {
		return "", "", fmt.Errorf("owner contact lookup failed: %w", err)
	}
	return e.String, p.String, nil
}

// scanRows reads the shared 20-column result set. The category is stamped
// onto each row when the caller knows it; mixed-category results (code
// lookup, latest) pass "" and rely on the flow_type column downstream.
func scanRows(rows *sql.Rows, category models.PropertyCategory) ([]models.PropertyRow, error) {
	defer rows.Close()

	var result []models.PropertyRow
	for rows.Next() {
		var r models.PropertyRow
		err := rows.Scan(
			&r.ID, &r.OwnerID, &r.OwnerEmail, &r.Title, &r.Price,
			&r.City, &r.State, &r.Area, &r.AreaUnit, &r.FlowType,
			&r.Subtype, &r.Bedrooms, &r.Bathrooms, &r.LandType, &r.Status,
			&r.CreatedAt, &r.UpdatedAt, &r.TotalCount, &r.PrimaryImage, &r.Code,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		r.Category = category
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return result, nil
}

// nullStr maps "" onto SQL NULL so the search functions treat the filter
// as unset instead of matching the empty string.
func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
