// internal/models/rows.go
package models

import (
	"database/sql"
	"time"
)

// PropertyCategory identifies which backend table family a row came from.
type PropertyCategory string

const (
	CategoryResidential PropertyCategory = "residential"
	CategoryCommercial  PropertyCategory = "commercial"
	CategoryLand        PropertyCategory = "land"
)

// PropertyRow is a raw row as returned by the search functions in Postgres.
// Nullable columns use sql.Null* so that absent backend data survives the
// scan and can be distinguished from zero values downstream.
type PropertyRow struct {
	Category     PropertyCategory `json:"-"`
	ID           string           `json:"id"`
	OwnerID      string           `json:"owner_id"`
	OwnerEmail   sql.NullString   `json:"-"`
	Title        string           `json:"title"`
	Price        float64          `json:"price"`
	City         sql.NullString   `json:"-"`
	State        sql.NullString   `json:"-"`
	Area         float64          `json:"area"`
	AreaUnit     sql.NullString   `json:"-"`
	FlowType     string           `json:"flow_type"`
	Subtype      sql.NullString   `json:"-"`
	Bedrooms     sql.NullInt64    `json:"-"`
	Bathrooms    sql.NullInt64    `json:"-"`
	LandType     sql.NullString   `json:"-"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	TotalCount   int64            `json:"-"`
	PrimaryImage sql.NullString   `json:"-"`
	Code         sql.NullString   `json:"-"`
}
