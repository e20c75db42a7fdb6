// internal/store/params.go
package store

// ResidentialSearchParams maps onto the arguments of the
// search_residential_properties function. Nil pointers and empty strings
// mean the corresponding filter is not applied.
type ResidentialSearchParams struct {
	Query           string
	City            string
	State           string
	TransactionType string
	Subtypes        []string
	Bedrooms        *int
	Bathrooms       *int
	MinPrice        *float64
	MaxPrice        *float64
	MinArea         *float64
	MaxArea         *float64
	Limit           int
	Offset          int
}

// CommercialSearchParams maps onto search_commercial_properties.
// Commercial rows carry no bedroom or bathroom columns.
type CommercialSearchParams struct {
	Query           string
	City            string
	State           string
	TransactionType string
	Subtypes        []string
	MinPrice        *float64
	MaxPrice        *float64
	MinArea         *float64
	MaxArea         *float64
	Limit           int
	Offset          int
}

// LandSearchParams maps onto search_land_properties. Land listings are
// always sale, so the caller sets TransactionType to "sale".
type LandSearchParams struct {
	Query           string
	City            string
	State           string
	TransactionType string
	Subtypes        []string
	MinPrice        *float64
	MaxPrice        *float64
	MinArea         *float64
	MaxArea         *float64
	Limit           int
	Offset          int
}
