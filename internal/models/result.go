// internal/models/result.go
package models

// SearchResult is the display-ready shape consumed by listing cards.
// Every string field is guaranteed non-empty except BHK, which is omitted
// for non-residential results.
type SearchResult struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	TransactionType string  `json:"transactionType"`
	PropertyType    string  `json:"propertyType"`
	SubType         string  `json:"subType"`
	BHK             string  `json:"bhk,omitempty"`
	Price           float64 `json:"price"`
	Area            float64 `json:"area"`
	AreaUnit        string  `json:"areaUnit"`
	Location        string  `json:"location"`
	OwnerName       string  `json:"ownerName"`
	OwnerPhone      string  `json:"ownerPhone"`
	PrimaryImage    string  `json:"primaryImage"`
	Code            string  `json:"code,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
}

// SearchResponse is the paginated payload returned to the process.
type SearchResponse struct {
	Results    []SearchResult `json:"results"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}
