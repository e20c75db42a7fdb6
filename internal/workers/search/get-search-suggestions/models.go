// internal/workers/search/get-search-suggestions/models.go
package getsearchsuggestions

type Input struct {
	Query string `json:"query"`
}

type Suggestion struct {
	Text string `json:"text"`
	Type string `json:"type"` // "title", "location" or "code"
}

type Output struct {
	Suggestions  []Suggestion `json:"suggestions"`
	PropertyCode string       `json:"propertyCode,omitempty"`
	FromCache    bool         `json:"fromCache"`
}
