// internal/workers/search/execute-property-search/params.go
package executepropertysearch

import (
	"regexp"
	"strconv"
	"strings"

	"property-workers/internal/models"
	"property-workers/internal/store"
)

// stateName is fixed: every supported city is in this region.
const stateName = "Telangana"

// cityNames maps UI location keys onto the display names the backend stores.
// Unmapped keys pass through verbatim.
var cityNames = map[string]string{
	"hitech_city":   "Hitech City",
	"gachibowli":    "Gachibowli",
	"kondapur":      "Kondapur",
	"kukatpally":    "Kukatpally",
	"madhapur":      "Madhapur",
	"miyapur":       "Miyapur",
	"uppal":         "Uppal",
	"jubilee_hills": "Jubilee Hills",
	"banjara_hills": "Banjara Hills",
	"ameerpet":      "Ameerpet",
	"begumpet":      "Begumpet",
	"secunderabad":  "Secunderabad",
	"lb_nagar":      "LB Nagar",
	"manikonda":     "Manikonda",
}

// PriceRange is a decoded price bucket.
type PriceRange struct {
	Min float64
	Max float64
}

// priceBuckets is the fixed bucket table. Keys and bounds must stay exactly
// as the UI defines them; round-trip tests depend on these values.
var priceBuckets = map[string]PriceRange{
	"under-10l":  {0, 1_000_000},
	"10l-25l":    {1_000_000, 2_500_000},
	"25l-50l":    {2_500_000, 5_000_000},
	"50l-75l":    {5_000_000, 7_500_000},
	"75l-1cr":    {7_500_000, 10_000_000},
	"1cr-2cr":    {10_000_000, 20_000_000},
	"2cr-3cr":    {20_000_000, 30_000_000},
	"3cr-5cr":    {30_000_000, 50_000_000},
	"5cr-10cr":   {50_000_000, 100_000_000},
	"above-10cr": {100_000_000, 999_999_999},
}

// ParsePriceRange decodes a bucket key. Unknown keys return (nil, false).
func ParsePriceRange(key string) (*PriceRange, bool) {
	r, ok := priceBuckets[key]
	if !ok {
		return nil, false
	}
	return &r, true
}

// backendSubtypes maps UI subtype keys onto backend subtype tags, per
// property type. Unknown keys are dropped silently, never errored.
var backendSubtypes = map[string]map[string]string{
	models.PropertyTypeResidential: {
		"apartment":         "apartment",
		"independent_house": "independent_house",
		"villa":             "villa",
		"penthouse":         "penthouse",
		"studio_apartment":  "studio_apartment",
		"service_apartment": "service_apartment",
	},
	models.PropertyTypeCommercial: {
		"office_space":        "office_space",
		"shop":                "shop",
		"showroom":            "showroom",
		"godown_warehouse":    "godown_warehouse",
		"industrial_shed":     "industrial_shed",
		"industrial_building": "industrial_building",
		"private_office":      "private_office",
		"dedicated_desk":      "dedicated_desk",
		"hot_desk":            "hot_desk",
		"meeting_room":        "meeting_room",
		"conference_room":     "conference_room",
	},
	models.PropertyTypeLand: {
		"residential_plot":  "residential_plot",
		"commercial_plot":   "commercial_plot",
		"agricultural_land": "agricultural_land",
		"industrial_land":   "industrial_land",
	},
	models.PropertyTypePGHostel: {
		"single":       "single",
		"double":       "double",
		"triple":       "triple",
		"four_sharing": "four_sharing",
		"dormitory":    "dormitory",
	},
	models.PropertyTypeFlatmates: {
		"single_room": "single_room",
		"shared_room": "shared_room",
		"studio":      "studio",
	},
}

var bhkDigits = regexp.MustCompile(`(\d+)`)

// searchText returns the trimmed free-text query, "" when empty.
func searchText(f models.FilterModel) string {
	return strings.TrimSpace(f.SearchQuery)
}

// normalizeOptions applies pagination defaults: page 1, the configured
// default limit, offset derived from both.
func normalizeOptions(o models.SearchOptions, defaultLimit int) (page, limit, offset int) {
	page = o.Page
	if page < 1 {
		page = 1
	}
	limit = o.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	offset = (page - 1) * limit
	return page, limit, offset
}

// cityFor maps the selected location key onto the backend city name.
// Returns "" when no location is selected.
func cityFor(f models.FilterModel) string {
	if f.SelectedLocation == "" || f.SelectedLocation == "any" {
		return ""
	}
	if name, ok := cityNames[f.SelectedLocation]; ok {
		return name
	}
	return f.SelectedLocation
}

// stateFor returns the fixed region name whenever a city filter applies.
// Every supported city is in the same state, so the backend never needs a
// state without a city.
func stateFor(f models.FilterModel) string {
	if cityFor(f) == "" {
		return ""
	}
	return stateName
}

// transactionMarker maps the action type onto the backend transaction tag.
// PG hostels and flatmates carry their own literal marker regardless of the
// action; land is always sale.
func transactionMarker(f models.FilterModel) string {
	switch f.SelectedPropertyType {
	case models.PropertyTypePGHostel:
		return models.PropertyTypePGHostel
	case models.PropertyTypeFlatmates:
		return models.PropertyTypeFlatmates
	case models.PropertyTypeLand:
		return "sale"
	}

	switch f.ActionType {
	case models.ActionBuy, models.ActionSell:
		return "sale"
	case models.ActionRent:
		return "rent"
	default:
		return ""
	}
}

// subtypesFor looks the selected subtype up in the category table. A single
// matched subtype yields a one-element slice; "any" and unknown keys yield nil.
func subtypesFor(f models.FilterModel, propertyType string) []string {
	if f.SelectedSubType == "" || f.SelectedSubType == "any" {
		return nil
	}
	table, ok := backendSubtypes[propertyType]
	if !ok {
		return nil
	}
	backend, ok := table[f.SelectedSubType]
	if !ok {
		return nil
	}
	return []string{backend}
}

// bedroomsFor decodes the BHK selection into a bedroom count. Only
// residential listings carry bedrooms; non-numeric selections yield nil.
func bedroomsFor(f models.FilterModel) *int {
	if f.SelectedBHK == "" || f.SelectedBHK == "any" {
		return nil
	}
	m := bhkDigits.FindString(f.SelectedBHK)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

func priceBoundsFor(f models.FilterModel) (min, max *float64) {
	if f.SelectedPriceRange == "" || f.SelectedPriceRange == "any" {
		return nil, nil
	}
	r, ok := ParsePriceRange(f.SelectedPriceRange)
	if !ok {
		return nil, nil
	}
	return &r.Min, &r.Max
}

// BuildResidentialParams maps the filter model onto the residential query
// shape. PG hostel and flatmate searches also use this shape; the marker
// distinguishes them.
func BuildResidentialParams(f models.FilterModel, limit, offset int) store.ResidentialSearchParams {
	min, max := priceBoundsFor(f)
	subtypeSource := f.SelectedPropertyType
	if subtypeSource == "" || subtypeSource == "any" {
		subtypeSource = models.PropertyTypeResidential
	}
	return store.ResidentialSearchParams{
		Query:           searchText(f),
		City:            cityFor(f),
		State:           stateFor(f),
		TransactionType: transactionMarker(f),
		Subtypes:        subtypesFor(f, subtypeSource),
		Bedrooms:        bedroomsFor(f),
		MinPrice:        min,
		MaxPrice:        max,
		Limit:           limit,
		Offset:          offset,
	}
}

// BuildCommercialParams maps the filter model onto the commercial query
// shape. Commercial listings never carry bedrooms.
func BuildCommercialParams(f models.FilterModel, limit, offset int) store.CommercialSearchParams {
	min, max := priceBoundsFor(f)
	marker := transactionMarker(f)
	if f.SelectedPropertyType == models.PropertyTypePGHostel || f.SelectedPropertyType == models.PropertyTypeFlatmates {
		// These categories never reach the commercial query; when this shape
		// is built during a fan-out, fall back to the plain action mapping.
		marker = ""
		switch f.ActionType {
		case models.ActionBuy, models.ActionSell:
			marker = "sale"
		case models.ActionRent:
			marker = "rent"
		}
	}
	return store.CommercialSearchParams{
		Query:           searchText(f),
		City:            cityFor(f),
		State:           stateFor(f),
		TransactionType: marker,
		Subtypes:        subtypesFor(f, models.PropertyTypeCommercial),
		MinPrice:        min,
		MaxPrice:        max,
		Limit:           limit,
		Offset:          offset,
	}
}

// BuildLandParams maps the filter model onto the land query shape. Land has
// no rent concept; the marker is always "sale".
func BuildLandParams(f models.FilterModel, limit, offset int) store.LandSearchParams {
	min, max := priceBoundsFor(f)
	return store.LandSearchParams{
		Query:           searchText(f),
		City:            cityFor(f),
		State:           stateFor(f),
		TransactionType: "sale",
		Subtypes:        subtypesFor(f, models.PropertyTypeLand),
		MinPrice:        min,
		MaxPrice:        max,
		Limit:           limit,
		Offset:          offset,
	}
}
