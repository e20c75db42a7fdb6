// internal/workers/search/execute-property-search/transform.go
package executepropertysearch

import (
	"fmt"
	"strings"
	"time"

	"property-workers/internal/models"
)

// ownerPhonePlaceholder stands in for contact data the search rows do not
// carry; real numbers are only released through the inquiry flow.
const ownerPhonePlaceholder = "+91 9876543210"

const locationNotSpecified = "Location not specified"

// subtypeKeyword is one entry of the ordered title-scan table. Order
// matters: "independent" must match before "house", "single sharing"
// before "sharing", "agricultural" before "land".
type subtypeKeyword struct {
	keyword string
	subtype string
}

var subtypeKeywords = []subtypeKeyword{
	{"villa", "villa"},
	{"independent", "independent_house"},
	{"penthouse", "penthouse"},
	{"service apartment", "service_apartment"},
	{"studio", "studio_apartment"},
	{"house", "independent_house"},
	{"single sharing", "single"},
	{"double sharing", "double"},
	{"triple sharing", "triple"},
	{"sharing", "double"},
	{"co-working", "coworking_space"},
	{"coworking", "coworking_space"},
	{"office", "office_space"},
	{"shop", "shop"},
	{"showroom", "showroom"},
	{"godown", "godown_warehouse"},
	{"warehouse", "godown_warehouse"},
	{"industrial", "industrial_shed"},
	{"agricultural", "agricultural_land"},
	{"plot", "residential_plot"},
	{"land", "residential_plot"},
}

// TransformRows maps raw backend rows onto the unified display model.
// Pure, order-preserving, one row per result.
func TransformRows(rows []models.PropertyRow) []models.SearchResult {
	results := make([]models.SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, transformRow(row))
	}
	return results
}

func transformRow(r models.PropertyRow) models.SearchResult {
	result := models.SearchResult{
		ID:              r.ID,
		Title:           r.Title,
		TransactionType: deriveTransactionType(r.FlowType),
		PropertyType:    derivePropertyType(r),
		SubType:         deriveSubType(r),
		Location:        deriveLocation(r),
		OwnerName:       deriveOwnerName(r),
		OwnerPhone:      ownerPhonePlaceholder,
		PrimaryImage:    r.PrimaryImage.String,
		Code:            r.Code.String,
		Status:          r.Status,
		AreaUnit:        r.AreaUnit.String,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}

	if r.Bedrooms.Valid && r.Bedrooms.Int64 > 0 {
		result.BHK = fmt.Sprintf("%dbhk", r.Bedrooms.Int64)
	}

	// Zero is the explicit "unknown" sentinel the enricher fills in.
	if r.Price > 0 {
		result.Price = r.Price
	}
	if r.Area > 0 {
		result.Area = r.Area
	}
	if result.AreaUnit == "" {
		result.AreaUnit = "sqft"
	}

	return result
}

// deriveTransactionType classifies the flow tag by substring; unknown tags
// default to rent.
func deriveTransactionType(flowType string) string {
	tag := strings.ToLower(flowType)
	switch {
	case strings.Contains(tag, "sale") || strings.Contains(tag, "buy"):
		return "buy"
	case strings.Contains(tag, "rent"):
		return "rent"
	default:
		return "rent"
	}
}

func derivePropertyType(r models.PropertyRow) string {
	tag := strings.ToLower(r.FlowType)
	switch {
	case strings.Contains(tag, "commercial"):
		return models.PropertyTypeCommercial
	case strings.Contains(tag, "land"):
		return models.PropertyTypeLand
	case strings.Contains(tag, "pghostel") || strings.Contains(tag, "pg_hostel"):
		return models.PropertyTypePGHostel
	case strings.Contains(tag, "flatmate"):
		return models.PropertyTypeFlatmates
	default:
		return models.PropertyTypeResidential
	}
}

// deriveSubType prefers the row's own subtype when it carries more
// information than the flow tag; falls back to scanning the title for known
// subtype keywords, then to a flow-based default.
func deriveSubType(r models.PropertyRow) string {
	if r.Subtype.Valid && r.Subtype.String != "" && r.Subtype.String != r.FlowType {
		return r.Subtype.String
	}

	title := strings.ToLower(r.Title)
	for _, entry := range subtypeKeywords {
		if strings.Contains(title, entry.keyword) {
			return entry.subtype
		}
	}

	switch derivePropertyType(r) {
	case models.PropertyTypeCommercial:
		return "office_space"
	case models.PropertyTypeLand:
		return "residential_plot"
	case models.PropertyTypePGHostel:
		return "double"
	case models.PropertyTypeFlatmates:
		return "shared_room"
	default:
		return "apartment"
	}
}

func deriveLocation(r models.PropertyRow) string {
	city := strings.TrimSpace(r.City.String)
	state := strings.TrimSpace(r.State.String)
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	case state != "":
		return state
	default:
		return locationNotSpecified
	}
}

// deriveOwnerName builds a display name from the owner email's local part;
// rows without an email get the generic placeholder.
func deriveOwnerName(r models.PropertyRow) string {
	email := strings.TrimSpace(r.OwnerEmail.String)
	if email == "" || !strings.Contains(email, "@") {
		return "Property Owner"
	}

	local := email[:strings.Index(email, "@")]
	local = strings.ReplaceAll(local, ".", " ")
	local = strings.ReplaceAll(local, "_", " ")
	name := titleCase(local)
	if name == "" {
		return "Property Owner"
	}
	return name
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
