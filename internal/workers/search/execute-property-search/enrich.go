// internal/workers/search/execute-property-search/enrich.go
package executepropertysearch

import (
	"math/rand"
	"strings"

	"property-workers/internal/models"
)

// premiumLocations flags areas whose fallback prices sit at the top of the
// range. Substring match, case-insensitive.
var premiumLocations = []string{"hitech", "jubilee", "banjara"}

// Fallback owner names, combined first+last at random.
var (
	fallbackFirstNames = []string{"Rajesh", "Priya", "Amit", "Sneha", "Vikram", "Ananya", "Suresh", "Kavya"}
	fallbackLastNames  = []string{"Reddy", "Sharma", "Rao", "Patel", "Kumar", "Gupta", "Naidu", "Iyer"}
)

type priceDefault struct {
	normal  float64
	premium float64
}

// Fallback prices keyed by property type, split by transaction type.
// Rent values stay within 8,500-50,000; sale values within 3.5M-25M.
var rentPriceDefaults = map[string]priceDefault{
	models.PropertyTypeResidential: {15_000, 25_000},
	models.PropertyTypeCommercial:  {40_000, 50_000},
	models.PropertyTypePGHostel:    {8_500, 12_000},
	models.PropertyTypeFlatmates:   {10_000, 15_000},
}

var buyPriceDefaults = map[string]priceDefault{
	models.PropertyTypeResidential: {7_500_000, 15_000_000},
	models.PropertyTypeCommercial:  {12_000_000, 25_000_000},
	models.PropertyTypeLand:        {3_500_000, 9_000_000},
}

// Fallback areas in sq ft when no BHK is known.
var areaDefaults = map[string]float64{
	models.PropertyTypeResidential: 1200,
	models.PropertyTypeCommercial:  2000,
	models.PropertyTypeLand:        5000,
	models.PropertyTypePGHostel:    150,
	models.PropertyTypeFlatmates:   1500,
}

// Enricher fills missing display fields with deterministic fallbacks so the
// UI never renders blanks. Owner-name filler is the one random piece; the
// source is injected so tests can seed it.
type Enricher struct {
	rng *rand.Rand
}

func NewEnricher(rng *rand.Rand) *Enricher {
	return &Enricher{rng: rng}
}

// Enrich fills gaps in each result independently. Values the backend
// actually supplied are never altered.
func (e *Enricher) Enrich(results []models.SearchResult) []models.SearchResult {
	for i := range results {
		e.enrichOne(&results[i])
	}
	return results
}

func (e *Enricher) enrichOne(r *models.SearchResult) {
	if r.Price == 0 {
		r.Price = fallbackPrice(r.PropertyType, r.TransactionType, isPremiumLocation(r.Location))
	}

	if r.Area == 0 {
		r.Area = fallbackArea(r.PropertyType, r.BHK)
	}
	if r.AreaUnit == "" {
		r.AreaUnit = "sqft"
	}

	if r.BHK == "" && r.PropertyType == models.PropertyTypeResidential {
		r.BHK = bhkFromArea(r.Area)
	}

	if r.OwnerName == "" || r.OwnerName == "Property Owner" {
		r.OwnerName = e.randomOwnerName()
	}
	if r.OwnerPhone == "" {
		r.OwnerPhone = ownerPhonePlaceholder
	}
	if r.Location == "" {
		r.Location = locationNotSpecified
	}
}

func isPremiumLocation(location string) bool {
	loc := strings.ToLower(location)
	for _, p := range premiumLocations {
		if strings.Contains(loc, p) {
			return true
		}
	}
	return false
}

func fallbackPrice(propertyType, transactionType string, premium bool) float64 {
	var table map[string]priceDefault
	if transactionType == "rent" {
		table = rentPriceDefaults
	} else {
		table = buyPriceDefaults
	}

	d, ok := table[propertyType]
	if !ok {
		// Category missing from the table (e.g. land under rent): use the
		// residential default for the transaction type.
		d = table[models.PropertyTypeResidential]
		if d.normal == 0 {
			d = buyPriceDefaults[models.PropertyTypeResidential]
		}
	}

	if premium {
		return d.premium
	}
	return d.normal
}

func fallbackArea(propertyType, bhk string) float64 {
	if bhk != "" {
		if n := bhkDigits.FindString(bhk); n != "" {
			return float64(n[0]-'0') * 600
		}
	}
	if a, ok := areaDefaults[propertyType]; ok {
		return a
	}
	return areaDefaults[models.PropertyTypeResidential]
}

func bhkFromArea(area float64) string {
	switch {
	case area > 2000:
		return "3bhk"
	case area > 1200:
		return "2bhk"
	case area > 600:
		return "1bhk"
	default:
		return "studio"
	}
}

func (e *Enricher) randomOwnerName() string {
	first := fallbackFirstNames[e.rng.Intn(len(fallbackFirstNames))]
	last := fallbackLastNames[e.rng.Intn(len(fallbackLastNames))]
	return first + " " + last
}
