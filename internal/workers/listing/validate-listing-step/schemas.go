// internal/workers/listing/validate-listing-step/schemas.go
package validatelistingstep

// Submission flows.
const (
	FlowResidentialRent = "residential_rent"
	FlowResidentialSale = "residential_sale"
	FlowCommercialRent  = "commercial_rent"
	FlowCommercialSale  = "commercial_sale"
	FlowLandSale        = "land_sale"
	FlowPGHostel        = "pghostel"
	FlowFlatmates       = "flatmates"
)

// Wizard steps.
const (
	StepBasicDetails = "basic_details"
	StepLocation     = "location"
	StepRentalTerms  = "rental_terms"
	StepSaleTerms    = "sale_terms"
	StepFeatures     = "features"
	StepPhotos       = "photos"
)

const residentialBasicDetailsSchema = `{
	"type": "object",
	"required": ["title", "propertySubtype", "area"],
	"properties": {
		"title": {"type": "string", "minLength": 5, "maxLength": 200},
		"propertySubtype": {"type": "string"},
		"bedrooms": {"type": "integer", "minimum": 1, "maximum": 10},
		"bathrooms": {"type": "integer", "minimum": 1, "maximum": 10},
		"area": {"type": "number", "exclusiveMinimum": 0},
		"areaUnit": {"type": "string", "enum": ["sqft", "sqyd", "sqm"]}
	}
}`

const commercialBasicDetailsSchema = `{
	"type": "object",
	"required": ["title", "propertySubtype", "area"],
	"properties": {
		"title": {"type": "string", "minLength": 5, "maxLength": 200},
		"propertySubtype": {"type": "string"},
		"area": {"type": "number", "exclusiveMinimum": 0},
		"areaUnit": {"type": "string", "enum": ["sqft", "sqyd", "sqm"]}
	}
}`

const landBasicDetailsSchema = `{
	"type": "object",
	"required": ["title", "landType", "area"],
	"properties": {
		"title": {"type": "string", "minLength": 5, "maxLength": 200},
		"landType": {"type": "string", "enum": ["residential_plot", "commercial_plot", "agricultural_land", "industrial_land"]},
		"area": {"type": "number", "exclusiveMinimum": 0},
		"areaUnit": {"type": "string", "enum": ["sqft", "sqyd", "acre", "guntha"]}
	}
}`

const sharedRoomBasicDetailsSchema = `{
	"type": "object",
	"required": ["title", "roomType"],
	"properties": {
		"title": {"type": "string", "minLength": 5, "maxLength": 200},
		"roomType": {"type": "string"},
		"area": {"type": "number", "minimum": 0}
	}
}`

const locationSchema = `{
	"type": "object",
	"required": ["city", "state"],
	"properties": {
		"city": {"type": "string", "minLength": 2},
		"state": {"type": "string", "minLength": 2},
		"locality": {"type": "string"},
		"pincode": {"type": "string", "pattern": "^[0-9]{6}$"},
		"latitude": {"type": "number", "minimum": -90, "maximum": 90},
		"longitude": {"type": "number", "minimum": -180, "maximum": 180}
	}
}`

const rentalTermsSchema = `{
	"type": "object",
	"required": ["monthlyRent"],
	"properties": {
		"monthlyRent": {"type": "number", "minimum": 1000},
		"securityDeposit": {"type": "number", "minimum": 0},
		"maintenanceIncluded": {"type": "boolean"},
		"availableFrom": {"type": "string"}
	}
}`

const saleTermsSchema = `{
	"type": "object",
	"required": ["expectedPrice"],
	"properties": {
		"expectedPrice": {"type": "number", "minimum": 100000},
		"negotiable": {"type": "boolean"},
		"registrationIncluded": {"type": "boolean"}
	}
}`

const featuresSchema = `{
	"type": "object",
	"properties": {
		"furnishing": {"type": "string", "enum": ["unfurnished", "semi_furnished", "fully_furnished"]},
		"amenities": {"type": "array", "items": {"type": "string"}},
		"parking": {"type": "boolean"},
		"floor": {"type": "integer", "minimum": 0}
	}
}`

const photosSchema = `{
	"type": "object",
	"required": ["photos"],
	"properties": {
		"photos": {
			"type": "array",
			"minItems": 1,
			"maxItems": 20,
			"items": {"type": "string", "format": "uri"}
		}
	}
}`

// stepSchemas maps (flow, step) onto the schema the step's form must
// satisfy. A missing entry means the step does not exist for that flow.
var stepSchemas = map[string]map[string]string{
	FlowResidentialRent: {
		StepBasicDetails: residentialBasicDetailsSchema,
		StepLocation:     locationSchema,
		StepRentalTerms:  rentalTermsSchema,
		StepFeatures:     featuresSchema,
		StepPhotos:       photosSchema,
	},
	FlowResidentialSale: {
		StepBasicDetails: residentialBasicDetailsSchema,
		StepLocation:     locationSchema,
		StepSaleTerms:    saleTermsSchema,
		StepFeatures:     featuresSchema,
		StepPhotos:       photosSchema,
	},
	FlowCommercialRent: {
		StepBasicDetails: commercialBasicDetailsSchema,
		StepLocation:     locationSchema,
		StepRentalTerms:  rentalTermsSchema,
		StepFeatures:     featuresSchema,
		StepPhotos:       photosSchema,
	},
	FlowCommercialSale: {
		StepBasicDetails: commercialBasicDetailsSchema,
		StepLocation:     locationSchema,
		StepSaleTerms:    saleTermsSchema,
		StepFeatures:     featuresSchema,
		StepPhotos:       photosSchema,
	},
	FlowLandSale: {
		StepBasicDetails: landBasicDetailsSchema,
		StepLocation:     locationSchema,
		StepSaleTerms:    saleTermsSchema,
		StepPhotos:       photosSchema,
	},
	FlowPGHostel: {
		StepBasicDetails: sharedRoomBasicDetailsSchema,
		StepLocation:     locationSchema,
		StepRentalTerms:  rentalTermsSchema,
		StepFeatures:     featuresSchema,
		StepPhotos:       photosSchema,
	},
	FlowFlatmates: {
		StepBasicDetails: sharedRoomBasicDetailsSchema,
		StepLocation:     locationSchema,
		StepRentalTerms:  rentalTermsSchema,
		StepFeatures:     featuresSchema,
		StepPhotos:       photosSchema,
	},
}

// StepSchema returns the schema for a flow/step pair.
func StepSchema(flowType, step string) (string, bool) {
	steps, ok := stepSchemas[flowType]
	if !ok {
		return "", false
	}
	schema, ok := steps[step]
	return schema, ok
}
