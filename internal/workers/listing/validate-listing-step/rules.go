// internal/workers/listing/validate-listing-step/rules.go
package validatelistingstep

import (
	"fmt"
	"strings"

	"property-workers/internal/common/validation"
)

// crossFieldRules checks constraints the per-field schemas cannot express.
func crossFieldRules(flowType, step string, data map[string]interface{}) []validation.ValidationError {
	var errs []validation.ValidationError

	switch step {
	case StepBasicDetails:
		// Bedrooms belong to residential flows only.
		if _, present := data["bedrooms"]; present && !strings.HasPrefix(flowType, "residential") {
			errs = append(errs, validation.ValidationError{
				Field:   "bedrooms",
				Message: fmt.Sprintf("bedrooms not applicable to %s listings", flowType),
				Code:    "FIELD_NOT_APPLICABLE",
			})
		}

		if bedrooms, ok := numberField(data, "bedrooms"); ok {
			if bathrooms, ok := numberField(data, "bathrooms"); ok && bathrooms > bedrooms+2 {
				errs = append(errs, validation.ValidationError{
					Field:   "bathrooms",
					Message: "bathroom count implausible for the number of bedrooms",
					Code:    "IMPLAUSIBLE_VALUE",
				})
			}
		}

	case StepRentalTerms:
		rent, hasRent := numberField(data, "monthlyRent")
		deposit, hasDeposit := numberField(data, "securityDeposit")
		if hasRent && hasDeposit && rent > 0 && deposit > rent*12 {
			errs = append(errs, validation.ValidationError{
				Field:   "securityDeposit",
				Message: "security deposit exceeds twelve months of rent",
				Code:    "DEPOSIT_TOO_HIGH",
			})
		}

	case StepSaleTerms:
		if price, ok := numberField(data, "expectedPrice"); ok && price > 999_999_999 {
			errs = append(errs, validation.ValidationError{
				Field:   "expectedPrice",
				Message: "expected price exceeds the supported maximum",
				Code:    "PRICE_OUT_OF_RANGE",
			})
		}
	}

	return errs
}

func numberField(data map[string]interface{}, key string) (float64, bool) {
	raw, ok := data[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
