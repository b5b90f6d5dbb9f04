package adapters

import (
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// MapValidationDomainToApi converts a validation outcome to its wire shape.
// Errors is always a list, never null, so clients can range over it blindly.
func MapValidationDomainToApi(result domain.ValidationResult) api.ValidationResult {
	return api.ValidationResult{
		IsValid: result.Valid,
		Errors:  append([]string{}, result.Errors...),
	}
}
