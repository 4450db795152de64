package validation

import (
	"fmt"
	"strconv"

	"github.com/casafile/api/internal/models"
)

// ValidateAssignments checks the ownership assignments of one property.
// The percentage rule applies even when the property has no assignments:
// ownership must be explicitly assigned, so an empty set reports a total
// of 0%.
func ValidateAssignments(assignments models.AssignmentSet, propertyID string) []FieldError {
	var errs []FieldError

	scoped := assignments.ForProperty(propertyID)

	total := 0.0
	for _, a := range scoped {
		total += a.OwnershipPercentage
	}
	if total != 100 {
		errs = append(errs, FieldError{
			Field:   "ownershipPercentage",
			Message: fmt.Sprintf("Total ownership percentage must be 100%% (currently %s%%)", formatPercent(total)),
		})
	}

	for _, a := range scoped {
		if a.ResidentAtProperty {
			if a.ResidentDateRange == nil || a.ResidentDateRange.From == nil {
				errs = append(errs, FieldError{Field: "residentDateRange.from", Message: "Residency start date is required"})
			}
			if a.ResidentDateRange == nil || a.ResidentDateRange.To == nil {
				errs = append(errs, FieldError{Field: "residentDateRange.to", Message: "Residency end date is required"})
			}
		}
		if a.TaxCredits != nil && *a.TaxCredits < 0 {
			errs = append(errs, FieldError{Field: "taxCredits", Message: "Tax credits cannot be negative"})
		}
	}

	return errs
}

// formatPercent renders a percentage without a trailing ".0" for whole
// numbers, so totals read "60" rather than "60.000000".
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
