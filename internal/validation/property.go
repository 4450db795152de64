package validation

import (
	"fmt"

	"github.com/casafile/api/internal/models"
)

// MonthsPerYear is the total the occupancy periods of a property must
// account for.
const MonthsPerYear = 12

// ValidateProperty checks a single property record. Purchase and sale
// details are required only when the activity classification says the
// property changed hands; a price of zero counts as not provided.
func ValidateProperty(property *models.Property) []FieldError {
	var errs []FieldError

	if property.Label != nil && blank(*property.Label) {
		errs = append(errs, FieldError{Field: "label", Message: "Label cannot be blank"})
	}

	if blank(property.Address.Comune) {
		errs = append(errs, FieldError{Field: "address.comune", Message: "Comune is required"})
	}
	if blank(property.Address.Province) {
		errs = append(errs, FieldError{Field: "address.province", Message: "Province is required"})
	}
	if blank(property.Address.Street) {
		errs = append(errs, FieldError{Field: "address.street", Message: "Street address is required"})
	}
	if blank(property.Address.Zip) {
		errs = append(errs, FieldError{Field: "address.zip", Message: "ZIP code is required"})
	}

	if property.WasPurchased() {
		if property.PurchaseDate == nil {
			errs = append(errs, FieldError{Field: "purchaseDate", Message: "Purchase date is required"})
		}
		if property.PurchasePrice == nil || *property.PurchasePrice == 0 {
			errs = append(errs, FieldError{Field: "purchasePrice", Message: "Purchase price is required"})
		}
	}

	if property.WasSold() {
		if property.SaleDate == nil {
			errs = append(errs, FieldError{Field: "saleDate", Message: "Sale date is required"})
		}
		if property.SalePrice == nil || *property.SalePrice == 0 {
			errs = append(errs, FieldError{Field: "salePrice", Message: "Sale price is required"})
		}
	}

	if property.PurchaseDate != nil && property.SaleDate != nil &&
		property.SaleDate.Before(*property.PurchaseDate) {
		errs = append(errs, FieldError{Field: "saleDate", Message: "Sale date cannot precede purchase date"})
	}

	if len(property.OccupancyPeriods) == 0 {
		errs = append(errs, FieldError{Field: "occupancyPeriods", Message: "At least one occupancy period is required"})
	} else {
		total := 0
		for _, period := range property.OccupancyPeriods {
			total += period.Months
		}
		if total != MonthsPerYear {
			errs = append(errs, FieldError{
				Field:   "occupancyPeriods",
				Message: fmt.Sprintf("Total months across all periods must equal 12 (currently %d)", total),
			})
		}
		for i, period := range property.OccupancyPeriods {
			if period.Months < 0 || period.Months > MonthsPerYear {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("occupancyPeriods[%d].months", i),
					Message: "Months must be between 0 and 12",
				})
			}
		}
	}

	return errs
}
