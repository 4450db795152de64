package validation

import (
	"regexp"
	"strings"

	"github.com/casafile/api/internal/models"
)

// codiceFiscaleRe matches the 16-character Italian personal tax code.
// Input is upper-cased before matching.
var codiceFiscaleRe = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateOwner checks a single owner record. All rules are evaluated
// independently; the only short-circuit is that the tax-code format check
// runs only once the required check passes.
func ValidateOwner(owner *models.Owner) []FieldError {
	var errs []FieldError

	if blank(owner.FirstName) {
		errs = append(errs, FieldError{Field: "firstName", Message: "First name is required"})
	}
	if blank(owner.LastName) {
		errs = append(errs, FieldError{Field: "lastName", Message: "Last name is required"})
	}
	if owner.DateOfBirth == nil {
		errs = append(errs, FieldError{Field: "dateOfBirth", Message: "Date of birth is required"})
	}
	if blank(owner.CountryOfBirth) {
		errs = append(errs, FieldError{Field: "countryOfBirth", Message: "Country of birth is required"})
	}

	if blank(owner.ItalianTaxCode) {
		errs = append(errs, FieldError{Field: "italianTaxCode", Message: "Italian Tax Code (Codice Fiscale) is required"})
	} else if !codiceFiscaleRe.MatchString(strings.ToUpper(owner.ItalianTaxCode)) {
		errs = append(errs, FieldError{Field: "italianTaxCode", Message: "Invalid Codice Fiscale format"})
	}

	if blank(owner.Address.Street) {
		errs = append(errs, FieldError{Field: "address.street", Message: "Street address outside Italy is required"})
	}
	if blank(owner.Address.City) {
		errs = append(errs, FieldError{Field: "address.city", Message: "City outside Italy is required"})
	}
	if blank(owner.Address.Country) {
		errs = append(errs, FieldError{Field: "address.country", Message: "Country outside Italy is required"})
	}
	if blank(owner.Address.Zip) {
		errs = append(errs, FieldError{Field: "address.zip", Message: "ZIP/Postal code outside Italy is required"})
	}

	// Italian residence sub-fields only apply to residents; for
	// non-residents they are valid regardless of content.
	if owner.IsResidentInItaly {
		details := owner.ItalianResidenceDetails
		if details == nil {
			details = &models.ItalianResidenceDetails{}
		}
		if blank(details.Street) {
			errs = append(errs, FieldError{Field: "italianResidenceDetails.street", Message: "Italian street address is required for residents"})
		}
		if blank(details.ComuneName) {
			errs = append(errs, FieldError{Field: "italianResidenceDetails.comuneName", Message: "Comune name is required for residents"})
		}
		if blank(details.Province) {
			errs = append(errs, FieldError{Field: "italianResidenceDetails.province", Message: "Province is required for residents"})
		}
		if blank(details.Zip) {
			errs = append(errs, FieldError{Field: "italianResidenceDetails.zip", Message: "Italian ZIP code is required for residents"})
		}
	}

	return errs
}
