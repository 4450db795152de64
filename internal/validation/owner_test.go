package validation

import (
	"testing"
	"time"

	"github.com/casafile/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOwner() *models.Owner {
	dob := time.Date(1991, time.April, 8, 0, 0, 0, 0, time.UTC)
	return &models.Owner{
		ID:             "owner-1",
		FirstName:      "Matteo",
		LastName:       "Moretti",
		DateOfBirth:    &dob,
		CountryOfBirth: "Italy",
		Citizenship:    "Italian",
		MaritalStatus:  models.MaritalMarried,
		ItalianTaxCode: "MRTMTT91D08F205J",
		Address: models.Address{
			Street:  "12 Rue de la Paix",
			City:    "Paris",
			Zip:     "75002",
			Country: "France",
		},
		IsResidentInItaly: false,
	}
}

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateOwner_Valid(t *testing.T) {
	errs := ValidateOwner(validOwner())
	assert.Empty(t, errs)
}

func TestValidateOwner_RequiredFields(t *testing.T) {
	owner := &models.Owner{}
	errs := ValidateOwner(owner)

	assert.ElementsMatch(t, []string{
		"firstName",
		"lastName",
		"dateOfBirth",
		"countryOfBirth",
		"italianTaxCode",
		"address.street",
		"address.city",
		"address.country",
		"address.zip",
	}, fields(errs))
}

func TestValidateOwner_WhitespaceOnlyIsMissing(t *testing.T) {
	owner := validOwner()
	owner.FirstName = "   "
	owner.Address.City = "\t"

	errs := ValidateOwner(owner)
	assert.ElementsMatch(t, []string{"firstName", "address.city"}, fields(errs))
}

func TestValidateOwner_TaxCode(t *testing.T) {
	t.Run("lower case input validates once upper-cased", func(t *testing.T) {
		owner := validOwner()
		owner.ItalianTaxCode = "mrtmtt91d08f205j"
		assert.Empty(t, ValidateOwner(owner))
	})

	t.Run("digit in place of trailing letter fails format", func(t *testing.T) {
		owner := validOwner()
		owner.ItalianTaxCode = "MRTMTT91D08F2059"

		errs := ValidateOwner(owner)
		require.Len(t, errs, 1)
		assert.Equal(t, "italianTaxCode", errs[0].Field)
		assert.Equal(t, "Invalid Codice Fiscale format", errs[0].Message)
	})

	t.Run("missing code reports required, not format", func(t *testing.T) {
		owner := validOwner()
		owner.ItalianTaxCode = ""

		errs := ValidateOwner(owner)
		require.Len(t, errs, 1)
		assert.Equal(t, "Italian Tax Code (Codice Fiscale) is required", errs[0].Message)
	})

	t.Run("wrong length fails format", func(t *testing.T) {
		owner := validOwner()
		owner.ItalianTaxCode = "MRTMTT91D08F205"

		errs := ValidateOwner(owner)
		require.Len(t, errs, 1)
		assert.Equal(t, "Invalid Codice Fiscale format", errs[0].Message)
	})
}

func TestValidateOwner_ResidenceGating(t *testing.T) {
	t.Run("non-resident never requires residence details", func(t *testing.T) {
		owner := validOwner()
		owner.IsResidentInItaly = false
		owner.ItalianResidenceDetails = nil
		assert.Empty(t, ValidateOwner(owner))

		// Even garbage content is fine when the flag is off.
		owner.ItalianResidenceDetails = &models.ItalianResidenceDetails{}
		assert.Empty(t, ValidateOwner(owner))
	})

	t.Run("resident with nil details gets all four errors", func(t *testing.T) {
		owner := validOwner()
		owner.IsResidentInItaly = true
		owner.ItalianResidenceDetails = nil

		errs := ValidateOwner(owner)
		assert.ElementsMatch(t, []string{
			"italianResidenceDetails.street",
			"italianResidenceDetails.comuneName",
			"italianResidenceDetails.province",
			"italianResidenceDetails.zip",
		}, fields(errs))
	})

	t.Run("resident with full details passes", func(t *testing.T) {
		owner := validOwner()
		owner.IsResidentInItaly = true
		owner.ItalianResidenceDetails = &models.ItalianResidenceDetails{
			Street:     "Via Roma 1",
			ComuneName: "Firenze",
			Province:   "FI",
			Zip:        "50123",
		}
		assert.Empty(t, ValidateOwner(owner))
	})

	t.Run("partial details report only the missing fields", func(t *testing.T) {
		owner := validOwner()
		owner.IsResidentInItaly = true
		owner.ItalianResidenceDetails = &models.ItalianResidenceDetails{
			Street:     "Via Roma 1",
			ComuneName: "Firenze",
		}

		errs := ValidateOwner(owner)
		assert.ElementsMatch(t, []string{
			"italianResidenceDetails.province",
			"italianResidenceDetails.zip",
		}, fields(errs))
	})
}

func TestValidateOwner_AllFailuresReported(t *testing.T) {
	// Rules are independent: every applicable failure shows up in one pass.
	owner := validOwner()
	owner.FirstName = ""
	owner.ItalianTaxCode = "not-a-code"
	owner.Address.Country = " "

	errs := ValidateOwner(owner)
	assert.ElementsMatch(t, []string{"firstName", "italianTaxCode", "address.country"}, fields(errs))
}
