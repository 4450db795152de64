package validation

import (
	"testing"

	"github.com/casafile/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validForm builds the minimal clean document: one non-resident owner,
// one property owned all year, one 100% assignment.
func validForm() *models.FormData {
	owner := validOwner()
	property := validProperty()
	return &models.FormData{
		Owners:     []*models.Owner{owner},
		Properties: []*models.Property{property},
		Assignments: assignmentSet(&models.OwnerPropertyAssignment{
			PropertyID:          property.ID,
			OwnerID:             owner.ID,
			OwnershipPercentage: 100,
		}),
	}
}

func TestValidateFormData_CleanDocument(t *testing.T) {
	assert.Empty(t, ValidateFormData(validForm()))
}

func TestValidateFormData_SingleOwnershipError(t *testing.T) {
	form := validForm()
	form.Assignments.Get(form.Properties[0].ID, form.Owners[0].ID).OwnershipPercentage = 60

	errs := ValidateFormData(form)
	require.Len(t, errs, 1)
	assert.Equal(t, "assignments."+form.Properties[0].ID+".ownershipPercentage", errs[0].Field)
	assert.Equal(t, "Total ownership percentage must be 100% (currently 60%)", errs[0].Message)
}

func TestValidateFormData_Namespacing(t *testing.T) {
	form := validForm()
	second := validProperty()
	second.ID = "property-2"
	second.Address.Comune = ""
	form.Properties = append(form.Properties, second)
	form.Owners[0].FirstName = ""

	errs := ValidateFormData(form)

	paths := fields(errs)
	assert.Contains(t, paths, "owners[0].firstName")
	assert.Contains(t, paths, "properties[1].address.comune")
	// Second property has no assignments at all.
	assert.Contains(t, paths, "assignments.property-2.ownershipPercentage")
}

func TestValidateFormData_CompositionOrder(t *testing.T) {
	// Owners come first, then each property immediately followed by its
	// assignment errors, in document order.
	form := validForm()
	form.Owners[0].LastName = ""
	form.Properties[0].Address.Zip = ""
	form.Assignments.Get(form.Properties[0].ID, form.Owners[0].ID).OwnershipPercentage = 50

	errs := ValidateFormData(form)
	require.Len(t, errs, 3)
	assert.Equal(t, "owners[0].lastName", errs[0].Field)
	assert.Equal(t, "properties[0].address.zip", errs[1].Field)
	assert.Equal(t, "assignments."+form.Properties[0].ID+".ownershipPercentage", errs[2].Field)
}

func TestValidateFormData_Idempotent(t *testing.T) {
	form := validForm()
	form.Owners[0].FirstName = ""
	form.Properties[0].OccupancyPeriods[0].Months = 8
	form.Assignments.Get(form.Properties[0].ID, form.Owners[0].ID).OwnershipPercentage = 60

	first := ValidateFormData(form)
	second := ValidateFormData(form)

	assert.Equal(t, first, second)
}

func TestValidateFormData_EmptyDocument(t *testing.T) {
	assert.Empty(t, ValidateFormData(models.NewFormData()))
}

func TestValidateOwners_Namespacing(t *testing.T) {
	first := validOwner()
	second := validOwner()
	second.ID = "owner-2"
	second.LastName = " "

	errs := ValidateOwners([]*models.Owner{first, second})
	require.Len(t, errs, 1)
	assert.Equal(t, "owners[1].lastName", errs[0].Field)
}

func TestValidateProperties_Namespacing(t *testing.T) {
	first := validProperty()
	second := validProperty()
	second.ID = "property-2"
	second.OccupancyPeriods = []models.OccupancyPeriod{
		{Status: models.OccupancyLongTermRental, Months: 8},
	}

	errs := ValidateProperties([]*models.Property{first, second})
	require.Len(t, errs, 1)
	assert.Equal(t, "properties[1].occupancyPeriods", errs[0].Field)
	assert.Contains(t, errs[0].Message, "currently 8")
}
