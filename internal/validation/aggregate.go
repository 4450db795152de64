package validation

import (
	"fmt"

	"github.com/casafile/api/internal/models"
)

// prefix rewrites a list of errors under an entity namespace.
func prefix(errs []FieldError, ns string) []FieldError {
	out := make([]FieldError, len(errs))
	for i, e := range errs {
		out[i] = FieldError{Field: ns + "." + e.Field, Message: e.Message}
	}
	return out
}

// ValidateOwners runs the owner validator over every owner, namespacing
// field paths as owners[i].*.
func ValidateOwners(owners []*models.Owner) []FieldError {
	var errs []FieldError
	for i, owner := range owners {
		errs = append(errs, prefix(ValidateOwner(owner), fmt.Sprintf("owners[%d]", i))...)
	}
	return errs
}

// ValidateProperties runs the property validator over every property,
// namespacing field paths as properties[i].*.
func ValidateProperties(properties []*models.Property) []FieldError {
	var errs []FieldError
	for i, property := range properties {
		errs = append(errs, prefix(ValidateProperty(property), fmt.Sprintf("properties[%d]", i))...)
	}
	return errs
}

// ValidatePropertyAssignments runs the assignment validator for every
// property, namespacing field paths as assignments.<propertyId>.*.
func ValidatePropertyAssignments(form *models.FormData) []FieldError {
	var errs []FieldError
	for _, property := range form.Properties {
		scoped := ValidateAssignments(form.Assignments, property.ID)
		errs = append(errs, prefix(scoped, "assignments."+property.ID)...)
	}
	return errs
}

// ValidateFormData composes all entity validators over the whole
// document: owners first, then each property immediately followed by its
// assignment validation, in document order. Running it twice on an
// unchanged document yields identical results.
func ValidateFormData(form *models.FormData) []FieldError {
	var errs []FieldError

	errs = append(errs, ValidateOwners(form.Owners)...)

	for i, property := range form.Properties {
		errs = append(errs, prefix(ValidateProperty(property), fmt.Sprintf("properties[%d]", i))...)
		scoped := ValidateAssignments(form.Assignments, property.ID)
		errs = append(errs, prefix(scoped, "assignments."+property.ID)...)
	}

	return errs
}
