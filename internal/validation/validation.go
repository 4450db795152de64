// Package validation implements the field-level rules applied to owners,
// properties, and ownership assignments before a form can be submitted.
// Failures are data, not errors: every validator returns an ordered list
// of field/message pairs and never aborts on the first failure.
package validation

// FieldError is one validation failure, addressed by a dotted field path
// (e.g. "address.street") and carrying a human-readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
