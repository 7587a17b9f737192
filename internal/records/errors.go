package records

import (
	"errors"
	"fmt"
)

// ErrForbidden means the actor is authenticated but not entitled to the
// record. Absence of the record itself surfaces as store.ErrNotFound.
var ErrForbidden = errors.New("forbidden")

// ValidationError is a field-level rejection of a request input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, value string) *ValidationError {
	if value == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}
