package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRole rejects roles other than mentor or student.
	ErrInvalidRole = errors.New("invalid role")
	// ErrMentorOnly guards operations only a mentor may perform.
	ErrMentorOnly = errors.New("operation restricted to mentors")
)

// ValidationError rejects a malformed request before any mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
