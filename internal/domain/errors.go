package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the service-wide error taxonomy. Handlers map
// these onto HTTP status codes; everything else is an internal error.
var (
	// ErrNotFound indicates an unknown public game id.
	ErrNotFound = errors.New("game not found")

	// ErrUnauthorized indicates a missing or wrong admin token on an
	// admin-only operation.
	ErrUnauthorized = errors.New("invalid admin token")

	// ErrForbidden indicates that neither a valid owner API key nor a
	// valid admin token was presented on an owner-or-admin operation.
	ErrForbidden = errors.New("not authorized for this game")

	// ErrConflict indicates a unique-constraint violation, e.g. a token
	// collision at registration. Never retried silently.
	ErrConflict = errors.New("unique constraint violation")
)

// ValidationError rejects malformed or out-of-range input before any
// store access happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
