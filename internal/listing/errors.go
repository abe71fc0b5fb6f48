package listing

import (
	"errors"
	"fmt"
)

// Repository errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrAdNotFound   = errors.New("ad not found")
)

// ValidationError reports a rejected request field. The message is shown to
// the caller verbatim, so it must not carry database detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a request validation failure.
func IsValidationError(err error) (ValidationError, bool) {
	var verr ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

// WrapRepositoryError adds operation context to a data store error.
func WrapRepositoryError(err error, operation string) error {
	return fmt.Errorf("%s: %w", operation, err)
}
