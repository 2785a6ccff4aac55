package content

import "github.com/pkg/errors"

type ValidationError struct {
	error
}

func NewValidationError(err error) ValidationError {
	return ValidationError{errors.WithStack(err)}
}

// IsValidationError reports whether err, or its cause, is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(ValidationError)
	return ok
}
