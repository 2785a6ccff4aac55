package task

import "github.com/pkg/errors"

// ErrPermanent marks failures which will not go away by running the task
// again, such as undecodable payloads.
var ErrPermanent = errors.New("permanent task failure")

type permanentError struct {
	err error
}

// Permanent marks err as a permanent failure, keeping it as the cause.
func Permanent(err error) error {
	if err == nil {
		return nil
	}

	return permanentError{err}
}

func (e permanentError) Error() string {
	return e.err.Error()
}

func (e permanentError) Cause() error {
	return e.err
}

func (e permanentError) Unwrap() error {
	return e.err
}

func (e permanentError) Is(target error) bool {
	return target == ErrPermanent
}

// IsPermanent reports whether err, or any error it wraps, is permanent.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent)
}
