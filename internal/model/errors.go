package model

import (
	"errors"
	"fmt"
)

// Validation sentinels. Use errors.Is against these.
var (
	ErrInvalidEmail        = errors.New("invalid subscriber email")
	ErrInvalidName         = errors.New("invalid subscriber name")
	ErrInvalidSubscriberID = errors.New("invalid subscriber id")
	ErrInvalidStatus       = errors.New("invalid confirmation status")
)

// ValidationError describes why an untrusted value was rejected.
// Message is safe to return to the caller.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(sentinel error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}
