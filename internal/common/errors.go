package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound            = errors.New("not found")
	ErrorAmbiguous           = errors.New("more than one record matches")
	ErrorConstraintViolation = errors.New("constraint violation")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorConflict     = errors.New("conflict")

	// Input errors.
	ErrorValidation     = errors.New("validation error")
	ErrorImmutableField = errors.New("field is not client-settable")
	ErrorBodyTooLarge   = errors.New("request body too large")
)

// ConflictError reports a write rejected by a store constraint. Input is the
// payload the caller tried to persist.
type ConflictError struct {
	Input any
	Err   error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("data [%+v] can't be added", e.Input)
}

// Unwrap exposes both ErrorConflict and the underlying store error to errors.Is.
func (e *ConflictError) Unwrap() []error {
	return []error{ErrorConflict, e.Err}
}
