package apperr

import "errors"

// ValidationError is an application-level rule violation detected
// before persistence is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError is a durable schema rule broken at storage time,
// e.g. a unique constraint violated by a concurrent insert.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

func Conflict(msg string) error {
	return &ConflictError{Message: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
