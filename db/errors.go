package db

import (
	"errors"
	"fmt"
)

// NotFoundError reports a referenced entity id that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func notFound(kind, id string) error { return &NotFoundError{Kind: kind, ID: id} }

// ConflictError reports an operation that violates a business invariant
// (asset unavailable, lending inactive, entity still referenced, ...).
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func conflict(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// ValidationError reports a malformed field value that survived transport
// binding (wrong JSON type inside a patch map, unknown enum value).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var cf *ConflictError
	return errors.As(err, &cf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
