package library

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecord is matched by every *RecordError.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrDataUnavailable means a collection could not be fetched. The caller
	// decides whether to fall back to a snapshot.
	ErrDataUnavailable = errors.New("data unavailable")
	ErrNotLoggedIn     = errors.New("please log in first")
	ErrForbidden       = errors.New("access forbidden")
	ErrNotFound        = errors.New("not found")
)

// RecordError describes a book or loan that breaks its data-model invariants.
type RecordError struct {
	Kind   string // "book" or "loan"
	ID     int64
	Field  string
	Reason string
}

func (e *RecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s %d: %s", e.Kind, e.ID, e.Reason)
	}
	return fmt.Sprintf("invalid %s %d: %s %s", e.Kind, e.ID, e.Field, e.Reason)
}

func (e *RecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}
