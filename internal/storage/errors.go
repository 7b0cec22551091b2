package storage

import "errors"

var (
	// ErrNotFound is returned by lookups when no record matches.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned when an id cannot be coerced to the
	// backend's native identifier type.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicate is returned when an insert violates a unique index
	// (email, or a booking slot taken by a concurrent writer).
	ErrDuplicate = errors.New("duplicate record")
)
