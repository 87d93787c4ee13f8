package domain

import "errors"

var (
	// ErrInvalidName is returned when a name strips to nothing during
	// slug normalization. Fatal to that record, not to the batch.
	ErrInvalidName = errors.New("catalog: name normalizes to empty slug")

	// ErrNotFound is returned by read paths when no record matches.
	ErrNotFound = errors.New("catalog: not found")

	// ErrUnknownCollection is programmer error: the collection id is not
	// configured at all (as opposed to out-of-scope, which is an empty,
	// non-applicable result).
	ErrUnknownCollection = errors.New("catalog: unknown collection id")
)
