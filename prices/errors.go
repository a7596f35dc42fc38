package prices

import "errors"

var (
	// ErrMalformedRecord marks a backend price record with missing or
	// unparseable fields.
	ErrMalformedRecord = errors.New("malformed price record")

	// ErrNotFound is returned when no entry matches the current hour.
	ErrNotFound = errors.New("no price found for the current hour")

	// ErrEmptyRange is returned when an aggregate is requested over a
	// day with no entries.
	ErrEmptyRange = errors.New("no prices in range")
)
