package repository

import "errors"

// Sentinel kinds for prediction store errors.
var (
	// ErrDuplicateID marks an insert whose observation id already exists.
	ErrDuplicateID = errors.New("observation id already exists")
	// ErrNotFound marks a lookup or outcome update for an unknown id.
	ErrNotFound = errors.New("observation id not found")
	// ErrUnavailable marks a store operation that timed out; callers may
	// retry.
	ErrUnavailable = errors.New("store unavailable")
)
