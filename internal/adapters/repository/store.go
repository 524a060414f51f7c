// Package repository defines the prediction store interface and errors.
package repository

import (
	"context"
	"time"
)

// Record is one durably stored prediction. ObservationID, RawObservation
// and Decision are immutable once inserted; Outcome is attached later and
// may be overwritten.
type Record struct {
	ObservationID  string
	RawObservation string // original request payload, verbatim
	Decision       bool
	Outcome        *bool
	CreatedAt      time.Time
}

// Resolved reports whether an outcome has been attached.
func (r Record) Resolved() bool {
	return r.Outcome != nil
}

// Store provides keyed access to prediction records. Implementations must
// enforce ObservationID uniqueness at the storage layer: concurrent inserts
// of the same id yield exactly one success and ErrDuplicateID for the rest.
type Store interface {
	// Insert persists a new record atomically.
	// Returns ErrDuplicateID if the id already exists.
	Insert(ctx context.Context, rec Record) error

	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// SetOutcome attaches (or overwrites) the outcome for id and returns
	// the updated record including its original decision, or ErrNotFound.
	SetOutcome(ctx context.Context, id string, outcome bool) (Record, error)

	// Count returns the number of stored records. The error is surfaced
	// so a failed count is distinguishable from an empty store.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying storage.
	Close() error
}
