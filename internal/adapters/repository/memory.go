package repository

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore implements Store with a mutex-guarded map. It keeps the same
// uniqueness and atomicity contract as SQLiteStore but nothing survives a
// restart; it backs tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Insert stores a new record, rejecting duplicate ids.
func (s *MemoryStore) Insert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ObservationID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ObservationID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.records[rec.ObservationID] = rec
	return nil
}

// Get returns the record for id.
func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, nil
}

// SetOutcome attaches the outcome for id, overwriting any prior value.
func (s *MemoryStore) SetOutcome(_ context.Context, id string, outcome bool) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	v := outcome
	rec.Outcome = &v
	s.records[id] = rec
	return rec, nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
