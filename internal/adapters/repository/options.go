package repository

import "time"

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithOpTimeout bounds each store operation. Deadline hits surface as
// ErrUnavailable.
func WithOpTimeout(timeout time.Duration) Option {
	return func(s *SQLiteStore) {
		if timeout > 0 {
			s.opTimeout = timeout
		}
	}
}

// WithBusyTimeout sets the SQLite busy handler timeout for contended
// writes.
func WithBusyTimeout(timeout time.Duration) Option {
	return func(s *SQLiteStore) {
		if timeout > 0 {
			s.busyTimeout = timeout
		}
	}
}
