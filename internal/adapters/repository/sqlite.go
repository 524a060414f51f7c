package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS predictions (
	observation_id TEXT PRIMARY KEY,
	observation    TEXT NOT NULL,
	prediction     INTEGER NOT NULL,
	outcome        INTEGER,
	created_at     TEXT NOT NULL
);
`

// Default timeouts for SQLite operations.
const (
	defaultOpTimeout   = 2 * time.Second
	defaultBusyTimeout = 5 * time.Second
)

// SQLite extended result codes for uniqueness violations.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// SQLite primary result codes for contended connections.
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

// SQLiteStore implements Store on a SQLite database file. Uniqueness is
// enforced by the PRIMARY KEY on observation_id, so concurrent inserts of
// the same id resolve inside the storage engine.
type SQLiteStore struct {
	db          *sql.DB
	opTimeout   time.Duration
	busyTimeout time.Duration
}

// NewSQLiteStore opens (or creates) the database at path and runs the
// schema migration. Writes are durable once a call returns. The pragmas
// ride on the DSN so that every connection in the database/sql pool gets
// the WAL journal and the busy handler, not just the one that happens to
// execute a PRAGMA statement.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		opTimeout:   defaultOpTimeout,
		busyTimeout: defaultBusyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		path, s.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.db = db
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Insert persists a new prediction record.
func (s *SQLiteStore) Insert(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO predictions (observation_id, observation, prediction, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ObservationID, rec.RawObservation, rec.Decision, nullableBool(rec.Outcome),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ObservationID)
		}
		return translateErr("insert", err)
	}
	return nil
}

// Get returns the record for id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	rec, err := scanRecord(s.db.QueryRowContext(ctx,
		`SELECT observation_id, observation, prediction, outcome, created_at
		 FROM predictions WHERE observation_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Record{}, translateErr("get", err)
	}
	return rec, nil
}

// SetOutcome attaches the outcome for id, overwriting any prior value.
func (s *SQLiteStore) SetOutcome(ctx context.Context, id string, outcome bool) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, translateErr("set outcome", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`UPDATE predictions SET outcome = ? WHERE observation_id = ?`, outcome, id)
	if err != nil {
		return Record{}, translateErr("set outcome", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Record{}, translateErr("set outcome", err)
	}
	if affected == 0 {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rec, err := scanRecord(tx.QueryRowContext(ctx,
		`SELECT observation_id, observation, prediction, outcome, created_at
		 FROM predictions WHERE observation_id = ?`, id))
	if err != nil {
		return Record{}, translateErr("set outcome", err)
	}
	if err := tx.Commit(); err != nil {
		return Record{}, translateErr("set outcome", err)
	}
	return rec, nil
}

// Count returns the number of stored predictions.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&n); err != nil {
		return 0, translateErr("count", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var outcome sql.NullBool
	var createdStr string
	if err := row.Scan(&rec.ObservationID, &rec.RawObservation, &rec.Decision, &outcome, &createdStr); err != nil {
		return Record{}, err
	}
	if outcome.Valid {
		v := outcome.Bool
		rec.Outcome = &v
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

// isUniqueViolation detects a primary-key collision from the driver.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		code := serr.Code()
		return code == sqliteConstraintPrimaryKey || code == sqliteConstraintUnique
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isBusy detects a contended connection. Extended codes such as
// SQLITE_BUSY_SNAPSHOT carry the primary code in the low byte.
func isBusy(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		primary := serr.Code() & 0xff
		return primary == sqliteBusy || primary == sqliteLocked
	}
	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "database table is locked")
}

// translateErr maps deadline hits and lock contention to the retriable
// ErrUnavailable.
func translateErr(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s timed out", ErrUnavailable, op)
	case isBusy(err):
		return fmt.Errorf("%w: %s hit a locked database", ErrUnavailable, op)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
