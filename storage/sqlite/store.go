// Package sqlite implements storage.Storer on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jmakk0301/aws-console-time-keeper/storage"
)

// Store implements the storage.Storer interface for SQLite.
type Store struct {
	db       *sql.DB
	capacity int
}

// New opens (creating if needed) the database file and runs migrations.
func New(ctx context.Context, dataSourceName string, capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = storage.DefaultHistoryCapacity
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_journal_mode=WAL", dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	s := &Store{db: db, capacity: capacity}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS captures (
	id          TEXT PRIMARY KEY,
	address     TEXT NOT NULL,
	scheme      TEXT NOT NULL,
	start_ms    INTEGER NOT NULL,
	end_ms      INTEGER NOT NULL,
	mode        TEXT NOT NULL,
	captured_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_captures_captured_at_id ON captures (captured_at DESC, id DESC);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveCapture inserts a capture and evicts the oldest rows past capacity,
// in one transaction so a crash cannot leave the history over-full.
func (s *Store) SaveCapture(ctx context.Context, c *storage.Capture) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CapturedAt.IsZero() {
		c.CapturedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO captures (id, address, scheme, start_ms, end_ms, mode, captured_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Address, c.Scheme, c.StartMS, c.EndMS, c.Mode,
		c.CapturedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert capture: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM captures WHERE id NOT IN (
			SELECT id FROM captures ORDER BY captured_at DESC, id DESC LIMIT ?
		)`, s.capacity,
	)
	if err != nil {
		return fmt.Errorf("evict old captures: %w", err)
	}
	return tx.Commit()
}

// LastCapture returns the most recent capture.
func (s *Store) LastCapture(ctx context.Context) (*storage.Capture, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, address, scheme, start_ms, end_ms, mode, captured_at
		 FROM captures ORDER BY captured_at DESC, id DESC LIMIT 1`)
	c, err := scanCapture(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("query last capture: %w", err)
	}
	return c, nil
}

// ListCaptures returns up to limit captures, newest first.
func (s *Store) ListCaptures(ctx context.Context, limit int) ([]storage.Capture, error) {
	if limit <= 0 || limit > s.capacity {
		limit = s.capacity
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, address, scheme, start_ms, end_ms, mode, captured_at
		 FROM captures ORDER BY captured_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query captures: %w", err)
	}
	defer rows.Close()

	var out []storage.Capture
	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan capture: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCapture(row scanner) (*storage.Capture, error) {
	var c storage.Capture
	var capturedAt string
	if err := row.Scan(&c.ID, &c.Address, &c.Scheme, &c.StartMS, &c.EndMS, &c.Mode, &capturedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, capturedAt)
	if err != nil {
		return nil, fmt.Errorf("bad captured_at %q: %w", capturedAt, err)
	}
	c.CapturedAt = t
	return &c, nil
}
