package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

// ErrRunNotFound is returned when a cached run ID does not exist.
var ErrRunNotFound = errors.New("cached run not found")

// Run is one cached fetch: the raw sessions payload plus enough metadata
// to re-render reports without hitting the API again.
type Run struct {
	ID        string
	FetchedAt time.Time
	ACN       string
	Account   string
	Total     int
	Valid     int
	Payload   []byte
}

// Store is a local libsql database of cached runs.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	fetched_at TEXT NOT NULL,
	acn TEXT NOT NULL,
	account TEXT NOT NULL,
	total INTEGER NOT NULL,
	valid INTEGER NOT NULL,
	payload BLOB NOT NULL
);
`

// Open opens (creating if needed) the run cache at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize run cache: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRun stores one fetched payload.
func (s *Store) SaveRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, fetched_at, acn, account, total, valid, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.FetchedAt.UTC().Format(time.RFC3339), r.ACN, r.Account, r.Total, r.Valid, r.Payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", r.ID, err)
	}
	return nil
}

// GetRun loads a cached run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, fetched_at, acn, account, total, valid, payload FROM runs WHERE id = ?`, id)

	var r Run
	var fetchedAt string
	err := row.Scan(&r.ID, &fetchedAt, &r.ACN, &r.Account, &r.Total, &r.Valid, &r.Payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	r.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
	return &r, nil
}

// ListRuns returns the most recent cached runs, newest first, without
// their payloads.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fetched_at, acn, account, total, valid FROM runs
		 ORDER BY fetched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var fetchedAt string
		if err := rows.Scan(&r.ID, &fetchedAt, &r.ACN, &r.Account, &r.Total, &r.Valid); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
