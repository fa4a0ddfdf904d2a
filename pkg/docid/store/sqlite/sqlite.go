package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/docid/pkg/docid/freq"
	"github.com/cognicore/docid/pkg/docid/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and creates the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS frequencies (
	word TEXT PRIMARY KEY,
	count INTEGER NOT NULL CHECK(count >= 0)
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	min_id_length INTEGER NOT NULL,
	max_mean_frequency REAL
);

CREATE TABLE IF NOT EXISTS assignments (
	run_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	document TEXT NOT NULL,
	generated_id TEXT NOT NULL,
	PRIMARY KEY(run_id, idx),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_assignments_generated_id ON assignments(generated_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveFrequencies replaces the stored snapshot
func (s *sqliteStore) SaveFrequencies(ctx context.Context, entries []freq.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM frequencies`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO frequencies (word, count) VALUES (?, ?)
ON CONFLICT(word) DO UPDATE SET count=excluded.count;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Word, e.Count); err != nil {
			return fmt.Errorf("insert %q: %w", e.Word, err)
		}
	}

	return tx.Commit()
}

// LoadFrequencies returns the snapshot by descending count
func (s *sqliteStore) LoadFrequencies(ctx context.Context) ([]freq.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, count FROM frequencies ORDER BY count DESC, word ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []freq.Entry
	for rows.Next() {
		var e freq.Entry
		if err := rows.Scan(&e.Word, &e.Count); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecordRun stores a run and its assignments in one transaction
func (s *sqliteStore) RecordRun(ctx context.Context, r store.Run) error {
	if err := store.ValidateRun(r); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxMean sql.NullFloat64
	if r.MaxMeanFrequency != nil {
		maxMean = sql.NullFloat64{Float64: *r.MaxMeanFrequency, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, created_at, min_id_length, max_mean_frequency)
VALUES (?, ?, ?, ?);
`, r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.MinIDLength, maxMean)
	if err != nil {
		if isConstraint(err) {
			return fmt.Errorf("%s: %w", r.ID, store.ErrDuplicateRun)
		}
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO assignments (run_id, idx, document, generated_id) VALUES (?, ?, ?, ?);
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range r.Assignments {
		if _, err := stmt.ExecContext(ctx, r.ID, a.Index, a.Document, a.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun loads a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	return s.loadRun(ctx, `SELECT id, created_at, min_id_length, max_mean_frequency FROM runs WHERE id = ?`, id)
}

// LatestRun loads the most recent run. Run IDs are ULIDs, so the greatest ID
// is the newest.
func (s *sqliteStore) LatestRun(ctx context.Context) (store.Run, bool, error) {
	return s.loadRun(ctx, `SELECT id, created_at, min_id_length, max_mean_frequency FROM runs ORDER BY id DESC LIMIT 1`)
}

func (s *sqliteStore) loadRun(ctx context.Context, query string, args ...interface{}) (store.Run, bool, error) {
	var (
		r         store.Run
		createdAt string
		maxMean   sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&r.ID, &createdAt, &r.MinIDLength, &maxMean)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}

	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return store.Run{}, false, err
	}
	if maxMean.Valid {
		v := maxMean.Float64
		r.MaxMeanFrequency = &v
	}

	if r.Assignments, err = s.loadAssignments(ctx, r.ID); err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

func (s *sqliteStore) loadAssignments(ctx context.Context, runID string) ([]store.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT idx, document, generated_id FROM assignments WHERE run_id = ? ORDER BY idx ASC;
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Assignment
	for rows.Next() {
		var a store.Assignment
		if err := rows.Scan(&a.Index, &a.Document, &a.ID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func isConstraint(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY")
}
