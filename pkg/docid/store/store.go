// Package store persists frequency snapshots and the history of generated IDs.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cognicore/docid/pkg/docid/freq"
	"github.com/cognicore/docid/pkg/docid/internalerr"
)

// Store is the persistence interface shared by the memory and SQLite backends.
type Store interface {
	Close() error

	// Frequencies
	SaveFrequencies(ctx context.Context, entries []freq.Entry) error
	LoadFrequencies(ctx context.Context) ([]freq.Entry, error)

	// Runs
	RecordRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	LatestRun(ctx context.Context) (Run, bool, error)
}

// Run is one batch of generated IDs.
type Run struct {
	ID               string
	CreatedAt        time.Time
	MinIDLength      int
	MaxMeanFrequency *float64 // nil when no threshold applied
	Assignments      []Assignment
}

// Assignment maps an input document to its generated ID.
type Assignment struct {
	Index    int
	Document string
	ID       string
}

// ErrDuplicateRun is returned when a run ID is recorded twice.
var ErrDuplicateRun = errors.New("run already recorded")

// ValidateRun checks the fields every backend requires.
func ValidateRun(r Run) error {
	if r.ID == "" {
		return internalerr.New(internalerr.KindInput, "store.RecordRun", "run id must not be empty")
	}
	return nil
}

type frequencySource struct {
	st Store
}

// FrequencySource exposes the stored snapshot as a freq.Source. An empty
// snapshot loads as a not-found cache error.
func FrequencySource(st Store) freq.Source {
	return frequencySource{st: st}
}

func (s frequencySource) Load(ctx context.Context) (*freq.Table, []freq.Skipped, error) {
	const op = "store.LoadFrequencies"

	entries, err := s.st.LoadFrequencies(ctx)
	if err != nil {
		return nil, nil, internalerr.Wrap(internalerr.KindCache, op, err)
	}
	if len(entries) == 0 {
		return nil, nil, internalerr.Wrap(internalerr.KindCache, op, fmt.Errorf("no stored frequencies: %w", internalerr.ErrNotFound))
	}
	return freq.FromEntries(entries), nil, nil
}

func (s frequencySource) String() string {
	return "store"
}
