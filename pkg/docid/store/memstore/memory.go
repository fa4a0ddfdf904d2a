package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/docid/pkg/docid/freq"
	"github.com/cognicore/docid/pkg/docid/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu     sync.RWMutex
	freqs  []freq.Entry
	runs   map[string]store.Run
	latest string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveFrequencies replaces the stored snapshot.
func (s *Store) SaveFrequencies(ctx context.Context, entries []freq.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.freqs = append([]freq.Entry(nil), entries...)
	return nil
}

// LoadFrequencies returns the stored snapshot.
func (s *Store) LoadFrequencies(ctx context.Context) ([]freq.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]freq.Entry(nil), s.freqs...), nil
}

// RecordRun stores r. Run IDs are unique.
func (s *Store) RecordRun(ctx context.Context, r store.Run) error {
	if err := store.ValidateRun(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[r.ID]; ok {
		return fmt.Errorf("%s: %w", r.ID, store.ErrDuplicateRun)
	}
	s.runs[r.ID] = copyRun(r)
	if r.ID > s.latest {
		s.latest = r.ID
	}
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, false, nil
	}
	return copyRun(r), true, nil
}

// LatestRun returns the run with the greatest ID.
func (s *Store) LatestRun(ctx context.Context) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == "" {
		return store.Run{}, false, nil
	}
	return copyRun(s.runs[s.latest]), true, nil
}

func copyRun(r store.Run) store.Run {
	out := r
	out.Assignments = append([]store.Assignment(nil), r.Assignments...)
	if r.MaxMeanFrequency != nil {
		v := *r.MaxMeanFrequency
		out.MaxMeanFrequency = &v
	}
	return out
}
