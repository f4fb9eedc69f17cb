package engine

import (
	"context"
	"errors"
	"sync"
	"time"
)

// LoadState is where the current load attempt stands.
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// Snapshot is an immutable view of the store. Records is never mutated
// after it is published.
type Snapshot struct {
	State    LoadState
	Records  []*Record
	Err      error
	Source   string
	LoadedAt time.Time
	Loads    int
}

// ErrLoading is returned by Ready while a load is in flight.
var ErrLoading = errors.New("dataset is loading")

// Ready returns the records if the snapshot holds a loaded dataset.
func (s Snapshot) Ready() ([]*Record, error) {
	switch s.State {
	case StateReady:
		return s.Records, nil
	case StateFailed:
		return nil, s.Err
	default:
		return nil, ErrLoading
	}
}

// Store holds the dataset. It is written once per load and read by every
// request in between.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	// gen orders overlapping loads so an older load cannot overwrite a newer one.
	gen uint64
}

// NewStore returns a store in the loading state.
func NewStore() *Store {
	return &Store{snap: Snapshot{State: StateLoading}}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// begin marks a new load and discards the previous dataset.
func (s *Store) begin(source string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.snap = Snapshot{State: StateLoading, Source: source, Loads: s.snap.Loads}
	return s.gen
}

func (s *Store) finish(gen uint64, records []*Record, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.snap.Loads++
	if err != nil {
		s.snap.State = StateFailed
		s.snap.Err = err
		return true
	}
	s.snap.State = StateReady
	s.snap.Records = records
	s.snap.LoadedAt = time.Now()
	return true
}

// Set publishes an already parsed dataset.
func (s *Store) Set(source string, records []*Record) {
	s.finish(s.begin(source), records, nil)
}

// Reload loads src into the store. It returns the number of records this
// load read, which a newer overlapping load may already have replaced.
func (s *Store) Reload(ctx context.Context, src Source) (int, error) {
	gen := s.begin(src.String())
	records, err := Load(ctx, src)
	s.finish(gen, records, err)
	return len(records), err
}
