package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/batchview/internal/batch"
)

// Phase is the sync state of the bound identifier.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Source tags where a ready record came from.
type Source int

const (
	SourceNone Source = iota
	SourceRemote
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Snapshot represents the latest sync state available to readers.
type Snapshot struct {
	Phase      Phase
	Identifier string
	// Record is the last record shown for Identifier; it stays set while a
	// refresh is loading or after a failed refresh.
	Record    *batch.Record
	Source    Source
	FetchedAt time.Time
	Err       error
	// LastUpdated moves only on transitions into PhaseReady.
	LastUpdated         time.Time
	ConsecutiveFailures int
}

// HasRecord reports whether a record is available to display.
func (s Snapshot) HasRecord() bool {
	return s.Record != nil
}

// IsDegraded reports a ready state served from the offline dataset.
func (s Snapshot) IsDegraded() bool {
	return s.Phase == PhaseReady && s.Source == SourceFallback
}

// Store coordinates concurrent updates to the snapshot. The sync controller
// is the only writer.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetLoading marks id as loading. The previous record is kept when id is
// unchanged and dropped otherwise.
func (s *Store) SetLoading(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Identifier != id {
		s.snapshot = Snapshot{}
	}
	s.snapshot.Identifier = id
	s.snapshot.Phase = PhaseLoading
}

// SetReady records a successful fetch.
func (s *Store) SetReady(id string, rec batch.Record, src Source, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup := rec
	s.snapshot = Snapshot{
		Phase:       PhaseReady,
		Identifier:  id,
		Record:      &dup,
		Source:      src,
		FetchedAt:   at,
		LastUpdated: at,
	}
}

// SetFailed records a failed attempt. A record previously shown for the same
// identifier stays visible; LastUpdated is not moved.
func (s *Store) SetFailed(id string, err error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Identifier != id {
		s.snapshot = Snapshot{Identifier: id}
	}
	s.snapshot.Phase = PhaseFailed
	s.snapshot.Err = err
	s.snapshot.FetchedAt = at
	s.snapshot.ConsecutiveFailures++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.Record != nil {
		dup := *s.snapshot.Record
		snap.Record = &dup
	}
	if s.snapshot.Err != nil {
		snap.Err = fmt.Errorf("%w", s.snapshot.Err)
	}
	return snap
}
