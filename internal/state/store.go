package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/sphene/coda/internal/library"
	"github.com/sphene/coda/internal/mpd"
)

// Snapshot represents the latest player data available to the UI.
type Snapshot struct {
	Status              mpd.PlayerStatus
	HasStatus           bool
	Current             *library.Track
	Queue               []library.Track
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the daemon has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(status *mpd.PlayerStatus, current *library.Track, queue []library.Track, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Queue = cloneQueue(queue)
	s.snapshot.Current = cloneTrack(current)
	if status != nil {
		s.snapshot.Status = *status
		s.snapshot.HasStatus = true
	} else {
		s.snapshot.HasStatus = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Queue = cloneQueue(s.snapshot.Queue)
	snap.Current = cloneTrack(s.snapshot.Current)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneQueue(tracks []library.Track) []library.Track {
	if len(tracks) == 0 {
		return nil
	}
	dup := make([]library.Track, len(tracks))
	copy(dup, tracks)
	return dup
}

func cloneTrack(t *library.Track) *library.Track {
	if t == nil {
		return nil
	}
	dup := *t
	return &dup
}
