// Package state provides thread-safe state management for the player view.
//
// # Overview
//
// This package implements a simple but thread-safe store for sharing the
// daemon's player status, current song, and queue between the background
// poller and the UI. It acts as the coordination point where polling
// updates meet UI rendering.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ Status()       │            │                 │
//	│ CurrentSong()  │            │                 │
//	│ Queue()        │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  render UI      │
//	└────────────────┘            └─────────────────┘
//
// The Store mediates between these two independent goroutines, ensuring:
//   - Atomic updates (no partial/torn reads)
//   - No data races (mutex-protected access)
//   - Immutable snapshots (defensive copying)
//
// # Update Semantics
//
// The Update method has special error handling behavior:
//
//	// Success case: Replace entire snapshot
//	store.Update(status, current, queue, nil)
//	→ snapshot.Status = status
//	→ snapshot.Current = current (nil when nothing is playing)
//	→ snapshot.Queue = queue
//	→ snapshot.LastError = nil
//
//	// Error case: Keep old data, record error
//	store.Update(nil, nil, nil, err)
//	→ snapshot.Status/Current/Queue = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// This ensures the UI always has the most recent successful data to
// display, while also being informed of polling failures. IsOffline
// reports two or more consecutive failures so a single dropped poll never
// flashes an offline banner.
//
// # Defensive Copying
//
// Both Update and Snapshot deep-copy the queue slice, the current track,
// and the error value. The UI and the poller never share mutable data,
// at the cost of copying a few hundred small structs per poll.
package state
