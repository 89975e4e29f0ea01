// Package app provides the orchestration layer for the Coda application.
//
// # Overview
//
// This package wires together configuration, logging, the daemon client,
// cover loading, rate switching, polling, and the UI to create the
// complete Coda experience. It serves as the composition root where all
// dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/coda/config.toml
//  2. Open the log sink (the terminal belongs to the UI)
//  3. Create the MPD client; nothing is dialed until first use
//  4. Build the cover cache and loader on top of the client
//  5. Detect the audio output rate control when bit perfect is on
//  6. Run one synchronous refresh so the first frame has data
//  7. Launch the background poller goroutine
//  8. Start the TUI and block until the user exits or context cancels
//
// # Data Flow
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> Status()                           │
//	│  ├─> CurrentSong()                      │
//	│  ├─> Queue()                            │
//	│  └─> store.Update()  (atomic)           │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller runs continuously in the background at the configured
// interval (default: 1 second). Consecutive failures double the interval
// up to a 30 second ceiling, so a stopped daemon is probed rather than
// hammered; the first success snaps back to the configured cadence.
//
// The UI reads snapshots from the store on its own tick. This separation
// keeps the interface responsive even when the daemon stalls.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file present but unreadable or invalid
//   - Log sink cannot be opened
//
// Recoverable errors (logged, polling continues):
//   - Any daemon fetch failure; the store keeps the previous snapshot
//     and counts failures so the UI can show an offline badge
//
// An unreachable daemon at startup is deliberately NOT fatal: Coda comes
// up showing the offline state and connects when the daemon appears.
package app
