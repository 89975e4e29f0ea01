// Package ui implements the Coda terminal interface with Bubble Tea.
//
// The interface has two modes. Queue mode pairs the play queue with a
// now-playing pane showing cover art, progress, and the current lyric
// line. Library mode browses artists and albums, with albums expanding
// in place into their tracks and a fuzzy artist filter.
//
// The model polls the shared state store on a fixed tick and reacts to
// song changes by loading cover art and lyrics. Daemon commands run off
// the update loop; failures are logged and the next poll shows the
// daemon's actual state.
package ui
