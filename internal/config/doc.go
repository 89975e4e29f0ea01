// Package config handles loading and parsing Coda's configuration file.
//
// # Overview
//
// This package reads a small TOML file describing how to reach the MPD
// daemon and how the player should behave: library loading strategy,
// bit-perfect output switching, art cache bound, and log destination.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/coda/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// The daemon address stays empty unless configured, so the client can
// resolve MPD_HOST/MPD_PORT and the standard localhost fallback itself.
//
// # TOML Format
//
// Example config.toml:
//
//	address = "127.0.0.1:6600"
//	music_dir = "~/Music"
//	poll_interval = "500ms"
//	eager_library = false
//	bit_perfect = true
//	art_cache_size = 64
//
//	[log]
//	level = "info"
//	format = "text"
//	path = "~/.local/state/coda/coda.log"
//
// All fields are optional. Tilde expansion is performed automatically on
// every path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors
// (except os.ErrNotExist, which triggers defaults), TOML parsing errors,
// and invalid values (non-positive poll interval, negative cache size).
// A missing config file is NOT an error, so the player works
// out-of-the-box against a local daemon.
package config
