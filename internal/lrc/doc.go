// Package lrc parses synced lyrics from .lrc sidecar files.
//
// # Format
//
// An LRC file carries one lyric per line, prefixed with one or more
// [mm:ss.xx] timestamps:
//
//	[00:12.00]When the morning comes
//	[00:15.30][01:22.10]Repeated chorus line
//	[ar:Artist Name]
//
// Multiple tags register the same text at each timestamp. Metadata tags
// and untagged lines are skipped. Parsing never fails on malformed
// content; bad lines simply contribute nothing.
//
// # Sidecar Resolution
//
// Lyrics live next to the audio files they describe. SidecarPath maps a
// daemon file key like "Artist/Album/01 Song.flac" under the configured
// music directory to ".../Artist/Album/01 Song.lrc". A missing sidecar
// is normal and loads as empty lyrics.
//
// Lookup during playback is LineAt: the latest line whose timestamp has
// been reached. Lines are kept sorted so the lookup is a binary search.
package lrc
