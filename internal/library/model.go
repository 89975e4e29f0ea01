package library

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Track is one song in the daemon's catalog. Fields are fixed at
// construction; playback progress lives on the player status snapshot,
// never here.
type Track struct {
	Key         string // daemon file key, the unique path-like identifier
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	// ExplicitAlbumArtist records whether the daemon sent an albumartist
	// tag for this track, as opposed to a value filled in by
	// canonicalization.
	ExplicitAlbumArtist bool
	Format              string // daemon audio format, e.g. "44100:16:2"
	Disc                int
	Track               int
	Duration            time.Duration
}

// SampleRate parses the leading sample-rate field from Format. The second
// return is false when the format string carries no usable rate.
func (t Track) SampleRate() (int, bool) {
	head, _, _ := strings.Cut(t.Format, ":")
	rate, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}

// Album is a named, ordered run of tracks: disc number, then track
// number, then title.
type Album struct {
	Name   string
	Tracks []Track
}

// Artist groups the albums filed under one canonical album artist.
type Artist struct {
	Name   string
	Albums []Album
}

// AlbumEntry is one row of the flattened album index: an album paired
// with the artist it is filed under, for album-centric browsing.
type AlbumEntry struct {
	Artist string
	Album  Album
}

// Library is the fully loaded artist hierarchy plus the flattened album
// index, both sorted case-insensitively.
type Library struct {
	Artists    []Artist
	AlbumIndex []AlbumEntry
}

// LoadState distinguishes an artist whose albums have been fetched from
// one that is still just a name.
type LoadState int

const (
	NotLoaded LoadState = iota
	Loaded
)

// LazyArtist is an artist whose albums may not have been fetched yet.
// Albums is meaningful only when State is Loaded.
type LazyArtist struct {
	Name   string
	State  LoadState
	Albums []Album
}

// IsLoaded reports whether the artist's albums have been fetched.
func (a LazyArtist) IsLoaded() bool {
	return a.State == Loaded
}

// LazyLibrary is the incrementally populated hierarchy. AlbumIndex covers
// every loaded artist at all times and grows monotonically; Complete is
// set once every artist has been loaded.
type LazyLibrary struct {
	Artists    []LazyArtist
	AlbumIndex []AlbumEntry
	Complete   bool
}

// Artist returns the artist at index i. Out-of-range indices are a caller
// error, never a daemon failure.
func (l *LazyLibrary) Artist(i int) (*LazyArtist, error) {
	if i < 0 || i >= len(l.Artists) {
		return nil, fmt.Errorf("artist index %d out of range [0,%d)", i, len(l.Artists))
	}
	return &l.Artists[i], nil
}

// Albums returns the albums for artist i. ok is false when the artist has
// not been loaded yet; err reports an out-of-range index.
func (l *LazyLibrary) Albums(i int) (albums []Album, ok bool, err error) {
	artist, err := l.Artist(i)
	if err != nil {
		return nil, false, err
	}
	if artist.State != Loaded {
		return nil, false, nil
	}
	return artist.Albums, true, nil
}

// Source is the slice of the daemon client the library loaders consume.
type Source interface {
	// Ping probes the daemon connection, returning an error when it does
	// not respond with a valid status.
	Ping(ctx context.Context) error
	// AllTracks fetches the entire flat song catalog.
	AllTracks(ctx context.Context) ([]Track, error)
	// AlbumArtists lists the distinct album-artist tag values.
	AlbumArtists(ctx context.Context) ([]string, error)
	// TracksByAlbumArtist fetches every track filed under the given
	// album artist.
	TracksByAlbumArtist(ctx context.Context, name string) ([]Track, error)
}
