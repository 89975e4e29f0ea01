// Package library models the music catalog as an artist hierarchy and
// loads it from the daemon in one of two ways.
//
// # Model
//
// A Library holds Artists sorted case-insensitively, each artist's Albums
// sorted case-insensitively, and each album's Tracks ordered by disc
// number, track number, then title. A flattened AlbumIndex lists every
// (artist, album) pair sorted by album name for album-centric browsing.
//
// # Loading
//
// LoadEager fetches the entire catalog in one shot. A failed daemon probe
// aborts immediately; the catalog fetch itself is retried with
// exponential backoff. The album artist for each album is canonicalized
// in two passes: the most frequent explicit albumartist tag wins,
// otherwise the most frequent track artist does, with the
// lexicographically smaller name breaking ties so the result never
// depends on map order.
//
// NewLazy fetches only the distinct album-artist names and defers each
// artist's albums until LoadArtist is called for it. Loading is
// idempotent per artist, the album index only ever grows, and Complete
// flips once every artist has been loaded. The fetch and apply halves are
// exposed separately as FetchArtistAlbums and SetArtistAlbums so callers
// can run the daemon round trip off the goroutine that owns the library.
package library
