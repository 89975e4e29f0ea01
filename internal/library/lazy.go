package library

import (
	"context"
	"fmt"
	"sort"
)

// NewLazy seeds a lazy library from the daemon's distinct album-artist
// names. Every artist starts NotLoaded; empty names are dropped. An empty
// catalog is complete from the start.
func NewLazy(ctx context.Context, src Source) (*LazyLibrary, error) {
	names, err := src.AlbumArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list album artists: %w", err)
	}
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			kept = append(kept, name)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return lessFold(kept[i], kept[j])
	})

	lib := &LazyLibrary{Artists: make([]LazyArtist, 0, len(kept))}
	for _, name := range kept {
		lib.Artists = append(lib.Artists, LazyArtist{Name: name, State: NotLoaded})
	}
	lib.Complete = len(lib.Artists) == 0
	return lib, nil
}

// FetchArtistAlbums fetches and assembles the albums for artist i without
// touching the library. Pair it with SetArtistAlbums when fetch and apply
// must run on different goroutines; LoadArtist composes the two.
func (l *LazyLibrary) FetchArtistAlbums(ctx context.Context, src Source, i int) ([]Album, error) {
	artist, err := l.Artist(i)
	if err != nil {
		return nil, err
	}
	tracks, err := src.TracksByAlbumArtist(ctx, artist.Name)
	if err != nil {
		return nil, fmt.Errorf("fetch tracks for %q: %w", artist.Name, err)
	}
	return buildAlbums(tracks), nil
}

// SetArtistAlbums marks artist i Loaded with the given albums and folds
// them into the flattened index. Applying to an already-loaded artist is
// a no-op, so repeated loads never duplicate index entries.
func (l *LazyLibrary) SetArtistAlbums(i int, albums []Album) error {
	artist, err := l.Artist(i)
	if err != nil {
		return err
	}
	if artist.State == Loaded {
		return nil
	}
	artist.Albums = albums
	artist.State = Loaded
	l.mergeIndex(artist.Name, albums)
	l.recomputeComplete()
	return nil
}

// LoadArtist fetches artist i's albums and applies them. Loading an
// already-loaded artist is a no-op without a daemon round trip.
func (l *LazyLibrary) LoadArtist(ctx context.Context, src Source, i int) error {
	artist, err := l.Artist(i)
	if err != nil {
		return err
	}
	if artist.State == Loaded {
		return nil
	}
	albums, err := l.FetchArtistAlbums(ctx, src, i)
	if err != nil {
		return err
	}
	return l.SetArtistAlbums(i, albums)
}

// mergeIndex adds the artist's albums to the flattened index, skipping
// (artist, album) pairs already present, and restores the index order.
func (l *LazyLibrary) mergeIndex(artist string, albums []Album) {
	type albumKey struct {
		artist, album string
	}
	seen := make(map[albumKey]struct{}, len(l.AlbumIndex))
	for _, e := range l.AlbumIndex {
		seen[albumKey{e.Artist, e.Album.Name}] = struct{}{}
	}
	for _, album := range albums {
		key := albumKey{artist, album.Name}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		l.AlbumIndex = append(l.AlbumIndex, AlbumEntry{Artist: artist, Album: album})
	}
	sortAlbumIndex(l.AlbumIndex)
}

func (l *LazyLibrary) recomputeComplete() {
	for _, a := range l.Artists {
		if a.State != Loaded {
			l.Complete = false
			return
		}
	}
	l.Complete = true
}

// Preloaded wraps an eagerly loaded library in the lazy shape, with every
// artist already Loaded. Code written against LazyLibrary serves both
// loading strategies through this.
func Preloaded(lib *Library) *LazyLibrary {
	out := &LazyLibrary{
		Artists:    make([]LazyArtist, 0, len(lib.Artists)),
		AlbumIndex: make([]AlbumEntry, len(lib.AlbumIndex)),
		Complete:   true,
	}
	for _, a := range lib.Artists {
		out.Artists = append(out.Artists, LazyArtist{Name: a.Name, State: Loaded, Albums: a.Albums})
	}
	copy(out.AlbumIndex, lib.AlbumIndex)
	return out
}

// Materialize loads every remaining artist in order, yielding the same
// shape an eager load of the same catalog would.
func (l *LazyLibrary) Materialize(ctx context.Context, src Source) (*Library, error) {
	for i := range l.Artists {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := l.LoadArtist(ctx, src, i); err != nil {
			return nil, err
		}
	}
	lib := &Library{
		Artists:    make([]Artist, 0, len(l.Artists)),
		AlbumIndex: make([]AlbumEntry, len(l.AlbumIndex)),
	}
	for _, a := range l.Artists {
		lib.Artists = append(lib.Artists, Artist{Name: a.Name, Albums: a.Albums})
	}
	copy(lib.AlbumIndex, l.AlbumIndex)
	return lib, nil
}
