package library

import (
	"sort"
	"strings"
)

// lessFold orders strings case-insensitively, falling back to the raw
// byte order so that equal-fold names still sort deterministically.
func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

func sortTracks(tracks []Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		a, b := tracks[i], tracks[j]
		if a.Disc != b.Disc {
			return a.Disc < b.Disc
		}
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return lessFold(a.Title, b.Title)
	})
}

func sortAlbums(albums []Album) {
	sort.SliceStable(albums, func(i, j int) bool {
		return lessFold(albums[i].Name, albums[j].Name)
	})
}

// buildAlbums groups one artist's tracks by album name and orders each
// album's tracks by disc, track number, then title.
func buildAlbums(tracks []Track) []Album {
	byName := make(map[string][]Track)
	var names []string
	for _, t := range tracks {
		if _, seen := byName[t.Album]; !seen {
			names = append(names, t.Album)
		}
		byName[t.Album] = append(byName[t.Album], t)
	}
	albums := make([]Album, 0, len(names))
	for _, name := range names {
		ts := byName[name]
		sortTracks(ts)
		albums = append(albums, Album{Name: name, Tracks: ts})
	}
	sortAlbums(albums)
	return albums
}

// canonicalAlbumArtist picks the single artist an album is filed under.
// Explicit albumartist tags on the album's tracks win; with none, track
// artists decide. Either way the most frequent name is chosen, smaller
// name first on ties.
func canonicalAlbumArtist(tracks []Track) string {
	var explicit []string
	for _, t := range tracks {
		if t.ExplicitAlbumArtist && t.AlbumArtist != "" {
			explicit = append(explicit, t.AlbumArtist)
		}
	}
	if len(explicit) > 0 {
		return mostFrequent(explicit)
	}
	artists := make([]string, len(tracks))
	for i, t := range tracks {
		artists[i] = t.Artist
	}
	return mostFrequent(artists)
}

func mostFrequent(names []string) string {
	counts := make(map[string]int)
	for _, name := range names {
		counts[name]++
	}
	var best string
	bestN := -1
	for name, n := range counts {
		switch {
		case n > bestN:
			best, bestN = name, n
		case n == bestN && name < best:
			best = name
		}
	}
	return best
}

// canonicalize rewrites every track's AlbumArtist to its album's
// canonical artist. Albums are keyed by name across the whole catalog, so
// a single tagged track pulls its album mates under the same artist. Two
// passes: collect each album's tracks, then decide and apply.
func canonicalize(tracks []Track) []Track {
	byAlbum := make(map[string][]Track)
	for _, t := range tracks {
		byAlbum[t.Album] = append(byAlbum[t.Album], t)
	}
	canonical := make(map[string]string, len(byAlbum))
	for name, ts := range byAlbum {
		canonical[name] = canonicalAlbumArtist(ts)
	}
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		t.AlbumArtist = canonical[t.Album]
		out[i] = t
	}
	return out
}

// buildLibrary assembles the artist hierarchy and flattened album index
// from a canonicalized track list.
func buildLibrary(tracks []Track) *Library {
	byArtist := make(map[string][]Track)
	var names []string
	for _, t := range tracks {
		if _, seen := byArtist[t.AlbumArtist]; !seen {
			names = append(names, t.AlbumArtist)
		}
		byArtist[t.AlbumArtist] = append(byArtist[t.AlbumArtist], t)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return lessFold(names[i], names[j])
	})

	lib := &Library{Artists: make([]Artist, 0, len(names))}
	for _, name := range names {
		albums := buildAlbums(byArtist[name])
		lib.Artists = append(lib.Artists, Artist{Name: name, Albums: albums})
		for _, album := range albums {
			lib.AlbumIndex = append(lib.AlbumIndex, AlbumEntry{Artist: name, Album: album})
		}
	}
	sortAlbumIndex(lib.AlbumIndex)
	return lib
}

func sortAlbumIndex(index []AlbumEntry) {
	sort.SliceStable(index, func(i, j int) bool {
		a, b := index[i], index[j]
		if !strings.EqualFold(a.Album.Name, b.Album.Name) {
			return lessFold(a.Album.Name, b.Album.Name)
		}
		if a.Album.Name != b.Album.Name {
			return a.Album.Name < b.Album.Name
		}
		return lessFold(a.Artist, b.Artist)
	})
}
