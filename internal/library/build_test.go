package library

import "testing"

func namedTrack(title, artist, album string, disc, num int) Track {
	return Track{
		Key:    album + "/" + title,
		Title:  title,
		Artist: artist,
		Album:  album,
		Disc:   disc,
		Track:  num,
	}
}

func TestBuildAlbumsOrdersTracks(t *testing.T) {
	a := namedTrack("A", "X", "Album", 1, 1)
	b := namedTrack("B", "X", "Album", 1, 2)
	c := namedTrack("C", "X", "Album", 2, 1)

	permutations := [][]Track{
		{a, b, c}, {a, c, b},
		{b, a, c}, {b, c, a},
		{c, a, b}, {c, b, a},
	}
	want := []string{"A", "B", "C"}
	for i, in := range permutations {
		albums := buildAlbums(in)
		if len(albums) != 1 {
			t.Fatalf("permutation %d: got %d albums, want 1", i, len(albums))
		}
		for j, title := range want {
			if got := albums[0].Tracks[j].Title; got != title {
				t.Errorf("permutation %d: track %d = %q, want %q", i, j, got, title)
			}
		}
	}
}

func TestBuildAlbumsTitleTieBreak(t *testing.T) {
	in := []Track{
		namedTrack("beta", "X", "Album", 1, 0),
		namedTrack("Alpha", "X", "Album", 1, 0),
	}
	albums := buildAlbums(in)
	if got := albums[0].Tracks[0].Title; got != "Alpha" {
		t.Errorf("first track = %q, want %q", got, "Alpha")
	}
}

func TestCanonicalAlbumArtist(t *testing.T) {
	tests := []struct {
		name   string
		tracks []Track
		want   string
	}{
		{
			name: "explicit tag wins over majority",
			tracks: []Track{
				{Artist: "X", Album: "Comp"},
				{Artist: "X", Album: "Comp"},
				{Artist: "Y", Album: "Comp", AlbumArtist: "Z", ExplicitAlbumArtist: true},
			},
			want: "Z",
		},
		{
			name: "conflicting explicit tags resolve by frequency",
			tracks: []Track{
				{Artist: "A", Album: "Comp", AlbumArtist: "Zeta", ExplicitAlbumArtist: true},
				{Artist: "B", Album: "Comp", AlbumArtist: "Alpha", ExplicitAlbumArtist: true},
				{Artist: "C", Album: "Comp", AlbumArtist: "Alpha", ExplicitAlbumArtist: true},
			},
			want: "Alpha",
		},
		{
			name: "tied explicit tags break to smaller name",
			tracks: []Track{
				{Artist: "A", Album: "Comp", AlbumArtist: "Zeta", ExplicitAlbumArtist: true},
				{Artist: "B", Album: "Comp", AlbumArtist: "Alpha", ExplicitAlbumArtist: true},
			},
			want: "Alpha",
		},
		{
			name: "majority artist without tags",
			tracks: []Track{
				{Artist: "X", Album: "Comp"},
				{Artist: "X", Album: "Comp"},
				{Artist: "Y", Album: "Comp"},
			},
			want: "X",
		},
		{
			name: "tie breaks to smaller name",
			tracks: []Track{
				{Artist: "Beta", Album: "Comp"},
				{Artist: "Alpha", Album: "Comp"},
			},
			want: "Alpha",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canonicalAlbumArtist(tt.tracks); got != tt.want {
				t.Errorf("canonicalAlbumArtist() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalizeRegroupsWholeAlbum(t *testing.T) {
	in := []Track{
		{Title: "One", Artist: "Solo A", Album: "Split"},
		{Title: "Two", Artist: "Solo B", Album: "Split", AlbumArtist: "Various", ExplicitAlbumArtist: true},
		{Title: "Three", Artist: "Solo C", Album: "Split"},
	}
	for _, tr := range canonicalize(in) {
		if tr.AlbumArtist != "Various" {
			t.Errorf("track %q filed under %q, want %q", tr.Title, tr.AlbumArtist, "Various")
		}
	}
}

func TestCanonicalizeTieIsDeterministic(t *testing.T) {
	in := []Track{
		{Title: "One", Artist: "Beta", Album: "Tie"},
		{Title: "Two", Artist: "Alpha", Album: "Tie"},
	}
	for i := 0; i < 20; i++ {
		for _, tr := range canonicalize(in) {
			if tr.AlbumArtist != "Alpha" {
				t.Fatalf("run %d: track %q filed under %q, want %q", i, tr.Title, tr.AlbumArtist, "Alpha")
			}
		}
	}
}

func TestBuildLibrarySortsCaseInsensitively(t *testing.T) {
	tracks := []Track{
		{Title: "t1", Artist: "beta", AlbumArtist: "beta", Album: "Second"},
		{Title: "t2", Artist: "Alpha", AlbumArtist: "Alpha", Album: "first"},
		{Title: "t3", Artist: "Alpha", AlbumArtist: "Alpha", Album: "Another"},
	}
	lib := buildLibrary(tracks)

	wantArtists := []string{"Alpha", "beta"}
	if len(lib.Artists) != len(wantArtists) {
		t.Fatalf("got %d artists, want %d", len(lib.Artists), len(wantArtists))
	}
	for i, name := range wantArtists {
		if lib.Artists[i].Name != name {
			t.Errorf("artist %d = %q, want %q", i, lib.Artists[i].Name, name)
		}
	}

	wantAlbums := []string{"Another", "first"}
	for i, name := range wantAlbums {
		if got := lib.Artists[0].Albums[i].Name; got != name {
			t.Errorf("album %d = %q, want %q", i, got, name)
		}
	}

	wantIndex := []string{"Another", "first", "Second"}
	if len(lib.AlbumIndex) != len(wantIndex) {
		t.Fatalf("got %d index entries, want %d", len(lib.AlbumIndex), len(wantIndex))
	}
	for i, name := range wantIndex {
		if got := lib.AlbumIndex[i].Album.Name; got != name {
			t.Errorf("index %d = %q, want %q", i, got, name)
		}
	}
}

func TestSortAlbumIndexSameNameOrdersByArtist(t *testing.T) {
	index := []AlbumEntry{
		{Artist: "beta", Album: Album{Name: "Live"}},
		{Artist: "Alpha", Album: Album{Name: "Live"}},
	}
	sortAlbumIndex(index)
	if index[0].Artist != "Alpha" || index[1].Artist != "beta" {
		t.Errorf("got order [%q, %q], want [Alpha, beta]", index[0].Artist, index[1].Artist)
	}
}
