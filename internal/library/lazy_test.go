package library

import (
	"context"
	"reflect"
	"testing"
)

// catalogSource serves a fixed track list through every Source call,
// grouping by the AlbumArtist field for the lazy path.
func catalogSource(tracks []Track, calls map[string]int) *fakeSource {
	return &fakeSource{
		allTracks: func(context.Context) ([]Track, error) {
			return append([]Track(nil), tracks...), nil
		},
		albumArtists: func(context.Context) ([]string, error) {
			var names []string
			seen := make(map[string]struct{})
			for _, t := range tracks {
				if _, dup := seen[t.AlbumArtist]; dup {
					continue
				}
				seen[t.AlbumArtist] = struct{}{}
				names = append(names, t.AlbumArtist)
			}
			return names, nil
		},
		byArtist: func(_ context.Context, name string) ([]Track, error) {
			if calls != nil {
				calls[name]++
			}
			var out []Track
			for _, t := range tracks {
				if t.AlbumArtist == name {
					out = append(out, t)
				}
			}
			return out, nil
		},
	}
}

func taggedTrack(title, artist, album string, disc, num int) Track {
	return Track{
		Key:                 album + "/" + title,
		Title:               title,
		Artist:              artist,
		Album:               album,
		AlbumArtist:         artist,
		ExplicitAlbumArtist: true,
		Disc:                disc,
		Track:               num,
	}
}

func testCatalog() []Track {
	return []Track{
		taggedTrack("Closer", "beta", "Second", 1, 1),
		taggedTrack("Opener", "beta", "Second", 1, 2),
		taggedTrack("Lone", "Alpha", "first", 1, 1),
		taggedTrack("Start", "Alpha", "Another", 1, 1),
	}
}

func TestNewLazySeedsSortedNotLoaded(t *testing.T) {
	src := &fakeSource{
		albumArtists: func(context.Context) ([]string, error) {
			return []string{"beta", "", "Alpha"}, nil
		},
	}
	lib, err := NewLazy(context.Background(), src)
	if err != nil {
		t.Fatalf("NewLazy() error = %v", err)
	}

	wantNames := []string{"Alpha", "beta"}
	if len(lib.Artists) != len(wantNames) {
		t.Fatalf("got %d artists, want %d", len(lib.Artists), len(wantNames))
	}
	for i, name := range wantNames {
		if lib.Artists[i].Name != name {
			t.Errorf("artist %d = %q, want %q", i, lib.Artists[i].Name, name)
		}
		if lib.Artists[i].State != NotLoaded {
			t.Errorf("artist %q state = %v, want NotLoaded", name, lib.Artists[i].State)
		}
	}
	if lib.Complete {
		t.Error("Complete = true with unloaded artists, want false")
	}
	if len(lib.AlbumIndex) != 0 {
		t.Errorf("AlbumIndex = %v before any load, want empty", lib.AlbumIndex)
	}
}

func TestNewLazyEmptyCatalogIsComplete(t *testing.T) {
	lib, err := NewLazy(context.Background(), &fakeSource{})
	if err != nil {
		t.Fatalf("NewLazy() error = %v", err)
	}
	if !lib.Complete {
		t.Error("Complete = false for empty catalog, want true")
	}
}

func TestLoadArtistIsIdempotent(t *testing.T) {
	calls := make(map[string]int)
	src := catalogSource(testCatalog(), calls)
	lib, err := NewLazy(context.Background(), src)
	if err != nil {
		t.Fatalf("NewLazy() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := lib.LoadArtist(context.Background(), src, 0); err != nil {
			t.Fatalf("LoadArtist(0) round %d error = %v", i, err)
		}
	}
	if calls["Alpha"] != 1 {
		t.Errorf("daemon fetched %q %d times, want 1", "Alpha", calls["Alpha"])
	}
	if got := len(lib.AlbumIndex); got != 2 {
		t.Errorf("AlbumIndex has %d entries after repeated loads, want 2", got)
	}
}

func TestLoadArtistOutOfRange(t *testing.T) {
	calls := make(map[string]int)
	src := catalogSource(testCatalog(), calls)
	lib, err := NewLazy(context.Background(), src)
	if err != nil {
		t.Fatalf("NewLazy() error = %v", err)
	}

	if err := lib.LoadArtist(context.Background(), src, len(lib.Artists)); err == nil {
		t.Error("LoadArtist(out of range) error = nil, want error")
	}
	if len(calls) != 0 {
		t.Errorf("daemon called %v for out-of-range index, want no calls", calls)
	}
}

func TestAlbumIndexGrowsMonotonically(t *testing.T) {
	src := catalogSource(testCatalog(), nil)
	lib, err := NewLazy(context.Background(), src)
	if err != nil {
		t.Fatalf("NewLazy() error = %v", err)
	}

	// Load beta first: the index gains its album and stays sorted.
	if err := lib.LoadArtist(context.Background(), src, 1); err != nil {
		t.Fatalf("LoadArtist(1) error = %v", err)
	}
	if got := indexAlbums(lib); !reflect.DeepEqual(got, []string{"Second"}) {
		t.Fatalf("index after first load = %v, want [Second]", got)
	}
	if lib.Complete {
		t.Error("Complete = true with one artist unloaded, want false")
	}

	if err := lib.LoadArtist(context.Background(), src, 0); err != nil {
		t.Fatalf("LoadArtist(0) error = %v", err)
	}
	want := []string{"Another", "first", "Second"}
	if got := indexAlbums(lib); !reflect.DeepEqual(got, want) {
		t.Fatalf("index after second load = %v, want %v", got, want)
	}
	if !lib.Complete {
		t.Error("Complete = false after loading every artist, want true")
	}
}

func indexAlbums(lib *LazyLibrary) []string {
	out := make([]string, 0, len(lib.AlbumIndex))
	for _, e := range lib.AlbumIndex {
		out = append(out, e.Album.Name)
	}
	return out
}

func TestSetArtistAlbumsSplitApply(t *testing.T) {
	src := catalogSource(testCatalog(), nil)
	lib, err := NewLazy(context.Background(), src)
	if err != nil {
		t.Fatalf("NewLazy() error = %v", err)
	}

	albums, err := lib.FetchArtistAlbums(context.Background(), src, 0)
	if err != nil {
		t.Fatalf("FetchArtistAlbums(0) error = %v", err)
	}
	if lib.Artists[0].State != NotLoaded {
		t.Fatal("fetch alone changed artist state, want NotLoaded until apply")
	}
	if len(lib.AlbumIndex) != 0 {
		t.Fatal("fetch alone grew the album index")
	}

	if err := lib.SetArtistAlbums(0, albums); err != nil {
		t.Fatalf("SetArtistAlbums(0) error = %v", err)
	}
	if !lib.Artists[0].IsLoaded() {
		t.Error("artist not Loaded after apply")
	}

	// A second apply must not duplicate index entries.
	if err := lib.SetArtistAlbums(0, albums); err != nil {
		t.Fatalf("second SetArtistAlbums(0) error = %v", err)
	}
	if got := len(lib.AlbumIndex); got != 2 {
		t.Errorf("AlbumIndex has %d entries after double apply, want 2", got)
	}
}

func TestMaterializeMatchesEagerLoad(t *testing.T) {
	tracks := testCatalog()

	eager, err := LoadEager(context.Background(), catalogSource(tracks, nil), WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("LoadEager() error = %v", err)
	}

	lazy, err := NewLazy(context.Background(), catalogSource(tracks, nil))
	if err != nil {
		t.Fatalf("NewLazy() error = %v", err)
	}
	materialized, err := lazy.Materialize(context.Background(), catalogSource(tracks, nil))
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	if !reflect.DeepEqual(eager, materialized) {
		t.Errorf("materialized lazy library differs from eager load\neager: %+v\nlazy:  %+v", eager, materialized)
	}
}

func TestPreloadedIsCompleteAndLoaded(t *testing.T) {
	eager, err := LoadEager(context.Background(), catalogSource(testCatalog(), nil), WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("LoadEager() error = %v", err)
	}

	lazy := Preloaded(eager)

	if !lazy.Complete {
		t.Error("preloaded library not Complete")
	}
	if got, want := len(lazy.Artists), len(eager.Artists); got != want {
		t.Fatalf("got %d artists, want %d", got, want)
	}
	for i, a := range lazy.Artists {
		if !a.IsLoaded() {
			t.Errorf("artist %q not Loaded", a.Name)
		}
		if !reflect.DeepEqual(a.Albums, eager.Artists[i].Albums) {
			t.Errorf("artist %q albums differ from eager load", a.Name)
		}
	}
	if !reflect.DeepEqual(lazy.AlbumIndex, eager.AlbumIndex) {
		t.Error("preloaded album index differs from eager load")
	}
}
