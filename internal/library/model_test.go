package library

import "testing"

func TestTrackSampleRate(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   int
		wantOK bool
	}{
		{"cd audio", "44100:16:2", 44100, true},
		{"hi-res", "192000:24:2", 192000, true},
		{"rate only", "48000", 48000, true},
		{"empty", "", 0, false},
		{"dsd marker", "dsd128:2", 0, false},
		{"garbage", "N/A", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Track{Format: tt.format}.SampleRate()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("SampleRate() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLazyLibraryArtistBounds(t *testing.T) {
	lib := &LazyLibrary{Artists: []LazyArtist{{Name: "Only"}}}

	if _, err := lib.Artist(0); err != nil {
		t.Fatalf("Artist(0) error = %v, want nil", err)
	}
	for _, i := range []int{-1, 1, 42} {
		if _, err := lib.Artist(i); err == nil {
			t.Errorf("Artist(%d) error = nil, want out of range", i)
		}
	}
}

func TestLazyLibraryAlbumsBeforeLoad(t *testing.T) {
	lib := &LazyLibrary{Artists: []LazyArtist{{Name: "Only", State: NotLoaded}}}

	albums, ok, err := lib.Albums(0)
	if err != nil {
		t.Fatalf("Albums(0) error = %v, want nil", err)
	}
	if ok {
		t.Errorf("Albums(0) ok = true before load, want false")
	}
	if albums != nil {
		t.Errorf("Albums(0) = %v before load, want nil", albums)
	}
}
