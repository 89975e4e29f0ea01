package lrc

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseString(t *testing.T) {
	lyrics := ParseString("[ar:Someone]\n[00:12.50]first line\n[00:05.00]early line\nuntimed text\n")

	want := []Line{
		{At: 5 * time.Second, Text: "early line"},
		{At: 12*time.Second + 500*time.Millisecond, Text: "first line"},
	}
	if len(lyrics.Lines) != len(want) {
		t.Fatalf("parsed %d lines, want %d", len(lyrics.Lines), len(want))
	}
	for i, line := range lyrics.Lines {
		if line != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, line, want[i])
		}
	}
}

func TestParseMultiTagLine(t *testing.T) {
	lyrics := ParseString("[00:10.00][01:30.00]chorus\n")

	if len(lyrics.Lines) != 2 {
		t.Fatalf("parsed %d lines, want 2", len(lyrics.Lines))
	}
	if lyrics.Lines[0].At != 10*time.Second || lyrics.Lines[0].Text != "chorus" {
		t.Errorf("first = %+v", lyrics.Lines[0])
	}
	if lyrics.Lines[1].At != 90*time.Second || lyrics.Lines[1].Text != "chorus" {
		t.Errorf("second = %+v", lyrics.Lines[1])
	}
}

func TestParseToleratesMalformedLines(t *testing.T) {
	lyrics := ParseString("[ti:Title]\n[broken\n[:12.00]no minutes\n[00:99.00]seconds overflow\n[00:30]plain seconds\n")

	if len(lyrics.Lines) != 1 {
		t.Fatalf("parsed %d lines, want 1: %+v", len(lyrics.Lines), lyrics.Lines)
	}
	if lyrics.Lines[0].At != 30*time.Second || lyrics.Lines[0].Text != "plain seconds" {
		t.Errorf("line = %+v", lyrics.Lines[0])
	}
}

func TestParseKeepsEmptyTextLines(t *testing.T) {
	// An empty timed line clears the display during instrumental breaks.
	lyrics := ParseString("[00:01.00]words\n[00:04.00]\n")

	if len(lyrics.Lines) != 2 {
		t.Fatalf("parsed %d lines, want 2", len(lyrics.Lines))
	}
	if lyrics.Lines[1].Text != "" {
		t.Errorf("Text = %q, want empty", lyrics.Lines[1].Text)
	}
}

func TestLineAt(t *testing.T) {
	lyrics := ParseString("[00:05.00]one\n[00:10.00]two\n[00:20.00]three\n")

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
		wantOK  bool
	}{
		{"before first", 2 * time.Second, "", false},
		{"exactly first", 5 * time.Second, "one", true},
		{"between lines", 12 * time.Second, "two", true},
		{"after last", time.Minute, "three", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lyrics.LineAt(tt.elapsed)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("LineAt(%v) = %q, %v, want %q, %v", tt.elapsed, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLineAtEmptyLyrics(t *testing.T) {
	var lyrics Lyrics
	if !lyrics.Empty() {
		t.Fatal("zero-value lyrics should be empty")
	}
	if got, ok := lyrics.LineAt(time.Minute); ok {
		t.Fatalf("LineAt on empty lyrics = %q, %v, want miss", got, ok)
	}
}

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		name     string
		musicDir string
		key      string
		want     string
	}{
		{
			name:     "flac key",
			musicDir: "/music",
			key:      "Artist/Album/01 Song.flac",
			want:     filepath.Join("/music", "Artist", "Album", "01 Song.lrc"),
		},
		{
			name:     "no extension",
			musicDir: "/music",
			key:      "Artist/Track",
			want:     filepath.Join("/music", "Artist", "Track.lrc"),
		},
		{
			name:     "empty dir",
			musicDir: "",
			key:      "Artist/Track.mp3",
			want:     "",
		},
		{
			name:     "empty key",
			musicDir: "/music",
			key:      "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SidecarPath(tt.musicDir, tt.key); got != tt.want {
				t.Fatalf("SidecarPath(%q, %q) = %q, want %q", tt.musicDir, tt.key, got, tt.want)
			}
		})
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	lyrics, err := Load(filepath.Join(t.TempDir(), "absent.lrc"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !lyrics.Empty() {
		t.Fatalf("expected empty lyrics, got %d lines", len(lyrics.Lines))
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.lrc")
	content := "[00:02.00]hello\n[00:07.50]world\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	lyrics, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(lyrics.Lines) != 2 {
		t.Fatalf("parsed %d lines, want 2", len(lyrics.Lines))
	}
	if got, ok := lyrics.LineAt(3 * time.Second); !ok || got != "hello" {
		t.Fatalf("LineAt(3s) = %q, %v", got, ok)
	}
}
