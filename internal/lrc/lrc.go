package lrc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Line is a single timed lyric line.
type Line struct {
	At   time.Duration
	Text string
}

// Lyrics holds the timed lines of one song, sorted by timestamp.
type Lyrics struct {
	Lines []Line
}

// Empty reports whether no timed lines were found.
func (l Lyrics) Empty() bool {
	return len(l.Lines) == 0
}

// LineAt returns the lyric line active at the given playback position:
// the latest line whose timestamp is at or before elapsed. It returns
// false before the first timestamp and when no lyrics are loaded.
func (l Lyrics) LineAt(elapsed time.Duration) (string, bool) {
	n := sort.Search(len(l.Lines), func(i int) bool {
		return l.Lines[i].At > elapsed
	})
	if n == 0 {
		return "", false
	}
	return l.Lines[n-1].Text, true
}

// SidecarPath resolves the .lrc file expected alongside a track, from the
// music directory and the daemon's file key. An empty directory or key
// resolves to "".
func SidecarPath(musicDir, key string) string {
	if strings.TrimSpace(musicDir) == "" || strings.TrimSpace(key) == "" {
		return ""
	}
	rel := strings.TrimSuffix(key, filepath.Ext(key)) + ".lrc"
	return filepath.Join(musicDir, filepath.FromSlash(rel))
}

// Load reads and parses the .lrc file at path. A missing file is not an
// error; it yields empty lyrics so playback simply shows none.
func Load(path string) (Lyrics, error) {
	if path == "" {
		return Lyrics{}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Lyrics{}, nil
		}
		return Lyrics{}, fmt.Errorf("open lyrics: %w", err)
	}
	defer file.Close()

	lyrics, err := Parse(file)
	if err != nil {
		return Lyrics{}, fmt.Errorf("parse lyrics: %w", err)
	}
	return lyrics, nil
}

// Parse reads LRC text from r. Each line may carry several leading
// [mm:ss.xx] tags; the text after the tags is registered once per tag.
// Metadata tags ([ar:...], [ti:...]) and untagged lines are ignored, so
// malformed files degrade to fewer lines rather than an error.
func Parse(r io.Reader) (Lyrics, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		stamps, text := splitTags(sc.Text())
		for _, at := range stamps {
			lines = append(lines, Line{At: at, Text: text})
		}
	}
	if err := sc.Err(); err != nil {
		return Lyrics{}, fmt.Errorf("read lyrics: %w", err)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].At < lines[j].At
	})
	return Lyrics{Lines: lines}, nil
}

// ParseString parses LRC text held in memory.
func ParseString(s string) Lyrics {
	lyrics, _ := Parse(strings.NewReader(s))
	return lyrics
}

// splitTags strips every leading timestamp tag from a line and returns
// the parsed timestamps plus the remaining lyric text.
func splitTags(raw string) ([]time.Duration, string) {
	var stamps []time.Duration
	rest := strings.TrimLeft(raw, " \t")
	for strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			break
		}
		at, ok := parseTimestamp(rest[1:end])
		if !ok {
			break
		}
		stamps = append(stamps, at)
		rest = rest[end+1:]
	}
	return stamps, strings.TrimSpace(rest)
}

// parseTimestamp parses "mm:ss", "mm:ss.xx" or "mm:ss.xxx". Minutes may
// exceed 59 for long tracks.
func parseTimestamp(s string) (time.Duration, bool) {
	minPart, secPart, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	min, err := strconv.Atoi(minPart)
	if err != nil || min < 0 {
		return 0, false
	}
	sec, err := strconv.ParseFloat(secPart, 64)
	if err != nil || sec < 0 || sec >= 60 {
		return 0, false
	}
	return time.Duration(min)*time.Minute + time.Duration(sec*float64(time.Second)), true
}
