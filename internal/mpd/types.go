package mpd

import (
	"strconv"
	"strings"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"

	"github.com/sphene/coda/internal/library"
)

// Display fallbacks for untagged songs.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// PlayState is the daemon's player state.
type PlayState int

const (
	StateUnknown PlayState = iota
	StatePlay
	StatePause
	StateStop
)

func (s PlayState) String() string {
	switch s {
	case StatePlay:
		return "playing"
	case StatePause:
		return "paused"
	case StateStop:
		return "stopped"
	default:
		return "unknown"
	}
}

func parsePlayState(s string) PlayState {
	switch s {
	case "play":
		return StatePlay
	case "pause":
		return StatePause
	case "stop":
		return StateStop
	default:
		return StateUnknown
	}
}

// PlayerStatus is one parsed status snapshot.
type PlayerStatus struct {
	State    PlayState
	Volume   int // 0-100, -1 when the mixer is absent
	Repeat   bool
	Random   bool
	Single   bool
	Consume  bool
	Song     int // queue position of the current song, -1 when none
	Elapsed  time.Duration
	Duration time.Duration
	Bitrate  int    // kbit/s while decoding
	Audio    string // decoded format, "samplerate:bits:channels"
}

// SampleRate parses the decoded sample rate from the audio format. The
// second return is false when the daemon reports no usable rate.
func (s PlayerStatus) SampleRate() (int, bool) {
	head, _, _ := strings.Cut(s.Audio, ":")
	rate, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}

func statusFromAttrs(attrs gompd.Attrs) PlayerStatus {
	return PlayerStatus{
		State:    parsePlayState(attrs["state"]),
		Volume:   parseIntDefault(attrs["volume"], -1),
		Repeat:   attrs["repeat"] == "1",
		Random:   attrs["random"] == "1",
		Single:   attrs["single"] == "1",
		Consume:  attrs["consume"] == "1",
		Song:     parseIntDefault(attrs["song"], -1),
		Elapsed:  parseSeconds(attrs["elapsed"]),
		Duration: parseSeconds(attrs["duration"]),
		Bitrate:  parseIntDefault(attrs["bitrate"], 0),
		Audio:    attrs["audio"],
	}
}

func trackFromAttrs(attrs gompd.Attrs) library.Track {
	t := library.Track{
		Key:      attrs["file"],
		Title:    attrs["Title"],
		Artist:   attrs["Artist"],
		Album:    attrs["Album"],
		Format:   attrs["Format"],
		Disc:     parseNumber(attrs["Disc"]),
		Track:    parseNumber(attrs["Track"]),
		Duration: parseSeconds(attrs["duration"]),
	}
	if t.Title == "" {
		t.Title = UnknownTitle
	}
	if t.Artist == "" {
		t.Artist = UnknownArtist
	}
	if t.Album == "" {
		t.Album = UnknownAlbum
	}
	if aa := attrs["AlbumArtist"]; aa != "" {
		t.AlbumArtist = aa
		t.ExplicitAlbumArtist = true
	}
	if t.Duration == 0 {
		// Older daemons only send the integer Time field.
		t.Duration = parseSeconds(attrs["Time"])
	}
	return t
}

func tracksFromAttrs(attrs []gompd.Attrs) []library.Track {
	tracks := make([]library.Track, 0, len(attrs))
	for _, a := range attrs {
		if a["file"] == "" {
			// listallinfo interleaves directory and playlist entries.
			continue
		}
		tracks = append(tracks, trackFromAttrs(a))
	}
	return tracks
}

// parseNumber reads track and disc values, which may be plain "7" or the
// "7/12" of-total form.
func parseNumber(s string) int {
	head, _, _ := strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0
	}
	return n
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// parseSeconds reads the daemon's seconds values, fractional or integer.
func parseSeconds(s string) time.Duration {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
