package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0:00"},
		{"seconds only", 42 * time.Second, "0:42"},
		{"minutes", 65 * time.Second, "1:05"},
		{"rounds up", 59*time.Second + 600*time.Millisecond, "1:00"},
		{"over an hour", 3661 * time.Second, "1:01:01"},
		{"negative clamps", -5 * time.Second, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.d); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatAudio(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"cd quality", "44100:16:2", "44.1 kHz · 16-bit"},
		{"hi-res", "96000:24:2", "96 kHz · 24-bit"},
		{"float bits", "192000:f:2", "192 kHz · float"},
		{"missing bits", "48000", "48 kHz"},
		{"dsd rate unparsed", "dsd128:f:2", "float"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAudio(tt.format); got != tt.want {
				t.Errorf("formatAudio(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		max   int
		want  string
	}{
		{"fits", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello w…"},
		{"zero max", "hello", 0, ""},
		{"single rune", "hello", 1, "h"},
		{"multibyte", "séparée", 4, "sép…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.value, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.value, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"keeps both ends", "abcdefghij", 5, "ab…ij"},
		{"tiny limit", "abcdefghij", 3, "abc"},
		{"trims whitespace", "  padded  ", 10, "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateMiddle(tt.value, tt.limit); got != tt.want {
				t.Errorf("truncateMiddle(%q, %d) = %q, want %q", tt.value, tt.limit, got, tt.want)
			}
		})
	}
}

func TestRenderProgressBar(t *testing.T) {
	plain := lipgloss.NewStyle()

	tests := []struct {
		name     string
		width    int
		elapsed  time.Duration
		duration time.Duration
		filled   int
	}{
		{"empty at start", 10, 0, 100 * time.Second, 0},
		{"half", 10, 50 * time.Second, 100 * time.Second, 5},
		{"full", 10, 100 * time.Second, 100 * time.Second, 10},
		{"past end clamps", 10, 150 * time.Second, 100 * time.Second, 10},
		{"zero duration empty", 10, 30 * time.Second, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderProgressBar(tt.width, tt.elapsed, tt.duration, plain, plain)
			if n := strings.Count(got, "━"); n != tt.filled {
				t.Errorf("bar has %d filled cells, want %d", n, tt.filled)
			}
			if n := strings.Count(got, "─"); n != tt.width-tt.filled {
				t.Errorf("bar has %d empty cells, want %d", n, tt.width-tt.filled)
			}
		})
	}
}

func TestRenderProgressBarZeroWidth(t *testing.T) {
	plain := lipgloss.NewStyle()
	if got := renderProgressBar(0, time.Second, time.Minute, plain, plain); got != "" {
		t.Errorf("zero width bar = %q, want empty", got)
	}
}
