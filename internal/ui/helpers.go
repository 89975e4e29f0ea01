package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// formatDuration renders a playback duration as m:ss, or h:mm:ss past an
// hour. Negative durations render as 0:00.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// formatAudio renders the daemon's "samplerate:bits:channels" format
// string for display, e.g. "96 kHz · 24-bit". Unparsable parts are
// dropped; a fully unparsable format renders empty.
func formatAudio(format string) string {
	rate, rest, _ := strings.Cut(format, ":")
	bits, _, _ := strings.Cut(rest, ":")

	var parts []string
	if hz := parseRate(rate); hz > 0 {
		if hz%1000 == 0 {
			parts = append(parts, fmt.Sprintf("%d kHz", hz/1000))
		} else {
			parts = append(parts, fmt.Sprintf("%.1f kHz", float64(hz)/1000))
		}
	}
	if bits != "" && bits != "f" {
		parts = append(parts, bits+"-bit")
	} else if bits == "f" {
		parts = append(parts, "float")
	}
	return strings.Join(parts, " · ")
}

func parseRate(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// truncate shortens a string to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// truncateMiddle shortens a string in the middle, keeping both ends.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1 // room for ellipsis rune
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// renderProgressBar renders elapsed/duration as a filled bar of the
// given width. A zero duration renders an empty bar.
func renderProgressBar(width int, elapsed, duration time.Duration, filled, empty lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	n := 0
	if duration > 0 {
		n = int(int64(width) * int64(elapsed) / int64(duration))
		if n > width {
			n = width
		}
		if n < 0 {
			n = 0
		}
	}
	return filled.Render(strings.Repeat("━", n)) + empty.Render(strings.Repeat("─", width-n))
}

// renderTitledBox renders content in a bordered box with the title
// embedded in the top border: ┌─── Title ───┐. Focused boxes use the
// focus border and background colors.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := len([]rune(title))
	leftPad := (innerWidth - titleLen - 2) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := innerWidth - titleLen - 2 - leftPad
	if rightPad < 0 {
		rightPad = 0
	}

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	var paddedLines []string
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}
