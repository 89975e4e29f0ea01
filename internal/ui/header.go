package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, player state, the playing
// song, volume, player modes, and the last poll error if any.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if !m.snapshot.HasStatus {
		return m.renderConnectingHeader(styles, bg)
	}

	content := m.buildStatusContent(styles, bg)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(content)
}

// renderConnectingHeader shows the connecting/error state.
func (m Model) renderConnectingHeader(styles Styles, bg BgStyle) string {
	sep := bg.Spaces(2)

	if m.snapshot.LastError != nil {
		last := "soon"
		if !m.snapshot.LastUpdated.IsZero() {
			last = m.snapshot.LastUpdated.Format("15:04:05")
		}
		errorMsg := classifyConnectionError(m.snapshot.LastError)

		parts := []string{
			bg.Render("coda", styles.Logo),
			bg.Render("MPD "+errorMsg, styles.DangerText.Bold(true)),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
			bg.Render(last, styles.MutedText),
		}
		return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
	}

	return styles.Header.Width(m.width).Render(
		bg.Render("coda", styles.Logo) + sep +
			bg.Render("Connecting to MPD...", styles.WarningText.Bold(true)),
	)
}

// buildStatusContent builds the status bar content string.
func (m Model) buildStatusContent(styles Styles, bg BgStyle) string {
	compact := m.width < 100
	status := m.snapshot.Status

	var parts []string

	parts = append(parts, bg.Render("coda", styles.Logo))

	// Player state badge; a repeatedly failing poll overrides it
	stateName := status.State.String()
	if m.snapshot.IsOffline() {
		stateName = "offline"
	}
	parts = append(parts, styles.StatusStyle(stateName).Render(strings.ToUpper(stateName)))

	// Now playing
	if cur := m.snapshot.Current; cur != nil {
		maxTitle := 60
		if compact {
			maxTitle = 30
		}
		line := truncate(cur.Title+" · "+cur.Artist, maxTitle)
		parts = append(parts, bg.Render(line, styles.Text))
	}

	// Volume
	if status.Volume >= 0 {
		vol := fmt.Sprintf("%d%%", status.Volume)
		if m.muted {
			vol = "muted"
		}
		parts = append(parts,
			bg.Render("Vol:", styles.MutedText)+bg.Space()+bg.Render(vol, styles.Text))
	}

	// Mode flags: lit when on, faint when off
	parts = append(parts, m.renderModeFlags(styles, bg))

	// Bitrate while decoding
	if !compact && status.Bitrate > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d kbps", status.Bitrate), styles.MutedText))
	}

	// Timestamp with relative indicator
	if timeStr := m.formatTimestamp(); timeStr != "" {
		parts = append(parts, bg.Render(timeStr, styles.MutedText))
	}

	// Error indicator
	if m.snapshot.LastError != nil {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		errText := truncate(fmt.Sprintf("%v", m.snapshot.LastError), maxErr)
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(errText, styles.DangerText))
	}

	return bg.Join(parts, "  ")
}

// renderModeFlags renders the repeat/random/single/consume indicators.
func (m Model) renderModeFlags(styles Styles, bg BgStyle) string {
	status := m.snapshot.Status
	flags := []struct {
		letter string
		on     bool
	}{
		{"r", status.Repeat},
		{"z", status.Random},
		{"s", status.Single},
		{"c", status.Consume},
	}

	segments := make([]string, 0, len(flags))
	for _, f := range flags {
		if f.on {
			segments = append(segments, bg.Render(f.letter, styles.AccentText.Bold(true)))
		} else {
			segments = append(segments, bg.Render(f.letter, styles.FaintText))
		}
	}
	return bg.Render("[", styles.FaintText) + strings.Join(segments, "") + bg.Render("]", styles.FaintText)
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	if m.snapshot.LastUpdated.IsZero() {
		return ""
	}

	timeSince := time.Since(m.snapshot.LastUpdated)
	timeStr := m.snapshot.LastUpdated.Format("15:04:05")

	if timeSince < time.Minute {
		timeStr += " (now)"
	} else if timeSince < time.Hour {
		timeStr += fmt.Sprintf(" (%dm ago)", int(timeSince.Minutes()))
	} else if timeSince < 24*time.Hour {
		timeStr += fmt.Sprintf(" (%dh ago)", int(timeSince.Hours()))
	}

	return timeStr
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints bar below the header.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.mode {
	case ModeLibrary:
		commands = []cmd{
			{"h/l", "Panels"},
			{"j/k", "Navigate"},
			{"a", "Add"},
			{"/", "Search"},
			{"u", "Reload"},
			{"1", "Queue"},
			{"?", "More"},
		}
	default: // ModeQueue
		commands = []cmd{
			{"Space", "Play/Pause"},
			{"</>", "Prev/Next"},
			{"j/k", "Navigate"},
			{"x", "Remove"},
			{"d", "Clear"},
			{"2", "Library"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Active artist filter
	if m.mode == ModeLibrary && m.searchQuery() != "" {
		segments = append(segments,
			bg.Render("/"+truncate(m.searchQuery(), 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
