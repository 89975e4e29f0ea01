package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sphene/coda/internal/library"
	"github.com/sphene/coda/internal/mpd"
)

// syncQueueCursor re-anchors the cursor after the queue changes.
// Preserves the selection by song key when the song survived the change,
// otherwise clamps to the new bounds.
func (m *Model) syncQueueCursor(prev []library.Track) {
	queue := m.snapshot.Queue
	if len(queue) == 0 {
		m.queueCursor = 0
		return
	}

	if m.queueCursor >= 0 && m.queueCursor < len(prev) {
		selectedKey := prev[m.queueCursor].Key
		for i, t := range queue {
			if t.Key == selectedKey {
				m.queueCursor = i
				return
			}
		}
	}

	if m.queueCursor >= len(queue) {
		m.queueCursor = len(queue) - 1
	}
	if m.queueCursor < 0 {
		m.queueCursor = 0
	}
}

// handleQueueKey processes keys owned by queue mode.
func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	queue := m.snapshot.Queue

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.queueCursor > 0 {
			m.queueCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.queueCursor < len(queue)-1 {
			m.queueCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.PlaySelected):
		if m.queueCursor >= len(queue) {
			return m, nil
		}
		pos := m.queueCursor
		return m, m.actionCmd("play position", func(ctx context.Context) error {
			return m.client.Play(ctx, pos)
		})

	case key.Matches(msg, m.keys.Remove):
		if m.queueCursor >= len(queue) {
			return m, nil
		}
		pos := m.queueCursor
		return m, m.actionCmd("remove from queue", func(ctx context.Context) error {
			return m.client.RemoveFromQueue(ctx, pos)
		})

	case key.Matches(msg, m.keys.MoveUp):
		if m.queueCursor <= 0 || m.queueCursor >= len(queue) {
			return m, nil
		}
		from := m.queueCursor
		m.queueCursor--
		return m, m.actionCmd("move up", func(ctx context.Context) error {
			return m.client.MoveInQueue(ctx, from, from-1)
		})

	case key.Matches(msg, m.keys.MoveDown):
		if m.queueCursor < 0 || m.queueCursor >= len(queue)-1 {
			return m, nil
		}
		from := m.queueCursor
		m.queueCursor++
		return m, m.actionCmd("move down", func(ctx context.Context) error {
			return m.client.MoveInQueue(ctx, from, from+1)
		})
	}

	return m, nil
}

// renderQueueMode renders the queue view: now playing left, queue right.
func (m Model) renderQueueMode() string {
	styles := m.theme.Styles()
	contentHeight := m.contentHeight()

	leftWidth := m.nowPlayingWidth()
	rightWidth := m.width - leftWidth

	leftPane := m.renderNowPlaying(leftWidth, contentHeight)

	var rightPane string
	if len(m.snapshot.Queue) == 0 {
		emptyMsg := styles.MutedText.Render("Queue is empty")
		content := lipgloss.Place(rightWidth-2, contentHeight-2, lipgloss.Center, lipgloss.Center, emptyMsg)
		rightPane = m.renderTitledBox("Queue", content, rightWidth, contentHeight, true)
	} else {
		content := m.renderQueueTable(rightWidth-2, contentHeight-2, m.theme.FocusBg)
		rightPane = m.renderTitledBox(m.queueTitle(), content, rightWidth, contentHeight, true)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// queueTitle returns the queue pane title with count and total runtime.
func (m Model) queueTitle() string {
	queue := m.snapshot.Queue
	var total time.Duration
	for _, t := range queue {
		total += t.Duration
	}
	if total == 0 {
		return fmt.Sprintf("Queue (%d)", len(queue))
	}
	return fmt.Sprintf("Queue (%d · %s)", len(queue), formatDuration(total))
}

// renderQueueTable renders the queue as styled rows, windowed so the
// cursor stays visible.
func (m Model) renderQueueTable(width, height int, bgColor string) string {
	queue := m.snapshot.Queue
	if len(queue) == 0 || height <= 0 {
		return ""
	}

	start := 0
	if m.queueCursor >= height {
		start = m.queueCursor - height + 1
	}
	end := start + height
	if end > len(queue) {
		end = len(queue)
	}

	playing := -1
	if m.snapshot.Status.State == mpd.StatePlay || m.snapshot.Status.State == mpd.StatePause {
		playing = m.snapshot.Status.Song
	}

	var lines []string
	for i := start; i < end; i++ {
		selected := i == m.queueCursor
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatQueueRow(i, queue[i], width, rowBg, selected, i == playing)
		line := lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// formatQueueRow formats one queue row with inline colors.
// Format: "▶ 12 Title · Artist 3:45" with the marker only on the
// playing row. Selected rows use SelectionText throughout for contrast.
func (m Model) formatQueueRow(i int, t library.Track, width int, bgColor string, selected, playing bool) string {
	bg := NewBgStyle(bgColor)

	marker := " "
	if playing {
		marker = "▶"
	}
	posStr := fmt.Sprintf("%3d", i+1)
	durStr := formatDuration(t.Duration)

	artist := t.Artist
	separatorLen := 0
	if artist != "" {
		separatorLen = 3 // " · "
	}
	titleWidth := max(width-2-len(posStr)-len(durStr)-separatorLen-len([]rune(artist))-4, 10)

	var markerStyle, posStyle, titleStyle, sepStyle, artistStyle, durStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		markerStyle = selText.Bold(true)
		posStyle = selText
		titleStyle = selText
		sepStyle = selText
		artistStyle = selText
		durStyle = selText
	} else {
		styles := m.theme.Styles()
		markerStyle = styles.AccentText.Bold(true)
		posStyle = styles.FaintText
		titleStyle = styles.Text
		sepStyle = styles.FaintText
		artistStyle = styles.MutedText
		durStyle = styles.MutedText
	}
	if playing && !selected {
		titleStyle = m.theme.Styles().AccentText
	}

	parts := bg.Render(marker, markerStyle) + bg.Space() +
		bg.Render(posStr, posStyle) + bg.Space() +
		bg.Render(truncate(t.Title, titleWidth), titleStyle)
	if artist != "" {
		parts += bg.Render(" · ", sepStyle) + bg.Render(truncate(artist, 24), artistStyle)
	}
	parts += bg.Space() + bg.Render(durStr, durStyle)

	return parts
}
