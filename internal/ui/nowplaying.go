package ui

import (
	"fmt"
	"strings"
)

// Queue mode splits the content area 40/60: now playing left, queue right.
const nowPlayingShare = 40

const (
	minArtWidth = 10
	maxArtWidth = 48
)

func (m Model) nowPlayingWidth() int {
	return m.width * nowPlayingShare / 100
}

// contentHeight is the rows left for the mode panes below the header and
// command bar.
func (m Model) contentHeight() int {
	h := m.height - 2
	if h < 0 {
		h = 0
	}
	return h
}

// artWidth returns the cover size in cells for the current layout. Two
// pixel rows pack into one cell row, so pane height caps the width at
// twice the rate the pane width does.
func (m Model) artWidth() int {
	w := m.nowPlayingWidth() - 6
	maxRows := m.contentHeight() - 12
	if w > maxRows*2 {
		w = maxRows * 2
	}
	if w > maxArtWidth {
		w = maxArtWidth
	}
	return w
}

// refreshArt re-renders the cached cover bytes at the current art size.
// Called when a cover arrives and when the window resizes.
func (m *Model) refreshArt() {
	m.art = ""
	if len(m.artData) == 0 {
		return
	}
	width := m.artWidth()
	if width < minArtWidth {
		return
	}
	img, err := decodeCover(m.artData)
	if err != nil {
		m.logger.Debug("cover decode failed", "key", m.artKey, "error", err)
		return
	}
	m.art = renderArt(img, width)
}

// renderNowPlaying renders the left pane of queue mode: cover art, track
// metadata, progress, and the current lyric line.
func (m Model) renderNowPlaying(width, height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)

	lineWidth := width - 4
	if lineWidth < 1 {
		lineWidth = 1
	}

	cur := m.snapshot.Current
	if cur == nil {
		content := "\n " + styles.MutedText.Render("Nothing playing")
		return m.renderTitledBox("Now Playing", content, width, height, false)
	}

	var lines []string
	push := func(s string) { lines = append(lines, " "+s) }

	art := m.art
	artWidth := m.artWidth()
	if art == "" && artWidth >= minArtWidth {
		art = renderArtPlaceholder(artWidth, styles.FaintText)
	}
	if art != "" {
		pad := (lineWidth - artWidth) / 2
		if pad < 0 {
			pad = 0
		}
		indent := strings.Repeat(" ", pad)
		for _, row := range strings.Split(art, "\n") {
			push(indent + row)
		}
		push("")
	}

	push(styles.Text.Bold(true).Render(truncate(cur.Title, lineWidth-1)))
	push(styles.AccentText.Render(truncate(cur.Artist, lineWidth-1)))
	if cur.Album != "" {
		push(styles.MutedText.Render(truncate(cur.Album, lineWidth-1)))
	}

	status := m.snapshot.Status
	if audio := formatAudio(status.Audio); audio != "" {
		detail := audio
		if status.Bitrate > 0 {
			detail = fmt.Sprintf("%s · %d kbps", audio, status.Bitrate)
		}
		push(styles.FaintText.Render(truncate(detail, lineWidth-1)))
	}

	if status.Duration > 0 {
		push("")
		push(renderProgressBar(lineWidth-1, status.Elapsed, status.Duration, styles.AccentText, styles.FaintText))
		times := fmt.Sprintf("%s / %s", formatDuration(status.Elapsed), formatDuration(status.Duration))
		push(styles.MutedText.Render(times))
	}

	if line, ok := m.lyrics.LineAt(status.Elapsed); ok && line != "" {
		push("")
		push(styles.InfoText.Italic(true).Render(truncate(line, lineWidth-1)))
	}

	return m.renderTitledBox("Now Playing", strings.Join(lines, "\n"), width, height, false)
}
