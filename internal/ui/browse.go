package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/sphene/coda/internal/library"
)

// browseRow is one display row of the albums panel: an album header, or
// a track of an expanded album.
type browseRow struct {
	albumIdx int
	trackIdx int // -1 for the album header row
}

// expansionKey identifies an album in the expansion set. Albums with the
// same name under different artists expand independently.
func expansionKey(artist, album string) string {
	return artist + "\x00" + album
}

// filterArtists returns the indices of names fuzzy-matching query, best
// matches first. An empty query means no filter.
func filterArtists(names []string, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	ranks := fuzzy.RankFindFold(query, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = r.OriginalIndex
	}
	return out
}

// searchQuery returns the active artist filter text.
func (m Model) searchQuery() string {
	return strings.TrimSpace(m.searchInput.Value())
}

// visibleCount is the number of artists under the active filter.
func (m Model) visibleCount() int {
	if m.lib == nil {
		return 0
	}
	if m.filtered == nil {
		return len(m.lib.Artists)
	}
	return len(m.filtered)
}

// artistIndexAt maps a cursor position onto a library artist index, or
// -1 when the position is out of range.
func (m Model) artistIndexAt(pos int) int {
	if m.lib == nil || pos < 0 {
		return -1
	}
	if m.filtered == nil {
		if pos >= len(m.lib.Artists) {
			return -1
		}
		return pos
	}
	if pos >= len(m.filtered) {
		return -1
	}
	return m.filtered[pos]
}

// applyFilter recomputes the filtered artist list from the search input.
func (m *Model) applyFilter() {
	if m.lib == nil {
		m.filtered = nil
		return
	}
	names := make([]string, len(m.lib.Artists))
	for i, a := range m.lib.Artists {
		names[i] = a.Name
	}
	m.filtered = filterArtists(names, m.searchInput.Value())
	m.artistCursor = 0
	m.albumCursor = 0
}

// albumRows flattens the selected artist's albums into display rows,
// inlining the tracks of albums the user expanded. Nil until the artist
// has been loaded.
func (m Model) albumRows() []browseRow {
	idx := m.artistIndexAt(m.artistCursor)
	if m.lib == nil || idx < 0 {
		return nil
	}
	albums, ok, err := m.lib.Albums(idx)
	if err != nil || !ok {
		return nil
	}
	artist, err := m.lib.Artist(idx)
	if err != nil {
		return nil
	}
	var rows []browseRow
	for ai, album := range albums {
		rows = append(rows, browseRow{albumIdx: ai, trackIdx: -1})
		if m.expanded[expansionKey(artist.Name, album.Name)] {
			for ti := range album.Tracks {
				rows = append(rows, browseRow{albumIdx: ai, trackIdx: ti})
			}
		}
	}
	return rows
}

// handleSearchKey processes keys while the artist filter input is open.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.filtered = nil
		m.artistCursor = 0
		m.albumCursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// handleLibraryKey processes keys owned by library mode.
func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Search) {
		m.searching = true
		m.panel = FocusArtists
		return m, m.searchInput.Focus()
	}

	if m.lib == nil {
		return m, nil
	}

	switch m.panel {
	case FocusAlbums:
		return m.handleAlbumsKey(msg)
	default:
		return m.handleArtistsKey(msg)
	}
}

func (m Model) handleArtistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.artistCursor > 0 {
			m.artistCursor--
			m.albumCursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.artistCursor < m.visibleCount()-1 {
			m.artistCursor++
			m.albumCursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.PlaySelected):
		// enter, l, right: descend into the albums panel, fetching the
		// artist's albums if this is the first visit.
		idx := m.artistIndexAt(m.artistCursor)
		if idx < 0 {
			return m, nil
		}
		m.panel = FocusAlbums
		m.albumCursor = 0
		return m, m.loadArtistCmd(idx)
	}

	return m, nil
}

func (m Model) handleAlbumsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.albumRows()

	switch {
	case key.Matches(msg, m.keys.PanelLeft):
		m.panel = FocusArtists
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.albumCursor > 0 {
			m.albumCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.albumCursor < len(rows)-1 {
			m.albumCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.PanelRight):
		// l, right: expand or collapse the album under the cursor.
		if m.albumCursor >= len(rows) {
			return m, nil
		}
		row := rows[m.albumCursor]
		if row.trackIdx >= 0 {
			return m, nil
		}
		idx := m.artistIndexAt(m.artistCursor)
		albums, ok, err := m.lib.Albums(idx)
		if err != nil || !ok || row.albumIdx >= len(albums) {
			return m, nil
		}
		artist, err := m.lib.Artist(idx)
		if err != nil {
			return m, nil
		}
		k := expansionKey(artist.Name, albums[row.albumIdx].Name)
		m.expanded[k] = !m.expanded[k]
		return m, nil

	case key.Matches(msg, m.keys.Add):
		// a, enter: queue the album or track under the cursor.
		if m.albumCursor >= len(rows) {
			return m, nil
		}
		row := rows[m.albumCursor]
		idx := m.artistIndexAt(m.artistCursor)
		albums, ok, err := m.lib.Albums(idx)
		if err != nil || !ok || row.albumIdx >= len(albums) {
			return m, nil
		}
		album := albums[row.albumIdx]
		if row.trackIdx >= 0 {
			if row.trackIdx >= len(album.Tracks) {
				return m, nil
			}
			track := album.Tracks[row.trackIdx]
			return m, m.actionCmd("add track", func(ctx context.Context) error {
				return m.client.Add(ctx, track.Key)
			})
		}
		tracks := album.Tracks
		return m, m.actionCmd("add album", func(ctx context.Context) error {
			for _, t := range tracks {
				if err := m.client.Add(ctx, t.Key); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return m, nil
}

// renderLibraryMode renders the library view: artists left, albums right.
func (m Model) renderLibraryMode() string {
	styles := m.theme.Styles()
	contentHeight := m.contentHeight()

	if m.libErr != nil {
		msg := styles.DangerText.Render("Library unavailable: "+truncate(m.libErr.Error(), 60)) +
			"\n" + styles.MutedText.Render("Press u to retry")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}
	if m.lib == nil {
		msg := styles.MutedText.Render("Loading library...")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	leftWidth := m.width * 40 / 100
	rightWidth := m.width - leftWidth

	artistsFocused := m.panel == FocusArtists && !m.searching
	leftBg := m.theme.SurfaceAlt
	if artistsFocused {
		leftBg = m.theme.FocusBg
	}
	leftPane := m.renderTitledBox(m.artistsTitle(), m.renderArtistList(leftWidth-2, contentHeight-2, leftBg), leftWidth, contentHeight, artistsFocused)

	albumsFocused := m.panel == FocusAlbums && !m.searching
	rightBg := m.theme.SurfaceAlt
	if albumsFocused {
		rightBg = m.theme.FocusBg
	}
	rightPane := m.renderTitledBox(m.albumsTitle(), m.renderAlbumList(rightWidth-2, contentHeight-2, rightBg), rightWidth, contentHeight, albumsFocused)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

func (m Model) artistsTitle() string {
	total := len(m.lib.Artists)
	if m.filtered == nil {
		return fmt.Sprintf("Artists (%d)", total)
	}
	return fmt.Sprintf("Artists (%d/%d)", len(m.filtered), total)
}

func (m Model) albumsTitle() string {
	idx := m.artistIndexAt(m.artistCursor)
	if idx < 0 {
		return "Albums"
	}
	artist, err := m.lib.Artist(idx)
	if err != nil {
		return "Albums"
	}
	return truncate(artist.Name, 40)
}

// renderArtistList renders the artist names, windowed so the cursor
// stays visible, with the filter input on top while searching.
func (m Model) renderArtistList(width, height int, bgColor string) string {
	var lines []string

	if m.searching || m.searchQuery() != "" {
		lines = append(lines, " "+m.searchInput.View())
		height--
	}

	count := m.visibleCount()
	if count == 0 {
		styles := m.theme.Styles().WithBackground(bgColor)
		if m.searchQuery() != "" {
			lines = append(lines, " "+styles.MutedText.Render("No matches"))
		} else {
			lines = append(lines, " "+styles.MutedText.Render("No artists"))
		}
		return strings.Join(lines, "\n")
	}
	if height <= 0 {
		return strings.Join(lines, "\n")
	}

	start := 0
	if m.artistCursor >= height {
		start = m.artistCursor - height + 1
	}
	end := start + height
	if end > count {
		end = count
	}

	for pos := start; pos < end; pos++ {
		idx := m.artistIndexAt(pos)
		if idx < 0 {
			break
		}
		selected := pos == m.artistCursor
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatArtistRow(m.lib.Artists[idx].Name, width, rowBg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}

	return strings.Join(lines, "\n")
}

func (m Model) formatArtistRow(name string, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	style := m.theme.Styles().Text
	if selected {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
	}
	return bg.Space() + bg.Render(truncate(name, max(width-2, 1)), style)
}

// renderAlbumList renders the selected artist's albums, with expanded
// albums showing their tracks inline.
func (m Model) renderAlbumList(width, height int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)

	idx := m.artistIndexAt(m.artistCursor)
	if idx < 0 {
		return " " + styles.MutedText.Render("No artist selected")
	}
	artist, err := m.lib.Artist(idx)
	if err != nil {
		return ""
	}
	if !artist.IsLoaded() {
		return " " + styles.MutedText.Render("Loading albums...")
	}

	rows := m.albumRows()
	if len(rows) == 0 {
		return " " + styles.MutedText.Render("No albums")
	}
	if height <= 0 {
		return ""
	}

	start := 0
	if m.albumCursor >= height {
		start = m.albumCursor - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}

	var lines []string
	for pos := start; pos < end; pos++ {
		row := rows[pos]
		album := artist.Albums[row.albumIdx]
		selected := pos == m.albumCursor
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		var content string
		if row.trackIdx < 0 {
			expanded := m.expanded[expansionKey(artist.Name, album.Name)]
			content = m.formatAlbumRow(album.Name, len(album.Tracks), width, rowBg, selected, expanded)
		} else {
			content = m.formatTrackRow(album.Tracks[row.trackIdx], width, rowBg, selected)
		}
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}

	return strings.Join(lines, "\n")
}

func (m Model) formatAlbumRow(name string, trackCount, width int, bgColor string, selected, expanded bool) string {
	bg := NewBgStyle(bgColor)

	arrow := "▸"
	if expanded {
		arrow = "▾"
	}
	countStr := fmt.Sprintf("(%d)", trackCount)

	var arrowStyle, nameStyle, countStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		arrowStyle = selText
		nameStyle = selText.Bold(true)
		countStyle = selText
	} else {
		styles := m.theme.Styles()
		arrowStyle = styles.AccentText
		nameStyle = styles.Text.Bold(true)
		countStyle = styles.FaintText
	}

	nameWidth := max(width-len(countStr)-6, 10)
	return bg.Space() + bg.Render(arrow, arrowStyle) + bg.Space() +
		bg.Render(truncate(name, nameWidth), nameStyle) + bg.Space() +
		bg.Render(countStr, countStyle)
}

func (m Model) formatTrackRow(t library.Track, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)

	numStr := "  "
	if t.Track > 0 {
		numStr = fmt.Sprintf("%2d", t.Track)
	}
	durStr := formatDuration(t.Duration)

	var numStyle, titleStyle, durStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		numStyle = selText
		titleStyle = selText
		durStyle = selText
	} else {
		styles := m.theme.Styles()
		numStyle = styles.FaintText
		titleStyle = styles.Text
		durStyle = styles.MutedText
	}

	titleWidth := max(width-len(numStr)-len(durStr)-9, 10)
	return bg.Spaces(4) + bg.Render(numStr, numStyle) + bg.Space() +
		bg.Render(truncate(t.Title, titleWidth), titleStyle) + bg.Space() +
		bg.Render(durStr, durStyle)
}
