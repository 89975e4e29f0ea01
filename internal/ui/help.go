package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Playback",
			items: []helpItem{
				{"space/p", "Play/pause"},
				{"</>", "Previous/next song"},
				{"H/L", "Seek back/forward 5s"},
				{"-/+", "Volume down/up"},
				{"m", "Toggle mute"},
				{"r/z/s/c", "Repeat/random/single/consume"},
			},
		},
		{
			title: "Views",
			items: []helpItem{
				{"1/2", "Queue/Library"},
				{"ctrl+h/l", "Cycle views"},
			},
		},
		{
			title: "Queue",
			items: []helpItem{
				{"j/k", "Move down/up"},
				{"enter", "Play selected"},
				{"x", "Remove selected"},
				{"ctrl+j/k", "Move song down/up"},
				{"d", "Clear queue"},
			},
		},
		{
			title: "Library",
			items: []helpItem{
				{"h/l", "Switch panel"},
				{"l", "Expand/collapse album"},
				{"a/enter", "Add to queue"},
				{"/", "Filter artists"},
				{"u", "Update database"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/esc", "Quit"},
			},
		},
	}

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(42)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
