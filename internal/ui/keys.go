package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Playback
	TogglePlay   key.Binding
	Next         key.Binding
	Previous     key.Binding
	SeekForward  key.Binding
	SeekBackward key.Binding
	VolumeUp     key.Binding
	VolumeDown   key.Binding
	Mute         key.Binding

	// Player modes
	Repeat  key.Binding
	Random  key.Binding
	Single  key.Binding
	Consume key.Binding

	// Views
	QueueMode     key.Binding
	LibraryMode   key.Binding
	CycleModeNext key.Binding
	CycleModePrev key.Binding

	// Shared navigation
	Up   key.Binding
	Down key.Binding

	// Queue actions
	PlaySelected key.Binding
	Remove       key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	ClearQueue   key.Binding

	// Library actions
	PanelLeft  key.Binding
	PanelRight key.Binding
	Add        key.Binding
	Search     key.Binding
	Reload     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		// Playback
		TogglePlay: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("Space/p", "Play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys(">", "J", "shift+down"),
			key.WithHelp(">", "Next song"),
		),
		Previous: key.NewBinding(
			key.WithKeys("<", "K", "shift+up"),
			key.WithHelp("<", "Previous song"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "Seek forward"),
		),
		SeekBackward: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "Seek backward"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Volume down"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Mute"),
		),

		// Player modes
		Repeat: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Repeat"),
		),
		Random: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Random"),
		),
		Single: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Single"),
		),
		Consume: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Consume"),
		),

		// Views
		QueueMode: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Queue view"),
		),
		LibraryMode: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Library view"),
		),
		CycleModeNext: key.NewBinding(
			key.WithKeys("ctrl+l", "ctrl+right"),
			key.WithHelp("ctrl+l", "Next view"),
		),
		CycleModePrev: key.NewBinding(
			key.WithKeys("ctrl+h", "ctrl+left"),
			key.WithHelp("ctrl+h", "Previous view"),
		),

		// Shared navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),

		// Queue actions
		PlaySelected: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "Play selected"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "Remove from queue"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("ctrl+k", "ctrl+up"),
			key.WithHelp("ctrl+k", "Move up in queue"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("ctrl+j", "ctrl+down"),
			key.WithHelp("ctrl+j", "Move down in queue"),
		),
		ClearQueue: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Clear queue"),
		),

		// Library actions
		PanelLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "Artists panel"),
		),
		PanelRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "Albums panel/expand"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/enter", "Add to queue"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search artists"),
		),
		Reload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Update and reload library"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePlay, k.Next, k.Previous, k.SeekForward, k.SeekBackward},
		{k.VolumeUp, k.VolumeDown, k.Mute},
		{k.Repeat, k.Random, k.Single, k.Consume},
		{k.QueueMode, k.LibraryMode, k.Up, k.Down},
		{k.PlaySelected, k.Remove, k.MoveUp, k.MoveDown, k.ClearQueue},
		{k.PanelLeft, k.PanelRight, k.Add, k.Search, k.Reload},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
