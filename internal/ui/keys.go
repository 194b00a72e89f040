package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit         key.Binding
	Help         key.Binding
	ToggleTheme  key.Binding
	NextTab      key.Binding
	TabLink      key.Binding
	TabUpload    key.Binding
	DismissToast key.Binding

	// Input
	Edit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// Flow actions
	Analyze   key.Binding
	ClearFile key.Binding

	// Results
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	FindSimilar key.Binding

	// Similar items modal
	PrevStrategy key.Binding
	NextStrategy key.Binding
	Refresh      key.Binding
	TryOther     key.Binding
	OpenItem     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Toggle dark/light"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Switch tab"),
		),
		TabLink: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Video link"),
		),
		TabUpload: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Upload file"),
		),
		DismissToast: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss notification"),
		),

		// Input
		Edit: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i", "Edit link/path"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel/close"),
		),

		// Flow actions
		Analyze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Analyze"),
		),
		ClearFile: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear file"),
		),

		// Results
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Previous product"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Next product"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Scroll down"),
		),
		FindSimilar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Find similar"),
		),

		// Similar items modal
		PrevStrategy: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("h/left", "Previous source"),
		),
		NextStrategy: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("l/right", "Next source"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh search"),
		),
		TryOther: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Try other source"),
		),
		OpenItem: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Show item link"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Edit, k.Analyze, k.FindSimilar, k.ToggleTheme, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.TabLink, k.TabUpload},
		{k.Edit, k.Confirm, k.Cancel, k.Analyze, k.ClearFile},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.FindSimilar},
		{k.PrevStrategy, k.NextStrategy, k.Confirm, k.Refresh, k.TryOther, k.OpenItem},
		{k.DismissToast, k.ToggleTheme, k.Help, k.Quit},
	}
}
