package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a dialog drawn over the main layout. It receives every message
// while open. Update reports done=true when the dialog should go away; the
// root model then calls Close exactly once and drops it.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (next Modal, cmd tea.Cmd, done bool)
	View(theme Theme, width, height int) string
	Close()
}

// placeModal centers a rendered dialog on a blank screen of the theme's
// background.
func placeModal(theme Theme, width, height int, content string) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
