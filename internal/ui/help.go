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
			title: "Input",
			items: []helpItem{
				{"tab/1/2", "Video link / upload file"},
				{"i/enter", "Edit link or file path"},
				{"paste", "Drop a file or paste a link"},
				{"a", "Analyze video"},
				{"c", "Clear selected file"},
			},
		},
		{
			title: "Products",
			items: []helpItem{
				{"j/k", "Move up/down"},
				{"ctrl+d/u", "Half page down/up"},
				{"s", "Find similar items"},
			},
		},
		{
			title: "Similar Items",
			items: []helpItem{
				{"h/l", "Choose search source"},
				{"enter", "Search"},
				{"r", "Refresh"},
				{"t", "Try other source"},
				{"o", "Show item link"},
				{"esc", "Close"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"x", "Dismiss notification"},
				{"T", "Toggle dark/light"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
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
		Width(44)

	return placeModal(m.theme, m.width, m.height, modal.Render(b.String()))
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
