package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	appTitle    = "InstaShopper"
	appSubtitle = "AI-Powered Video Product Analysis"
)

// renderHeader renders the title bar with backend health and theme.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Join([]string{
		bg.Render("◆ "+appTitle, styles.Logo),
		bg.Render(appSubtitle, styles.MutedText),
	}, "  ")

	right := bg.Join([]string{
		m.renderHealth(styles, bg),
		bg.Render(ternary(m.theme.Dark, "☾ dark", "☀ light"), styles.FaintText),
	}, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Narrow terminals drop the subtitle first
		left = bg.Render("◆ "+appTitle, styles.Logo)
		gap = max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	}

	content := left + bg.Spaces(gap) + right
	return styles.Header.Width(m.width).Render(content)
}

// renderHealth shows the polled backend status.
func (m Model) renderHealth(styles Styles, bg BgStyle) string {
	label := m.snapshot.Label()
	var style lipgloss.Style
	switch {
	case m.snapshot.IsOffline():
		style = styles.DangerText
	case m.snapshot.LastError != nil:
		style = styles.WarningText
	case !m.snapshot.HasHealth:
		style = styles.FaintText
	default:
		style = styles.SuccessText
	}
	return bg.Render("● backend "+label, style)
}

// renderFooter renders the context key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	m.help.Width = m.width - 2
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText

	if m.editing {
		hint := "enter confirm · esc cancel"
		if m.tab == TabUpload {
			hint = "type or paste a video path · " + hint
		}
		return styles.Footer.Render(styles.MutedText.Render(hint))
	}
	return styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
