package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/shopper/internal/toast"
)

// renderToasts stacks the newest toasts, each with a countdown bar.
func (m Model) renderToasts(now time.Time) []string {
	active := m.toasts.Active()
	if len(active) == 0 {
		return nil
	}
	if len(active) > ToastMaxVisible {
		active = active[len(active)-ToastMaxVisible:]
	}

	styles := m.theme.Styles()
	width := min(ToastWidth, max(20, m.width-2))
	inner := width - 4

	var lines []string
	for _, t := range active {
		lines = append(lines, strings.Split(m.renderToast(styles, t, now, inner, width), "\n")...)
	}
	return lines
}

func (m Model) renderToast(styles Styles, t toast.Toast, now time.Time, inner, width int) string {
	color := m.theme.KindColor(t.Kind)
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)

	var b strings.Builder
	title := t.Title
	if title == "" {
		title = toastLabel(t.Kind)
	}
	b.WriteString(titleStyle.Render(toastIcon(t.Kind) + " " + truncate(title, inner-2)))
	for _, l := range wrap(t.Message, inner) {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(l))
	}
	b.WriteString("\n")

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
		progress.WithWidth(inner),
	)
	bar.EmptyColor = m.theme.SurfaceAlt
	b.WriteString(bar.ViewAs(t.Remaining(now)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(0, 1).
		Width(width - 2).
		Render(b.String())
}

// overlayToasts draws the toast stack over the top-right corner of view,
// just below the header.
func (m Model) overlayToasts(view string) string {
	toastLines := m.renderToasts(time.Now())
	if len(toastLines) == 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	for i, tl := range toastLines {
		row := i + 1
		if row >= len(lines) {
			break
		}
		col := max(0, m.width-lipgloss.Width(tl)-1)
		base := ansi.Truncate(lines[row], col, "")
		if pad := col - lipgloss.Width(base); pad > 0 {
			base += strings.Repeat(" ", pad)
		}
		lines[row] = base + tl
	}
	return strings.Join(lines, "\n")
}

func toastIcon(k toast.Kind) string {
	switch k {
	case toast.KindSuccess:
		return "✓"
	case toast.KindError:
		return "✗"
	case toast.KindWarning:
		return "!"
	default:
		return "i"
	}
}

func toastLabel(k toast.Kind) string {
	switch k {
	case toast.KindSuccess:
		return "Success"
	case toast.KindError:
		return "Error"
	case toast.KindWarning:
		return "Warning"
	default:
		return "Info"
	}
}
