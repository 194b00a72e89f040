package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shopper/internal/upload"
	"github.com/five82/shopper/internal/videolink"
)

// compactInputHeight is the outer height of the input panel when the
// columns stack.
const compactInputHeight = 14

// layout recomputes component sizes after a resize.
func (m *Model) layout() {
	bodyH := max(0, m.height-2)
	leftW, rightW := m.columnWidths()
	resultsH := bodyH
	if m.compact() {
		resultsH = bodyH - compactInputHeight
	}
	m.results.Width = max(10, rightW-4)
	m.results.Height = max(1, resultsH-2)
	m.input.Width = max(10, leftW-8)
}

func (m Model) compact() bool {
	return m.width < LayoutCompactWidth
}

// columnWidths returns the outer widths of the input and results columns.
// Stacked layouts give both the full width.
func (m Model) columnWidths() (int, int) {
	if m.compact() {
		return m.width, m.width
	}
	left := max(LayoutMinLeftWidth, m.width*2/5)
	return left, m.width - left
}

// renderMain composes the header, both columns, the footer and toasts.
func (m Model) renderMain() string {
	bodyH := max(0, m.height-2)
	leftW, rightW := m.columnWidths()

	var body string
	if m.compact() {
		input := m.renderInputPanel(leftW, compactInputHeight)
		results := m.renderResultsPanel(rightW, max(3, bodyH-compactInputHeight))
		body = lipgloss.JoinVertical(lipgloss.Left, input, results)
	} else {
		input := m.renderInputPanel(leftW, bodyH)
		results := m.renderResultsPanel(rightW, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, input, results)
	}
	body = clampLines(body, bodyH)

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
	return m.overlayToasts(view)
}

// renderInputPanel draws the tab bar and the active flow.
func (m Model) renderInputPanel(width, height int) string {
	styles := m.theme.Styles()
	inner := max(10, width-4)

	var b strings.Builder
	b.WriteString(m.renderTabs(styles))
	b.WriteString("\n\n")
	if m.tab == TabUpload {
		b.WriteString(m.renderUploadFlow(styles, inner))
	} else {
		b.WriteString(m.renderLinkFlow(styles, inner))
	}

	panel := styles.Panel
	if m.editing {
		panel = styles.FocusPanel
	}
	content := clampLines(b.String(), max(1, height-2))
	return panel.Width(width - 2).Height(max(1, height-2)).Render(content)
}

func (m Model) renderTabs(styles Styles) string {
	tabs := []Tab{TabLink, TabUpload}
	out := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.tab {
			out[i] = styles.TabActive.Render(label)
		} else {
			out[i] = styles.TabInactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// renderLinkFlow shows the link field and the resolved preview.
func (m Model) renderLinkFlow(styles Styles, width int) string {
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Paste a TikTok or Instagram link"))
	b.WriteString("\n")
	b.WriteString(m.renderInputField(styles, m.link.URL(), width))
	b.WriteString("\n\n")

	preview := m.link.Preview()
	switch preview.Kind {
	case videolink.PreviewEmbed:
		b.WriteString(styles.AccentText.Render("▶ " + preview.Title))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("video id " + preview.VideoID))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(truncateMiddle(preview.EmbedURL, width)))
	case videolink.PreviewLinkOut:
		b.WriteString(styles.AccentText.Render("▶ " + preview.Title))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(preview.Note))
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(truncateMiddle(preview.URL, width)))
	case videolink.PreviewFallback:
		b.WriteString(styles.WarningText.Render(preview.Title))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(truncateMiddle(preview.URL, width)))
	default:
		b.WriteString(styles.FaintText.Render("A preview appears here once a link is entered."))
	}
	b.WriteString("\n\n")

	switch {
	case m.link.Analyzing():
		b.WriteString(m.spinner.View() + " " + styles.AccentText.Render("Analyzing..."))
	case strings.TrimSpace(m.link.URL()) == "":
		b.WriteString(styles.FaintText.Render("a Analyze Video"))
	default:
		b.WriteString(styles.AccentText.Bold(true).Render("a Analyze Video"))
	}
	return b.String()
}

// renderUploadFlow shows the drop zone or the selected file card.
func (m Model) renderUploadFlow(styles Styles, width int) string {
	var b strings.Builder
	sel := m.upload.Selection()

	if sel == nil || m.editing {
		b.WriteString(m.renderDropZone(styles, width))
	} else {
		b.WriteString(m.renderFileCard(styles, sel, width))
	}
	b.WriteString("\n\n")

	switch m.upload.State() {
	case upload.StateUploading:
		b.WriteString(m.spinner.View() + " " + styles.AccentText.Render("Uploading and analyzing..."))
	case upload.StateFileSelected, upload.StateCompleted:
		if err := m.upload.LastError(); err != nil {
			b.WriteString(styles.DangerText.Render(truncate(err.Error(), width)))
			b.WriteString("\n")
			b.WriteString(styles.AccentText.Bold(true).Render("a Try Again"))
			b.WriteString(styles.FaintText.Render("  ·  c Clear"))
			break
		}
		b.WriteString(styles.AccentText.Bold(true).Render("a Analyze Video"))
		b.WriteString(styles.FaintText.Render("  ·  c Clear"))
	default:
		b.WriteString(styles.FaintText.Render("a Analyze Video"))
	}
	return b.String()
}

func (m Model) renderDropZone(styles Styles, width int) string {
	border := m.theme.Border
	headline := "Drop a video file here"
	detail := "Press i to type a path, or paste one"
	switch m.upload.Drag() {
	case upload.DragActive:
		border = m.theme.Accent
		headline = "Drop the file here"
	case upload.DragAccept:
		border = m.theme.Success
		headline = "Release to select this video"
	case upload.DragReject:
		border = m.theme.Danger
		headline = "Only video files are supported"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("⇪ " + headline))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(detail))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("MP4, MOV, AVI, WebM"))
	if m.editing {
		b.WriteString("\n\n")
		b.WriteString(m.renderInputField(styles, "", width-4))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(max(10, width-2)).
		Align(lipgloss.Center).
		Render(b.String())
}

func (m Model) renderFileCard(styles Styles, sel *upload.Selection, width int) string {
	f := sel.File
	var b strings.Builder
	b.WriteString(styles.SuccessText.Render("✓ ") + styles.Text.Bold(true).Render(truncateMiddle(f.Name, width-6)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%.2f MB · %s", float64(f.Size)/(1024*1024), upload.ContainerLabel(f.DeclaredType))))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(truncateMiddle(sel.PreviewURL, width-4)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Success)).
		Padding(0, 1).
		Width(max(10, width-2)).
		Render(b.String())
}

// renderInputField shows the live text input while editing, otherwise the
// committed value.
func (m Model) renderInputField(styles Styles, value string, width int) string {
	if m.editing {
		return m.input.View()
	}
	if strings.TrimSpace(value) == "" {
		return styles.FaintText.Render(truncate(m.input.Placeholder, width))
	}
	return styles.Text.Render(truncateMiddle(value, width))
}

// clampLines pads or cuts s to exactly n lines.
func clampLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
