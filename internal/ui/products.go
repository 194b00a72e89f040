package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shopper/internal/results"
)

// renderResultsPanel frames the scrollable results viewport.
func (m Model) renderResultsPanel(width, height int) string {
	styles := m.theme.Styles()
	vp := m.results
	vp.Height = max(1, height-2)
	return styles.Panel.
		Width(max(1, width-2)).
		Height(max(1, height-2)).
		Render(vp.View())
}

// revealSelected scrolls the selected card into view on the next sync.
func (m *Model) revealSelected() {
	m.reveal = true
}

// syncResults re-renders the results content into the viewport. It runs
// after every update so the pane always reflects the model.
func (m *Model) syncResults() {
	if !m.ready {
		return
	}
	content, offsets := m.renderResultsContent(m.results.Width)
	m.results.SetContent(content)
	m.cardOffsets = offsets
	if m.selected >= len(m.products) {
		m.selected = max(0, len(m.products)-1)
	}
	if !m.reveal {
		return
	}
	m.reveal = false
	if m.selected >= len(offsets) {
		return
	}
	top := offsets[m.selected]
	end := lipgloss.Height(content)
	if m.selected+1 < len(offsets) {
		end = offsets[m.selected+1] - 1
	}
	switch {
	case top < m.results.YOffset:
		m.results.SetYOffset(top)
	case end > m.results.YOffset+m.results.Height:
		m.results.SetYOffset(min(top, end-m.results.Height))
	}
}

// renderResultsContent builds the pane body and the starting line of each
// product card.
func (m Model) renderResultsContent(width int) (string, []int) {
	styles := m.theme.Styles()
	view := results.Build(m.products, m.loading, m.analyzed)

	switch view.Mode {
	case results.ModeWelcome:
		return m.renderWelcome(styles, width), nil
	case results.ModeLoading:
		return m.renderLoading(styles, width), nil
	case results.ModeEmpty:
		return m.renderEmptyState(styles, results.ModeEmpty, width), nil
	}

	var blocks []string
	blocks = append(blocks, m.renderStats(styles, view.Stats, width))
	if m.analyzed {
		blocks = append(blocks, m.renderBanner(styles, view.Stats.Count, width))
	}

	offsets := make([]int, len(view.Cards))
	line := 0
	for _, b := range blocks {
		line += lipgloss.Height(b) + 1
	}
	for i, card := range view.Cards {
		rendered := m.renderCard(styles, card, i == m.selected, width)
		offsets[i] = line
		line += lipgloss.Height(rendered) + 1
		blocks = append(blocks, rendered)
	}
	return strings.Join(blocks, "\n\n"), offsets
}

func (m Model) renderWelcome(styles Styles, width int) string {
	es, _ := results.EmptyStateFor(results.ModeWelcome)
	var b strings.Builder
	b.WriteString(m.renderEmptyState(styles, results.ModeWelcome, width))
	b.WriteString("\n\n")
	steps := make([]string, len(es.Steps))
	for i, s := range es.Steps {
		steps[i] = styles.AccentText.Bold(true).Render(fmt.Sprintf("%d", i+1)) + " " + styles.Text.Render(s)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		strings.Join(steps, styles.FaintText.Render("  →  "))))
	return b.String()
}

func (m Model) renderLoading(styles Styles, width int) string {
	es, _ := results.EmptyStateFor(results.ModeLoading)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Render(m.spinner.View() + " " + styles.Text.Bold(true).Render(es.Title)))
	b.WriteString("\n")
	b.WriteString(center.Render(styles.MutedText.Render(es.Description)))
	b.WriteString("\n")
	b.WriteString(center.Render(styles.FaintText.Render(es.Hint)))
	for range results.SkeletonCount {
		b.WriteString("\n\n")
		b.WriteString(m.renderSkeleton(styles, width))
	}
	return b.String()
}

func (m Model) renderSkeleton(styles Styles, width int) string {
	bar := func(w int) string {
		return styles.Skeleton.Render(strings.Repeat(" ", max(1, w)))
	}
	inner := max(4, width-4)
	lines := []string{
		bar(inner / 3),
		bar(inner * 3 / 4),
		bar(inner / 2),
	}
	return styles.Panel.Width(max(1, width-2)).Render(strings.Join(lines, "\n"))
}

func (m Model) renderEmptyState(styles Styles, mode results.Mode, width int) string {
	es, ok := results.EmptyStateFor(mode)
	if !ok {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	lines := []string{
		"",
		center.Render(styles.Text.Bold(true).Render(es.Title)),
		center.Render(styles.MutedText.Render(es.Description)),
		center.Render(styles.FaintText.Render(es.Hint)),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStats(styles Styles, stats results.Stats, width int) string {
	level := stats.Level()
	left := styles.Text.Bold(true).Render("Detected Products") + "  " +
		styles.MutedText.Render(results.CountLabel(stats.Count))
	badge := styles.Badge(level)
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(badge))
	first := left + strings.Repeat(" ", gap) + badge

	second := styles.LevelStyle(level).Render(fmt.Sprintf("%d%% avg confidence", results.Percent(stats.AverageConfidence))) +
		styles.FaintText.Render(" · ") +
		styles.MutedText.Render(level.Caption()) +
		styles.FaintText.Render(" · ") +
		styles.MutedText.Render(fmt.Sprintf("%d types", stats.DistinctTypes))
	return first + "\n" + second
}

func (m Model) renderBanner(styles Styles, count, width int) string {
	var b strings.Builder
	b.WriteString(styles.SuccessText.Render("✓ Analysis Complete!"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(strings.Join(wrap(results.CompletionMessage(count), max(10, width-4)), "\n")))
	if m.demo {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("Demo results: link analysis is simulated."))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(m.theme.Success)).
		PaddingLeft(1).
		Render(b.String())
}

func (m Model) renderCard(styles Styles, card results.Card, selected bool, width int) string {
	inner := max(10, width-4)

	title := styles.FaintText.Render(fmt.Sprintf("#%d ", card.Index+1)) +
		styles.Text.Bold(true).Render(truncate(card.Title, inner/2))
	if card.TopPick {
		title += "  " + styles.WarningText.Render("★ Top Pick")
	}
	if card.Brand != "" {
		chip := styles.Chip.Render(truncate(card.Brand, inner/3))
		gap := max(1, inner-lipgloss.Width(title)-lipgloss.Width(chip))
		title += strings.Repeat(" ", gap) + chip
	}
	lines := []string{title}

	if card.Description != "" {
		for _, l := range wrap(card.Description, inner) {
			lines = append(lines, styles.MutedText.Italic(true).Render(l))
		}
	}

	var attrs []string
	for _, a := range []struct{ label, value string }{
		{"Color", card.Color},
		{"Material", card.Material},
		{"Pattern", card.Pattern},
	} {
		if a.value != "" {
			attrs = append(attrs, styles.FaintText.Render(a.label+": ")+styles.Text.Render(a.value))
		}
	}
	if len(attrs) > 0 {
		lines = append(lines, strings.Join(attrs, "   "))
	}

	lines = append(lines, m.renderConfidence(styles, card, inner))

	if selected {
		lines = append(lines, styles.AccentText.Render("s Find Similar"))
	}

	panel := styles.Panel
	if selected {
		panel = styles.FocusPanel
	}
	return panel.Width(max(1, width-2)).Render(strings.Join(lines, "\n"))
}

// renderConfidence draws the per-card meter, percentage and frame count.
func (m Model) renderConfidence(styles Styles, card results.Card, width int) string {
	label := styles.LevelStyle(card.Level).Render(fmt.Sprintf("%3d%%", results.Percent(card.Confidence)))
	suffix := ""
	if card.Frames != "" {
		suffix = styles.FaintText.Render(" · " + card.Frames)
	}
	barWidth := max(6, width-lipgloss.Width(label)-lipgloss.Width(suffix)-1)
	bar := progress.New(
		progress.WithSolidFill(m.theme.LevelColor(card.Level)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)
	bar.EmptyColor = m.theme.SurfaceAlt
	return bar.ViewAs(card.Confidence) + " " + label + suffix
}
