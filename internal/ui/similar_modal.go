package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shopper/internal/backend"
	"github.com/five82/shopper/internal/results"
	"github.com/five82/shopper/internal/similar"
	"github.com/five82/shopper/internal/toast"
)

const similarModalWidth = 64

type similarDoneMsg struct {
	seq   int
	items []backend.SimilarItem
	err   error
}

// similarModal is the overlay for one product's similar-items lookup. The
// lookup outlives the modal so its request sequence keeps growing across
// opens and replies meant for an earlier overlay are dropped.
type similarModal struct {
	ctx     context.Context
	lookup  *similar.Lookup
	toasts  *toast.Manager
	logger  *slog.Logger
	spinner spinner.Model
	cursor  int
}

func newSimilarModal(ctx context.Context, lookup *similar.Lookup, toasts *toast.Manager, logger *slog.Logger, product backend.DetectedProduct, index int) (*similarModal, tea.Cmd) {
	lookup.Open(product, index)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return &similarModal{
		ctx:     ctx,
		lookup:  lookup,
		toasts:  toasts,
		logger:  logger,
		spinner: sp,
	}, sp.Tick
}

// Update implements Modal.
func (s *similarModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case similarDoneMsg:
		if !s.lookup.Complete(msg.seq, msg.items, msg.err) {
			return s, nil, false
		}
		s.cursor = 0
		if msg.err != nil {
			s.logger.Warn("similar items search failed", "error", msg.err)
			if s.toasts != nil {
				s.toasts.Error(msg.err.Error(), "Search Failed")
			}
		}
		return s, nil, false

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd, false

	case tea.KeyMsg:
		return s.handleKey(msg, keys)
	}
	return s, nil, false
}

func (s *similarModal) handleKey(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	if key.Matches(msg, keys.Cancel) {
		return s, nil, true
	}

	switch s.lookup.Phase() {
	case similar.PhaseUnsearched:
		switch {
		case key.Matches(msg, keys.PrevStrategy), key.Matches(msg, keys.NextStrategy),
			key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
			if other, ok := s.lookup.Strategies().Other(s.lookup.Selected()); ok {
				s.lookup.Select(other.Kind())
			}
		case key.Matches(msg, keys.Confirm):
			return s, s.search(s.lookup.Selected()), false
		}

	case similar.PhaseResults, similar.PhaseEmpty:
		searched, _ := s.lookup.Searched()
		switch {
		case key.Matches(msg, keys.Refresh):
			if searched != nil {
				return s, s.search(searched.Kind()), false
			}
		case key.Matches(msg, keys.TryOther):
			if searched != nil {
				if other, ok := s.lookup.Strategies().Other(searched.Kind()); ok {
					return s, s.search(other.Kind()), false
				}
			}
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < len(s.lookup.Items())-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.OpenItem):
			s.openCurrent()
		}
	}
	return s, nil, false
}

func (s *similarModal) search(kind similar.Kind) tea.Cmd {
	req, ok := s.lookup.Search(kind)
	if !ok {
		return nil
	}
	s.cursor = 0
	s.logger.Debug("similar items search", "strategy", kind.String(), "type", req.Product.Type)
	ctx := s.ctx
	return tea.Batch(
		func() tea.Msg {
			items, err := req.Run(ctx)
			return similarDoneMsg{seq: req.Seq, items: items, err: err}
		},
		s.spinner.Tick,
	)
}

// openCurrent shows the focused item's link. Items without one do nothing.
func (s *similarModal) openCurrent() {
	items := s.lookup.Items()
	if s.cursor < 0 || s.cursor >= len(items) {
		return
	}
	item := items[s.cursor]
	if !item.HasLink() || s.toasts == nil {
		return
	}
	s.toasts.Add(toast.Spec{Kind: toast.KindInfo, Title: item.DisplayTitle(), Message: item.URL, Duration: 2 * toast.DefaultDuration})
}

// Close implements Modal.
func (s *similarModal) Close() {
	s.lookup.Close()
}

// View implements Modal.
func (s *similarModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	inner := similarModalWidth - 6
	if width > 0 && width-6 < similarModalWidth {
		inner = max(20, width-12)
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Similar Items"))
	b.WriteString("\n")
	product := s.lookup.Product()
	card := results.NewCard(product, s.lookup.Index())
	subtitle := card.Title
	if card.Color != "" {
		subtitle += " · " + card.Color
	}
	if card.Brand != "" {
		subtitle += " · " + card.Brand
	}
	b.WriteString(styles.MutedText.Render(truncate(subtitle, inner)))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	switch s.lookup.Phase() {
	case similar.PhaseUnsearched:
		b.WriteString(s.viewChooser(styles))
	case similar.PhaseSearching:
		label := ""
		if st, ok := s.lookup.Strategies().Get(s.lookup.Selected()); ok {
			label = st.Label()
		}
		b.WriteString(s.spinner.View() + " " + styles.Text.Render("Searching "+label+"..."))
		b.WriteString("\n")
	case similar.PhaseResults:
		b.WriteString(s.viewResults(styles, inner))
	case similar.PhaseEmpty:
		b.WriteString(s.viewEmpty(styles))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(inner + 4).
		Render(b.String())
	return placeModal(theme, width, height, box)
}

func (s *similarModal) viewChooser(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Text.Render("Choose where to look:"))
	b.WriteString("\n\n")
	for _, st := range s.lookup.Strategies() {
		marker := "( )"
		line := styles.MutedText
		if st.Kind() == s.lookup.Selected() {
			marker = "(•)"
			line = styles.AccentText.Bold(true)
		}
		b.WriteString(line.Render(fmt.Sprintf("%s %s", marker, st.Label())))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("    " + st.Action()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("h/l choose · enter search · esc close"))
	return b.String()
}

func (s *similarModal) viewResults(styles Styles, inner int) string {
	items := s.lookup.Items()
	searched, _ := s.lookup.Searched()

	var b strings.Builder
	b.WriteString(styles.SuccessText.Render(similar.CountLabel(len(items))))
	if searched != nil {
		b.WriteString(styles.MutedText.Render("  " + searched.Source()))
	}
	b.WriteString("\n\n")

	for i, item := range items {
		v := similar.Describe(item)
		pointer := "  "
		title := styles.Text.Bold(true)
		if i == s.cursor {
			pointer = styles.AccentText.Render("▸ ")
			title = styles.AccentText.Bold(true)
		}
		b.WriteString(pointer + title.Render(truncate(v.Title, inner-2)))
		b.WriteString("\n")

		var meta []string
		if v.Price != "" {
			meta = append(meta, styles.SuccessText.Render(v.Price))
		}
		if v.Rating != "" {
			meta = append(meta, styles.WarningText.Render("★ "+v.Rating))
		}
		if v.Vendor != "" {
			meta = append(meta, styles.MutedText.Render(v.Vendor))
		}
		if len(meta) > 0 {
			b.WriteString("  " + strings.Join(meta, "  "))
			b.WriteString("\n")
		}
		if v.ImageURL != "" {
			b.WriteString("  " + styles.FaintText.Render("image: "+truncateMiddle(v.ImageURL, inner-9)))
			b.WriteString("\n")
		}
		if v.Description != "" {
			lines := wrap(v.Description, inner-2)
			if len(lines) > 2 {
				lines = lines[:2]
				lines[1] = truncate(lines[1]+" ...", inner-2)
			}
			for _, l := range lines {
				b.WriteString("  " + styles.MutedText.Render(l))
				b.WriteString("\n")
			}
		}
		action := "no link"
		actionStyle := styles.FaintText
		if v.CanView && searched != nil {
			action = "o " + searched.ViewLabel()
			actionStyle = styles.InfoText
		}
		b.WriteString("  " + actionStyle.Render(action))
		b.WriteString("\n\n")
	}

	b.WriteString(s.footer(styles))
	return b.String()
}

func (s *similarModal) viewEmpty(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("No Similar Items Found"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Try a different search method or check back later."))
	b.WriteString("\n\n")
	b.WriteString(s.footer(styles))
	return b.String()
}

func (s *similarModal) footer(styles Styles) string {
	searched, ok := s.lookup.Searched()
	if !ok {
		return ""
	}
	refresh := "Refresh"
	if s.lookup.Phase() == similar.PhaseEmpty {
		refresh = "Try Again"
	}
	parts := []string{"r " + refresh}
	if other, ok := s.lookup.Strategies().Other(searched.Kind()); ok {
		parts = append(parts, "t "+other.Retry())
	}
	parts = append(parts, "j/k move", "esc close")
	return styles.FaintText.Render(strings.Join(parts, " · "))
}
