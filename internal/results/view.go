package results

import (
	"strconv"
	"strings"

	"github.com/five82/shopper/internal/backend"
)

// Mode is what the results pane renders.
type Mode int

const (
	// ModeWelcome is shown before anything has been analyzed.
	ModeWelcome Mode = iota
	// ModeLoading shows skeleton cards.
	ModeLoading
	// ModeEmpty follows an analysis that found nothing.
	ModeEmpty
	// ModeProducts shows stats and cards.
	ModeProducts
)

// EmptyState is the copy for a placeholder pane.
type EmptyState struct {
	Title       string
	Description string
	Hint        string
	// Steps is only set for the welcome state.
	Steps []string
}

var emptyStates = map[Mode]EmptyState{
	ModeWelcome: {
		Title:       "No Products Detected Yet",
		Description: "Upload or analyze a video to discover fashion products automatically.",
		Hint:        "Start by uploading a video or pasting a link above",
		Steps:       []string{"Upload Video", "AI Analysis", "Get Results"},
	},
	ModeLoading: {
		Title:       "Analyzing Video...",
		Description: "Our AI is scanning frames for fashion products and accessories.",
		Hint:        "This usually takes 10-30 seconds",
	},
	ModeEmpty: {
		Title:       "No Fashion Items Found",
		Description: "This video might not contain detectable fashion products.",
		Hint:        "Try uploading a different video with clothing or accessories",
	},
}

// EmptyStateFor returns the placeholder copy for m. ModeProducts has none.
func EmptyStateFor(m Mode) (EmptyState, bool) {
	s, ok := emptyStates[m]
	return s, ok
}

// View is the full rendering decision for the results pane.
type View struct {
	Mode  Mode
	Stats Stats
	Cards []Card
}

// Build decides what to render. Loading wins over any products already held;
// analyzed distinguishes a finished empty analysis from the initial state.
func Build(products []backend.DetectedProduct, loading, analyzed bool) View {
	switch {
	case loading:
		return View{Mode: ModeLoading}
	case len(products) == 0 && analyzed:
		return View{Mode: ModeEmpty}
	case len(products) == 0:
		return View{Mode: ModeWelcome}
	}
	cards := make([]Card, len(products))
	for i, p := range products {
		cards[i] = NewCard(p, i)
	}
	return View{Mode: ModeProducts, Stats: Summarize(products), Cards: cards}
}

// Card holds the display fields of one product. Empty strings are omitted
// by the renderer.
type Card struct {
	Index       int
	Title       string
	Brand       string
	Description string
	Color       string
	Material    string
	Pattern     string
	Confidence  float64
	Level       Level
	Frames      string
	TopPick     bool
}

// NewCard builds the card for the product at index.
func NewCard(p backend.DetectedProduct, index int) Card {
	c := Card{
		Index:      index,
		Title:      titleCase(p.Type),
		Brand:      strings.TrimSpace(p.BrandText),
		Color:      titleCase(p.Color),
		Material:   titleCase(p.Material),
		Pattern:    titleCase(p.Pattern),
		Confidence: p.Confidence(),
	}
	if c.Title == "" {
		c.Title = "Product " + strconv.Itoa(index+1)
	}
	if d := strings.TrimSpace(p.Description); d != "" {
		c.Description = `"` + d + `"`
	}
	if n := len(p.FramesSeen); n > 0 {
		c.Frames = plural(n, "frame")
	}
	c.Level = LevelOf(c.Confidence)
	c.TopPick = c.Confidence >= TopPickMinimum
	return c
}
