package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shopper/internal/prefs"
	"github.com/five82/shopper/internal/results"
	"github.com/five82/shopper/internal/toast"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string
	Dark bool

	// Base colors
	Background string // Outermost background
	Surface    string // Panels and cards
	SurfaceAlt string // Tabs, chips, skeletons
	FocusBg    string // Focused card

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Brand   string // Brand chips and the logo
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Brand)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		FocusPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Accent)).
			Foreground(lipgloss.Color(t.Background)).
			Bold(true).
			Padding(0, 2),

		TabInactive: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 2),

		Chip: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Brand)).
			Foreground(lipgloss.Color(t.Background)).
			Padding(0, 1),

		Skeleton: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)),

		theme: t,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Base
	Background lipgloss.Style
	Surface    lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Logo        lipgloss.Style
	Panel       lipgloss.Style
	FocusPanel  lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Chip        lipgloss.Style
	Skeleton    lipgloss.Style

	theme Theme
}

// KindColor returns the accent color for a toast kind.
func (t Theme) KindColor(k toast.Kind) string {
	switch k {
	case toast.KindSuccess:
		return t.Success
	case toast.KindError:
		return t.Danger
	case toast.KindWarning:
		return t.Warning
	default:
		return t.Info
	}
}

// LevelColor returns the color for a confidence level.
func (t Theme) LevelColor(l results.Level) string {
	switch l {
	case results.LevelHigh:
		return t.Success
	case results.LevelMedium:
		return t.Warning
	default:
		return t.Danger
	}
}

// LevelStyle renders text in the color of a confidence level.
func (s Styles) LevelStyle(l results.Level) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.theme.LevelColor(l))).Bold(true)
}

// Badge renders a result-set quality label as a filled pill.
func (s Styles) Badge(l results.Level) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.theme.LevelColor(l))).
		Foreground(lipgloss.Color(s.theme.Background)).
		Padding(0, 1).
		Render(l.Badge())
}

// Theme definitions

// DarkTheme is the default palette.
func DarkTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Dark",
		Dark: true,

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Brand:   "#c084fc", // purple-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}

// LightTheme is used on light terminals or after toggling.
func LightTheme() Theme {
	return Theme{
		Name: "Light",
		Dark: false,

		Background: "#f8fafc", // slate-50
		Surface:    "#ffffff",
		SurfaceAlt: "#e2e8f0", // slate-200
		FocusBg:    "#e0f2fe", // sky-100

		Border:      "#cbd5e1", // slate-300
		BorderFocus: "#0284c7", // sky-600

		Text:    "#0f172a", // slate-900
		Muted:   "#475569", // slate-600
		Faint:   "#94a3b8", // slate-400
		Accent:  "#0284c7", // sky-600
		Brand:   "#9333ea", // purple-600
		Success: "#16a34a", // green-600
		Warning: "#d97706", // amber-600
		Danger:  "#dc2626", // red-600
		Info:    "#0891b2", // cyan-600
	}
}

// ThemeFor picks the palette for a dark flag.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeController owns the dark/light flag and persists changes.
type ThemeController struct {
	dark      bool
	prefsPath string
	prefs     prefs.Prefs
}

// NewThemeController seeds the flag from stored preferences, probing the
// terminal when nothing is stored.
func NewThemeController(p prefs.Prefs, prefsPath string, probe func() bool) *ThemeController {
	return &ThemeController{
		dark:      p.DarkOr(probe),
		prefsPath: prefsPath,
		prefs:     p,
	}
}

// IsDark reports the current flag.
func (c *ThemeController) IsDark() bool { return c.dark }

// Theme returns the active palette.
func (c *ThemeController) Theme() Theme { return ThemeFor(c.dark) }

// Toggle flips the flag and saves it. The flag changes even when saving
// fails.
func (c *ThemeController) Toggle() error {
	c.dark = !c.dark
	c.prefs = c.prefs.WithDark(c.dark)
	if c.prefsPath == "" {
		return nil
	}
	if err := prefs.Save(c.prefsPath, c.prefs); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
