package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the user-facing theme selection.
type Mode string

const (
	ModeDark   Mode = "dark"
	ModeLight  Mode = "light"
	ModeSystem Mode = "system" // follow the terminal background
)

// ParseMode converts a stored or configured string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDark, ModeLight, ModeSystem:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown theme mode %q", s)
}

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Mode Mode // ModeDark or ModeLight, never ModeSystem

	// Brand/accent colors
	Primary   lipgloss.Color // focused items, default buttons
	Secondary lipgloss.Color // secondary accent

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color
	FgOnFill lipgloss.Color // text drawn on a filled button

	// Backgrounds
	BgBase  lipgloss.Color
	BgMuted lipgloss.Color // details boxes, secondary buttons

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Code    lipgloss.Style // error details, monospaced blocks
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

var darkPalette = Theme{
	Mode: ModeDark,

	Primary:   lipgloss.Color("#22c55e"),
	Secondary: lipgloss.Color("#a78bfa"),

	FgBase:   lipgloss.Color("#e4e4e7"),
	FgMuted:  lipgloss.Color("#a1a1aa"),
	FgSubtle: lipgloss.Color("#52525b"),
	FgOnFill: lipgloss.Color("#0a0a0a"),

	BgBase:  lipgloss.Color("#0a0a0a"),
	BgMuted: lipgloss.Color("#27272a"),

	Border:      lipgloss.Color("#3f3f46"),
	BorderFocus: lipgloss.Color("#22c55e"),

	Success: lipgloss.Color("#4ade80"),
	Error:   lipgloss.Color("#f87171"),
	Warning: lipgloss.Color("#fbbf24"),
	Info:    lipgloss.Color("#60a5fa"),
}

var lightPalette = Theme{
	Mode: ModeLight,

	Primary:   lipgloss.Color("#16a34a"),
	Secondary: lipgloss.Color("#7c3aed"),

	FgBase:   lipgloss.Color("#18181b"),
	FgMuted:  lipgloss.Color("#52525b"),
	FgSubtle: lipgloss.Color("#a1a1aa"),
	FgOnFill: lipgloss.Color("#fafafa"),

	BgBase:  lipgloss.Color("#ffffff"),
	BgMuted: lipgloss.Color("#f4f4f5"),

	Border:      lipgloss.Color("#d4d4d8"),
	BorderFocus: lipgloss.Color("#16a34a"),

	Success: lipgloss.Color("#16a34a"),
	Error:   lipgloss.Color("#dc2626"),
	Warning: lipgloss.Color("#d97706"),
	Info:    lipgloss.Color("#2563eb"),
}

// Dark returns a fresh copy of the dark palette.
func Dark() *Theme {
	t := darkPalette
	return &t
}

// Light returns a fresh copy of the light palette.
func Light() *Theme {
	t := lightPalette
	return &t
}

// For returns the palette for a resolved mode. ModeSystem falls back to dark.
func For(mode Mode) *Theme {
	if mode == ModeLight {
		return Light()
	}
	return Dark()
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Code: lipgloss.NewStyle().
			Foreground(t.FgMuted),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Info:    lipgloss.NewStyle().Foreground(t.Info),
	}
}

// Panel returns a rounded panel style whose border reflects focus.
func (t *Theme) Panel(focused bool) lipgloss.Style {
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// Source supplies the active theme at render time.
// Components hold a Source instead of a *Theme so a theme switch is picked up
// on the next render without rebuilding the component tree.
type Source interface {
	Theme() *Theme
}

type static struct{ t *Theme }

func (s static) Theme() *Theme { return s.t }

// Static wraps a fixed theme as a Source.
func Static(t *Theme) Source {
	return static{t: t}
}
