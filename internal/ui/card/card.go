// Package card renders themed content panels with an accent glow.
package card

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// Glow is a card's accent color family.
type Glow string

const (
	Green  Glow = "green"
	Blue   Glow = "blue"
	Purple Glow = "purple"
	Amber  Glow = "amber"
)

// glows holds the accent gradient per family, dark and light variants.
var glows = map[Glow][2]styles.Gradient{
	Green:  {{From: "#22c55e", To: "#86efac"}, {From: "#15803d", To: "#22c55e"}},
	Blue:   {{From: "#3b82f6", To: "#93c5fd"}, {From: "#1d4ed8", To: "#3b82f6"}},
	Purple: {{From: "#a855f7", To: "#d8b4fe"}, {From: "#7e22ce", To: "#a855f7"}},
	Amber:  {{From: "#f59e0b", To: "#fcd34d"}, {From: "#b45309", To: "#f59e0b"}},
}

// Options configures a card. The zero value is a green, padded card.
type Options struct {
	Title      string
	Glow       Glow // empty means Green
	CustomSize bool // caller controls padding; default padding is omitted
	Focused    bool // the hovered/active state: border takes the glow color
	Width      int  // total width including border; 0 fits content
}

// Render draws children stacked vertically inside the card.
func Render(t *styles.Theme, opts Options, children ...string) string {
	glow := colors(t, opts.Glow)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
	if opts.Focused {
		// top and left take From, right and bottom take To
		style = style.BorderForeground(glow.From, glow.To, glow.To, glow.From)
	}
	if !opts.CustomSize {
		style = style.Padding(ui.CardPaddingY, ui.CardPaddingX)
	}
	if opts.Width > 0 {
		style = style.Width(max(opts.Width, ui.MinCardWidth) - 2)
	}

	parts := make([]string, 0, len(children)+2)
	if opts.Title != "" {
		parts = append(parts, glow.Render(lipgloss.NewStyle().Bold(true), opts.Title), "")
	}
	parts = append(parts, children...)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func colors(t *styles.Theme, g Glow) styles.Gradient {
	pair, ok := glows[g]
	if !ok {
		pair = glows[Green]
	}
	if t.Mode == styles.ModeLight {
		return pair[1]
	}
	return pair[0]
}

// Grid lays cards out in rows of perRow, separated by one column.
func Grid(cards []string, perRow int) string {
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		row := make([]string, 0, (end-i)*2)
		for j, c := range cards[i:end] {
			if j > 0 {
				row = append(row, " ")
			}
			row = append(row, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
