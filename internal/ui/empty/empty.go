// Package empty renders the centered icon/title/description panel used by
// fallback screens.
package empty

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/render"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// Panel describes one fallback screen.
type Panel struct {
	Icon        string
	IconColor   lipgloss.Color
	Title       string
	Description string
	Content     []string // rendered below the header, each block centered
}

// ContentWidth returns the usable width of a panel drawn in width columns.
func ContentWidth(width int) int {
	return max(min(width, ui.MaxPageWidth)-2*ui.CardPaddingX, 1)
}

// Render draws p centered in width x height.
func Render(t *styles.Theme, p Panel, width, height int) string {
	s := t.S()
	w := ContentWidth(width)
	center := lipgloss.NewStyle().Width(w).Align(lipgloss.Center)

	blocks := make([]string, 0, 4+len(p.Content))
	if p.Icon != "" {
		icon := lipgloss.NewStyle().
			Foreground(p.IconColor).
			Background(t.BgMuted).
			Padding(0, 1).
			Render(p.Icon)
		blocks = append(blocks, center.Render(icon), "")
	}
	blocks = append(blocks, center.Render(s.Title.Render(p.Title)))
	if p.Description != "" {
		blocks = append(blocks, center.Render(s.Muted.Render(render.Wrap(p.Description, w))))
	}
	for _, c := range p.Content {
		blocks = append(blocks, "", center.Render(c))
	}

	body := lipgloss.JoinVertical(lipgloss.Center, blocks...)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
