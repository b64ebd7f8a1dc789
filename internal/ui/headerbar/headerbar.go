// Package headerbar renders the single-line application header.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/appshell/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Tab is a navigation shortcut shown in the header.
type Tab struct {
	Key  string // e.g. "g h"
	Name string
	To   string // location the tab leads to
}

// Bar describes what the header shows.
type Bar struct {
	Title    string
	Tabs     []Tab
	Location string // current location, used to mark the active tab
	Status   string // right-aligned, e.g. the theme mode
}

// Active reports which tab matches location. The longest matching prefix wins
// so "/" does not shadow nested routes.
func (b Bar) Active() int {
	best, bestLen := -1, -1
	for i, tab := range b.Tabs {
		if !matches(b.Location, tab.To) {
			continue
		}
		if len(tab.To) > bestLen {
			best, bestLen = i, len(tab.To)
		}
	}
	return best
}

func matches(location, to string) bool {
	if to == "/" {
		return location == "/" || location == ""
	}
	return location == to || strings.HasPrefix(location, to+"/")
}

// Render returns the header bar string for the given width.
func Render(t *styles.Theme, b Bar, width int) string {
	if width < 20 {
		return ""
	}

	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.FgSubtle)
	nameStyle := lipgloss.NewStyle().Foreground(t.FgMuted)
	separator := lipgloss.NewStyle().Foreground(t.Border).Render(" │ ")

	active := b.Active()
	parts := make([]string, 0, len(b.Tabs))
	for i, tab := range b.Tabs {
		if i == active {
			parts = append(parts, activeStyle.Render(tab.Key)+" "+activeStyle.Render(tab.Name))
			continue
		}
		parts = append(parts, keyStyle.Render(tab.Key)+" "+nameStyle.Render(tab.Name))
	}

	left := t.Brand().Render(lipgloss.NewStyle().Bold(true), b.Title)
	center := strings.Join(parts, separator)
	right := t.S().Subtle.Render(b.Status)

	leftW, centerW, rightW := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	if leftW+centerW+rightW+2 > width {
		// too narrow for everything: tabs win
		if centerW > width {
			return lipgloss.NewStyle().MaxWidth(width).Render(center)
		}
		return strings.Repeat(" ", (width-centerW)/2) + center
	}

	padLeft := max((width-centerW)/2-leftW, 1)
	padRight := max(width-leftW-padLeft-centerW-rightW, 1)
	return left + strings.Repeat(" ", padLeft) + center + strings.Repeat(" ", padRight) + right
}
