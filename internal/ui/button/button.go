// Package button renders single-line themed buttons.
package button

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/appshell/internal/ui/styles"
)

// Variant selects a button's color treatment.
type Variant string

const (
	Default     Variant = "default"
	Destructive Variant = "destructive"
	Outline     Variant = "outline"
	Secondary   Variant = "secondary"
	Ghost       Variant = "ghost"
)

// Props describes one button.
type Props struct {
	Label    string
	Variant  Variant // empty means Default
	Disabled bool
	Focused  bool
	Loading  bool // renders like Disabled but keeps the variant colors
}

// Render draws the button. A focused button is wrapped in brackets;
// an unfocused one gets spaces in the same cells so rows do not shift.
func Render(t *styles.Theme, p Props) string {
	body := bodyStyle(t, p).Render(" " + p.Label + " ")

	left, right := " ", " "
	if p.Focused {
		left, right = "[", "]"
	}
	edge := lipgloss.NewStyle().Foreground(t.BorderFocus).Bold(true)
	return edge.Render(left) + body + edge.Render(right)
}

func bodyStyle(t *styles.Theme, p Props) lipgloss.Style {
	s := lipgloss.NewStyle()

	if p.Disabled {
		return s.Foreground(t.FgSubtle)
	}

	switch p.Variant {
	case Destructive:
		s = s.Background(t.Error).Foreground(t.FgOnFill)
	case Outline:
		s = s.Foreground(t.FgBase).Underline(true)
	case Secondary:
		s = s.Background(t.BgMuted).Foreground(t.FgBase)
	case Ghost:
		s = s.Foreground(t.FgMuted)
	default:
		s = s.Background(t.Primary).Foreground(t.FgOnFill)
	}

	if p.Loading {
		return s.Faint(true)
	}
	if p.Focused {
		s = s.Bold(true)
	}
	return s
}

// Row renders buttons side by side with a one-cell gap.
func Row(t *styles.Theme, buttons ...Props) string {
	parts := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, Render(t, b))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
