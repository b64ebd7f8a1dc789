package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for endpoints that are not #rrggbb, such as ANSI indices.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Gradient is a two-stop horizontal color ramp.
type Gradient struct {
	From, To lipgloss.Color
}

// Brand is the theme's title gradient.
func (t *Theme) Brand() Gradient {
	return Gradient{From: t.Primary, To: t.Secondary}
}

// Render colors text one grapheme cluster at a time along the ramp, on top
// of base. Text shorter than two clusters takes From.
func (g Gradient) Render(base lipgloss.Style, text string) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) < 2 {
		if text == "" {
			return ""
		}
		return base.Foreground(g.From).Render(text)
	}

	var b strings.Builder
	for i, c := range g.Stops(len(clusters)) {
		b.WriteString(base.Foreground(c).Render(clusters[i]))
	}
	return b.String()
}

// Stops returns n colors from From to To, blended in HCL space.
func (g Gradient) Stops(n int) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []lipgloss.Color{g.From}
	}
	from, to := parseHex(g.From), parseHex(g.To)
	stops := make([]lipgloss.Color, n)
	for i := range n {
		stops[i] = lipgloss.Color(from.BlendHcl(to, float64(i)/float64(n-1)).Clamped().Hex())
	}
	return stops
}

func parseHex(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return neutral
}
