package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/appshell/internal/ui/styles"
)

// SizeConfig defines how a popup should be sized.
type SizeConfig struct {
	WidthPct  int // Percentage of screen width (0 = auto-fit)
	HeightPct int // Percentage of screen height (0 = auto-fit)
	MaxWidth  int // Maximum width in columns (0 = no limit)
}

// Common size configurations.
var (
	SizeLarge = SizeConfig{WidthPct: 80, HeightPct: 70}
	SizeAuto  = SizeConfig{}              // Help, Confirm
	SizeModal = SizeConfig{MaxWidth: 60} // confirmation prompts
)

// RenderBordered wraps content in a rounded border and centers it.
func RenderBordered(t *styles.Theme, content string, screenW, screenH int, size SizeConfig) string {
	width, height := calculateDimensions(content, screenW, screenH, size)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(width-2). // Account for border
		Height(height-2).
		Padding(1, 2).
		Render(content)

	return Center(box, screenW, screenH)
}

func calculateDimensions(content string, screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return screenW * size.WidthPct / 100, screenH * size.HeightPct / 100
	}

	width = maxLineWidth(content) + 6 // padding + border
	if size.MaxWidth > 0 && width > size.MaxWidth {
		width = size.MaxWidth
	}
	width = min(width, screenW-4)

	height = strings.Count(content, "\n") + 1 + 4 // padding + border
	height = min(height, screenH-4)

	return width, height
}

func maxLineWidth(s string) int {
	maxW := 0
	for line := range strings.SplitSeq(s, "\n") {
		maxW = max(maxW, lipgloss.Width(line))
	}
	return maxW
}

// Center centers pre-rendered content in the terminal.
func Center(content string, termWidth, termHeight int) string {
	lines := strings.Split(content, "\n")
	boxWidth := maxLineWidth(content)

	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := max((termWidth-boxWidth)/2, 0)

	var b strings.Builder
	for range padTop {
		b.WriteString(strings.Repeat(" ", termWidth) + "\n")
	}
	for _, line := range lines {
		b.WriteString(strings.Repeat(" ", padLeft))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Place positions pre-rendered content horizontally centered at the given row.
// Used for overlays anchored to the top or bottom edge rather than the middle.
func Place(content string, termWidth, row int) string {
	lines := strings.Split(content, "\n")
	padLeft := max((termWidth-maxLineWidth(content))/2, 0)

	var b strings.Builder
	for range max(row, 0) {
		b.WriteString("\n")
	}
	for i, line := range lines {
		b.WriteString(strings.Repeat(" ", padLeft))
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Compose overlays content on top of a base view.
// Non-space characters in overlay replace the base at the same position.
// ANSI sequences in both layers are preserved.
func Compose(base, overlay string, width, _ int) string {
	baseLines := strings.Split(base, "\n")

	for i, overlayLine := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(overlayLine)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		// leading spaces are single-column
		startCol := len(plain) - len(strings.TrimLeft(plain, " "))
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))
		content := ansi.Cut(overlayLine, startCol, endCol)

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		// ansi.Cut may drop or keep a wide rune straddling the cut; pad or trim
		prefix := ansi.Cut(baseLine, 0, startCol)
		if w := ansi.StringWidth(prefix); w < startCol {
			prefix += strings.Repeat(" ", startCol-w)
		}

		line := prefix + content
		if endCol < width {
			suffix := ansi.Cut(baseLine, endCol, width)
			got, want := ansi.StringWidth(suffix), width-endCol
			switch {
			case got > want:
				suffix = " " + ansi.Cut(suffix, got-want+1, got)
			case got < want:
				line += strings.Repeat(" ", want-got)
			}
			line += suffix
		}

		baseLines[i] = line
	}

	return strings.Join(baseLines, "\n")
}
