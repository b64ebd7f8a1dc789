package router

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/render"
)

// textPage is the last-resort page when no component is configured or the
// configured one fails.
type textPage struct {
	ui.Base
	text string
}

func newTextPage(text string) *textPage {
	return &textPage{text: text}
}

func (p *textPage) Init() tea.Cmd { return nil }

func (p *textPage) Update(tea.Msg) (Page, tea.Cmd) { return p, nil }

func (p *textPage) View() string {
	w := max(p.Width()-4, 1)
	return lipgloss.Place(p.Width(), p.Height(), lipgloss.Center, lipgloss.Center,
		render.Wrap(p.text, w))
}
