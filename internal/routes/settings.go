package routes

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/appshell/internal/errmsg"
	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/card"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

type themeOption struct {
	mode  styles.Mode
	label string
	hint  string
}

var themeOptions = []themeOption{
	{styles.ModeDark, "Dark", "light text on a dark background"},
	{styles.ModeLight, "Light", "dark text on a light background"},
	{styles.ModeSystem, "System", "follow the terminal background"},
}

// settings lets the user pick the theme mode.
type settings struct {
	ui.Base
	deps  Deps
	focus int
}

func newSettings(deps Deps) *settings {
	p := &settings{deps: deps}
	p.focus = max(slices.IndexFunc(themeOptions, func(o themeOption) bool {
		return o.mode == deps.Theme.Mode()
	}), 0)
	return p
}

func (p *settings) Init() tea.Cmd { return nil }

func (p *settings) Update(msg tea.Msg) (router.Page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	n := len(themeOptions)
	switch key.String() {
	case "tab", "j", "down":
		p.focus = (p.focus + 1) % n
	case "shift+tab", "k", "up":
		p.focus = (p.focus + n - 1) % n
	case "enter", " ":
		return p, p.apply(themeOptions[p.focus].mode)
	}
	return p, nil
}

func (p *settings) apply(mode styles.Mode) tea.Cmd {
	if mode == p.deps.Theme.Mode() {
		return nil
	}
	if err := p.deps.Theme.Set(mode); err != nil {
		p.deps.Logger.Warn().Err(err).Str("mode", string(mode)).Msg("theme not saved")
		if p.deps.Toaster == nil {
			return nil
		}
		return p.deps.Toaster.Error(errmsg.Format(errmsg.OpThemeSave, err))
	}
	return nil
}

func (p *settings) View() string {
	t := p.deps.Theme.Theme()
	s := t.S()
	active := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	current := p.deps.Theme.Mode()

	lines := make([]string, 0, len(themeOptions))
	for i, o := range themeOptions {
		mark := "○"
		if o.mode == current {
			mark = "●"
		}
		label := mark + " " + o.label
		if i == p.focus {
			lines = append(lines, active.Render("› "+label)+"  "+s.Subtle.Render(o.hint))
			continue
		}
		lines = append(lines, "  "+s.Base.Render(label)+"  "+s.Subtle.Render(o.hint))
	}

	w := min(max(p.Width()-1, ui.MinCardWidth), ui.MaxPageWidth)
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Settings"),
		"",
		card.Render(t, card.Options{Title: "Theme", Glow: card.Purple, Focused: true, Width: w},
			strings.Join(lines, "\n"),
		),
	)
}
