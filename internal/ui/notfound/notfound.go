// Package notfound renders the screen shown for an unmatched location.
package notfound

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/button"
	"github.com/llehouerou/appshell/internal/ui/empty"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

const (
	DefaultTitle       = "Page not found"
	DefaultDescription = "We couldn't find the page you're looking for."
	DefaultHome        = "/"

	BackLabel = "Go back"
	HomeLabel = "Go home"
)

const (
	focusBack = iota
	focusHome
)

// Props overrides the screen's text and home target.
type Props struct {
	Title       string
	Description string
	HomeTo      string
}

// Deps are the services the screen uses.
type Deps struct {
	Theme  styles.Source
	Router router.Capability
	Logger zerolog.Logger
}

// Model is the not-found screen.
type Model struct {
	ui.Base
	props Props
	deps  Deps
	focus int
}

var _ router.Page = (*Model)(nil)

// New builds the screen.
func New(props Props, deps Deps) *Model {
	if props.Title == "" {
		props.Title = DefaultTitle
	}
	if props.Description == "" {
		props.Description = DefaultDescription
	}
	if props.HomeTo == "" {
		props.HomeTo = DefaultHome
	}
	return &Model{props: props, deps: deps}
}

// Component adapts New to the router's not-found component signature.
func Component(props Props, deps Deps) router.NotFoundComponent {
	return func(r router.Capability) router.Page {
		d := deps
		if r != nil {
			d.Router = r
		}
		return New(props, d)
	}
}

// HomeTo returns the "go home" target.
func (m *Model) HomeTo() string { return m.props.HomeTo }

// Init implements router.Page.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements router.Page.
func (m *Model) Update(msg tea.Msg) (router.Page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.focus = 1 - m.focus
		if m.focus == focusHome {
			return m, m.preloadHome()
		}
	case "enter", " ":
		return m, m.activate(m.focus)
	case "b":
		return m, m.activate(focusBack)
	case "H":
		return m, m.activate(focusHome)
	}
	return m, nil
}

// preloadHome warms the home route when its button gains focus.
func (m *Model) preloadHome() tea.Cmd {
	if m.deps.Router == nil {
		return nil
	}
	return m.deps.Router.Preload(m.props.HomeTo)
}

func (m *Model) activate(focus int) tea.Cmd {
	if m.deps.Router == nil {
		return nil
	}
	if focus == focusHome {
		m.deps.Logger.Debug().Str("to", m.props.HomeTo).Msg("not found: go home")
		return m.deps.Router.Navigate(m.props.HomeTo)
	}
	m.deps.Logger.Debug().Msg("not found: go back")
	return m.deps.Router.Back()
}

// View implements router.Page.
func (m *Model) View() string {
	t := m.deps.Theme.Theme()
	actions := button.Row(t,
		button.Props{Label: BackLabel, Variant: button.Outline, Focused: m.focus == focusBack},
		button.Props{Label: HomeLabel, Focused: m.focus == focusHome},
	)
	return empty.Render(t, empty.Panel{
		Icon:        "?",
		IconColor:   t.Info,
		Title:       m.props.Title,
		Description: m.props.Description,
		Content:     []string{actions},
	}, m.Width(), m.Height())
}
