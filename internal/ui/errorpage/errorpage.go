// Package errorpage renders the screen shown when a route fails.
package errorpage

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/llehouerou/appshell/internal/clipboard"
	"github.com/llehouerou/appshell/internal/errmsg"
	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/toast"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/button"
	"github.com/llehouerou/appshell/internal/ui/empty"
	"github.com/llehouerou/appshell/internal/ui/render"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

const (
	DefaultTitle       = "Something went wrong"
	DefaultDescription = "Please try again. If the issue persists, contact support."

	TryAgainLabel  = "Try again"
	ReloadLabel    = "Reload"
	CopyLabel      = "Copy error details"
	CopiedLabel    = "Copied"
	DetailsHeading = "Error details"
)

const (
	focusTryAgain = iota
	focusReload
	focusCopy
)

// Props describes what failed.
type Props struct {
	Err         any
	Reset       func() tea.Cmd
	Title       string
	Description string
	ShowDetails *bool // nil follows Deps.Dev
}

// Deps are the services the screen uses.
type Deps struct {
	Theme     styles.Source
	Router    router.Capability
	Clipboard clipboard.Writer
	Toaster   toast.Toaster
	Logger    zerolog.Logger
	Dev       bool
}

// copyResetMsg ends the copied acknowledgement started by copy number seq.
type copyResetMsg struct{ seq int }

// Model is the error screen.
type Model struct {
	ui.Base
	props       Props
	deps        Deps
	text        string
	showDetails bool
	focus       int
	copied      bool
	copySeq     int
	details     viewport.Model
}

var _ router.Page = (*Model)(nil)

// New builds the screen for props.
func New(props Props, deps Deps) *Model {
	if props.Title == "" {
		props.Title = DefaultTitle
	}
	if props.Description == "" {
		props.Description = DefaultDescription
	}
	show := deps.Dev
	if props.ShowDetails != nil {
		show = *props.ShowDetails
	}
	return &Model{
		props:       props,
		deps:        deps,
		text:        errmsg.Normalize(props.Err),
		showDetails: show,
		details:     viewport.New(0, 0),
	}
}

// Component adapts New to the router's error component signature.
func Component(deps Deps) router.ErrorComponent {
	return func(p router.ErrorProps) router.Page {
		d := deps
		if p.Router != nil {
			d.Router = p.Router
		}
		return New(Props{Err: p.Err, Reset: p.Reset}, d)
	}
}

// Text returns the normalized error text.
func (m *Model) Text() string { return m.text }

// ShowDetails reports whether the details box is shown.
func (m *Model) ShowDetails() bool { return m.showDetails }

// Copied reports whether the copied acknowledgement is showing.
func (m *Model) Copied() bool { return m.copied }

// SetSize implements router.Page.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	w := m.detailsWidth()
	wrapped := render.Wrap(m.text, w)
	m.details.Width = w
	m.details.Height = min(ui.DetailsHeight, strings.Count(wrapped, "\n")+1)
	m.details.SetContent(wrapped)
}

func (m *Model) detailsWidth() int {
	// border and padding of the details box
	return max(empty.ContentWidth(m.Width())-4, 1)
}

// Init implements router.Page.
func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) buttons() int {
	if m.showDetails {
		return 3
	}
	return 2
}

// Update implements router.Page.
func (m *Model) Update(msg tea.Msg) (router.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "right", "l":
		m.focus = (m.focus + 1) % m.buttons()
	case "shift+tab", "left", "h":
		m.focus = (m.focus + m.buttons() - 1) % m.buttons()
	case "enter", " ":
		return m.activate(m.focus)
	case "r":
		return m.activate(focusTryAgain)
	case "c":
		if m.showDetails {
			return m.activate(focusCopy)
		}
	case "j", "down":
		m.details.SetYOffset(m.details.YOffset + 1)
	case "k", "up":
		m.details.SetYOffset(m.details.YOffset - 1)
	}
	return nil
}

func (m *Model) activate(focus int) tea.Cmd {
	switch focus {
	case focusTryAgain:
		m.deps.Logger.Debug().Msg("error screen: try again")
		if m.props.Reset == nil {
			return nil
		}
		return m.props.Reset()
	case focusReload:
		m.deps.Logger.Debug().Msg("error screen: reload")
		if m.deps.Router == nil {
			return nil
		}
		return m.deps.Router.Invalidate()
	case focusCopy:
		return m.copy()
	}
	return nil
}

func (m *Model) copy() tea.Cmd {
	if m.deps.Clipboard == nil {
		return nil
	}
	if err := m.deps.Clipboard.WriteAll(m.text); err != nil {
		m.deps.Logger.Warn().Err(err).Msg("copy error details failed")
		if m.deps.Toaster == nil {
			return nil
		}
		return m.deps.Toaster.Error(errmsg.Format(errmsg.OpClipboardCopy, err))
	}

	m.copied = true
	m.copySeq++
	seq := m.copySeq
	return tea.Tick(ui.CopiedFeedback, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

// View implements router.Page.
func (m *Model) View() string {
	t := m.deps.Theme.Theme()

	actions := button.Row(t,
		button.Props{Label: TryAgainLabel, Focused: m.focus == focusTryAgain},
		button.Props{Label: ReloadLabel, Variant: button.Outline, Focused: m.focus == focusReload},
	)
	content := []string{actions}
	if m.showDetails {
		content = append(content, m.detailsView(t))
	}

	return empty.Render(t, empty.Panel{
		Icon:        "⚠",
		IconColor:   t.Warning,
		Title:       m.props.Title,
		Description: m.props.Description,
		Content:     content,
	}, m.Width(), m.Height())
}

func (m *Model) detailsView(t *styles.Theme) string {
	s := t.S()

	label := CopyLabel
	if m.copied {
		label = "✓ " + CopiedLabel
	}
	copyBtn := button.Render(t, button.Props{
		Label:   label,
		Variant: button.Ghost,
		Focused: m.focus == focusCopy,
	})

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(m.detailsWidth() + 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render(DetailsHeading),
			s.Code.Render(m.details.View()),
		))

	return lipgloss.JoinVertical(lipgloss.Center, copyBtn, "", box)
}
