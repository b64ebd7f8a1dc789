// Package confirm provides a confirmation prompt popup.
//
// In yes/no mode the prompt shows a title, a description and a Cancel/Yes
// button pair. A prompt shown with HoldOpen stays up after Yes so the caller
// can mark it pending while the confirmed work runs; while pending, Yes is
// disabled with a spinner and cancelling is ignored.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/button"
	"github.com/llehouerou/appshell/internal/ui/loadingswap"
	"github.com/llehouerou/appshell/internal/ui/popup"
	"github.com/llehouerou/appshell/internal/ui/render"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

const (
	DefaultTitle = "Are you sure?"
	CancelLabel  = "Cancel"
	ConfirmLabel = "Yes"
)

const (
	focusCancel = iota
	focusConfirm
)

// Options tunes how a yes/no prompt behaves.
type Options struct {
	Variant  button.Variant // styling of the Yes button
	HoldOpen bool           // keep the prompt open after Yes
}

// Model is a confirmation popup.
type Model struct {
	ui.Base
	theme          styles.Source
	title          string
	message        string
	context        any
	active         bool
	opts           Options
	focus          int
	pending        bool
	swap           loadingswap.Model
	options        []string // Multi-option mode
	selectedOption int      // Currently selected option index
}

// New creates a new confirmation model.
func New(theme styles.Source) Model {
	return Model{theme: theme, swap: loadingswap.New()}
}

// Show displays the confirmation popup (yes/no mode).
func (m *Model) Show(title, message string, context any, width, height int) {
	m.ShowWith(title, message, context, Options{}, width, height)
}

// ShowWith displays a yes/no prompt with explicit options.
func (m *Model) ShowWith(title, message string, context any, opts Options, width, height int) {
	m.Reset()
	if title == "" {
		title = DefaultTitle
	}
	m.title = title
	m.message = message
	m.context = context
	m.opts = opts
	m.SetSize(width, height)
	m.active = true
}

// ShowWithOptions displays the confirmation popup with multiple options.
// The last option is treated as cancel.
func (m *Model) ShowWithOptions(title, message string, options []string, context any, width, height int) {
	m.Reset()
	m.title = title
	m.message = message
	m.context = context
	m.SetSize(width, height)
	m.active = true
	m.options = options
}

// Reset clears the confirmation state.
func (m *Model) Reset() {
	m.title = ""
	m.message = ""
	m.context = nil
	m.active = false
	m.opts = Options{}
	m.focus = focusCancel
	m.pending = false
	m.swap = m.swap.Stop()
	m.options = nil
	m.selectedOption = 0
}

// Active returns whether the confirmation is currently shown.
func (m Model) Active() bool {
	return m.active
}

// Pending returns whether the prompt is waiting on confirmed work.
func (m Model) Pending() bool {
	return m.pending
}

// SetPending toggles the pending state, starting or stopping the spinner.
func (m *Model) SetPending(pending bool) tea.Cmd {
	m.pending = pending
	if !pending {
		m.swap = m.swap.Stop()
		return nil
	}
	var cmd tea.Cmd
	m.swap, cmd = m.swap.Start()
	return cmd
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if len(m.options) > 0 {
			return m.handleMultiOptionKey(msg)
		}
		return m.handleYesNoKey(msg)
	default:
		var cmd tea.Cmd
		m.swap, cmd = m.swap.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleMultiOptionKey(msg tea.KeyMsg) (popup.Popup, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedOption > 0 {
			m.selectedOption--
		}
	case "down", "j":
		if m.selectedOption < len(m.options)-1 {
			m.selectedOption++
		}
	case "enter":
		m.active = false
		ctx := m.context
		selected := m.selectedOption
		confirmed := selected < len(m.options)-1
		return m, func() tea.Msg {
			return ActionMsg(Result{Confirmed: confirmed, Context: ctx, SelectedOption: selected})
		}
	case "esc":
		m.active = false
		ctx := m.context
		last := len(m.options) - 1
		return m, func() tea.Msg {
			return ActionMsg(Result{Confirmed: false, Context: ctx, SelectedOption: last})
		}
	}
	return m, nil
}

func (m *Model) handleYesNoKey(msg tea.KeyMsg) (popup.Popup, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.focus = 1 - m.focus
		return m, nil
	case "enter", " ":
		if m.focus == focusConfirm {
			return m, m.confirm()
		}
		return m, m.cancel()
	case "y", "Y":
		return m, m.confirm()
	case "esc", "n", "N":
		return m, m.cancel()
	}
	return m, nil
}

// confirm emits a confirmed result unless the prompt is already pending.
// A hold-open prompt turns pending at once so a cancel cannot slip in
// before the owner sees the confirmation.
func (m *Model) confirm() tea.Cmd {
	if m.pending {
		return nil
	}
	if m.opts.HoldOpen {
		// pending until the owner calls SetPending(false); the spinner
		// starts when the owner calls SetPending(true)
		m.pending = true
	} else {
		m.active = false
	}
	ctx := m.context
	return func() tea.Msg {
		return ActionMsg(Result{Confirmed: true, Context: ctx})
	}
}

// cancel closes the prompt unless it is pending.
func (m *Model) cancel() tea.Cmd {
	if m.pending {
		return nil
	}
	m.active = false
	ctx := m.context
	return func() tea.Msg {
		return ActionMsg(Result{Confirmed: false, Context: ctx})
	}
}

// View implements popup.Popup.
func (m *Model) View() string {
	if !m.active || !m.Sized() {
		return ""
	}

	t := m.theme.Theme()
	s := t.S()
	width := min(m.Width(), ui.MaxPageWidth) - 6

	title := s.Title.Render(m.title)
	message := s.Muted.Render(render.Wrap(m.message, width))

	if len(m.options) > 0 {
		return title + "\n\n" + message + "\n\n" + m.optionsView(t) + "\n\n" +
			s.Subtle.Render("↑↓/jk navigate · enter select")
	}

	buttons := button.Row(t,
		button.Props{
			Label:    CancelLabel,
			Variant:  button.Outline,
			Focused:  m.focus == focusCancel,
			Disabled: m.pending,
		},
		button.Props{
			Label:    m.swap.View(m.pending, ConfirmLabel),
			Variant:  m.opts.Variant,
			Focused:  m.focus == focusConfirm,
			Disabled: m.pending,
			Loading:  m.pending,
		},
	)
	hint := s.Subtle.Render("tab switch · y confirm · esc cancel")

	return lipgloss.JoinVertical(lipgloss.Left,
		title, "", message, "", buttons, "", hint)
}

func (m *Model) optionsView(t *styles.Theme) string {
	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		if i == m.selectedOption {
			lines = append(lines, lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("> "+opt))
			continue
		}
		lines = append(lines, t.S().Base.Render("  "+opt))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
