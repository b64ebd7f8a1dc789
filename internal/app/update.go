package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/appshell/internal/app/handler"
	"github.com/llehouerou/appshell/internal/app/popupctl"
	"github.com/llehouerou/appshell/internal/errmsg"
	"github.com/llehouerou/appshell/internal/keymap"
	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/state"
	"github.com/llehouerou/appshell/internal/toast"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/action"
	"github.com/llehouerou/appshell/internal/ui/helpbindings"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case keySequenceTimeoutMsg:
		if msg.seq == m.keySeq {
			m.pendingG = false
		}
		return m, nil

	case action.Msg:
		if a, ok := action.From(msg, helpbindings.Source); ok {
			if _, ok := a.(helpbindings.Close); ok {
				m.popups.Hide(popupctl.Help)
			}
			return m, nil
		}
		return m, m.router.Update(msg)

	case router.ChangedMsg:
		m.log.Debug().Str("from", msg.From).Str("to", msg.To).Msg("navigated")
		if m.state != nil {
			m.state.SaveNavigation(state.NavigationState{Location: msg.To, History: msg.History})
		}
		return m, nil

	case toast.ShowMsg, toast.DismissMsg:
		return m, m.toasts.Update(msg)

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		return m, m.watchConfig()
	}

	return m, m.router.Update(msg)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.router.SetSize(width, max(height-ui.HeaderHeight-ui.FooterHeight, 0))
	m.popups.SetSize(width, height)
	m.help.Width = width
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	stage, cmd := handler.Dispatch(msg,
		handler.Stage{Name: "interrupt", Handle: m.handleInterrupt},
		handler.Stage{Name: "popup", Handle: m.handlePopupKey},
		handler.Stage{Name: "captured", Handle: m.handleCapturedKey},
		handler.Stage{Name: "sequence", Handle: m.handleSequenceKey},
		handler.Stage{Name: "global", Handle: m.handleGlobalKey},
	)
	if stage != "" {
		return cmd
	}
	return m.router.Update(msg)
}

// handleInterrupt quits on ctrl+c whatever holds focus.
func (m *Model) handleInterrupt(msg tea.KeyMsg) handler.Result {
	if msg.String() != "ctrl+c" {
		return handler.NotHandled
	}
	return handler.Handled(m.quit())
}

func (m *Model) handlePopupKey(msg tea.KeyMsg) handler.Result {
	if handled, cmd := m.popups.HandleKey(msg); handled {
		return handler.Handled(cmd)
	}
	return handler.NotHandled
}

// handleCapturedKey sends every key to the page while it holds focus, such
// as while a confirmation prompt is open.
func (m *Model) handleCapturedKey(msg tea.KeyMsg) handler.Result {
	if !m.router.Capturing() {
		return handler.NotHandled
	}
	m.pendingG = false
	return handler.Handled(m.router.Update(msg))
}

func (m *Model) handleSequenceKey(msg tea.KeyMsg) handler.Result {
	if !m.pendingG {
		return handler.NotHandled
	}
	m.pendingG = false

	act := m.sequence.Resolve(msg.String())
	to, ok := m.opts.Destinations[act]
	if !ok {
		return handler.HandledNoCmd
	}
	return handler.Handled(m.router.Navigate(to))
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) handler.Result {
	switch m.global.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return handler.Handled(m.quit())
	case keymap.ActionToggleTheme:
		return handler.Handled(m.toggleTheme())
	case keymap.ActionBack:
		return handler.Handled(m.router.Back())
	case keymap.ActionReload:
		return handler.Handled(m.router.Invalidate())
	case keymap.ActionHelp:
		return handler.Handled(m.popups.ShowHelp(helpbindings.AllContexts()))
	case keymap.ActionGPrefix:
		m.pendingG = true
		m.keySeq++
		seq := m.keySeq
		return handler.Handled(tea.Tick(keySequenceTimeout, func(time.Time) tea.Msg {
			return keySequenceTimeoutMsg{seq: seq}
		}))
	}
	return handler.NotHandled
}

func (m *Model) toggleTheme() tea.Cmd {
	if err := m.theme.Toggle(); err != nil {
		m.log.Warn().Err(err).Msg("theme toggle not saved")
		return m.toasts.Error(errmsg.Format(errmsg.OpThemeSave, err))
	}
	return nil
}

// quit saves scroll offsets and pending state, then stops the program.
func (m *Model) quit() tea.Cmd {
	if err := m.router.PersistScroll(); err != nil {
		m.log.Warn().Err(err).Msg("failed to save scroll positions")
	}
	if m.state != nil {
		if err := m.state.Flush(); err != nil {
			m.log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpNavigationSave, err))
		}
	}
	if m.opts.Watcher != nil {
		_ = m.opts.Watcher.Close()
	}
	m.log.Info().Msg("shell quitting")
	return tea.Quit
}
