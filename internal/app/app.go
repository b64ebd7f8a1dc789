// Package app is the root Bubble Tea model of the shell: header, router
// outlet, help footer, popups and toasts.
package app

import (
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/appshell/internal/app/popupctl"
	"github.com/llehouerou/appshell/internal/config"
	"github.com/llehouerou/appshell/internal/keymap"
	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/state"
	"github.com/llehouerou/appshell/internal/toast"
	"github.com/llehouerou/appshell/internal/ui/headerbar"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// Theme is the theme capability the shell drives. theme.Provider satisfies it.
type Theme interface {
	styles.Source
	Mode() styles.Mode
	Toggle() error
	SetDefault(mode styles.Mode)
}

// Options wires the shell to the services bootstrap built.
type Options struct {
	Title  string
	Router *router.Router
	Toasts *toast.Host
	Theme  Theme
	State  state.Interface
	Logger zerolog.Logger

	// Dev is read by the error screen; config reloads update it.
	Dev *atomic.Bool

	// Tabs are shown in the header. Destinations maps g-sequence actions to
	// locations.
	Tabs         []headerbar.Tab
	Destinations map[keymap.Action]string

	// Watcher delivers config changes; nil disables hot reload.
	Watcher    *config.Watcher
	ConfigPath string

	// StartAt is the initial location. Empty restores the saved one.
	StartAt string
}

// Model is the root application model.
type Model struct {
	opts     Options
	log      zerolog.Logger
	router   *router.Router
	toasts   *toast.Host
	theme    Theme
	state    state.Interface
	popups   *popupctl.Manager
	help     help.Model
	keys     keymap.Help
	global   *keymap.Resolver
	sequence *keymap.Resolver

	pendingG bool
	keySeq   int

	width  int
	height int
}

// New creates the root model.
func New(opts Options) Model {
	if opts.Dev == nil {
		opts.Dev = &atomic.Bool{}
	}
	if opts.Title == "" {
		opts.Title = "appshell"
	}
	return Model{
		opts:     opts,
		log:      opts.Logger,
		router:   opts.Router,
		toasts:   opts.Toasts,
		theme:    opts.Theme,
		state:    opts.State,
		popups:   popupctl.New(opts.Theme),
		help:     help.New(),
		keys:     keymap.FooterHelp(),
		global:   keymap.Global(),
		sequence: keymap.Sequence(),
	}
}

// Init starts the router at the initial location and arms config watching.
func (m Model) Init() tea.Cmd {
	location, history := m.initialLocation()
	m.log.Info().Str("location", location).Int("history", len(history)).Msg("shell started")
	return tea.Batch(m.router.Start(location, history), m.watchConfig())
}

// initialLocation picks the start location: the explicit one, then the saved
// navigation state, then the home destination.
func (m Model) initialLocation() (string, []string) {
	if m.opts.StartAt != "" {
		return m.opts.StartAt, nil
	}
	if m.state != nil {
		nav, err := m.state.GetNavigation()
		if err != nil {
			m.log.Warn().Err(err).Msg("failed to restore navigation")
		}
		if nav != nil && nav.Location != "" {
			return nav.Location, nav.History
		}
	}
	if home, ok := m.opts.Destinations[keymap.ActionGoHome]; ok {
		return home, nil
	}
	return "/", nil
}

// Router returns the shell's router.
func (m Model) Router() *router.Router { return m.router }

// Popups returns the popup manager.
func (m Model) Popups() *popupctl.Manager { return m.popups }

// Size returns the terminal size.
func (m Model) Size() (width, height int) { return m.width, m.height }
