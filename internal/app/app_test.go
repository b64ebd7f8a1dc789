package app

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/appshell/internal/app/popupctl"
	"github.com/llehouerou/appshell/internal/config"
	"github.com/llehouerou/appshell/internal/keymap"
	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/state"
	"github.com/llehouerou/appshell/internal/theme"
	"github.com/llehouerou/appshell/internal/toast"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/headerbar"
	"github.com/llehouerou/appshell/internal/ui/styles"
	"github.com/llehouerou/appshell/internal/ui/testutil"
)

// stubPage records keys; capture makes it hold focus.
type stubPage struct {
	ui.Base
	name    string
	capture bool
	keys    []string
}

func (p *stubPage) Init() tea.Cmd { return nil }

func (p *stubPage) Update(msg tea.Msg) (router.Page, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		p.keys = append(p.keys, k.String())
	}
	return p, nil
}

func (p *stubPage) View() string    { return "page " + p.name }
func (p *stubPage) Capturing() bool { return p.capture }

type fixture struct {
	m      Model
	store  *state.Mock
	theme  *theme.Provider
	toasts *toast.Host
	dev    *atomic.Bool
	pages  map[string]*stubPage
	shown  []toast.Toast
}

func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		store: state.NewMock(),
		dev:   &atomic.Bool{},
		pages: make(map[string]*stubPage),
	}
	f.theme = theme.New(f.store, theme.Options{
		Default:    styles.ModeDark,
		StorageKey: "ui-theme",
		DetectDark: func() bool { return true },
		Logger:     zerolog.Nop(),
	})
	f.toasts = toast.New(f.theme, toast.Options{}, zerolog.Nop())

	page := func(name string, capture bool) router.Component {
		return func(router.Context) router.Page {
			p := &stubPage{name: name, capture: capture}
			f.pages[name] = p
			return p
		}
	}
	r, err := router.New([]router.Route{
		{Path: "/", Component: page("home", false)},
		{Path: "/settings", Component: page("settings", false)},
		{Path: "/prompt", Component: page("prompt", true)},
	}, router.Options{
		Theme:             f.theme,
		Scroll:            f.store,
		ScrollRestoration: true,
		Wrap:              Frame(),
		Logger:            zerolog.Nop(),
	})
	require.NoError(t, err)

	opts := Options{
		Title:  "appshell",
		Router: r,
		Toasts: f.toasts,
		Theme:  f.theme,
		State:  f.store,
		Logger: zerolog.Nop(),
		Dev:    f.dev,
		Tabs: []headerbar.Tab{
			{Key: "g h", Name: "Home", To: "/"},
			{Key: "g s", Name: "Settings", To: "/settings"},
		},
		Destinations: map[keymap.Action]string{
			keymap.ActionGoHome:     "/",
			keymap.ActionGoSettings: "/settings",
		},
	}
	if mutate != nil {
		mutate(&opts)
	}
	f.m = New(opts)
	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return f
}

// send delivers msg and every follow-up message. Progress ticks, spinner
// ticks and toast dismissal timers are not run.
func (f *fixture) send(msg tea.Msg) {
	f.run(f.update(msg))
}

func (f *fixture) update(msg tea.Msg) tea.Cmd {
	next, cmd := f.m.Update(msg)
	f.m = next.(Model)
	return cmd
}

func (f *fixture) run(cmd tea.Cmd) {
	queue := testutil.Drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if router.IsProgressTick(msg) {
			continue
		}
		switch msg := msg.(type) {
		case spinner.TickMsg, tea.QuitMsg:
			continue
		case toast.ShowMsg:
			f.shown = append(f.shown, msg.Toast)
			f.update(msg) // returns the dismissal timer
			continue
		}
		queue = append(queue, testutil.Drain(f.update(msg))...)
	}
}

func (f *fixture) start() {
	f.run(f.m.Init())
}

func (f *fixture) key(names ...string) {
	for _, name := range names {
		f.send(testutil.Key(name))
	}
}

// prefix presses g without running its timeout.
func (f *fixture) prefix() tea.Cmd {
	return f.update(testutil.Key("g"))
}

func TestInit_StartsAtHomeWithoutSavedState(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	assert.Equal(t, "/", f.m.Router().Location())
	nav, _ := f.store.GetNavigation()
	require.NotNil(t, nav)
	assert.Equal(t, "/", nav.Location)
}

func TestInit_RestoresSavedNavigation(t *testing.T) {
	f := newFixture(t, nil)
	f.store.SetNavigation(&state.NavigationState{Location: "/settings", History: []string{"/", "/settings"}})
	f.start()

	assert.Equal(t, "/settings", f.m.Router().Location())
	assert.Equal(t, []string{"/", "/settings"}, f.m.Router().History())
}

func TestInit_StartAtOverridesSavedNavigation(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.StartAt = "/prompt" })
	f.store.SetNavigation(&state.NavigationState{Location: "/settings"})
	f.start()

	assert.Equal(t, "/prompt", f.m.Router().Location())
}

func TestWindowSize_FillsTerminal(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	w, h := f.m.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)

	view := f.m.View()
	assert.Len(t, strings.Split(view, "\n"), 30)
	plain := testutil.StripANSI(view)
	assert.Contains(t, plain, "appshell")
	assert.Contains(t, plain, "page home")
	assert.Contains(t, plain, "quit")
}

func TestView_EmptyBeforeSize(t *testing.T) {
	f := newFixture(t, nil)
	f.m.width, f.m.height = 0, 0
	assert.Empty(t, f.m.View())
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			f := newFixture(t, nil)
			f.start()

			cmd := f.update(testutil.Key(k))
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestCapturingPageReceivesGlobalKeys(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.StartAt = "/prompt" })
	f.start()

	cmd := f.update(testutil.Key("q"))
	assert.Nil(t, cmd)
	f.key("t", "?")

	assert.Equal(t, []string{"q", "t", "?"}, f.pages["prompt"].keys)
	assert.Equal(t, styles.ModeDark, f.theme.Mode())
	assert.Equal(t, popupctl.None, f.m.Popups().ActivePopup())

	// ctrl+c still quits
	cmd = f.update(testutil.Key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestUnboundKeysReachThePage(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	f.key("tab", "enter")
	assert.Equal(t, []string{"tab", "enter"}, f.pages["home"].keys)
}

func TestToggleTheme(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	f.key("t")
	assert.Equal(t, styles.ModeLight, f.theme.Mode())
	assert.Contains(t, testutil.StripANSI(f.m.View()), "light")

	f.key("t")
	assert.Equal(t, styles.ModeDark, f.theme.Mode())
	assert.Empty(t, f.shown)
}

func TestToggleTheme_SaveFailureToasts(t *testing.T) {
	f := newFixture(t, nil)
	f.start()
	f.store.FailSettings(errors.New("read-only database"))

	f.key("t")
	assert.Equal(t, styles.ModeLight, f.theme.Mode())
	require.Len(t, f.shown, 1)
	assert.Equal(t, toast.KindError, f.shown[0].Kind)
	assert.Equal(t, "Failed to save theme: persist theme: read-only database", f.shown[0].Message)
	assert.Len(t, f.toasts.Toasts(), 1)
}

func TestGSequence(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	f.prefix()
	assert.Contains(t, testutil.StripANSI(f.m.View()), "g…")
	f.key("s")
	assert.Equal(t, "/settings", f.m.Router().Location())

	f.prefix()
	f.key("h")
	assert.Equal(t, "/", f.m.Router().Location())
	assert.Equal(t, []string{"/", "/settings", "/"}, f.m.Router().History())
}

func TestGSequence_UnknownSecondKeyIsSwallowed(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	f.prefix()
	f.key("x")
	assert.Empty(t, f.pages["home"].keys)
	assert.Equal(t, "/", f.m.Router().Location())

	// the sequence is over; x now reaches the page
	f.key("x")
	assert.Equal(t, []string{"x"}, f.pages["home"].keys)
}

func TestGSequence_Timeout(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	cmd := f.prefix()
	require.NotNil(t, cmd)
	f.send(keySequenceTimeoutMsg{seq: f.m.keySeq - 1}) // stale
	assert.True(t, f.m.pendingG)

	f.send(keySequenceTimeoutMsg{seq: f.m.keySeq})
	assert.False(t, f.m.pendingG)
}

func TestBackAndReload(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	f.prefix()
	f.key("s")
	require.Equal(t, "/settings", f.m.Router().Location())

	f.key("backspace")
	assert.Equal(t, "/", f.m.Router().Location())

	first := f.pages["home"]
	f.key("ctrl+r")
	assert.NotSame(t, first, f.pages["home"], "reload rebuilds the page")
}

func TestHelpPopup(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	f.key("?")
	assert.Equal(t, popupctl.Help, f.m.Popups().ActivePopup())
	assert.Contains(t, testutil.StripANSI(f.m.View()), "Toggle theme")

	// keys go to the popup, not the page
	f.key("j")
	assert.Empty(t, f.pages["home"].keys)

	f.key("esc")
	assert.Equal(t, popupctl.None, f.m.Popups().ActivePopup())
}

func TestNavigationIsSaved(t *testing.T) {
	f := newFixture(t, nil)
	f.start()
	before := f.store.NavigationSaves()

	f.prefix()
	f.key("s")

	assert.Equal(t, before+1, f.store.NavigationSaves())
	nav, _ := f.store.GetNavigation()
	assert.Equal(t, "/settings", nav.Location)
	assert.Equal(t, []string{"/", "/settings"}, nav.History)
}

func TestConfigReload_AppliesSettings(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	cfg := config.Default()
	cfg.Dev = true
	cfg.Theme.Default = "light"
	cfg.Toast.Position = "bottom-center"
	cfg.Toast.Duration = 2 * time.Second
	f.send(ConfigReloadedMsg{Config: cfg})

	assert.True(t, f.dev.Load())
	assert.Equal(t, styles.ModeLight, f.theme.Mode(), "no stored selection, so the new default applies")
	assert.Equal(t, toast.BottomCenter, f.toasts.Options().Position)
	assert.Equal(t, 2*time.Second, f.toasts.Options().Duration)
}

func TestConfigReload_ErrorShowsPopup(t *testing.T) {
	f := newFixture(t, nil)
	f.start()

	f.send(ConfigReloadedMsg{Err: errors.New("parse config.toml: bad key")})

	assert.Equal(t, popupctl.Error, f.m.Popups().ActivePopup())
	assert.Equal(t, "Failed to load configuration: parse config.toml: bad key", f.m.Popups().ErrorMsg())
	assert.False(t, f.dev.Load())

	// any key dismisses
	f.key("x")
	assert.Equal(t, popupctl.None, f.m.Popups().ActivePopup())
	assert.Empty(t, f.pages["home"].keys)
}

func TestToastOptions(t *testing.T) {
	got := ToastOptions(config.ToastConfig{
		Duration:   time.Second,
		Position:   "top-center",
		Expand:     true,
		RichColors: false,
	})
	assert.Equal(t, toast.Options{Duration: time.Second, Position: toast.TopCenter, Expand: true}, got)
}

func TestEnforceHeight(t *testing.T) {
	assert.Equal(t, "a\nb\n", enforceHeight("a\nb", 3))
	assert.Equal(t, "a\nb", enforceHeight("a\nb\nc", 2))
	assert.Equal(t, "a", enforceHeight("a", 1))
}
