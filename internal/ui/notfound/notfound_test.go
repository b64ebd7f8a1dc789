package notfound

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/appshell/internal/ui/styles"
	"github.com/llehouerou/appshell/internal/ui/testutil"
)

type navigateMsg struct{ to string }

type backMsg struct{}

type preloadMsg struct{ to string }

type fakeRouter struct{}

func (fakeRouter) Invalidate() tea.Cmd { return nil }
func (fakeRouter) Back() tea.Cmd       { return func() tea.Msg { return backMsg{} } }
func (fakeRouter) Navigate(to string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}
func (fakeRouter) Preload(to string) tea.Cmd {
	return func() tea.Msg { return preloadMsg{to: to} }
}
func (fakeRouter) Location() string { return "/missing" }

func newModel(props Props) *Model {
	m := New(props, Deps{Theme: styles.Static(styles.Dark()), Router: fakeRouter{}, Logger: zerolog.Nop()})
	m.SetSize(80, 24)
	return m
}

func send(m *Model, msg tea.KeyMsg) []tea.Msg {
	_, cmd := m.Update(msg)
	return testutil.Drain(cmd)
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestDefaults(t *testing.T) {
	m := newModel(Props{})
	view := m.View()

	assert.Equal(t, "/", m.HomeTo())
	assert.Empty(t, testutil.AssertContains(view, DefaultTitle))
	assert.Empty(t, testutil.AssertContains(view, DefaultDescription))
	assert.Empty(t, testutil.AssertContains(view, BackLabel))
	assert.Empty(t, testutil.AssertContains(view, HomeLabel))
}

func TestGoHomeDefaultsToRoot(t *testing.T) {
	m := newModel(Props{})
	send(m, tab)

	msgs := send(m, enter)

	nav, ok := testutil.Find[navigateMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "/", nav.to)
}

func TestGoHomeOverride(t *testing.T) {
	m := newModel(Props{HomeTo: "/dashboard", Title: "Lost?"})

	msgs := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("H")})

	nav, ok := testutil.Find[navigateMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "/dashboard", nav.to)
	assert.Empty(t, testutil.AssertContains(m.View(), "Lost?"))
}

func TestGoBack(t *testing.T) {
	m := newModel(Props{})

	msgs := send(m, enter)

	assert.Equal(t, 1, testutil.Count[backMsg](msgs))
	assert.Zero(t, testutil.Count[navigateMsg](msgs))
}

func TestFocusingHomePreloads(t *testing.T) {
	m := newModel(Props{HomeTo: "/start"})

	msgs := send(m, tab)
	pre, ok := testutil.Find[preloadMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "/start", pre.to)

	assert.Empty(t, send(m, tab), "moving back to Go back does not preload")
}

func TestComponentBindsRouter(t *testing.T) {
	comp := Component(Props{}, Deps{Theme: styles.Static(styles.Light()), Logger: zerolog.Nop()})

	page := comp(fakeRouter{})
	m, ok := page.(*Model)
	require.True(t, ok)

	_, cmd := m.Update(enter)
	assert.Equal(t, 1, testutil.Count[backMsg](testutil.Drain(cmd)))
}

func TestNoRouterIsInert(t *testing.T) {
	m := New(Props{}, Deps{Theme: styles.Static(styles.Dark())})
	_, cmd := m.Update(enter)
	assert.Nil(t, cmd)
}
