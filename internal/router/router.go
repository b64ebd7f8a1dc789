// Package router maps locations to pages.
//
// A Router owns the history stack, runs route loaders as commands, keeps a
// preload cache, and acts as the error boundary for the page it mounts:
// loader failures and panics in a page select the error component, and
// unmatched locations select the not-found component. Pages render inside a
// scrollable outlet whose offset is remembered per location.
package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/llehouerou/appshell/internal/errmsg"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// Preload selects when loaders run ahead of navigation.
type Preload string

const (
	PreloadIntent Preload = "intent" // when a link gains focus
	PreloadNone   Preload = "none"
)

const progressInterval = 120 * time.Millisecond

// ScrollStore persists outlet offsets between runs.
type ScrollStore interface {
	GetScrollPositions() (map[string]int, error)
	SaveScrollPositions(positions map[string]int) error
}

// Options configures a Router.
type Options struct {
	DefaultPreload    Preload
	ScrollRestoration bool
	StructuralSharing bool
	// PreloadStaleTime is how long loaded data is served without revalidating.
	// Zero revalidates on every visit.
	PreloadStaleTime time.Duration

	DefaultErrorComponent    ErrorComponent
	DefaultNotFoundComponent NotFoundComponent

	// Wrap decorates the outlet with the surrounding shell.
	Wrap func(outlet string, width, height int) string

	Theme   styles.Source
	Scroll  ScrollStore
	Context context.Context // passed to loaders
	Logger  zerolog.Logger
}

type cacheEntry struct {
	data any
	at   time.Time
}

// Router is the application's single router instance.
type Router struct {
	opts   Options
	log    zerolog.Logger
	mux    *mux.Router
	routes map[string]*Route
	now    func() time.Time

	history  []string
	location string
	seq      uint64
	route    *Route
	match    Match

	data    any
	dataLoc string
	hasData bool

	page    Page
	failed  bool
	restore bool

	loading  bool
	pct      float64
	progress progress.Model
	viewport viewport.Model

	cache      map[string]cacheEntry
	preloading map[string]bool
	scroll     map[string]int

	width, height int
}

var _ Capability = (*Router)(nil)

// New builds a router over routes.
func New(routes []Route, opts Options) (*Router, error) {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Theme == nil {
		opts.Theme = styles.Static(styles.Dark())
	}
	if opts.DefaultPreload == "" {
		opts.DefaultPreload = PreloadIntent
	}

	r := &Router{
		opts:       opts,
		log:        opts.Logger,
		mux:        mux.NewRouter(),
		routes:     make(map[string]*Route, len(routes)),
		now:        time.Now,
		progress:   progress.New(progress.WithoutPercentage()),
		viewport:   viewport.New(0, 0),
		cache:      make(map[string]cacheEntry),
		preloading: make(map[string]bool),
		scroll:     make(map[string]int),
	}

	for i := range routes {
		rt := routes[i]
		if rt.Path == "" {
			return nil, fmt.Errorf("route %d: empty path", i)
		}
		if _, dup := r.routes[rt.Path]; dup {
			return nil, fmt.Errorf("route %q: registered twice", rt.Path)
		}
		if err := r.mux.NewRoute().Path(rt.Path).Name(rt.Path).GetError(); err != nil {
			return nil, fmt.Errorf("route %q: %w", rt.Path, err)
		}
		r.routes[rt.Path] = &rt
	}

	if opts.ScrollRestoration && opts.Scroll != nil {
		saved, err := opts.Scroll.GetScrollPositions()
		if err != nil {
			r.log.Warn().Err(err).Msg("failed to load scroll positions")
		}
		for loc, off := range saved {
			r.scroll[loc] = off
		}
	}

	return r, nil
}

// --- Capability ---

// Navigate returns a command that pushes to.
func (r *Router) Navigate(to string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// Back returns a command that pops one history entry.
func (r *Router) Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Invalidate returns a command that reloads the current route.
func (r *Router) Invalidate() tea.Cmd {
	return func() tea.Msg { return InvalidateMsg{} }
}

// Preload returns a command that warms the cache for to.
func (r *Router) Preload(to string) tea.Cmd {
	return func() tea.Msg { return PreloadMsg{To: to} }
}

// Location returns the current location.
func (r *Router) Location() string {
	return r.location
}

// --- Accessors ---

// History returns a copy of the history stack, oldest first.
func (r *Router) History() []string {
	return slices.Clone(r.history)
}

// CanGoBack reports whether Back has an entry to return to.
func (r *Router) CanGoBack() bool {
	return len(r.history) > 1
}

// Loading reports whether a navigation loader is in flight.
func (r *Router) Loading() bool {
	return r.loading
}

// Failed reports whether the error boundary is showing.
func (r *Router) Failed() bool {
	return r.failed
}

// Page returns the mounted page.
func (r *Router) Page() Page {
	return r.page
}

// Match returns the current route match.
func (r *Router) Match() Match {
	return r.match
}

// Options returns the router options.
func (r *Router) Options() Options {
	return r.opts
}

// SetSize sets the area the outlet occupies, progress line included.
func (r *Router) SetSize(width, height int) {
	r.width, r.height = width, height
	w, h := r.outletSize()
	r.viewport.Width = w
	r.viewport.Height = h
	r.progress.Width = w
	if r.page != nil {
		r.page.SetSize(w, h)
		r.sync()
	}
}

func (r *Router) outletSize() (int, int) {
	return r.width, max(r.height-1, 0)
}

// ScrollOffset returns the outlet's vertical offset.
func (r *Router) ScrollOffset() int {
	return r.viewport.YOffset
}

// Capturing reports whether the page holds keyboard focus.
func (r *Router) Capturing() bool {
	c, ok := r.page.(Capturer)
	return ok && c.Capturing()
}

// --- Navigation ---

// Start enters location, restoring history when given.
func (r *Router) Start(location string, history []string) tea.Cmd {
	location = clean(location)
	r.history = slices.Clone(history)
	if len(r.history) == 0 || r.history[len(r.history)-1] != location {
		r.history = append(r.history, location)
	}
	return r.enter(location)
}

func (r *Router) navigate(to string, replace bool) tea.Cmd {
	to = clean(to)
	switch {
	case to == r.location:
	case replace && len(r.history) > 0:
		r.history[len(r.history)-1] = to
	default:
		r.history = append(r.history, to)
	}
	return r.enter(to)
}

func (r *Router) back() tea.Cmd {
	if len(r.history) < 2 {
		r.log.Debug().Msg("back ignored at first history entry")
		return nil
	}
	r.history = r.history[:len(r.history)-1]
	return r.enter(r.history[len(r.history)-1])
}

// enter commits to location and mounts or loads its page.
func (r *Router) enter(location string) tea.Cmd {
	from := r.location
	r.saveScroll()

	r.seq++
	r.location = location
	r.failed = false
	r.loading = false
	r.restore = true
	changed := r.changed(from)

	r.log.Debug().Str("from", from).Str("to", location).Msg("navigate")

	rt, m, ok := r.resolve(location)
	r.route, r.match = rt, m
	if !ok {
		return tea.Batch(r.mountNotFound(nil), changed)
	}
	if rt.Loader == nil {
		r.hasData = false
		return tea.Batch(r.render(nil), changed)
	}

	if entry, ok := r.cache[location]; ok {
		cmd := r.commit(entry.data)
		if r.now().Sub(entry.at) < r.opts.PreloadStaleTime {
			return tea.Batch(cmd, changed)
		}
		return tea.Batch(cmd, r.startLoad(), changed)
	}
	return tea.Batch(r.startLoad(), changed)
}

func (r *Router) changed(from string) tea.Cmd {
	msg := ChangedMsg{From: from, To: r.location, History: r.History()}
	return func() tea.Msg { return msg }
}

func (r *Router) resolve(location string) (*Route, Match, bool) {
	m := Match{Location: location}
	u, err := url.Parse(location)
	if err != nil {
		return nil, m, false
	}
	m.Query = u.Query()

	req := &http.Request{Method: http.MethodGet, URL: u, Header: http.Header{}}
	var rm mux.RouteMatch
	if !r.mux.Match(req, &rm) || rm.Route == nil {
		return nil, m, false
	}
	rt := r.routes[rm.Route.GetName()]
	if rt == nil {
		return nil, m, false
	}
	m.Pattern = rt.Path
	m.Params = rm.Vars
	return rt, m, true
}

func clean(to string) string {
	to = strings.TrimSpace(to)
	if !strings.HasPrefix(to, "/") {
		to = "/" + to
	}
	return to
}

// --- Loading ---

func (r *Router) startLoad() tea.Cmd {
	r.loading = true
	r.pct = 0
	seq, loc := r.seq, r.location
	ctx, loader, m := r.opts.Context, r.route.Loader, r.match
	now := r.now

	load := func() tea.Msg {
		data, err := runLoader(ctx, loader, m)
		return loadedMsg{seq: seq, location: loc, data: data, err: err, at: now()}
	}
	first := func() tea.Msg { return progressTickMsg{seq: seq} }
	return tea.Batch(load, first)
}

func (r *Router) preload(to string) tea.Cmd {
	if r.opts.DefaultPreload != PreloadIntent {
		return nil
	}
	to = clean(to)
	rt, m, ok := r.resolve(to)
	if !ok || rt.Loader == nil || r.preloading[to] {
		return nil
	}
	if entry, ok := r.cache[to]; ok && r.now().Sub(entry.at) < r.opts.PreloadStaleTime {
		return nil
	}

	r.preloading[to] = true
	ctx, loader, now := r.opts.Context, rt.Loader, r.now
	return func() tea.Msg {
		data, err := runLoader(ctx, loader, m)
		return loadedMsg{location: to, data: data, err: err, preload: true, at: now()}
	}
}

// runLoader calls loader, turning a panic into an error.
func runLoader(ctx context.Context, loader Loader, m Match) (data any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &panicError{value: rec}
		}
	}()
	return loader(ctx, m)
}

func (r *Router) loaded(msg loadedMsg) tea.Cmd {
	if msg.preload {
		delete(r.preloading, msg.location)
		if msg.err != nil {
			r.log.Debug().Str("location", msg.location).Msg(errmsg.Format(errmsg.OpRoutePreload, msg.err))
			return nil
		}
		r.cache[msg.location] = cacheEntry{data: msg.data, at: msg.at}
		return nil
	}

	if msg.seq != r.seq {
		r.log.Debug().Str("location", msg.location).Msg("dropping stale loader result")
		return nil
	}
	r.loading = false

	if msg.err != nil {
		delete(r.cache, msg.location)
		if errors.Is(msg.err, ErrNotFound) {
			return r.mountNotFound(r.route)
		}
		r.log.Warn().Str("location", msg.location).Msg(errmsg.Format(errmsg.OpRouteLoad, msg.err))
		return r.fail(msg.err)
	}

	r.cache[msg.location] = cacheEntry{data: msg.data, at: msg.at}
	return r.commit(msg.data)
}

func (r *Router) invalidate() tea.Cmd {
	delete(r.cache, r.location)
	if r.route == nil {
		return r.mountNotFound(nil)
	}
	r.seq++
	if r.route.Loader != nil {
		return r.startLoad()
	}
	return r.render(nil)
}

func (r *Router) reset() tea.Cmd {
	if r.route == nil {
		return r.mountNotFound(nil)
	}
	if r.route.Loader != nil && !(r.hasData && r.dataLoc == r.location) {
		r.seq++
		return r.startLoad()
	}
	r.failed = false
	return r.render(r.data)
}

// --- Mounting ---

// commit renders data unless it is deep-equal to what is already shown.
func (r *Router) commit(data any) tea.Cmd {
	if r.opts.StructuralSharing && r.hasData && r.dataLoc == r.location &&
		!r.failed && r.page != nil && reflect.DeepEqual(r.data, data) {
		r.log.Debug().Str("location", r.location).Msg("loader data unchanged")
		return nil
	}
	r.data, r.dataLoc, r.hasData = data, r.location, true
	return r.render(data)
}

func (r *Router) render(data any) tea.Cmd {
	rt := r.route
	if rt.Component == nil {
		return r.fail(fmt.Errorf("route %q has no component", rt.Path))
	}
	ctx := Context{Match: r.match, Data: data, Router: r, Logger: r.log}
	page, err := build(func() Page { return rt.Component(ctx) })
	if err != nil {
		return r.fail(err)
	}
	r.failed = false
	return r.mount(page)
}

// fail mounts the error component for err.
func (r *Router) fail(err error) tea.Cmd {
	var value any = err
	var pe *panicError
	if errors.As(err, &pe) {
		value = pe.value
	}
	r.log.Error().Str("location", r.location).Str("error", errmsg.Normalize(value)).
		Msg("route error boundary caught")

	r.failed = true
	r.loading = false

	comp := r.opts.DefaultErrorComponent
	if r.route != nil && r.route.ErrorComponent != nil {
		comp = r.route.ErrorComponent
	}
	seq := r.seq
	props := ErrorProps{
		Err:    value,
		Router: r,
		Reset: func() tea.Cmd {
			return func() tea.Msg { return resetMsg{seq: seq} }
		},
	}

	var page Page
	if comp != nil {
		page, _ = build(func() Page { return comp(props) })
	}
	if page == nil {
		page = newTextPage("Something went wrong: " + errmsg.Normalize(value))
	}
	return r.mount(page)
}

func (r *Router) mountNotFound(rt *Route) tea.Cmd {
	r.log.Info().Str("location", r.location).Msg("no route matched")
	r.loading = false
	r.failed = false

	comp := r.opts.DefaultNotFoundComponent
	if rt != nil && rt.NotFoundComponent != nil {
		comp = rt.NotFoundComponent
	}
	var page Page
	if comp != nil {
		page, _ = build(func() Page { return comp(r) })
	}
	if page == nil {
		page = newTextPage("Page not found")
	}
	return r.mount(page)
}

func (r *Router) mount(page Page) tea.Cmd {
	r.page = page
	page.SetSize(r.outletSize())
	cmd, err := initPage(page)
	if err != nil && !r.failed {
		return r.fail(err)
	}
	r.sync()
	if r.restore {
		r.restore = false
		r.restoreScroll()
	}
	return cmd
}

func build(fn func() Page) (page Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			page, err = nil, &panicError{value: rec}
		}
	}()
	page = fn()
	if page == nil {
		return nil, errors.New("component returned no page")
	}
	return page, nil
}

func initPage(page Page) (cmd tea.Cmd, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cmd, err = nil, &panicError{value: rec}
		}
	}()
	return page.Init(), nil
}

// --- Update / View ---

// Update handles router messages and forwards everything else to the page.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NavigateMsg:
		return r.navigate(msg.To, msg.Replace)
	case BackMsg:
		return r.back()
	case InvalidateMsg:
		return r.invalidate()
	case PreloadMsg:
		return r.preload(msg.To)
	case resetMsg:
		if msg.seq != r.seq {
			return nil
		}
		return r.reset()
	case loadedMsg:
		return r.loaded(msg)
	case progressTickMsg:
		if msg.seq != r.seq || !r.loading {
			return nil
		}
		r.pct += (0.9 - r.pct) * 0.2
		seq := msg.seq
		return tea.Tick(progressInterval, func(time.Time) tea.Msg {
			return progressTickMsg{seq: seq}
		})
	case tea.KeyMsg:
		if r.scrollKey(msg.String()) {
			return nil
		}
	case tea.MouseMsg:
		var cmd tea.Cmd
		r.viewport, cmd = r.viewport.Update(msg)
		return cmd
	}
	return r.updatePage(msg)
}

func (r *Router) scrollKey(key string) bool {
	h := r.viewport.Height
	switch key {
	case "pgdown":
		r.viewport.SetYOffset(r.viewport.YOffset + h)
	case "pgup":
		r.viewport.SetYOffset(r.viewport.YOffset - h)
	case "ctrl+d":
		r.viewport.SetYOffset(r.viewport.YOffset + h/2)
	case "ctrl+u":
		r.viewport.SetYOffset(r.viewport.YOffset - h/2)
	default:
		return false
	}
	return true
}

func (r *Router) updatePage(msg tea.Msg) (cmd tea.Cmd) {
	if r.page == nil {
		return nil
	}
	failed := r.failed
	defer func() {
		if rec := recover(); rec != nil {
			if failed {
				r.page = newTextPage("Something went wrong: " + errmsg.Normalize(rec))
				r.sync()
				cmd = nil
				return
			}
			cmd = r.fail(&panicError{value: rec})
		}
	}()

	next, cmd := r.page.Update(msg)
	if next != nil {
		r.page = next
	}
	r.sync()
	return cmd
}

// sync copies the page view into the outlet.
func (r *Router) sync() {
	if r.page == nil {
		r.viewport.SetContent("")
		return
	}
	r.viewport.SetContent(r.page.View())
}

// View renders the progress line and the outlet.
func (r *Router) View() string {
	r.safeSync()

	bar := strings.Repeat(" ", r.width)
	if r.loading {
		t := r.opts.Theme.Theme()
		r.progress.FullColor = string(t.Primary)
		r.progress.EmptyColor = string(t.BgMuted)
		bar = r.progress.ViewAs(r.pct)
	}
	outlet := lipgloss.JoinVertical(lipgloss.Left, bar, r.viewport.View())
	if r.opts.Wrap != nil {
		return r.opts.Wrap(outlet, r.width, r.height)
	}
	return outlet
}

func (r *Router) safeSync() {
	defer func() {
		if rec := recover(); rec != nil {
			if r.failed {
				r.page = newTextPage("Something went wrong: " + errmsg.Normalize(rec))
			} else {
				_ = r.fail(&panicError{value: rec})
			}
			r.sync()
		}
	}()
	r.sync()
}

// Overlay returns modal content drawn by the page, or "".
func (r *Router) Overlay(width, height int) string {
	if o, ok := r.page.(Overlayer); ok {
		return o.Overlay(width, height)
	}
	return ""
}

// --- Scroll restoration ---

func (r *Router) saveScroll() {
	if !r.opts.ScrollRestoration || r.location == "" {
		return
	}
	if off := r.viewport.YOffset; off > 0 {
		r.scroll[r.location] = off
	} else {
		delete(r.scroll, r.location)
	}
}

func (r *Router) restoreScroll() {
	r.viewport.GotoTop()
	if !r.opts.ScrollRestoration {
		return
	}
	if off, ok := r.scroll[r.location]; ok {
		r.viewport.SetYOffset(off)
	}
}

// PersistScroll records the current offset and writes all offsets to the
// scroll store.
func (r *Router) PersistScroll() error {
	if !r.opts.ScrollRestoration || r.opts.Scroll == nil {
		return nil
	}
	r.saveScroll()
	if err := r.opts.Scroll.SaveScrollPositions(r.scroll); err != nil {
		return fmt.Errorf("save scroll positions: %w", err)
	}
	return nil
}

// panicError wraps a value recovered from a panicking route.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	if err, ok := e.value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.value)
}

func (e *panicError) Unwrap() error {
	err, _ := e.value.(error)
	return err
}
