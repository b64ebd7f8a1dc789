package router

import (
	"context"
	"errors"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// ErrNotFound can be returned by a loader to render the not-found screen.
var ErrNotFound = errors.New("not found")

// Capability is the part of the router screens are given.
type Capability interface {
	// Invalidate re-runs the current route's loader.
	Invalidate() tea.Cmd
	// Back pops one history entry.
	Back() tea.Cmd
	// Navigate pushes a new location.
	Navigate(to string) tea.Cmd
	// Preload warms the loader cache for a location the user is about to visit.
	Preload(to string) tea.Cmd
	// Location returns the current location.
	Location() string
}

// Page is a mounted route screen.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Page, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Overlayer is implemented by pages that draw modal content over the shell.
type Overlayer interface {
	Overlay(width, height int) string
}

// Capturer is implemented by pages that can hold keyboard focus, such as
// while a prompt is open. Global shortcuts are suppressed while capturing.
type Capturer interface {
	Capturing() bool
}

// Match describes a resolved location.
type Match struct {
	Pattern  string // route template, e.g. /items/{id}
	Location string
	Params   map[string]string
	Query    url.Values
}

// Loader fetches a route's data before it renders.
type Loader func(ctx context.Context, m Match) (any, error)

// Context is handed to a route component.
type Context struct {
	Match
	Data   any
	Router Capability
	Logger zerolog.Logger
}

// Component builds a route's page from its loaded data.
type Component func(ctx Context) Page

// ErrorProps is handed to an error component.
type ErrorProps struct {
	Err    any
	Reset  func() tea.Cmd
	Router Capability
}

// ErrorComponent builds the page shown when a route fails.
type ErrorComponent func(p ErrorProps) Page

// NotFoundComponent builds the page shown for an unmatched location.
type NotFoundComponent func(r Capability) Page

// Route binds a path template to a page.
type Route struct {
	Path              string // gorilla/mux template
	Loader            Loader
	Component         Component
	ErrorComponent    ErrorComponent    // overrides Options.DefaultErrorComponent
	NotFoundComponent NotFoundComponent // used when Loader returns ErrNotFound
}
