// Package toast implements the application's transient notification host.
//
// Consumers hold a Toaster and return its commands from Update; the host
// receives the resulting ShowMsg, stacks the toast, and schedules its
// dismissal.
package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/llehouerou/appshell/internal/ui/popup"
	"github.com/llehouerou/appshell/internal/ui/render"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// collapsedLimit is how many toasts show when the stack is not expanded.
const collapsedLimit = 3

// maxToastWidth bounds a toast box, borders included.
const maxToastWidth = 56

// Kind classifies a toast for coloring.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Position is where the stack is anchored.
type Position string

const (
	TopCenter    Position = "top-center"
	BottomCenter Position = "bottom-center"
)

// Toast is one notification.
type Toast struct {
	ID      string
	Kind    Kind
	Message string
	Created time.Time
}

// ShowMsg asks the host to display a toast.
type ShowMsg struct{ Toast Toast }

// DismissMsg removes the toast with ID.
type DismissMsg struct{ ID string }

// Toaster is the capability components use to raise toasts.
type Toaster interface {
	Error(message string) tea.Cmd
	Success(message string) tea.Cmd
	Info(message string) tea.Cmd
}

// Options configures the host.
type Options struct {
	Duration   time.Duration
	Position   Position
	Expand     bool
	RichColors bool
}

// Host owns the toast stack. Update and View must be called from the
// program's event loop; Error/Success/Info may be called from anywhere.
type Host struct {
	opts   Options
	theme  styles.Source
	log    zerolog.Logger
	now    func() time.Time
	toasts []Toast
}

var _ Toaster = (*Host)(nil)

// New creates a toast host.
func New(theme styles.Source, opts Options, log zerolog.Logger) *Host {
	h := &Host{theme: theme, log: log, now: time.Now}
	h.Configure(opts)
	return h
}

// Configure replaces the host options. Toasts already shown keep their
// scheduled dismissal.
func (h *Host) Configure(opts Options) {
	if opts.Duration <= 0 {
		opts.Duration = 4 * time.Second
	}
	if opts.Position != BottomCenter {
		opts.Position = TopCenter
	}
	h.opts = opts
}

// Options returns the active options.
func (h *Host) Options() Options {
	return h.opts
}

func (h *Host) Error(message string) tea.Cmd   { return h.show(KindError, message) }
func (h *Host) Success(message string) tea.Cmd { return h.show(KindSuccess, message) }
func (h *Host) Info(message string) tea.Cmd    { return h.show(KindInfo, message) }

func (h *Host) show(kind Kind, message string) tea.Cmd {
	t := Toast{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		Created: h.now(),
	}
	return func() tea.Msg { return ShowMsg{Toast: t} }
}

// Update handles host messages. The returned command schedules dismissal.
func (h *Host) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ShowMsg:
		h.toasts = append(h.toasts, msg.Toast)
		h.log.Debug().
			Str("kind", msg.Toast.Kind.String()).
			Str("message", msg.Toast.Message).
			Msg("toast shown")
		id := msg.Toast.ID
		return tea.Tick(h.opts.Duration, func(time.Time) tea.Msg {
			return DismissMsg{ID: id}
		})
	case DismissMsg:
		h.dismiss(msg.ID)
	}
	return nil
}

func (h *Host) dismiss(id string) {
	for i, t := range h.toasts {
		if t.ID == id {
			h.toasts = append(h.toasts[:i], h.toasts[i+1:]...)
			return
		}
	}
}

// Toasts returns the current stack, oldest first.
func (h *Host) Toasts() []Toast {
	out := make([]Toast, len(h.toasts))
	copy(out, h.toasts)
	return out
}

// visible returns the toasts to draw, newest first.
func (h *Host) visible() []Toast {
	n := len(h.toasts)
	start := 0
	if !h.opts.Expand && n > collapsedLimit {
		start = n - collapsedLimit
	}
	out := make([]Toast, 0, n-start)
	for i := n - 1; i >= start; i-- {
		out = append(out, h.toasts[i])
	}
	return out
}

// View renders the visible stack, newest on the edge nearest the anchor.
func (h *Host) View(width int) string {
	toasts := h.visible()
	if len(toasts) == 0 {
		return ""
	}
	if h.opts.Position == BottomCenter {
		for i, j := 0, len(toasts)-1; i < j; i, j = i+1, j-1 {
			toasts[i], toasts[j] = toasts[j], toasts[i]
		}
	}

	boxWidth := min(maxToastWidth, max(width-4, 12))
	boxes := make([]string, 0, len(toasts))
	for _, t := range toasts {
		boxes = append(boxes, h.renderToast(t, boxWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Center, boxes...)
}

func (h *Host) renderToast(t Toast, width int) string {
	th := h.theme.Theme()

	accent := th.Border
	fg := th.FgBase
	if h.opts.RichColors {
		switch t.Kind {
		case KindError:
			accent, fg = th.Error, th.Error
		case KindSuccess:
			accent, fg = th.Success, th.Success
		default:
			accent = th.Info
		}
	}

	inner := width - 4 // border + padding
	icon := iconFor(t.Kind)
	message := render.Truncate(t.Message, inner-2)
	age := th.S().Subtle.Render(humanize.RelTime(t.Created, h.now(), "ago", "from now"))

	line := lipgloss.NewStyle().Foreground(fg).Render(icon + " " + message)
	body := render.Row(line, age, inner)
	if lipgloss.Width(body) > inner {
		body = line
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width - 2).
		Render(body)
}

func iconFor(k Kind) string {
	switch k {
	case KindError:
		return "✕"
	case KindSuccess:
		return "✓"
	default:
		return "•"
	}
}

// Overlay draws the stack over base at the configured edge.
func (h *Host) Overlay(base string, width, height int) string {
	stack := h.View(width)
	if stack == "" {
		return base
	}

	row := 1
	if h.opts.Position == BottomCenter {
		row = max(height-strings.Count(stack, "\n")-2, 0)
	}
	return popup.Compose(base, popup.Place(stack, width, row), width, height)
}
