// Package actionbutton provides a button bound to an asynchronous operation,
// optionally gated behind a confirmation prompt.
//
// Each control owns two flags: whether its prompt is open and whether an
// invocation is in flight. At most one invocation runs per control; the
// prompt cannot be dismissed while one is pending. A failed result raises an
// error toast and leaves the prompt open; a successful one closes it.
package actionbutton

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/llehouerou/appshell/internal/errmsg"
	"github.com/llehouerou/appshell/internal/toast"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/action"
	"github.com/llehouerou/appshell/internal/ui/button"
	"github.com/llehouerou/appshell/internal/ui/confirm"
	"github.com/llehouerou/appshell/internal/ui/loadingswap"
	"github.com/llehouerou/appshell/internal/ui/popup"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

const (
	DefaultDescription = "This action cannot be undone."
	// FallbackMessage is toasted when a failed result carries no message.
	FallbackMessage = "Error"
)

// Result is what a bound operation reports. An empty Message means none.
type Result struct {
	Error   bool
	Message string
}

// Operation is the work bound to a control. A returned error or a panic is
// treated as a failed Result carrying the error's text.
type Operation func(ctx context.Context) (Result, error)

// Props configures a control.
type Props struct {
	Action         Operation
	RequireConfirm *bool  // nil means true
	Description    string // prompt text; empty means DefaultDescription
	Label          string
	Variant        button.Variant
	Disabled       bool
	OnClick        func() tea.Cmd // fired whenever the trigger is clicked
}

// Deps are the shared services a control uses.
type Deps struct {
	Theme   styles.Source
	Toaster toast.Toaster
	Logger  zerolog.Logger
	// Context is passed to operations. Defaults to context.Background.
	Context context.Context
}

// resultMsg carries an operation outcome back to the control that started it.
type resultMsg struct {
	id     string
	result Result
}

// Model is a confirmable action control.
type Model struct {
	ui.Base
	id         string
	props      Props
	deps       Deps
	prompt     confirm.Model
	swap       loadingswap.Model
	dialogOpen bool
	pending    bool
}

// New creates a control with its prompt closed and nothing pending.
func New(props Props, deps Deps) Model {
	if props.Description == "" {
		props.Description = DefaultDescription
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	return Model{
		id:     uuid.NewString(),
		props:  props,
		deps:   deps,
		prompt: confirm.New(deps.Theme),
		swap:   loadingswap.New(),
	}
}

// Bool returns a pointer to b, for Props.RequireConfirm.
func Bool(b bool) *bool { return &b }

// ID identifies this control instance.
func (m Model) ID() string { return m.id }

// DialogOpen reports whether the confirmation prompt is shown.
func (m Model) DialogOpen() bool { return m.dialogOpen }

// Pending reports whether an invocation is in flight.
func (m Model) Pending() bool { return m.pending }

// Label returns the trigger label.
func (m Model) Label() string { return m.props.Label }

func (m Model) requireConfirm() bool {
	return m.props.RequireConfirm == nil || *m.props.RequireConfirm
}

// triggerDisabled reports whether clicking the trigger does nothing.
func (m Model) triggerDisabled() bool {
	if m.props.Disabled {
		return true
	}
	if m.requireConfirm() {
		return m.dialogOpen
	}
	return m.pending
}

// SetSize sets the area the prompt is centered in.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.prompt.SetSize(width, height)
}

// Click activates the trigger.
func (m Model) Click() (Model, tea.Cmd) {
	if m.triggerDisabled() {
		return m, nil
	}

	var onClick tea.Cmd
	if m.props.OnClick != nil {
		onClick = m.props.OnClick()
	}

	if m.requireConfirm() {
		m.dialogOpen = true
		m.prompt.ShowWith("", m.props.Description, m.id, confirm.Options{
			Variant:  yesVariant(m.props.Variant),
			HoldOpen: true,
		}, m.Width(), m.Height())
		return m, onClick
	}

	var cmd tea.Cmd
	m, cmd = m.start()
	return m, tea.Batch(cmd, onClick)
}

// yesVariant styles the confirm action: destructive stays destructive,
// everything else uses the default look.
func yesVariant(v button.Variant) button.Variant {
	if v == button.Destructive {
		return button.Destructive
	}
	return button.Default
}

// start marks the control pending and invokes the operation.
func (m Model) start() (Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	m.pending = true
	m.deps.Logger.Debug().Str("action", m.props.Label).Msg("action invoked")

	var spin tea.Cmd
	if m.dialogOpen {
		spin = m.prompt.SetPending(true)
	} else {
		m.swap, spin = m.swap.Start()
	}
	return m, tea.Batch(spin, m.invoke())
}

func (m Model) invoke() tea.Cmd {
	id, ctx, op := m.id, m.deps.Context, m.props.Action
	return func() tea.Msg {
		return resultMsg{id: id, result: run(ctx, op)}
	}
}

// run executes op, converting errors and panics into failed results.
func run(ctx context.Context, op Operation) (res Result) {
	if op == nil {
		return Result{}
	}
	defer func() {
		if r := recover(); r != nil {
			res = Result{Error: true, Message: errmsg.Normalize(panicValue(r))}
		}
	}()

	res, err := op(ctx)
	if err != nil {
		return Result{Error: true, Message: errmsg.Normalize(err)}
	}
	return res
}

func panicValue(r any) any {
	if err, ok := r.(error); ok {
		return err
	}
	if s, ok := r.(string); ok {
		return s
	}
	return fmt.Sprint(r)
}

// Update handles keys while focused, prompt results, and operation outcomes.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.dialogOpen {
			_, cmd := m.prompt.Update(msg)
			return m, cmd
		}
		if m.IsFocused() && (msg.String() == "enter" || msg.String() == " ") {
			return m.Click()
		}
		return m, nil

	case action.Msg:
		a, _ := action.From(msg, confirm.Source)
		res, ok := a.(confirm.Result)
		if !ok || res.Context != m.id {
			return m, nil
		}
		return m.handlePrompt(res)

	case resultMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.resolve(msg.result)
	}

	// spinner ticks and anything else the prompt or swap may own
	var promptCmd, swapCmd tea.Cmd
	if m.dialogOpen {
		_, promptCmd = m.prompt.Update(msg)
	}
	m.swap, swapCmd = m.swap.Update(msg)
	return m, tea.Batch(promptCmd, swapCmd)
}

func (m Model) handlePrompt(res confirm.Result) (Model, tea.Cmd) {
	if res.Confirmed {
		return m.start()
	}
	if m.pending {
		return m, nil
	}
	m.dialogOpen = false
	m.prompt.Reset()
	return m, nil
}

func (m Model) resolve(res Result) (Model, tea.Cmd) {
	m.pending = false
	m.swap = m.swap.Stop()
	if m.dialogOpen {
		_ = m.prompt.SetPending(false)
	}

	if res.Error {
		message := res.Message
		if message == "" {
			message = FallbackMessage
		}
		m.deps.Logger.Warn().Msg(errmsg.FormatWith(errmsg.OpActionRun, m.props.Label, errors.New(message)))
		if m.deps.Toaster == nil {
			return m, nil
		}
		return m, m.deps.Toaster.Error(message)
	}

	m.deps.Logger.Debug().Str("action", m.props.Label).Msg("action succeeded")
	if m.dialogOpen {
		m.dialogOpen = false
		m.prompt.Reset()
	}
	return m, nil
}

// View renders the trigger.
func (m Model) View() string {
	direct := !m.requireConfirm()
	loading := direct && m.pending
	return button.Render(m.deps.Theme.Theme(), button.Props{
		Label:    m.swap.View(loading, m.props.Label),
		Variant:  m.props.Variant,
		Disabled: m.props.Disabled || loading,
		Focused:  m.IsFocused(),
		Loading:  loading,
	})
}

// Overlay renders the open prompt centered in width x height, or "".
func (m Model) Overlay(width, height int) string {
	if !m.dialogOpen {
		return ""
	}
	return popup.RenderBordered(m.deps.Theme.Theme(), m.prompt.View(), width, height, popup.SizeModal)
}
