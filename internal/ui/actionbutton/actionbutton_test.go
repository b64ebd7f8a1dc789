package actionbutton

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/appshell/internal/toast"
	"github.com/llehouerou/appshell/internal/ui/action"
	"github.com/llehouerou/appshell/internal/ui/button"
	"github.com/llehouerou/appshell/internal/ui/confirm"
	"github.com/llehouerou/appshell/internal/ui/styles"
	"github.com/llehouerou/appshell/internal/ui/testutil"
)

var testTheme = styles.Static(styles.Dark())

type counter struct {
	calls  int
	result Result
	err    error
	panic  any
}

func (c *counter) op(context.Context) (Result, error) {
	c.calls++
	if c.panic != nil {
		panic(c.panic)
	}
	return c.result, c.err
}

func newControl(props Props) (*testutil.Harness[Model], *toast.Host) {
	host := toast.New(testTheme, toast.Options{}, zerolog.Nop())
	m := New(props, Deps{Theme: testTheme, Toaster: host, Logger: zerolog.Nop()})
	m.SetSize(80, 24)
	m.SetFocused(true)
	return testutil.NewHarness(m), host
}

// pump delivers cmd and every follow-up message until the queue is empty.
// Spinner ticks and toasts are recorded but not fed back.
func pump(h *testutil.Harness[Model], cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := testutil.Drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)
		switch msg.(type) {
		case spinner.TickMsg, toast.ShowMsg:
			continue
		}
		queue = append(queue, testutil.Drain(h.SendMsg(msg))...)
	}
	return seen
}

func toasts(msgs []tea.Msg) []toast.Toast {
	var out []toast.Toast
	for _, m := range msgs {
		if s, ok := m.(toast.ShowMsg); ok {
			out = append(out, s.Toast)
		}
	}
	return out
}

func TestConfirm_ClickOpensPromptWithoutInvoking(t *testing.T) {
	c := &counter{}
	h, _ := newControl(Props{Label: "Delete", Action: c.op, Variant: button.Destructive})

	msgs := pump(h, h.SendEnter())

	assert.Empty(t, msgs)
	assert.True(t, h.Model().DialogOpen())
	assert.False(t, h.Model().Pending())
	assert.Equal(t, 0, c.calls)

	overlay := h.Model().Overlay(80, 24)
	assert.Empty(t, testutil.AssertContains(overlay, confirm.DefaultTitle))
	assert.Empty(t, testutil.AssertContains(overlay, DefaultDescription))
}

func TestConfirm_CustomDescription(t *testing.T) {
	h, _ := newControl(Props{Label: "Wipe", Description: "All rows go away."})
	h.SendEnter()

	assert.Empty(t, testutil.AssertContains(h.Model().Overlay(80, 24), "All rows go away."))
}

func TestConfirm_YesSuccessClosesPrompt(t *testing.T) {
	c := &counter{result: Result{Error: false}}
	h, _ := newControl(Props{Label: "Delete", Action: c.op})
	h.SendEnter()

	msgs := pump(h, h.SendKey("y"))

	assert.Equal(t, 1, c.calls)
	assert.Empty(t, toasts(msgs))
	assert.False(t, h.Model().DialogOpen())
	assert.False(t, h.Model().Pending())
	assert.Empty(t, h.Model().Overlay(80, 24))
}

func TestConfirm_YesErrorToastsAndStaysOpen(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"with message", Result{Error: true, Message: "Quota exceeded"}, "Quota exceeded"},
		{"without message", Result{Error: true}, FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &counter{result: tt.result}
			h, _ := newControl(Props{Label: "Delete", Action: c.op})
			h.SendEnter()

			msgs := pump(h, h.SendKey("y"))

			got := toasts(msgs)
			require.Len(t, got, 1)
			assert.Equal(t, toast.KindError, got[0].Kind)
			assert.Equal(t, tt.want, got[0].Message)
			assert.True(t, h.Model().DialogOpen())
			assert.False(t, h.Model().Pending())
		})
	}
}

func TestConfirm_RetryAfterFailure(t *testing.T) {
	c := &counter{result: Result{Error: true, Message: "nope"}}
	h, _ := newControl(Props{Label: "Delete", Action: c.op})
	h.SendEnter()
	pump(h, h.SendKey("y"))
	require.True(t, h.Model().DialogOpen())

	c.result = Result{}
	msgs := pump(h, h.SendKey("y"))

	assert.Equal(t, 2, c.calls)
	assert.Empty(t, toasts(msgs))
	assert.False(t, h.Model().DialogOpen())
}

func TestConfirm_SecondYesWhilePendingIgnored(t *testing.T) {
	c := &counter{}
	h, _ := newControl(Props{Label: "Delete", Action: c.op})
	h.SendEnter()

	// deliver the confirm result but hold the invocation
	var invoke tea.Cmd
	for _, msg := range testutil.Drain(h.SendKey("y")) {
		invoke = h.SendMsg(msg)
	}
	require.True(t, h.Model().Pending())

	assert.Nil(t, h.SendKey("y"), "prompt is pending")
	again := h.SendMsg(confirm.ActionMsg(confirm.Result{Confirmed: true, Context: h.Model().ID()}))
	assert.Empty(t, testutil.Drain(again))

	pump(h, invoke)
	assert.Equal(t, 1, c.calls)
}

func TestConfirm_CancelWhilePendingIgnored(t *testing.T) {
	c := &counter{}
	h, _ := newControl(Props{Label: "Delete", Action: c.op})
	h.SendEnter()
	var invoke tea.Cmd
	for _, msg := range testutil.Drain(h.SendKey("y")) {
		invoke = h.SendMsg(msg)
	}

	assert.Nil(t, h.SendEscape())
	h.SendMsg(confirm.ActionMsg(confirm.Result{Confirmed: false, Context: h.Model().ID()}))
	assert.True(t, h.Model().DialogOpen())

	pump(h, invoke)
	assert.False(t, h.Model().DialogOpen())
}

func TestConfirm_EscRightAfterYesIsIgnored(t *testing.T) {
	c := &counter{result: Result{Error: true, Message: "Server busy"}}
	h, _ := newControl(Props{Label: "Delete", Action: c.op})
	h.SendEnter()

	// both keys land before the prompt's results reach the control
	yes := h.SendKey("y")
	assert.Nil(t, h.SendEscape(), "prompt is pending once Yes is pressed")

	got := toasts(pump(h, yes))
	require.Len(t, got, 1)
	assert.Equal(t, "Server busy", got[0].Message)
	assert.Equal(t, 1, c.calls)
	assert.True(t, h.Model().DialogOpen())
	assert.False(t, h.Model().Pending())

	// the prompt is still usable: its text renders and esc closes it
	assert.Empty(t, testutil.AssertContains(h.Model().Overlay(80, 24), DefaultDescription))
	pump(h, h.SendEscape())
	assert.False(t, h.Model().DialogOpen())
}

func TestConfirm_FailureIsLoggedWithLabel(t *testing.T) {
	var buf bytes.Buffer
	host := toast.New(testTheme, toast.Options{}, zerolog.Nop())
	m := New(Props{
		Label:          "Delete",
		RequireConfirm: Bool(false),
		Action:         (&counter{result: Result{Error: true, Message: "Quota exceeded"}}).op,
	}, Deps{Theme: testTheme, Toaster: host, Logger: zerolog.New(&buf)})
	m.SetFocused(true)
	h := testutil.NewHarness(m)

	pump(h, h.SendEnter())

	assert.Contains(t, buf.String(), "Failed to run action 'Delete': Quota exceeded")
}

func TestConfirm_CancelClosesWithoutInvoking(t *testing.T) {
	c := &counter{}
	h, _ := newControl(Props{Label: "Delete", Action: c.op})
	h.SendEnter()

	pump(h, h.SendEscape())

	assert.False(t, h.Model().DialogOpen())
	assert.Equal(t, 0, c.calls)
}

func TestConfirm_ReturnedErrorAndPanicAreCoerced(t *testing.T) {
	tests := []struct {
		name string
		c    *counter
		want string
	}{
		{"error", &counter{err: errors.New("connection refused")}, "connection refused"},
		{"panic error", &counter{panic: errors.New("boom")}, "boom"},
		{"panic string", &counter{panic: "kaboom"}, "kaboom"},
		{"panic value", &counter{panic: 42}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newControl(Props{Label: "Delete", Action: tt.c.op})
			h.SendEnter()

			got := toasts(pump(h, h.SendKey("y")))

			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Message)
			assert.True(t, h.Model().DialogOpen())
			assert.False(t, h.Model().Pending())
		})
	}
}

func TestConfirm_OnClickFiresOnTriggerClick(t *testing.T) {
	clicks := 0
	c := &counter{}
	h, _ := newControl(Props{
		Label:  "Delete",
		Action: c.op,
		OnClick: func() tea.Cmd {
			clicks++
			return nil
		},
	})

	h.SendEnter()

	assert.Equal(t, 1, clicks)
	assert.Equal(t, 0, c.calls)
}

func TestConfirm_YesVariantFollowsTrigger(t *testing.T) {
	assert.Equal(t, button.Destructive, yesVariant(button.Destructive))
	assert.Equal(t, button.Default, yesVariant(button.Outline))
	assert.Equal(t, button.Default, yesVariant(""))
}

func TestDirect_ClickInvokesAndFiresOnClick(t *testing.T) {
	clicks := 0
	c := &counter{}
	h, _ := newControl(Props{
		Label:          "Refresh",
		Action:         c.op,
		RequireConfirm: Bool(false),
		OnClick: func() tea.Cmd {
			clicks++
			return nil
		},
	})

	cmd := h.SendEnter()
	assert.True(t, h.Model().Pending())
	assert.False(t, h.Model().DialogOpen())

	msgs := pump(h, cmd)

	assert.Equal(t, 1, clicks)
	assert.Equal(t, 1, c.calls)
	assert.Empty(t, toasts(msgs))
	assert.False(t, h.Model().Pending())
}

func TestDirect_ReclickWhilePendingIgnored(t *testing.T) {
	c := &counter{}
	h, _ := newControl(Props{Label: "Refresh", Action: c.op, RequireConfirm: Bool(false)})

	first := h.SendEnter()
	assert.Nil(t, h.SendEnter())

	pump(h, first)
	assert.Equal(t, 1, c.calls)
}

func TestDirect_ErrorToasts(t *testing.T) {
	c := &counter{result: Result{Error: true}}
	h, _ := newControl(Props{Label: "Refresh", Action: c.op, RequireConfirm: Bool(false)})

	got := toasts(pump(h, h.SendEnter()))

	require.Len(t, got, 1)
	assert.Equal(t, FallbackMessage, got[0].Message)
	assert.False(t, h.Model().DialogOpen())
}

func TestDisabled_ClickIsNoop(t *testing.T) {
	for _, rc := range []bool{true, false} {
		c := &counter{}
		clicks := 0
		h, _ := newControl(Props{
			Label:          "Go",
			Action:         c.op,
			Disabled:       true,
			RequireConfirm: Bool(rc),
			OnClick:        func() tea.Cmd { clicks++; return nil },
		})

		assert.Nil(t, h.SendEnter())
		assert.False(t, h.Model().DialogOpen())
		assert.False(t, h.Model().Pending())
		assert.Equal(t, 0, clicks)
		assert.Equal(t, 0, c.calls)
	}
}

func TestNilActionSucceeds(t *testing.T) {
	h, _ := newControl(Props{Label: "Noop"})
	h.SendEnter()

	msgs := pump(h, h.SendKey("y"))

	assert.Empty(t, toasts(msgs))
	assert.False(t, h.Model().DialogOpen())
}

func TestResultsRoutedByInstance(t *testing.T) {
	host := toast.New(testTheme, toast.Options{}, zerolog.Nop())
	deps := Deps{Theme: testTheme, Toaster: host, Logger: zerolog.Nop()}
	a := New(Props{Label: "A", RequireConfirm: Bool(false)}, deps)
	b := New(Props{Label: "B", RequireConfirm: Bool(false)}, deps)
	require.NotEqual(t, a.ID(), b.ID())

	a, cmd := a.Click()
	require.True(t, a.Pending())

	var result resultMsg
	for _, msg := range testutil.Drain(cmd) {
		if r, ok := msg.(resultMsg); ok {
			result = r
		}
	}

	b, _ = b.Update(result)
	assert.False(t, b.Pending())
	a, _ = a.Update(result)
	assert.False(t, a.Pending())

	// confirm results for another instance are ignored too
	c := New(Props{Label: "C"}, deps)
	c, _ = c.Click()
	c, _ = c.Update(action.Msg{Source: confirm.Source, Action: confirm.Result{Context: a.ID()}})
	assert.True(t, c.DialogOpen())
}

func TestNeverResolvingLeavesOtherControlsUsable(t *testing.T) {
	stuck, _ := newControl(Props{Label: "Sync", RequireConfirm: Bool(false)})
	other := &counter{result: Result{Error: true, Message: "Offline"}}
	sibling, _ := newControl(Props{Label: "Ping", Action: other.op, RequireConfirm: Bool(false)})

	// the stuck control's operation is started but its outcome never arrives
	_ = stuck.SendEnter()
	require.True(t, stuck.Model().Pending())

	assert.Nil(t, stuck.SendEnter(), "trigger stays disabled")
	_, cmd := stuck.Model().Click()
	assert.Nil(t, cmd)
	assert.Empty(t, stuck.AssertViewNotContains("Sync"), "label stays swapped for the spinner")

	got := toasts(pump(sibling, sibling.SendEnter()))
	require.Len(t, got, 1)
	assert.Equal(t, "Offline", got[0].Message)
	assert.False(t, sibling.Model().Pending())

	assert.True(t, stuck.Model().Pending())
	assert.False(t, stuck.Model().DialogOpen())
}

func TestUnfocusedIgnoresEnter(t *testing.T) {
	h, _ := newControl(Props{Label: "Go"})
	m := h.Model()
	m.SetFocused(false)
	h = testutil.NewHarness(m)

	h.SendEnter()
	assert.False(t, h.Model().DialogOpen())
}

func TestView(t *testing.T) {
	h, _ := newControl(Props{Label: "Refresh", RequireConfirm: Bool(false)})
	assert.Empty(t, h.AssertViewContains("Refresh"))

	h.SendEnter()
	assert.Empty(t, h.AssertViewNotContains("Refresh"), "label is swapped for the spinner")
}

func TestRunOperationUsesDepsContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	var seen any
	m := New(Props{
		RequireConfirm: Bool(false),
		Action: func(ctx context.Context) (Result, error) {
			seen = ctx.Value(key{})
			return Result{}, nil
		},
	}, Deps{Theme: testTheme, Logger: zerolog.Nop(), Context: ctx})

	_, cmd := m.Click()
	testutil.Drain(cmd)

	assert.Equal(t, "v", seen)
}
