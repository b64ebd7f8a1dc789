package testutil

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Component is any value-receiver Bubble Tea component whose Update returns
// its own concrete type.
type Component[M any] interface {
	Update(msg tea.Msg) (M, tea.Cmd)
	View() string
}

// Harness drives a value-receiver component the way PopupHarness drives a
// popup: it threads the updated model through every call and records the
// commands it returned.
type Harness[M Component[M]] struct {
	recorder
	model M
}

// NewHarness wraps a component for testing.
func NewHarness[M Component[M]](m M) *Harness[M] {
	h := &Harness[M]{model: m}
	h.send = h.SendMsg
	return h
}

// Model returns the current component state.
func (h *Harness[M]) Model() M {
	return h.model
}

func (h *Harness[M]) View() string {
	return h.model.View()
}

// SendMsg sends any message to the component and returns the resulting command.
func (h *Harness[M]) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return h.keep(cmd)
}

// Deliver executes cmd and feeds every message it produces back into the
// component, returning the messages in delivery order. Batches are
// flattened; commands whose message matches skip are executed but not
// delivered, which keeps tick loops (spinners, timers) from sleeping.
func (h *Harness[M]) Deliver(cmd tea.Cmd, skip func(tea.Msg) bool) []tea.Msg {
	var delivered []tea.Msg
	for _, msg := range Drain(cmd) {
		if skip != nil && skip(msg) {
			continue
		}
		delivered = append(delivered, msg)
		h.SendMsg(msg)
	}
	return delivered
}

// AssertViewContains returns an error message if view doesn't contain substr.
func (h *Harness[M]) AssertViewContains(substr string) string {
	return AssertContains(h.View(), substr)
}

// AssertViewNotContains returns an error message if view contains substr.
func (h *Harness[M]) AssertViewNotContains(substr string) string {
	return AssertNotContains(h.View(), substr)
}

// Drain executes cmd and returns every message it yields, flattening nested
// tea.BatchMsg results. Only call it on commands that return immediately.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, Drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// Find returns the first message of type T in msgs.
func Find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Count returns how many messages in msgs have type T.
func Count[T any](msgs []tea.Msg) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			n++
		}
	}
	return n
}
