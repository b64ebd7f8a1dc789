// Package loadingswap swaps a control's content for a spinner while work is
// pending, keeping the control's footprint unchanged.
package loadingswap

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model owns a spinner that only ticks while started.
type Model struct {
	spinner spinner.Model
	active  bool
}

// New creates a stopped loading swap.
func New() Model {
	return Model{spinner: spinner.New(spinner.WithSpinner(spinner.Dot))}
}

// Start begins animating and returns the first tick.
func (m Model) Start() (Model, tea.Cmd) {
	if m.active {
		return m, nil
	}
	m.active = true
	return m, m.spinner.Tick
}

// Stop halts animation; the pending tick is dropped when it arrives.
func (m Model) Stop() Model {
	m.active = false
	return m
}

// Active reports whether the spinner is running.
func (m Model) Active() bool {
	return m.active
}

// Update advances the spinner on its own ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || tick.ID != m.spinner.ID() || !m.active {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View returns content, or while loading a spinner centered in the same width.
func (m Model) View(loading bool, content string) string {
	if !loading {
		return content
	}
	width := lipgloss.Width(content)
	frame := m.spinner.View()
	fw := lipgloss.Width(frame)
	if fw >= width {
		return frame
	}
	left := (width - fw) / 2
	return strings.Repeat(" ", left) + frame + strings.Repeat(" ", width-fw-left)
}
