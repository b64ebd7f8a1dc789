// Package helpbindings provides a scrollable popup listing key bindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/appshell/internal/keymap"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/popup"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{"global", "sequence", "page", "prompt", "error"}

var categoryLabels = map[string]string{
	"global":   "Global",
	"sequence": "Go to (g + key)",
	"page":     "Page",
	"prompt":   "Confirmation",
	"error":    "Error screen",
}

// AllContexts lists every category in display order.
func AllContexts() []string {
	return slices.Clone(categoryOrder)
}

// Model holds the state for the help popup.
type Model struct {
	ui.Base
	theme        styles.Source
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a help popup.
func New(theme styles.Source) Model {
	return Model{theme: theme}
}

// SetContexts sets which binding categories to display.
func (m *Model) SetContexts(contexts []string) {
	m.bindings = nil
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.scrollOffset = 0
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View implements popup.Popup. The border is added by the caller.
func (m *Model) View() string {
	if !m.Sized() {
		return ""
	}
	s := m.theme.Theme().S()

	lines := strings.Split(m.buildContent(), "\n")

	// widest line over all content keeps the popup width stable while scrolling
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}

	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))
	visible := lines[start:end]
	for i, line := range visible {
		if w := lipgloss.Width(line); w < maxWidth {
			visible[i] = line + strings.Repeat(" ", maxWidth-w)
		}
	}

	return s.Title.Render("Help") + "\n\n" +
		strings.Join(visible, "\n") + "\n\n" +
		s.Subtle.Render(m.footer())
}

func (m *Model) buildContent() string {
	t := m.theme.Theme()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	s := t.S()

	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, len(strings.Join(b.Keys, ", ")))
	}

	var sb strings.Builder
	current := ""
	for _, b := range m.bindings {
		if b.Context != current {
			if current != "" {
				sb.WriteString("\n")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			sb.WriteString(headerStyle.Render(label))
			sb.WriteString("\n")
			sb.WriteString(s.Subtle.Render(strings.Repeat("─", keyWidth+20)))
			sb.WriteString("\n")
			current = b.Context
		}

		keys := strings.Join(b.Keys, ", ")
		sb.WriteString(keyStyle.Render(keys + strings.Repeat(" ", keyWidth-len(keys))))
		sb.WriteString("  ")
		sb.WriteString(s.Base.Render(b.Description))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (m *Model) footer() string {
	if m.maxScroll() == 0 {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m *Model) visibleHeight() int {
	// title, footer, border and padding
	return max(m.Height()-10, 5)
}

func (m *Model) maxScroll() int {
	total := strings.Count(m.buildContent(), "\n") + 1
	return max(total-m.visibleHeight(), 0)
}
