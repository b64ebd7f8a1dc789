package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/appshell/internal/ui/headerbar"
	"github.com/llehouerou/appshell/internal/ui/popup"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	// Can't render before we know terminal size
	if m.width == 0 || m.height == 0 {
		return ""
	}
	t := m.theme.Theme()
	s := t.S()

	header := headerbar.Render(t, headerbar.Bar{
		Title:    m.opts.Title,
		Tabs:     m.opts.Tabs,
		Location: m.router.Location(),
		Status:   m.status(),
	}, m.width)
	rule := s.Subtle.Render(strings.Repeat("─", m.width))

	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(t.FgMuted)
	m.help.Styles.ShortDesc = s.Subtle
	m.help.Styles.ShortSeparator = s.Subtle
	footer := m.help.View(m.keys)

	view := strings.Join([]string{header, rule, m.router.View(), footer}, "\n")

	if overlay := m.router.Overlay(m.width, m.height); overlay != "" {
		view = popup.Compose(view, overlay, m.width, m.height)
	}
	view = m.popups.RenderOverlay(view)
	view = m.toasts.Overlay(view, m.width, m.height)

	return enforceHeight(view, m.height)
}

// status is the right side of the header: a pending key sequence, or the
// theme mode.
func (m Model) status() string {
	if m.pendingG {
		return "g…"
	}
	mode := m.theme.Mode()
	if mode == styles.ModeSystem {
		return "system (" + string(m.theme.Theme().Mode) + ")"
	}
	return string(mode)
}

// Frame returns the router wrap that fills the outlet to its full height so
// the footer stays at the bottom of the terminal.
func Frame() func(outlet string, width, height int) string {
	return func(outlet string, width, height int) string {
		return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, outlet)
	}
}

// enforceHeight pads or truncates view to exactly targetHeight lines.
func enforceHeight(view string, targetHeight int) string {
	lines := strings.Split(view, "\n")
	switch {
	case len(lines) < targetHeight:
		lines = append(lines, make([]string, targetHeight-len(lines))...)
	case len(lines) > targetHeight:
		lines = lines[:targetHeight]
	}
	return strings.Join(lines, "\n")
}
