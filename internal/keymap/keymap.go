package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "sequence", "page", "prompt", "error"
}

// All contains all key bindings, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionToggleTheme, []string{"t"}, "Toggle theme", "global"},
	{ActionBack, []string{"backspace", "alt+left"}, "Go back", "global"},
	{ActionReload, []string{"ctrl+r"}, "Reload page", "global"},
	{ActionGPrefix, []string{"g"}, "Go to…", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// g + key
	{ActionGoHome, []string{"g h"}, "Home", "sequence"},
	{ActionGoSettings, []string{"g s"}, "Settings", "sequence"},

	// Page
	{ActionFocusNext, []string{"tab", "j", "down"}, "Next control", "page"},
	{ActionFocusPrev, []string{"shift+tab", "k", "up"}, "Previous control", "page"},
	{ActionActivate, []string{"enter", "space"}, "Activate", "page"},
	{ActionPageDown, []string{"pgdown"}, "Scroll down", "page"},
	{ActionPageUp, []string{"pgup"}, "Scroll up", "page"},
	{ActionHalfPageDown, []string{"ctrl+d"}, "Half page down", "page"},
	{ActionHalfPageUp, []string{"ctrl+u"}, "Half page up", "page"},

	// Confirmation prompt
	{ActionSwitchButton, []string{"tab", "left", "right"}, "Switch button", "prompt"},
	{ActionConfirm, []string{"y"}, "Yes", "prompt"},
	{ActionCancel, []string{"esc", "n"}, "Cancel", "prompt"},

	// Error screen
	{ActionTryAgain, []string{"r"}, "Try again", "error"},
	{ActionCopyDetails, []string{"c"}, "Copy error details", "error"},
	{ActionScroll, []string{"j", "k"}, "Scroll details", "error"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Help adapts bindings to bubbles/help for the footer.
type Help struct {
	Short []Binding
	Full  [][]Binding
}

// FooterHelp is shown at the bottom of the shell.
func FooterHelp() Help {
	return Help{
		Short: []Binding{
			{ActionActivate, []string{"enter"}, "activate", "page"},
			{ActionFocusNext, []string{"tab"}, "next", "page"},
			{ActionBack, []string{"backspace"}, "back", "global"},
			{ActionToggleTheme, []string{"t"}, "theme", "global"},
			{ActionHelp, []string{"?"}, "help", "global"},
			{ActionQuit, []string{"q"}, "quit", "global"},
		},
		Full: [][]Binding{ByContext("global"), ByContext("page")},
	}
}

// ShortHelp implements help.KeyMap.
func (h Help) ShortHelp() []key.Binding {
	return toKeys(h.Short)
}

// FullHelp implements help.KeyMap.
func (h Help) FullHelp() [][]key.Binding {
	out := make([][]key.Binding, 0, len(h.Full))
	for _, group := range h.Full {
		out = append(out, toKeys(group))
	}
	return out
}

func toKeys(bindings []Binding) []key.Binding {
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(b.Keys[0], b.Description),
		))
	}
	return out
}
