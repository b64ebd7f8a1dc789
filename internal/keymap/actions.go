// Package keymap defines key bindings and action dispatch for the shell.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionToggleTheme Action = "toggle_theme"
	ActionBack        Action = "back"
	ActionReload      Action = "reload"
	ActionHelp        Action = "help"

	// Key sequence prefixes
	ActionGPrefix Action = "g_prefix"

	// G-sequence actions (g + key)
	ActionGoHome     Action = "go_home"
	ActionGoSettings Action = "go_settings"

	// Page actions
	ActionFocusNext    Action = "focus_next"
	ActionFocusPrev    Action = "focus_prev"
	ActionActivate     Action = "activate"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionHalfPageUp   Action = "half_page_up"
	ActionHalfPageDown Action = "half_page_down"

	// Prompt actions
	ActionSwitchButton Action = "switch_button"
	ActionConfirm      Action = "confirm"
	ActionCancel       Action = "cancel"

	// Error screen actions
	ActionTryAgain    Action = "try_again"
	ActionCopyDetails Action = "copy_details"
	ActionScroll      Action = "scroll_details"
)
