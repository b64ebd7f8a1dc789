// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Shell lifecycle
	OpInitialize Op = "initialize application"
	OpMount      Op = "mount application"
	OpConfigLoad Op = "load configuration"

	// Settings
	OpThemeSave   Op = "save theme"
	OpSettingLoad Op = "load setting"

	// Navigation
	OpRouteLoad      Op = "load page"
	OpRoutePreload   Op = "preload page"
	OpNavigationSave Op = "save navigation state"

	// Actions
	OpActionRun     Op = "run action"
	OpClipboardCopy Op = "copy to clipboard"
	OpConnectivity  Op = "check connectivity"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
