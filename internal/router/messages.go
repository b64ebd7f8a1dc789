package router

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// NavigateMsg moves to a location. Replace swaps the top history entry
// instead of pushing.
type NavigateMsg struct {
	To      string
	Replace bool
}

// BackMsg pops one history entry.
type BackMsg struct{}

// InvalidateMsg re-runs the current route's loader.
type InvalidateMsg struct{}

// PreloadMsg warms the loader cache for a location.
type PreloadMsg struct{ To string }

// ChangedMsg is emitted after the router commits to a new location.
type ChangedMsg struct {
	From    string
	To      string
	History []string
}

// resetMsg clears the error boundary of navigation seq.
type resetMsg struct{ seq uint64 }

// loadedMsg carries a loader result.
type loadedMsg struct {
	seq      uint64
	location string
	data     any
	err      error
	preload  bool
	at       time.Time
}

// progressTickMsg advances the navigation progress bar.
type progressTickMsg struct{ seq uint64 }

// IsProgressTick reports whether msg drives the navigation progress bar.
func IsProgressTick(msg tea.Msg) bool {
	_, ok := msg.(progressTickMsg)
	return ok
}
