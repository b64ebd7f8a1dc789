// Package handler runs a key through an ordered list of dispatch stages.
package handler

import tea "github.com/charmbracelet/bubbletea"

// Result represents the outcome of a stage.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled is returned when a stage passes the key on.
var NotHandled = Result{}

// HandledNoCmd is a convenience for stages that consume the key silently.
var HandledNoCmd = Result{Handled: true}

// Handled creates a Result indicating the key was consumed with a command.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// Stage is one step of key dispatch, e.g. "popup" or "global".
type Stage struct {
	Name   string
	Handle func(msg tea.KeyMsg) Result
}

// Dispatch offers msg to each stage in order and stops at the first that
// handles it. It returns that stage's name, or "" when none did.
func Dispatch(msg tea.KeyMsg, stages ...Stage) (string, tea.Cmd) {
	for _, s := range stages {
		if r := s.Handle(msg); r.Handled {
			return s.Name, r.Cmd
		}
	}
	return "", nil
}
