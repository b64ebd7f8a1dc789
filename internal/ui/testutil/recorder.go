package testutil

import tea "github.com/charmbracelet/bubbletea"

// recorder keeps the commands a driven component returned and provides the
// key shortcuts shared by Harness and PopupHarness.
type recorder struct {
	cmds []tea.Cmd
	send func(tea.Msg) tea.Cmd
}

func (r *recorder) keep(cmd tea.Cmd) tea.Cmd {
	if cmd != nil {
		r.cmds = append(r.cmds, cmd)
	}
	return cmd
}

// Commands returns the commands collected since creation or ClearCommands.
func (r *recorder) Commands() []tea.Cmd { return r.cmds }

// LastCommand returns the most recent command, or nil.
func (r *recorder) LastCommand() tea.Cmd {
	if len(r.cmds) == 0 {
		return nil
	}
	return r.cmds[len(r.cmds)-1]
}

func (r *recorder) ClearCommands() { r.cmds = nil }

// SendKey presses the key named name; see Key.
func (r *recorder) SendKey(name string) tea.Cmd { return r.send(Key(name)) }

func (r *recorder) SendEnter() tea.Cmd  { return r.SendKey("enter") }
func (r *recorder) SendEscape() tea.Cmd { return r.SendKey("esc") }
func (r *recorder) SendTab() tea.Cmd    { return r.SendKey("tab") }
func (r *recorder) SendUp() tea.Cmd     { return r.SendKey("up") }
func (r *recorder) SendDown() tea.Cmd   { return r.SendKey("down") }

// ExecuteCmd runs cmd and returns its message, or nil for a nil command.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
