package routes

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/ui/actionbutton"
)

// link is a focusable navigation target.
type link struct {
	Label string
	To    string
}

// controls is the focus ring of a page: its action buttons, then its links.
type controls struct {
	actions []actionbutton.Model
	links   []link
	focus   int
}

func newControls(actions []actionbutton.Model, links []link) controls {
	c := controls{actions: actions, links: links}
	c.applyFocus()
	return c
}

func (c *controls) count() int {
	return len(c.actions) + len(c.links)
}

func (c *controls) applyFocus() {
	for i := range c.actions {
		c.actions[i].SetFocused(i == c.focus)
	}
}

// focusedLink returns the link holding focus, if any.
func (c *controls) focusedLink() (link, bool) {
	i := c.focus - len(c.actions)
	if i < 0 || i >= len(c.links) {
		return link{}, false
	}
	return c.links[i], true
}

func (c *controls) linkFocused(i int) bool {
	return c.focus == len(c.actions)+i
}

// move shifts focus by delta, wrapping. Focusing a link preloads it.
func (c *controls) move(delta int, r router.Capability) tea.Cmd {
	n := c.count()
	if n == 0 {
		return nil
	}
	c.focus = ((c.focus+delta)%n + n) % n
	c.applyFocus()
	if l, ok := c.focusedLink(); ok && r != nil {
		return r.Preload(l.To)
	}
	return nil
}

// open returns the index of the action whose prompt is showing, or -1.
func (c *controls) open() int {
	for i := range c.actions {
		if c.actions[i].DialogOpen() {
			return i
		}
	}
	return -1
}

func (c *controls) capturing() bool {
	return c.open() >= 0
}

func (c *controls) overlay(width, height int) string {
	if i := c.open(); i >= 0 {
		return c.actions[i].Overlay(width, height)
	}
	return ""
}

func (c *controls) setSize(width, height int) {
	for i := range c.actions {
		c.actions[i].SetSize(width, height)
	}
}

func (c *controls) update(msg tea.Msg, r router.Capability) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		// prompt results, operation outcomes and spinner ticks are routed by id
		cmds := make([]tea.Cmd, 0, len(c.actions))
		for i := range c.actions {
			var cmd tea.Cmd
			c.actions[i], cmd = c.actions[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)
	}

	if i := c.open(); i >= 0 {
		var cmd tea.Cmd
		c.actions[i], cmd = c.actions[i].Update(key)
		return cmd
	}

	switch key.String() {
	case "tab", "j", "down":
		return c.move(1, r)
	case "shift+tab", "k", "up":
		return c.move(-1, r)
	case "enter", " ":
		if c.focus < len(c.actions) {
			var cmd tea.Cmd
			c.actions[c.focus], cmd = c.actions[c.focus].Update(key)
			return cmd
		}
		if l, ok := c.focusedLink(); ok && r != nil {
			return r.Navigate(l.To)
		}
	}
	return nil
}
