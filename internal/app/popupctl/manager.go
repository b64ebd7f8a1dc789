// Package popupctl owns the application-level modal popups.
package popupctl

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/appshell/internal/ui/helpbindings"
	"github.com/llehouerou/appshell/internal/ui/popup"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

type entry struct {
	typ   Type
	popup popup.Popup
	size  popup.SizeConfig
}

// Manager keeps the open popups ordered by rank, lowest first.
type Manager struct {
	theme         styles.Source
	open          []entry
	width, height int
}

func New(theme styles.Source) *Manager {
	return &Manager{theme: theme}
}

// SetSize records the screen size and resizes every open popup.
func (p *Manager) SetSize(width, height int) {
	p.width, p.height = width, height
	for _, e := range p.open {
		e.popup.SetSize(p.contentSize(e.size))
	}
}

func (p *Manager) index(t Type) int {
	return slices.IndexFunc(p.open, func(e entry) bool { return e.typ == t })
}

func (p *Manager) IsVisible(t Type) bool {
	return p.index(t) >= 0
}

// ActivePopup returns the popup that receives keys.
func (p *Manager) ActivePopup() Type {
	if len(p.open) == 0 {
		return None
	}
	return p.open[len(p.open)-1].typ
}

// Show opens pop as t, replacing an open popup of the same type.
func (p *Manager) Show(t Type, pop popup.Popup, size popup.SizeConfig) tea.Cmd {
	p.Hide(t)
	pop.SetSize(p.contentSize(size))
	at := slices.IndexFunc(p.open, func(e entry) bool { return e.typ.rank() > t.rank() })
	if at < 0 {
		at = len(p.open)
	}
	p.open = slices.Insert(p.open, at, entry{typ: t, popup: pop, size: size})
	return pop.Init()
}

func (p *Manager) Hide(t Type) {
	if i := p.index(t); i >= 0 {
		p.open = slices.Delete(p.open, i, i+1)
	}
}

// Get returns the open popup of type t, or nil.
func (p *Manager) Get(t Type) popup.Popup {
	if i := p.index(t); i >= 0 {
		return p.open[i].popup
	}
	return nil
}

func (p *Manager) contentSize(size popup.SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return p.width * size.WidthPct / 100, p.height * size.HeightPct / 100
	}
	return p.width, p.height
}

// ShowHelp opens the key binding reference for contexts.
func (p *Manager) ShowHelp(contexts []string) tea.Cmd {
	help := helpbindings.New(p.theme)
	help.SetContexts(contexts)
	return p.Show(Help, &help, popup.SizeAuto)
}

// ShowError opens a dismissable error message above everything else.
func (p *Manager) ShowError(msg string) {
	p.Show(Error, &errorPopup{theme: p.theme, message: msg}, popup.SizeModal)
}

// ErrorMsg returns the open error message, or "".
func (p *Manager) ErrorMsg() string {
	if e, ok := p.Get(Error).(*errorPopup); ok {
		return e.message
	}
	return ""
}

// HandleKey routes a key to the active popup and reports whether one
// consumed it.
func (p *Manager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if len(p.open) == 0 {
		return false, nil
	}
	top := len(p.open) - 1
	updated, cmd := p.open[top].popup.Update(msg)
	if e, ok := updated.(*errorPopup); ok && e.dismissed {
		p.open = p.open[:top]
		return true, cmd
	}
	p.open[top].popup = updated
	return true, cmd
}

// RenderOverlay draws the open popups over base, highest rank last.
func (p *Manager) RenderOverlay(base string) string {
	t := p.theme.Theme()
	for _, e := range p.open {
		rendered := popup.RenderBordered(t, e.popup.View(), p.width, p.height, e.size)
		base = popup.Compose(base, rendered, p.width, p.height)
	}
	return base
}
