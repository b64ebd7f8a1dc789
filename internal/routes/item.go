package routes

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/actionbutton"
	"github.com/llehouerou/appshell/internal/ui/button"
	"github.com/llehouerou/appshell/internal/ui/card"
	"github.com/llehouerou/appshell/internal/ui/render"
)

// Item is one catalog entry.
type Item struct {
	ID          string
	Name        string
	Description string
	Glow        card.Glow
	ReadOnly    bool
	Updated     time.Time
}

// Catalog is the in-memory item store behind /items/{id}.
type Catalog map[string]Item

// DefaultCatalog returns the built-in items.
func DefaultCatalog() Catalog {
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	return Catalog{
		"1": {
			ID: "1", Name: "Onboarding checklist", Glow: card.Green,
			Description: "Steps every new workspace member goes through.",
			Updated:     base,
		},
		"2": {
			ID: "2", Name: "Quarterly report", Glow: card.Blue,
			Description: "Revenue and usage figures for the last quarter.",
			Updated:     base.Add(36 * time.Hour),
		},
		"3": {
			ID: "3", Name: "Audit log", Glow: card.Purple, ReadOnly: true,
			Description: "Immutable record of administrative changes.",
			Updated:     base.Add(72 * time.Hour),
		},
	}
}

// IDs returns the item ids in display order.
func (c Catalog) IDs() []string {
	return slices.Sorted(maps.Keys(c))
}

// Lookup returns the item with id.
func (c Catalog) Lookup(id string) (Item, bool) {
	it, ok := c[id]
	return it, ok
}

func itemLoader(deps Deps) router.Loader {
	return func(ctx context.Context, m router.Match) (any, error) {
		if err := sleep(ctx, deps.Latency); err != nil {
			return nil, err
		}
		it, ok := deps.Catalog.Lookup(m.Params["id"])
		if !ok {
			return nil, router.ErrNotFound
		}
		return it, nil
	}
}

// itemPage shows one item with its actions.
type itemPage struct {
	ui.Base
	deps     Deps
	item     Item
	router   router.Capability
	controls controls
}

var (
	_ router.Overlayer = (*itemPage)(nil)
	_ router.Capturer  = (*itemPage)(nil)
)

func newItemPage(ctx router.Context, deps Deps) *itemPage {
	it, _ := ctx.Data.(Item)
	p := &itemPage{deps: deps, item: it, router: ctx.Router}

	ab := actionbutton.Deps{
		Theme:   deps.Theme,
		Toaster: deps.Toaster,
		Logger:  deps.Logger,
		Context: deps.Context,
	}
	actions := []actionbutton.Model{
		actionbutton.New(actionbutton.Props{
			Label:       "Delete item",
			Variant:     button.Destructive,
			Description: fmt.Sprintf("%q will be removed permanently.", it.Name),
			Action: func(ctx context.Context) (actionbutton.Result, error) {
				if err := sleep(ctx, deps.Latency); err != nil {
					return actionbutton.Result{}, err
				}
				if it.ReadOnly {
					return actionbutton.Result{Error: true, Message: fmt.Sprintf("%s is read-only", it.Name)}, nil
				}
				return actionbutton.Result{}, nil
			},
		}, ab),
	}
	p.controls = newControls(actions, []link{{Label: "Back to dashboard", To: PathHome}})
	return p
}

func (p *itemPage) Init() tea.Cmd { return nil }

func (p *itemPage) SetSize(width, height int) {
	p.Base.SetSize(width, height)
	p.controls.setSize(width, height)
}

func (p *itemPage) Update(msg tea.Msg) (router.Page, tea.Cmd) {
	return p, p.controls.update(msg, p.router)
}

func (p *itemPage) Capturing() bool { return p.controls.capturing() }

func (p *itemPage) Overlay(width, height int) string {
	return p.controls.overlay(width, height)
}

func (p *itemPage) View() string {
	t := p.deps.Theme.Theme()
	s := t.S()
	w := min(max(p.Width()-1, ui.MinCardWidth), ui.MaxPageWidth)
	inner := max(w-2-2*ui.CardPaddingX, 1)

	meta := "Updated " + humanize.RelTime(p.item.Updated, p.deps.Now(), "ago", "from now")
	if p.item.ReadOnly {
		meta += " · read-only"
	}

	back := "  Back to dashboard"
	if p.controls.linkFocused(0) {
		back = lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("› Back to dashboard")
	}

	return card.Render(t, card.Options{Title: p.item.Name, Glow: p.item.Glow, Focused: true, Width: w},
		s.Base.Render(render.Wrap(p.item.Description, inner)),
		s.Subtle.Render(meta),
		"",
		p.controls.actions[0].View(),
		"",
		back,
	)
}
