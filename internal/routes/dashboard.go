package routes

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/appshell/internal/errmsg"
	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/actionbutton"
	"github.com/llehouerou/appshell/internal/ui/button"
	"github.com/llehouerou/appshell/internal/ui/card"
	"github.com/llehouerou/appshell/internal/ui/render"
)

const (
	actionPing   = 0
	actionRotate = 1
	actionDelete = 2
)

// dashboard is the home page: a grid of cards with actions and links.
type dashboard struct {
	ui.Base
	deps     Deps
	router   router.Capability
	controls controls
	lastPing time.Time
}

var (
	_ router.Page      = (*dashboard)(nil)
	_ router.Overlayer = (*dashboard)(nil)
	_ router.Capturer  = (*dashboard)(nil)
)

func newDashboard(ctx router.Context, deps Deps) *dashboard {
	p := &dashboard{deps: deps, router: ctx.Router}
	ab := actionbutton.Deps{
		Theme:   deps.Theme,
		Toaster: deps.Toaster,
		Logger:  deps.Logger,
		Context: deps.Context,
	}

	actions := []actionbutton.Model{
		actionPing: actionbutton.New(actionbutton.Props{
			Label:          "Check connectivity",
			Variant:        button.Secondary,
			RequireConfirm: actionbutton.Bool(false),
			Action:         p.ping,
			OnClick: func() tea.Cmd {
				p.lastPing = deps.Now()
				return nil
			},
		}, ab),
		actionRotate: actionbutton.New(actionbutton.Props{
			Label:       "Rotate API key",
			Description: "The current key stops working immediately.",
			Action: func(ctx context.Context) (actionbutton.Result, error) {
				if err := sleep(ctx, deps.Latency); err != nil {
					return actionbutton.Result{}, err
				}
				return actionbutton.Result{}, nil
			},
		}, ab),
		actionDelete: actionbutton.New(actionbutton.Props{
			Label:   "Delete workspace",
			Variant: button.Destructive,
			Action: func(ctx context.Context) (actionbutton.Result, error) {
				if err := sleep(ctx, deps.Latency); err != nil {
					return actionbutton.Result{}, err
				}
				return actionbutton.Result{Error: true, Message: "Workspace is locked by another session"}, nil
			},
		}, ab),
	}

	var links []link
	for _, id := range deps.Catalog.IDs() {
		item, _ := deps.Catalog.Lookup(id)
		links = append(links, link{Label: item.Name, To: ItemPath(id)})
	}
	links = append(links,
		link{Label: "Missing item", To: ItemPath("missing")},
		link{Label: "Broken report", To: PathBroken},
		link{Label: "Crashing page", To: PathCrash},
		link{Label: "Nowhere", To: "/nowhere"},
		link{Label: "Settings", To: PathSettings},
	)

	p.controls = newControls(actions, links)
	return p
}

// ping probes the configured URL.
func (p *dashboard) ping(ctx context.Context) (actionbutton.Result, error) {
	url := p.deps.PingURL
	if url == "" {
		return actionbutton.Result{Error: true, Message: "No ping URL configured (actions.ping_url)"}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return actionbutton.Result{}, err
	}
	resp, err := p.deps.HTTP.Do(req)
	if err != nil {
		return actionbutton.Result{Error: true, Message: errmsg.Format(errmsg.OpConnectivity, err)}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return actionbutton.Result{Error: true, Message: fmt.Sprintf("%s responded %s", url, resp.Status)}, nil
	}
	return actionbutton.Result{}, nil
}

func (p *dashboard) Init() tea.Cmd { return nil }

func (p *dashboard) SetSize(width, height int) {
	p.Base.SetSize(width, height)
	p.controls.setSize(width, height)
}

func (p *dashboard) Update(msg tea.Msg) (router.Page, tea.Cmd) {
	return p, p.controls.update(msg, p.router)
}

func (p *dashboard) Capturing() bool { return p.controls.capturing() }

func (p *dashboard) Overlay(width, height int) string {
	return p.controls.overlay(width, height)
}

func (p *dashboard) View() string {
	t := p.deps.Theme.Theme()
	s := t.S()

	perRow, cardW := 1, max(p.Width()-1, ui.MinCardWidth)
	if p.Width() >= 2*ui.MinCardWidth+20 {
		perRow, cardW = 2, (p.Width()-1)/2
	}
	text := func(str string) string {
		return s.Muted.Render(render.Wrap(str, max(cardW-2-2*ui.CardPaddingX, 1)))
	}
	focused := func(i int) bool { return p.controls.focus == i }

	lastPing := "never"
	if !p.lastPing.IsZero() {
		lastPing = humanize.RelTime(p.lastPing, p.deps.Now(), "ago", "from now")
	}
	target := p.deps.PingURL
	if target == "" {
		target = "not configured"
	}

	cards := []string{
		card.Render(t, card.Options{Title: "Connectivity", Glow: card.Blue, Focused: focused(actionPing), Width: cardW},
			text("Probe "+target+"."),
			"",
			p.controls.actions[actionPing].View(),
			s.Subtle.Render("Last checked: "+lastPing),
		),
		card.Render(t, card.Options{Title: "API access", Glow: card.Green, Focused: focused(actionRotate), Width: cardW},
			text("Issue a new key for integrations."),
			"",
			p.controls.actions[actionRotate].View(),
		),
		card.Render(t, card.Options{Title: "Danger zone", Glow: card.Amber, Focused: focused(actionDelete), Width: cardW},
			text("Remove the workspace and everything in it."),
			"",
			p.controls.actions[actionDelete].View(),
		),
		card.Render(t, card.Options{Title: "Explore", Glow: card.Purple, Focused: p.linkHasFocus(), Width: cardW},
			p.renderLinks(),
		),
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Dashboard"),
		s.Subtle.Render("tab to move · enter to activate"),
		"",
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, card.Grid(cards, perRow))
}

func (p *dashboard) linkHasFocus() bool {
	_, ok := p.controls.focusedLink()
	return ok
}

func (p *dashboard) renderLinks() string {
	t := p.deps.Theme.Theme()
	s := t.S()
	active := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	lines := make([]string, 0, len(p.controls.links))
	for i, l := range p.controls.links {
		if p.controls.linkFocused(i) {
			lines = append(lines, active.Render("› "+l.Label)+" "+s.Subtle.Render(l.To))
			continue
		}
		lines = append(lines, "  "+s.Base.Render(l.Label))
	}
	return strings.Join(lines, "\n")
}
