package routes

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/ui"
	"github.com/llehouerou/appshell/internal/ui/render"
)

var errUpstream = errors.New("upstream returned 503 Service Unavailable")

func brokenLoader(deps Deps) router.Loader {
	return func(ctx context.Context, _ router.Match) (any, error) {
		if err := sleep(ctx, deps.Latency); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("fetch report: %w", errUpstream)
	}
}

// reportComponent is never reached while the loader fails.
func reportComponent(ctx router.Context) router.Page {
	return newNotePage(fmt.Sprint(ctx.Data))
}

// crashComponent fails while rendering with a structured value.
func crashComponent(router.Context) router.Page {
	panic(map[string]any{"code": 500, "reason": "render failed"})
}

// notePage shows a single paragraph.
type notePage struct {
	ui.Base
	text string
}

func newNotePage(text string) *notePage { return &notePage{text: text} }

func (p *notePage) Init() tea.Cmd { return nil }

func (p *notePage) Update(tea.Msg) (router.Page, tea.Cmd) { return p, nil }

func (p *notePage) View() string { return render.Wrap(p.text, max(p.Width(), 1)) }
