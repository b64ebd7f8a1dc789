// Package routes defines the shell's pages.
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/toast"
	"github.com/llehouerou/appshell/internal/ui/notfound"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

const (
	PathHome     = "/"
	PathSettings = "/settings"
	PathItem     = "/items/{id}"
	PathBroken   = "/broken"
	PathCrash    = "/crash"
)

// ItemPath returns the location of the item with id.
func ItemPath(id string) string {
	return "/items/" + id
}

// ThemeSetter is the theme capability the settings page drives.
// theme.Provider satisfies it.
type ThemeSetter interface {
	styles.Source
	Mode() styles.Mode
	Set(mode styles.Mode) error
}

// Deps are the services pages use.
type Deps struct {
	Theme   ThemeSetter
	Toaster toast.Toaster
	Logger  zerolog.Logger
	Context context.Context // passed to action operations

	PingURL string
	HTTP    *http.Client
	Catalog Catalog
	Home    string // not-found "go home" target

	// Latency is added to simulated work so progress is visible.
	Latency time.Duration
	Now     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Context == nil {
		d.Context = context.Background()
	}
	if d.HTTP == nil {
		d.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	if d.Catalog == nil {
		d.Catalog = DefaultCatalog()
	}
	if d.Home == "" {
		d.Home = PathHome
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// All returns every route of the shell.
func All(deps Deps) []router.Route {
	deps = deps.withDefaults()
	return []router.Route{
		{
			Path:      PathHome,
			Component: func(ctx router.Context) router.Page { return newDashboard(ctx, deps) },
		},
		{
			Path:      PathSettings,
			Component: func(ctx router.Context) router.Page { return newSettings(deps) },
		},
		{
			Path:      PathItem,
			Loader:    itemLoader(deps),
			Component: func(ctx router.Context) router.Page { return newItemPage(ctx, deps) },
			NotFoundComponent: notfound.Component(notfound.Props{
				Title:       "Item not found",
				Description: "It may have been deleted, or the link is wrong.",
				HomeTo:      deps.Home,
			}, notfound.Deps{Theme: deps.Theme, Logger: deps.Logger}),
		},
		{
			Path:      PathBroken,
			Loader:    brokenLoader(deps),
			Component: reportComponent,
		},
		{
			Path:      PathCrash,
			Component: crashComponent,
		},
	}
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
