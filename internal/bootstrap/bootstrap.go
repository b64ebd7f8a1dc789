// Package bootstrap builds the shell's services and mounts it into the
// terminal exactly once.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/llehouerou/appshell/internal/app"
	"github.com/llehouerou/appshell/internal/clipboard"
	"github.com/llehouerou/appshell/internal/config"
	"github.com/llehouerou/appshell/internal/errmsg"
	"github.com/llehouerou/appshell/internal/keymap"
	"github.com/llehouerou/appshell/internal/logger"
	"github.com/llehouerou/appshell/internal/router"
	"github.com/llehouerou/appshell/internal/routes"
	"github.com/llehouerou/appshell/internal/state"
	"github.com/llehouerou/appshell/internal/stderr"
	"github.com/llehouerou/appshell/internal/theme"
	"github.com/llehouerou/appshell/internal/toast"
	"github.com/llehouerou/appshell/internal/ui/errorpage"
	"github.com/llehouerou/appshell/internal/ui/headerbar"
	"github.com/llehouerou/appshell/internal/ui/notfound"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// ErrAlreadyMounted is returned when the shell already owns the terminal,
// either from an earlier Run in this process or from another process.
var ErrAlreadyMounted = errors.New("shell already mounted")

// Options are the command-line overrides and test seams for Run.
type Options struct {
	ConfigPath string
	Debug      bool
	Dev        bool
	Theme      string // overrides theme.default when set
	StartAt    string

	// Anchor names the terminal the shell mounts into. Empty derives it
	// from the controlling terminal.
	Anchor string
	// LockPath overrides the lock file derived from Anchor.
	LockPath string
	// StatePath overrides the XDG database location.
	StatePath string
	// LogWriter replaces the rotating log file.
	LogWriter io.Writer

	// Program runs the root model. Nil runs a full-screen Bubble Tea program.
	Program func(ctx context.Context, model tea.Model) error
}

type mounter struct {
	once sync.Once
}

var std = &mounter{}

// Run mounts the shell and blocks until it quits. A second call, or a call
// while another process holds the terminal, logs and returns
// ErrAlreadyMounted without touching the screen.
func Run(ctx context.Context, opts Options) error {
	return std.run(ctx, opts)
}

func (m *mounter) run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logOpts := logger.Options{
		Level:      cfg.Log.Level,
		Debug:      opts.Debug,
		Dir:        config.LogDir(),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Writer:     opts.LogWriter,
	}
	root, logCloser, err := logger.New(logOpts)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logCloser.Close()
	log := logger.Component(root, "bootstrap")

	lockPath := opts.LockPath
	if lockPath == "" {
		lockPath = config.LockPath(anchorName(opts.Anchor))
	}
	release, err := m.acquire(lockPath)
	if err != nil {
		if errors.Is(err, ErrAlreadyMounted) {
			log.Warn().Str("lock", lockPath).Msg("mount skipped: already mounted")
		} else {
			log.Error().Str("lock", lockPath).Msg(errmsg.Format(errmsg.OpMount, err))
		}
		return err
	}
	defer release()

	program := opts.Program
	clipOut := io.Writer(os.Stderr)
	if program == nil {
		program = runProgram
		// the terminal belongs to the UI from here on
		capture, err := stderr.Start(logger.Component(root, "stderr"))
		if err != nil {
			log.Warn().Err(err).Msg("stderr capture unavailable")
		} else {
			defer capture.Stop()
			clipOut = capture.Original()
		}
	}

	model, cleanup, err := build(ctx, cfg, opts, root, clipOut)
	if err != nil {
		log.Error().Msg(errmsg.Format(errmsg.OpInitialize, err))
		return err
	}
	defer cleanup()

	log.Info().
		Strs("config", cfg.Sources).
		Str("lock", lockPath).
		Bool("dev", cfg.Dev).
		Msg("mounting shell")

	if err := program(ctx, model); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		return err
	}
	log.Info().Msg("shell exited")
	return nil
}

// acquire claims the mount for this process and the terminal's lock file.
func (m *mounter) acquire(lockPath string) (func(), error) {
	first := false
	m.once.Do(func() { first = true })
	if !first {
		return nil, ErrAlreadyMounted
	}

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o700); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring mount lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, ErrAlreadyMounted
	}
	return func() { _ = fl.Unlock() }, nil
}

func loadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Dev {
		cfg.Dev = true
	}
	if opts.Theme != "" {
		mode, err := styles.ParseMode(opts.Theme)
		if err != nil {
			return nil, fmt.Errorf("--theme: %w", err)
		}
		cfg.Theme.Default = string(mode)
	}
	return cfg, nil
}

// build wires every service and returns the root model. cleanup releases
// what build opened.
func build(ctx context.Context, cfg *config.Config, opts Options, log zerolog.Logger, clipOut io.Writer) (tea.Model, func(), error) {
	var store *state.Manager
	var err error
	if opts.StatePath != "" {
		store, err = state.OpenPath(opts.StatePath)
	} else {
		store, err = state.Open()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open state: %w", err)
	}

	provider := theme.New(store, theme.Options{
		Default:    styles.Mode(cfg.Theme.Default),
		StorageKey: cfg.Theme.StorageKey,
		Logger:     logger.Component(log, "theme"),
	})
	toasts := toast.New(provider, app.ToastOptions(cfg.Toast), logger.Component(log, "toast"))

	dev := &atomic.Bool{}
	dev.Store(cfg.Dev)

	errDeps := errorpage.Deps{
		Theme:     provider,
		Clipboard: clipboard.NewSystem(clipOut),
		Toaster:   toasts,
		Logger:    logger.Component(log, "errorpage"),
	}
	errorComponent := func(p router.ErrorProps) router.Page {
		d := errDeps
		d.Dev = dev.Load()
		return errorpage.Component(d)(p)
	}

	r, err := router.New(routes.All(routes.Deps{
		Theme:   provider,
		Toaster: toasts,
		Logger:  logger.Component(log, "routes"),
		Context: ctx,
		PingURL: cfg.Actions.PingURL,
		Home:    cfg.Home,
	}), router.Options{
		DefaultPreload:           router.Preload(cfg.Router.DefaultPreload),
		ScrollRestoration:        cfg.Router.ScrollRestoration,
		StructuralSharing:        cfg.Router.StructuralSharing,
		PreloadStaleTime:         cfg.Router.PreloadStaleTime,
		DefaultErrorComponent:    errorComponent,
		DefaultNotFoundComponent: notfound.Component(notfound.Props{HomeTo: cfg.Home}, notfound.Deps{Theme: provider, Logger: logger.Component(log, "notfound")}),
		Wrap:                     app.Frame(),
		Theme:                    provider,
		Scroll:                   store,
		Context:                  ctx,
		Logger:                   logger.Component(log, "router"),
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("build router: %w", err)
	}

	watcher, err := config.Watch(config.Paths(opts.ConfigPath))
	if err != nil {
		log.Warn().Err(err).Msg("config hot reload disabled")
		watcher = nil
	}

	model := app.New(app.Options{
		Router: r,
		Toasts: toasts,
		Theme:  provider,
		State:  store,
		Logger: logger.Component(log, "app"),
		Dev:    dev,
		Tabs: []headerbar.Tab{
			{Key: "g h", Name: "Home", To: cfg.Home},
			{Key: "g s", Name: "Settings", To: routes.PathSettings},
		},
		Destinations: map[keymap.Action]string{
			keymap.ActionGoHome:     cfg.Home,
			keymap.ActionGoSettings: routes.PathSettings,
		},
		Watcher:    watcher,
		ConfigPath: opts.ConfigPath,
		StartAt:    opts.StartAt,
	})

	cleanup := func() {
		if watcher != nil {
			_ = watcher.Close()
		}
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("close state")
		}
	}
	return model, cleanup, nil
}

func runProgram(ctx context.Context, model tea.Model) error {
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// anchorName resolves the terminal the shell mounts into to a file-safe name.
func anchorName(explicit string) string {
	if explicit != "" {
		return sanitize(explicit)
	}
	if tty, err := os.Readlink("/proc/self/fd/0"); err == nil && strings.HasPrefix(tty, "/dev/") {
		return sanitize(strings.TrimPrefix(tty, "/dev/"))
	}
	if id := os.Getenv("TERM_SESSION_ID"); id != "" {
		return sanitize(id)
	}
	return "default"
}

func sanitize(s string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, s)
	if strings.Trim(clean, "-") == "" {
		return "default"
	}
	return clean
}
