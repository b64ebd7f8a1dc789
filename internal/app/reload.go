package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/appshell/internal/config"
	"github.com/llehouerou/appshell/internal/errmsg"
	"github.com/llehouerou/appshell/internal/toast"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// ToastOptions converts the toast section of the config.
func ToastOptions(c config.ToastConfig) toast.Options {
	return toast.Options{
		Duration:   c.Duration,
		Position:   toast.Position(c.Position),
		Expand:     c.Expand,
		RichColors: c.RichColors,
	}
}

// watchConfig waits for the next config change and reloads it.
func (m Model) watchConfig() tea.Cmd {
	w := m.opts.Watcher
	if w == nil {
		return nil
	}
	path := m.opts.ConfigPath
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			cfg, err := config.Load(path)
			return ConfigReloadedMsg{Config: cfg, Err: err}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return ConfigReloadedMsg{Err: err}
		}
	}
}

// applyConfig re-applies the settings that can change while running.
func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Msg("config reload failed")
		m.popups.ShowError(errmsg.Format(errmsg.OpConfigLoad, msg.Err))
		return
	}
	cfg := msg.Config
	if cfg == nil {
		return
	}

	m.theme.SetDefault(styles.Mode(cfg.Theme.Default))
	m.toasts.Configure(ToastOptions(cfg.Toast))
	m.opts.Dev.Store(cfg.Dev)

	m.log.Info().Strs("sources", cfg.Sources).Bool("dev", cfg.Dev).Msg("config reloaded")
}
