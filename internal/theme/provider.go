// Package theme owns the active color theme and its persisted selection.
package theme

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/llehouerou/appshell/internal/errmsg"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// Store persists the selected mode. state.Manager satisfies it.
type Store interface {
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
}

// Options configures a Provider.
type Options struct {
	Default    styles.Mode // used when nothing valid is stored
	StorageKey string
	// DetectDark reports whether the terminal background is dark.
	// Defaults to lipgloss.HasDarkBackground.
	DetectDark func() bool
	Logger     zerolog.Logger
}

// Provider holds the active theme. It is safe for concurrent use and is
// handed to components as a styles.Source.
type Provider struct {
	mu         sync.RWMutex
	store      Store
	key        string
	def        styles.Mode
	mode       styles.Mode
	stored     bool
	theme      *styles.Theme
	detectDark func() bool
	log        zerolog.Logger
}

var _ styles.Source = (*Provider)(nil)

// New creates a provider, restoring the stored mode when present.
func New(store Store, opts Options) *Provider {
	def := opts.Default
	if _, err := styles.ParseMode(string(def)); err != nil {
		def = styles.ModeDark
	}
	detect := opts.DetectDark
	if detect == nil {
		detect = lipgloss.HasDarkBackground
	}

	p := &Provider{
		store:      store,
		key:        opts.StorageKey,
		def:        def,
		mode:       def,
		detectDark: detect,
		log:        opts.Logger,
	}

	if store != nil {
		raw, ok, err := store.GetSetting(p.key)
		switch {
		case err != nil:
			p.log.Warn().Str("key", p.key).Msg(errmsg.FormatWith(errmsg.OpSettingLoad, p.key, err))
		case ok:
			if mode, err := styles.ParseMode(raw); err == nil {
				p.mode = mode
				p.stored = true
			} else {
				p.log.Warn().Str("value", raw).Msg("ignoring unknown stored theme")
			}
		}
	}

	p.theme = p.resolve(p.mode)
	return p
}

// Mode returns the selected mode, which may be ModeSystem.
func (p *Provider) Mode() styles.Mode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

// Theme returns the palette for the selected mode.
func (p *Provider) Theme() *styles.Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Set selects mode and persists it. The mode is applied even when saving fails.
func (p *Provider) Set(mode styles.Mode) error {
	if _, err := styles.ParseMode(string(mode)); err != nil {
		return err
	}

	p.mu.Lock()
	p.mode = mode
	p.stored = true
	p.theme = p.resolve(mode)
	p.mu.Unlock()

	p.log.Info().Str("mode", string(mode)).Msg("theme changed")

	if p.store == nil {
		return nil
	}
	if err := p.store.SetSetting(p.key, string(mode)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// Toggle switches between dark and light based on what is currently shown.
func (p *Provider) Toggle() error {
	next := styles.ModeDark
	if p.Theme().Mode == styles.ModeDark {
		next = styles.ModeLight
	}
	return p.Set(next)
}

// SetDefault changes the fallback mode. It takes effect immediately only
// when the user has not stored a selection.
func (p *Provider) SetDefault(mode styles.Mode) {
	if _, err := styles.ParseMode(string(mode)); err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.def = mode
	if !p.stored {
		p.mode = mode
		p.theme = p.resolve(mode)
	}
}

// resolve maps a mode to a palette, querying the terminal for ModeSystem.
func (p *Provider) resolve(mode styles.Mode) *styles.Theme {
	if mode == styles.ModeSystem {
		if p.detectDark() {
			return styles.Dark()
		}
		return styles.Light()
	}
	return styles.For(mode)
}
