package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "appshell"

// ErrInvalid wraps validation failures of a loaded configuration.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Dev  bool   `koanf:"dev"`                                      // development build: error details shown by default
	Home string `koanf:"home" validate:"required,startswith=/"` // not-found "go home" target

	Theme   ThemeConfig   `koanf:"theme"`
	Toast   ToastConfig   `koanf:"toast"`
	Router  RouterConfig  `koanf:"router"`
	Actions ActionsConfig `koanf:"actions"`
	Log     LogConfig     `koanf:"log"`

	// Sources lists the files that were merged, in load order.
	Sources []string `koanf:"-"`
}

// ThemeConfig holds theme selection settings.
type ThemeConfig struct {
	Default    string `koanf:"default" validate:"oneof=dark light system"`
	StorageKey string `koanf:"storage_key" validate:"required"`
}

// ToastConfig holds toast host settings.
type ToastConfig struct {
	Duration   time.Duration `koanf:"duration" validate:"gt=0"`
	Position   string        `koanf:"position" validate:"oneof=top-center bottom-center"`
	Expand     bool          `koanf:"expand"`      // show every stacked toast instead of the latest few
	RichColors bool          `koanf:"rich_colors"` // color toasts by kind
}

// RouterConfig holds router behavior settings.
type RouterConfig struct {
	DefaultPreload    string        `koanf:"default_preload" validate:"oneof=intent none"`
	ScrollRestoration bool          `koanf:"scroll_restoration"`
	StructuralSharing bool          `koanf:"structural_sharing"`
	PreloadStaleTime  time.Duration `koanf:"preload_stale_time" validate:"gte=0"`
}

// ActionsConfig holds settings for the built-in demo actions.
type ActionsConfig struct {
	PingURL string `koanf:"ping_url" validate:"omitempty,http_url"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `koanf:"level" validate:"oneof=trace debug info warn error"`
	MaxSizeMB  int    `koanf:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `koanf:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `koanf:"max_age_days" validate:"gte=0"`
}

// Default returns the configuration used when no file overrides a key.
func Default() *Config {
	return &Config{
		Home: "/",
		Theme: ThemeConfig{
			Default:    "dark",
			StorageKey: "ui-theme",
		},
		Toast: ToastConfig{
			Duration:   4 * time.Second,
			Position:   "top-center",
			Expand:     true,
			RichColors: true,
		},
		Router: RouterConfig{
			DefaultPreload:    "intent",
			ScrollRestoration: true,
			StructuralSharing: true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load merges the standard config files, then explicit when non-empty.
// A missing standard file is skipped; a missing explicit file is an error.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, explicit)
	}
	return LoadFrom(paths)
}

// LoadFrom merges the existing files among paths over the defaults.
func LoadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	var loaded []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.Sources = loaded

	cfg.Actions.PingURL = strings.TrimSuffix(cfg.Actions.PingURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their config key rather than the Go name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fieldPath(fe), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// fieldPath renders "Config.toast.position" as "toast.position".
func fieldPath(fe validator.FieldError) string {
	_, key, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Namespace()
	}
	return key
}

// LogDir returns the directory for log files.
func LogDir() string {
	return filepath.Join(xdg.StateHome, appName, "logs")
}

// LockPath returns the mount lock file for the given terminal anchor.
func LockPath(anchor string) string {
	return filepath.Join(xdg.RuntimeDir, appName, anchor+".lock")
}

// Paths returns every file Load would consider, including ones that do not
// exist yet, in merge order.
func Paths(explicit string) []string {
	paths := getConfigPaths()
	if explicit != "" {
		paths = append(paths, expandPath(explicit))
	}
	return paths
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/appshell/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
