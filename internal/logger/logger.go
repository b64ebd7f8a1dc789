// Package logger builds the application's zerolog logger.
//
// The terminal belongs to the UI while the program runs, so log output goes
// to a rotating file instead of stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const fileName = "appshell.log"

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level      string // trace, debug, info, warn, error; empty means info
	Debug      bool   // forces debug level
	Dir        string // log directory; ignored when Writer is set
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	Writer io.Writer // overrides the rotating file, mostly for tests
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a configured logger. The returned closer releases the log file.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := parseLevel(opts)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	out := opts.Writer
	var closer io.Closer = nopCloser{}
	if out == nil {
		if opts.Dir == "" {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("logger: no directory or writer")
		}
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create logs directory: %w", err)
		}
		fw := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, fileName),
			MaxSize:    opts.MaxSizeMB, // MB
			MaxAge:     opts.MaxAgeDays,
			MaxBackups: opts.MaxBackups,
			LocalTime:  true,
		}
		out, closer = fw, fw
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()

	return log, closer, nil
}

func parseLevel(opts Options) (zerolog.Level, error) {
	if opts.Debug {
		return zerolog.DebugLevel, nil
	}
	if opts.Level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(opts.Level))
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// Component returns a child logger tagged with the emitting component.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
