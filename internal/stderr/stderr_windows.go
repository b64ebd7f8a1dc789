//go:build windows

// Package stderr is a pass-through on Windows, where console writes do not
// share the alternate screen.
package stderr

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Capture struct{}

func Start(zerolog.Logger) (*Capture, error) { return &Capture{}, nil }

func (c *Capture) Original() io.Writer { return os.Stderr }

func (c *Capture) Stop() {}
