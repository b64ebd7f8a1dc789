//go:build !windows

// Package stderr captures writes to file descriptor 2 while the UI owns the
// terminal. Dependencies that print directly to stderr would otherwise draw
// over the alternate screen; captured lines go to the log instead.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Capture is an active redirection of stderr.
type Capture struct {
	orig int
	r, w *os.File
	done chan struct{}
	log  zerolog.Logger
}

// Start redirects stderr into log. The program can continue without capture
// when it fails; writes then reach the original stderr.
func Start(log zerolog.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		_ = unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, done: make(chan struct{}), log: log}
	go c.forward()
	return c, nil
}

func (c *Capture) forward() {
	defer close(c.done)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			c.log.Warn().Str("stream", "stderr").Msg(line)
		}
	}
}

// Original returns a writer to the terminal's stderr, bypassing capture.
// It must not be used after Stop.
func (c *Capture) Original() io.Writer { return fdWriter(c.orig) }

type fdWriter int

func (w fdWriter) Write(p []byte) (int, error) {
	return unix.Write(int(w), p)
}

// Stop restores stderr and waits until every captured line is logged.
func (c *Capture) Stop() {
	_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = unix.Close(c.orig)
	c.w.Close()
	<-c.done
	c.r.Close()
}
