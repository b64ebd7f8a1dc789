// Package clipboard copies text to the user's clipboard.
//
// The system clipboard is tried first. Over SSH or without a clipboard
// utility the text is sent to the terminal as an OSC 52 sequence instead,
// which most modern terminals honor.
package clipboard

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Writer copies text to a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the system clipboard, falling back to OSC 52.
type System struct {
	// Out receives the OSC 52 sequence. Defaults to os.Stderr.
	Out io.Writer
	// write replaces the system clipboard in tests.
	write func(string) error
}

// NewSystem returns a clipboard writer whose OSC 52 fallback goes to out,
// or to os.Stderr when out is nil.
func NewSystem(out io.Writer) *System {
	if out == nil {
		out = os.Stderr
	}
	return &System{Out: out}
}

// WriteAll copies text.
func (s *System) WriteAll(text string) error {
	write := s.write
	if write == nil && !clipboard.Unsupported {
		write = clipboard.WriteAll
	}
	if write != nil {
		if err := write(text); err == nil {
			return nil
		}
	}
	return s.osc52(text)
}

func (s *System) osc52(text string) error {
	out := s.Out
	if out == nil {
		out = os.Stderr
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(out); err != nil {
		return fmt.Errorf("write osc52 sequence: %w", err)
	}
	return nil
}

// Memory records copied text. Useful in tests.
type Memory struct {
	Text   string
	Writes int
	Err    error
}

// WriteAll records text unless Err is set.
func (m *Memory) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	m.Writes++
	return nil
}
