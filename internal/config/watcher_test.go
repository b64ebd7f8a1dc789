package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsWritesToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "dev = false\n")
	other := filepath.Join(dir, "other.toml")

	w, err := Watch([]string{path})
	require.NoError(t, err)
	defer w.Close()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change for %q", got)
	case <-time.After(400 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("dev = true\n"), 0o600))
	select {
	case got := <-w.Changes():
		abs, _ := filepath.Abs(path)
		require.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := Watch([]string{filepath.Join(t.TempDir(), "config.toml")})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
