package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestNew_WritesJSONWithComponent(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, closer, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)
	defer closer.Close()

	routerLog := Component(log, "router")
	routerLog.Info().Str("location", "/settings").Msg("navigated")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "navigated", entry["message"])
	require.Equal(t, "router", entry["component"])
	require.Equal(t, "/settings", entry["location"])
	require.Equal(t, "info", entry["level"])
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, _, err := New(Options{Level: "warn", Writer: buf})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestNew_DebugFlagOverridesLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, _, err := New(Options{Level: "error", Debug: true, Writer: buf})
	require.NoError(t, err)

	log.Debug().Msg("visible")
	require.Contains(t, buf.String(), "visible")
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, _, err := New(Options{Level: "loud", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestNew_RotatingFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")
	log, closer, err := New(Options{Dir: dir, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Info().Msg("mounted")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.Contains(t, string(data), "mounted")
}

func TestNew_RequiresDestination(t *testing.T) {
	t.Parallel()

	_, _, err := New(Options{})
	require.Error(t, err)
}
