package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/appshell/internal/app"
)

func testOptions(t *testing.T, log *bytes.Buffer) Options {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("home = \"/settings\"\n"), 0o600))
	return Options{
		ConfigPath: cfgPath,
		LockPath:   filepath.Join(dir, "run", "tty.lock"),
		StatePath:  ":memory:",
		LogWriter:  log,
	}
}

func TestAcquire_OncePerProcess(t *testing.T) {
	m := &mounter{}
	path := filepath.Join(t.TempDir(), "tty.lock")

	release, err := m.acquire(path)
	require.NoError(t, err)
	defer release()

	_, err = m.acquire(path)
	assert.ErrorIs(t, err, ErrAlreadyMounted)
}

func TestAcquire_LockHeldByAnotherOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tty.lock")
	other := flock.New(path)
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer func() { _ = other.Unlock() }()

	_, err = (&mounter{}).acquire(path)
	assert.ErrorIs(t, err, ErrAlreadyMounted)
}

func TestAcquire_ReleaseFreesTheTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tty.lock")

	release, err := (&mounter{}).acquire(path)
	require.NoError(t, err)
	release()

	release, err = (&mounter{}).acquire(path)
	require.NoError(t, err)
	release()
}

func TestRun_MountsOnce(t *testing.T) {
	var logBuf bytes.Buffer
	opts := testOptions(t, &logBuf)

	var models []tea.Model
	opts.Program = func(_ context.Context, model tea.Model) error {
		models = append(models, model)
		return nil
	}

	m := &mounter{}
	require.NoError(t, m.run(context.Background(), opts))
	require.Len(t, models, 1)
	root, ok := models[0].(app.Model)
	require.True(t, ok, "root model is %T", models[0])
	assert.NotNil(t, root.Router())

	err := m.run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrAlreadyMounted)
	assert.Len(t, models, 1, "second mount must not start a program")
	assert.Contains(t, logBuf.String(), "mount skipped")
	assert.Contains(t, logBuf.String(), "mounting shell")
}

func TestRun_ProgramErrorIsReturned(t *testing.T) {
	var logBuf bytes.Buffer
	opts := testOptions(t, &logBuf)
	boom := errors.New("terminal gone")
	opts.Program = func(context.Context, tea.Model) error { return boom }

	err := (&mounter{}).run(context.Background(), opts)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, logBuf.String(), "program exited with error")
}

func TestRun_ConfigErrorDoesNotConsumeMount(t *testing.T) {
	var logBuf bytes.Buffer
	opts := testOptions(t, &logBuf)
	calls := 0
	opts.Program = func(context.Context, tea.Model) error {
		calls++
		return nil
	}

	m := &mounter{}
	bad := opts
	bad.ConfigPath = filepath.Join(t.TempDir(), "missing.toml")
	err := m.run(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
	assert.Zero(t, calls)

	require.NoError(t, m.run(context.Background(), opts))
	assert.Equal(t, 1, calls)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	opts := testOptions(t, &bytes.Buffer{})

	cfg, err := loadConfig(opts)
	require.NoError(t, err)
	assert.Equal(t, "/settings", cfg.Home)

	opts.Dev = true
	opts.Theme = "light"
	cfg, err = loadConfig(opts)
	require.NoError(t, err)
	assert.True(t, cfg.Dev)
	assert.Equal(t, "light", cfg.Theme.Default)

	opts.Theme = "sepia"
	_, err = loadConfig(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--theme")
}

func TestAnchorName(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		want     string
	}{
		{"tty path", "pts/3", "pts-3"},
		{"plain", "main_1", "main_1"},
		{"only separators", "///", "default"},
		{"session id", "w0t0p0:4F2A", "w0t0p0-4F2A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, anchorName(tt.explicit))
		})
	}

	assert.NotEmpty(t, anchorName(""))
}
