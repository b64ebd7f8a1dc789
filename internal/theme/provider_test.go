package theme

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/appshell/internal/state"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

const key = "ui-theme"

func newProvider(store Store, def styles.Mode, dark bool) *Provider {
	return New(store, Options{
		Default:    def,
		StorageKey: key,
		DetectDark: func() bool { return dark },
	})
}

func TestNew_UsesDefaultWhenNothingStored(t *testing.T) {
	p := newProvider(state.NewMock(), styles.ModeDark, true)

	assert.Equal(t, styles.ModeDark, p.Mode())
	assert.Equal(t, styles.ModeDark, p.Theme().Mode)
}

func TestNew_RestoresStoredMode(t *testing.T) {
	store := state.NewMock()
	require.NoError(t, store.SetSetting(key, "light"))

	p := newProvider(store, styles.ModeDark, true)

	assert.Equal(t, styles.ModeLight, p.Mode())
	assert.Equal(t, styles.ModeLight, p.Theme().Mode)
}

func TestNew_IgnoresUnknownStoredMode(t *testing.T) {
	store := state.NewMock()
	require.NoError(t, store.SetSetting(key, "sepia"))

	p := newProvider(store, styles.ModeDark, true)
	assert.Equal(t, styles.ModeDark, p.Mode())
}

type brokenStore struct{ err error }

func (s brokenStore) GetSetting(string) (string, bool, error) { return "", false, s.err }
func (s brokenStore) SetSetting(string, string) error         { return s.err }

func TestNew_UnreadableStoreUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	p := New(brokenStore{err: errors.New("disk I/O error")}, Options{
		Default:    styles.ModeLight,
		StorageKey: key,
		DetectDark: func() bool { return true },
		Logger:     zerolog.New(&buf),
	})

	assert.Equal(t, styles.ModeLight, p.Mode())
	assert.Contains(t, buf.String(), "Failed to load setting 'ui-theme': disk I/O error")
}

func TestNew_InvalidDefaultFallsBackToDark(t *testing.T) {
	p := newProvider(nil, styles.Mode("neon"), false)
	assert.Equal(t, styles.ModeDark, p.Mode())
}

func TestSystemModeFollowsTerminal(t *testing.T) {
	tests := []struct {
		name string
		dark bool
		want styles.Mode
	}{
		{"dark terminal", true, styles.ModeDark},
		{"light terminal", false, styles.ModeLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProvider(nil, styles.ModeSystem, tt.dark)
			assert.Equal(t, styles.ModeSystem, p.Mode())
			assert.Equal(t, tt.want, p.Theme().Mode)
		})
	}
}

func TestSet_PersistsUnderStorageKey(t *testing.T) {
	store := state.NewMock()
	p := newProvider(store, styles.ModeDark, true)

	require.NoError(t, p.Set(styles.ModeLight))

	v, ok, _ := store.GetSetting(key)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
	assert.Equal(t, styles.ModeLight, p.Theme().Mode)
}

func TestSet_RejectsUnknownMode(t *testing.T) {
	p := newProvider(state.NewMock(), styles.ModeDark, true)
	assert.Error(t, p.Set(styles.Mode("neon")))
	assert.Equal(t, styles.ModeDark, p.Mode())
}

func TestSet_AppliesEvenWhenStoreFails(t *testing.T) {
	store := state.NewMock()
	store.FailSettings(errors.New("read-only"))
	p := newProvider(store, styles.ModeDark, true)

	err := p.Set(styles.ModeLight)
	assert.Error(t, err)
	assert.Equal(t, styles.ModeLight, p.Mode())
}

func TestToggle(t *testing.T) {
	p := newProvider(nil, styles.ModeDark, true)

	require.NoError(t, p.Toggle())
	assert.Equal(t, styles.ModeLight, p.Mode())

	require.NoError(t, p.Toggle())
	assert.Equal(t, styles.ModeDark, p.Mode())
}

func TestToggle_FromSystemUsesResolvedPalette(t *testing.T) {
	p := newProvider(nil, styles.ModeSystem, false) // resolves to light

	require.NoError(t, p.Toggle())
	assert.Equal(t, styles.ModeDark, p.Mode())
}

func TestSetDefault(t *testing.T) {
	p := newProvider(state.NewMock(), styles.ModeDark, true)

	p.SetDefault(styles.ModeLight)
	assert.Equal(t, styles.ModeLight, p.Mode(), "no stored choice: default applies")

	require.NoError(t, p.Set(styles.ModeDark))
	p.SetDefault(styles.ModeLight)
	assert.Equal(t, styles.ModeDark, p.Mode(), "stored choice wins over default")
}

func TestProviderIsThemeSource(t *testing.T) {
	var src styles.Source = newProvider(nil, styles.ModeLight, true)
	assert.Equal(t, styles.ModeLight, src.Theme().Mode)
}
