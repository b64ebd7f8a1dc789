package state

import (
	"database/sql"
	"maps"
	"sync"
)

// Mock is a test double for Manager.
type Mock struct {
	mu       sync.Mutex
	navState *NavigationState
	settings map[string]string
	scroll   map[string]int
	setErr   error
	saves    int
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{
		settings: make(map[string]string),
		scroll:   make(map[string]int),
	}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) SaveNavigation(state NavigationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navState = &state
	m.saves++
}

func (m *Mock) GetNavigation() (*NavigationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.navState, nil
}

func (m *Mock) GetSetting(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.settings[key]
	return v, ok, nil
}

func (m *Mock) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.settings[key] = value
	return nil
}

func (m *Mock) GetScrollPositions() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.scroll), nil
}

func (m *Mock) SaveScrollPositions(positions map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scroll = maps.Clone(positions)
	return nil
}

func (m *Mock) Flush() error { return nil }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetNavigation(state *NavigationState) { m.navState = state }

func (m *Mock) FailSettings(err error) { m.setErr = err }

func (m *Mock) NavigationSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
