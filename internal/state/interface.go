package state

import "database/sql"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	SaveNavigation(state NavigationState)
	GetNavigation() (*NavigationState, error)
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
	GetScrollPositions() (map[string]int, error)
	SaveScrollPositions(positions map[string]int) error
	Flush() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
