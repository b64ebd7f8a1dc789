package state

import (
	"database/sql"
	"encoding/json"
	"errors"
)

// NavigationState is the router location and its back stack.
type NavigationState struct {
	Location string
	History  []string // oldest first, excluding Location
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	row := db.QueryRow(`SELECT location, history FROM navigation_state WHERE id = 1`)

	var state NavigationState
	var history sql.NullString

	err := row.Scan(&state.Location, &history)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	if history.Valid && history.String != "" {
		// a corrupt history only loses the back stack
		_ = json.Unmarshal([]byte(history.String), &state.History)
	}

	return &state, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	history, err := json.Marshal(state.History)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO navigation_state (id, location, history)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			location = excluded.location,
			history = excluded.history
	`, state.Location, string(history))

	return err
}
