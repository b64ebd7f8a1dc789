package state

import (
	"database/sql"
)

func getScrollPositions(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`SELECT location, scroll_offset FROM scroll_positions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make(map[string]int)
	for rows.Next() {
		var location string
		var offset int
		if err := rows.Scan(&location, &offset); err != nil {
			return nil, err
		}
		positions[location] = offset
	}
	return positions, rows.Err()
}

// saveScrollPositions replaces the stored positions with the given set.
func saveScrollPositions(db *sql.DB, positions map[string]int) error {
	return withTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM scroll_positions`); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`INSERT INTO scroll_positions (location, scroll_offset) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for location, offset := range positions {
			if offset <= 0 {
				continue
			}
			if _, err := stmt.Exec(location, offset); err != nil {
				return err
			}
		}
		return nil
	})
}
