package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/mixcrew/mixcrew/internal/db"
)

// GetLastPlaylist returns the playlist id that was open when the app last
// exited, or empty when none was saved.
func (m *Manager) GetLastPlaylist() (string, error) {
	row := m.db.QueryRow(`SELECT playlist_id FROM navigation_state WHERE id = 1`)

	var id sql.NullString
	err := row.Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return dbutil.NullStringValue(id), nil
}

// SaveLastPlaylist remembers the currently open playlist.
func (m *Manager) SaveLastPlaylist(id string) error {
	_, err := m.db.Exec(`
		INSERT INTO navigation_state (id, playlist_id)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET playlist_id = excluded.playlist_id
	`, id)
	return err
}
