package db

import (
	"database/sql"
	"fmt"
)

// Keys used in the app_state table.
const (
	StateDiscordUser = "discord_user_id"
)

// GetState retrieves an app-state value by key, "" when unset.
func (d *DB) GetState(key string) (string, error) {
	var value string
	err := d.conn.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting state %q: %w", key, err)
	}
	return value, nil
}

// SetState stores or updates an app-state value.
func (d *DB) SetState(key, value string) error {
	_, err := d.conn.Exec(
		"INSERT INTO app_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting state %q: %w", key, err)
	}
	return nil
}
