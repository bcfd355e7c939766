package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups when no matching row exists.
var ErrNotFound = errors.New("not found")

// CreateUser registers a new user and returns its ID.
func (d *DB) CreateUser(username, email string) (int64, error) {
	res, err := d.conn.Exec("INSERT INTO users (username, email) VALUES (?, ?)", username, email)
	if err != nil {
		return 0, fmt.Errorf("creating user: %w", err)
	}
	return res.LastInsertId()
}

// GetUser loads a user by ID.
func (d *DB) GetUser(id int64) (*User, error) {
	var u User
	err := d.conn.QueryRow("SELECT id, username, email, created_at FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return &u, nil
}

// GetUserByName loads a user by username.
func (d *DB) GetUserByName(username string) (*User, error) {
	var u User
	err := d.conn.QueryRow("SELECT id, username, email, created_at FROM users WHERE username = ?", username).
		Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %q: %w", username, err)
	}
	return &u, nil
}

// EnsureUser returns the named user, creating it if missing.
func (d *DB) EnsureUser(username string) (*User, error) {
	u, err := d.GetUserByName(username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := d.CreateUser(username, ""); err != nil {
		return nil, err
	}
	return d.GetUserByName(username)
}

// DeleteUser removes a user; tasks, routines, and completions cascade.
func (d *DB) DeleteUser(id int64) error {
	res, err := d.conn.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
