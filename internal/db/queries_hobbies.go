package db

import (
	"database/sql"
	"fmt"

	"github.com/AkshayMandhan17/flexiplan/internal/routine"
)

// AddHobby records a hobby in the shared catalog, returning the existing
// row's ID when the (name, category) pair is already known.
func (d *DB) AddHobby(spec routine.HobbySpec) (int64, error) {
	if spec.Name == "" {
		return 0, fmt.Errorf("hobby name is required")
	}
	var id int64
	err := d.conn.QueryRow("SELECT id FROM hobbies WHERE name = ? AND category = ?", spec.Name, spec.Category).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up hobby: %w", err)
	}
	res, err := d.conn.Exec("INSERT INTO hobbies (name, category) VALUES (?, ?)", spec.Name, spec.Category)
	if err != nil {
		return 0, fmt.Errorf("adding hobby: %w", err)
	}
	return res.LastInsertId()
}

// ListHobbies returns the full hobby catalog.
func (d *DB) ListHobbies() ([]Hobby, error) {
	return d.scanHobbies("SELECT id, name, category FROM hobbies ORDER BY name, category")
}

// AttachHobby links a hobby to a user. Attaching twice is a no-op.
func (d *DB) AttachHobby(userID, hobbyID int64) error {
	_, err := d.conn.Exec(
		"INSERT INTO user_hobbies (user_id, hobby_id) VALUES (?, ?) ON CONFLICT(user_id, hobby_id) DO NOTHING",
		userID, hobbyID,
	)
	if err != nil {
		return fmt.Errorf("attaching hobby %d: %w", hobbyID, err)
	}
	return nil
}

// DetachHobby removes the link between a user and a hobby.
func (d *DB) DetachHobby(userID, hobbyID int64) error {
	res, err := d.conn.Exec("DELETE FROM user_hobbies WHERE user_id = ? AND hobby_id = ?", userID, hobbyID)
	if err != nil {
		return fmt.Errorf("detaching hobby %d: %w", hobbyID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUserHobbies returns the hobbies a user has picked up.
func (d *DB) ListUserHobbies(userID int64) ([]Hobby, error) {
	return d.scanHobbies(
		"SELECT h.id, h.name, h.category FROM hobbies h JOIN user_hobbies uh ON uh.hobby_id = h.id WHERE uh.user_id = ? ORDER BY h.name, h.category",
		userID,
	)
}

func (d *DB) scanHobbies(query string, args ...any) ([]Hobby, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying hobbies: %w", err)
	}
	defer rows.Close()
	var hobbies []Hobby
	for rows.Next() {
		var h Hobby
		if err := rows.Scan(&h.ID, &h.Name, &h.Category); err != nil {
			return nil, fmt.Errorf("scanning hobby: %w", err)
		}
		hobbies = append(hobbies, h)
	}
	return hobbies, rows.Err()
}
