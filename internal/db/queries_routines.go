package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AkshayMandhan17/flexiplan/internal/routine"
)

// ReplacePrimaryRoutine stores a freshly generated schedule and makes it
// the user's primary routine. The old primary routine is deleted outright,
// schedule and all; its ownership link and completion marks go with it via
// the cascading foreign keys. Deleting and promoting happen in one
// transaction so there is never a moment with two primaries.
func (d *DB) ReplacePrimaryRoutine(userID int64, startDate, endDate string, schedule routine.WeeklySchedule) (int64, error) {
	blob, err := json.Marshal(schedule)
	if err != nil {
		return 0, fmt.Errorf("encoding schedule: %w", err)
	}
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM routines WHERE id IN (SELECT routine_id FROM user_routines WHERE user_id = ? AND is_primary = 1)",
		userID,
	); err != nil {
		return 0, fmt.Errorf("retiring old primary: %w", err)
	}
	res, err := tx.Exec("INSERT INTO routines (start_date, end_date, schedule) VALUES (?, ?, ?)", startDate, endDate, string(blob))
	if err != nil {
		return 0, fmt.Errorf("creating routine: %w", err)
	}
	routineID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec("INSERT INTO user_routines (user_id, routine_id, is_primary) VALUES (?, ?, 1)", userID, routineID); err != nil {
		return 0, fmt.Errorf("promoting routine: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing routine: %w", err)
	}
	return routineID, nil
}

// GetPrimaryRoutine returns the user's current primary routine.
func (d *DB) GetPrimaryRoutine(userID int64) (*Routine, error) {
	row := d.conn.QueryRow(
		`SELECT r.id, r.start_date, r.end_date, r.schedule, r.created_at
		 FROM routines r JOIN user_routines ur ON ur.routine_id = r.id
		 WHERE ur.user_id = ? AND ur.is_primary = 1
		 ORDER BY r.id DESC LIMIT 1`,
		userID,
	)
	return scanRoutine(row)
}

// FindRoutineForDate returns the user's primary routine whose date window
// covers the given date (YYYY-MM-DD).
func (d *DB) FindRoutineForDate(userID int64, date string) (*Routine, error) {
	row := d.conn.QueryRow(
		`SELECT r.id, r.start_date, r.end_date, r.schedule, r.created_at
		 FROM routines r JOIN user_routines ur ON ur.routine_id = r.id
		 WHERE ur.user_id = ? AND ur.is_primary = 1 AND r.start_date <= ? AND r.end_date >= ?
		 ORDER BY r.id DESC LIMIT 1`,
		userID, date, date,
	)
	return scanRoutine(row)
}

// UpdateRoutineDay rewrites a single day of a stored schedule, leaving
// the other days untouched. Read and write share a transaction so a
// concurrent update can't be lost between them.
func (d *DB) UpdateRoutineDay(routineID int64, day string, entries []routine.Entry) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var blob string
	err = tx.QueryRow("SELECT schedule FROM routines WHERE id = ?", routineID).Scan(&blob)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading routine %d: %w", routineID, err)
	}
	var sched routine.WeeklySchedule
	if err := json.Unmarshal([]byte(blob), &sched); err != nil {
		return fmt.Errorf("decoding schedule: %w", err)
	}
	if sched == nil {
		sched = routine.WeeklySchedule{}
	}
	sched[day] = entries
	out, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	if _, err := tx.Exec("UPDATE routines SET schedule = ? WHERE id = ?", string(out), routineID); err != nil {
		return fmt.Errorf("updating routine %d: %w", routineID, err)
	}
	return tx.Commit()
}

func scanRoutine(row *sql.Row) (*Routine, error) {
	var r Routine
	var blob string
	err := row.Scan(&r.ID, &r.StartDate, &r.EndDate, &blob, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning routine: %w", err)
	}
	if err := json.Unmarshal([]byte(blob), &r.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}
	return &r, nil
}
