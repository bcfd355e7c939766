package db

import "fmt"

// UpsertCompletion records whether an activity on a given day of a
// routine was done. Repeating a call with the same state is a no-op;
// the latest write wins.
func (d *DB) UpsertCompletion(userID, routineID int64, c Completion) error {
	_, err := d.conn.Exec(
		`INSERT INTO activity_completions (user_id, routine_id, day, activity_name, activity_type, is_completed)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, routine_id, day, activity_name, activity_type) DO UPDATE SET
		   is_completed = excluded.is_completed,
		   updated_at = datetime('now')`,
		userID, routineID, c.Day, c.Activity, c.Kind, c.Completed,
	)
	if err != nil {
		return fmt.Errorf("recording completion: %w", err)
	}
	return nil
}

// ListCompletions returns all completion marks for a routine.
func (d *DB) ListCompletions(userID, routineID int64) ([]Completion, error) {
	rows, err := d.conn.Query(
		"SELECT day, activity_name, activity_type, is_completed FROM activity_completions WHERE user_id = ? AND routine_id = ?",
		userID, routineID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()
	var completions []Completion
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.Day, &c.Activity, &c.Kind, &c.Completed); err != nil {
			return nil, fmt.Errorf("scanning completion: %w", err)
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}
