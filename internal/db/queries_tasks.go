package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AkshayMandhan17/flexiplan/internal/routine"
)

// CreateTask stores a task for a user and returns its ID. The spec is
// validated before anything touches the database.
func (d *DB) CreateTask(userID int64, spec routine.TaskSpec) (int64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	days, _ := json.Marshal(spec.DaysAssociated)
	res, err := d.conn.Exec(
		"INSERT INTO tasks (user_id, task_name, description, time_required, days_associated, priority, is_fixed_time, fixed_time_slot) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		userID, spec.Name, nullStr(spec.Description), spec.TimeRequired, string(days), spec.Priority, spec.IsFixedTime, nullStr(spec.FixedTimeSlot),
	)
	if err != nil {
		return 0, fmt.Errorf("creating task: %w", err)
	}
	return res.LastInsertId()
}

// GetTask loads a single task by ID, scoped to its owner.
func (d *DB) GetTask(userID, taskID int64) (*Task, error) {
	row := d.conn.QueryRow(
		"SELECT id, user_id, task_name, COALESCE(description,''), time_required, days_associated, priority, is_fixed_time, COALESCE(fixed_time_slot,''), created_at FROM tasks WHERE id = ? AND user_id = ?",
		taskID, userID,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", taskID, err)
	}
	return t, nil
}

// ListTasks returns all of a user's tasks, oldest first.
func (d *DB) ListTasks(userID int64) ([]Task, error) {
	rows, err := d.conn.Query(
		"SELECT id, user_id, task_name, COALESCE(description,''), time_required, days_associated, priority, is_fixed_time, COALESCE(fixed_time_slot,''), created_at FROM tasks WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// UpdateTask patches the given columns of a task.
func (d *DB) UpdateTask(taskID int64, fields map[string]any) error {
	if days, ok := fields["days_associated"]; ok {
		b, err := json.Marshal(days)
		if err != nil {
			return fmt.Errorf("encoding days: %w", err)
		}
		fields["days_associated"] = string(b)
	}
	return d.updateRow("tasks", taskID, fields)
}

// DeleteTask removes a task.
func (d *DB) DeleteTask(userID, taskID int64) error {
	res, err := d.conn.Exec("DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", taskID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (*Task, error) {
	var t Task
	var daysJSON string
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.TimeRequired, &daysJSON, &t.Priority, &t.IsFixedTime, &t.FixedTimeSlot, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(daysJSON), &t.DaysAssociated)
	return &t, nil
}
