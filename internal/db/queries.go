package db

import (
	"fmt"
	"strings"

	"github.com/AkshayMandhan17/flexiplan/internal/routine"
)

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
}

type Task struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"-"`
	routine.TaskSpec
	CreatedAt string `json:"created_at"`
}

type Hobby struct {
	ID int64 `json:"id"`
	routine.HobbySpec
}

type Settings struct {
	DayStart             string `json:"day_start_time"`
	DayEnd               string `json:"day_end_time"`
	OffDayToggle         bool   `json:"off_day_toggle"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

func (s Settings) DaySettings() routine.DaySettings {
	return routine.DaySettings{DayStart: s.DayStart, DayEnd: s.DayEnd}
}

type Routine struct {
	ID        int64                  `json:"id"`
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Schedule  routine.WeeklySchedule `json:"schedule"`
	CreatedAt string                 `json:"created_at"`
}

type Completion struct {
	Day       string `json:"day"`
	Activity  string `json:"activity_name"`
	Kind      string `json:"activity_type"`
	Completed bool   `json:"is_completed"`
}

var allowedColumns = map[string]map[string]bool{
	"tasks": {
		"task_name":       true,
		"description":     true,
		"time_required":   true,
		"days_associated": true,
		"priority":        true,
		"is_fixed_time":   true,
		"fixed_time_slot": true,
	},
}

// updateRow is a generic helper for updating a row's fields.
func (d *DB) updateRow(table string, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	allowed, ok := allowedColumns[table]
	if !ok {
		return fmt.Errorf("unknown table: %s", table)
	}
	var setClauses []string
	var args []any
	for col, val := range fields {
		if !allowed[col] {
			return fmt.Errorf("disallowed column %q for table %s", col, table)
		}
		setClauses = append(setClauses, col+" = ?")
		args = append(args, val)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(setClauses, ", "))
	res, err := d.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("updating %s %d: %w", table, id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%s %d not found", table, id)
	}
	return nil
}

func nullStr(s string) any {
	if s == "" || s == "null" {
		return nil
	}
	return s
}
