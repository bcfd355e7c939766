package db

import (
	"database/sql"
	"fmt"
)

const (
	defaultDayStart = "07:00:00"
	defaultDayEnd   = "21:00:00"
)

// GetSettings returns a user's planning preferences. Users who never
// saved settings get the defaults.
func (d *DB) GetSettings(userID int64) (Settings, error) {
	s := Settings{DayStart: defaultDayStart, DayEnd: defaultDayEnd, NotificationsEnabled: true}
	err := d.conn.QueryRow(
		"SELECT day_start_time, day_end_time, off_day_toggle, notifications_enabled FROM user_settings WHERE user_id = ?",
		userID,
	).Scan(&s.DayStart, &s.DayEnd, &s.OffDayToggle, &s.NotificationsEnabled)
	if err == sql.ErrNoRows {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("getting settings for user %d: %w", userID, err)
	}
	return s, nil
}

// SaveSettings upserts a user's planning preferences.
func (d *DB) SaveSettings(userID int64, s Settings) error {
	if err := s.DaySettings().Validate(); err != nil {
		return err
	}
	_, err := d.conn.Exec(
		`INSERT INTO user_settings (user_id, day_start_time, day_end_time, off_day_toggle, notifications_enabled)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   day_start_time = excluded.day_start_time,
		   day_end_time = excluded.day_end_time,
		   off_day_toggle = excluded.off_day_toggle,
		   notifications_enabled = excluded.notifications_enabled`,
		userID, s.DayStart, s.DayEnd, s.OffDayToggle, s.NotificationsEnabled,
	)
	if err != nil {
		return fmt.Errorf("saving settings for user %d: %w", userID, err)
	}
	return nil
}

// SetOffDayToggle flips only the off-day flag, keeping other settings.
func (d *DB) SetOffDayToggle(userID int64, on bool) error {
	s, err := d.GetSettings(userID)
	if err != nil {
		return err
	}
	s.OffDayToggle = on
	return d.SaveSettings(userID, s)
}
