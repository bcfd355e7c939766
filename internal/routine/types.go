package routine

import (
	"fmt"
	"regexp"
)

// Weekdays lists the seven canonical day names in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsWeekday reports whether name is one of the seven canonical day names.
func IsWeekday(name string) bool {
	for _, d := range Weekdays {
		if d == name {
			return true
		}
	}
	return false
}

// Priority levels for tasks.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)

// TaskSpec describes one task the user wants scheduled. TimeRequired is a
// duration ("HH:MM:SS"), not a time of day. FixedTimeSlot is the mandatory
// start time of day for fixed-time tasks.
type TaskSpec struct {
	Name           string   `json:"task_name"`
	Description    string   `json:"description,omitempty"`
	TimeRequired   string   `json:"time_required"`
	DaysAssociated []string `json:"days_associated"`
	Priority       string   `json:"priority"`
	IsFixedTime    bool     `json:"is_fixed_time"`
	FixedTimeSlot  string   `json:"fixed_time_slot,omitempty"`
}

func (t TaskSpec) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if t.TimeRequired == "" || !clockPattern.MatchString(t.TimeRequired) {
		return fmt.Errorf("task %q: time_required must be HH:MM:SS, got %q", t.Name, t.TimeRequired)
	}
	if t.IsFixedTime && t.FixedTimeSlot == "" {
		return fmt.Errorf("task %q: fixed-time task needs a fixed_time_slot", t.Name)
	}
	if t.FixedTimeSlot != "" && !clockPattern.MatchString(t.FixedTimeSlot) {
		return fmt.Errorf("task %q: fixed_time_slot must be HH:MM:SS, got %q", t.Name, t.FixedTimeSlot)
	}
	switch t.Priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return fmt.Errorf("task %q: priority must be High, Medium or Low, got %q", t.Name, t.Priority)
	}
	for _, d := range t.DaysAssociated {
		if !IsWeekday(d) {
			return fmt.Errorf("task %q: unknown weekday %q", t.Name, d)
		}
	}
	return nil
}

// HobbySpec describes a hobby to weave into the week. Generation may pick a
// default duration; none is required here.
type HobbySpec struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// DaySettings bounds every day of the week. Times are "HH:MM:SS".
type DaySettings struct {
	DayStart string `json:"day_start_time"`
	DayEnd   string `json:"day_end_time"`
}

func (s DaySettings) Validate() error {
	if !clockPattern.MatchString(s.DayStart) || !clockPattern.MatchString(s.DayEnd) {
		return fmt.Errorf("day window times must be HH:MM:SS, got %q and %q", s.DayStart, s.DayEnd)
	}
	// Zero-padded clock strings compare correctly as text.
	if s.DayStart >= s.DayEnd {
		return fmt.Errorf("day must start before it ends: %s >= %s", s.DayStart, s.DayEnd)
	}
	return nil
}

// Entry is one scheduled activity within a day. Start and End are "HH:MM".
// Kind is free text, lower-cased by the parser ("task", "hobby", ...).
type Entry struct {
	Activity  string `json:"activity"`
	Start     string `json:"start_time"`
	End       string `json:"end_time"`
	Kind      string `json:"type"`
	Completed bool   `json:"is_completed"`
}

// WeeklySchedule maps a weekday name to its entries in the order they
// appeared in the source text.
type WeeklySchedule map[string][]Entry

// Clone returns a deep copy, so callers can annotate entries without
// touching the original.
func (s WeeklySchedule) Clone() WeeklySchedule {
	out := make(WeeklySchedule, len(s))
	for day, entries := range s {
		copied := make([]Entry, len(entries))
		copy(copied, entries)
		out[day] = copied
	}
	return out
}
