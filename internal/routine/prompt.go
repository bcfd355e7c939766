package routine

import (
	"encoding/json"
	"fmt"
	"strings"
)

const weeklyInstructions = `Generate a detailed and strictly structured weekly routine in a human-readable TEXT format, based ONLY on the following user-provided tasks and hobbies. Do NOT add any activities that are not explicitly listed.

You will be given three blocks of data: User Tasks, User Hobbies, and User Settings.

User Tasks is a list of task objects with these fields:
* task_name: (String) The name of the task.
* description: (String, optional) A brief description.
* time_required: (String, "HH:MM:SS") The DURATION to allocate for the task. This is not a start or end time.
* days_associated: (List of weekday names) The days this task should be scheduled.
* priority: (String - "High", "Medium", "Low") The task's priority.
* is_fixed_time: (Boolean) Whether the task MUST start at a specific time.
* fixed_time_slot: (String, "HH:MM:SS", only when is_fixed_time is true) The exact time of day the task must start.

Rules for tasks:
* When is_fixed_time is true, the task starts exactly at fixed_time_slot and occupies time_required from there.
* Flexible tasks (is_fixed_time false) go on their days_associated without overlapping any fixed-time task. Place higher-priority flexible tasks first.
* Every task in the list must appear in the routine on its specified days.

User Hobbies is a list of objects with:
* name: (String) The hobby's name.
* category: (String) Its category, e.g. "Sports", "Music".

Rules for hobbies:
* Every hobby must appear at least once across the week, spread over different days.
* Pick a reasonable duration for each hobby (default to one hour) and avoid conflicts with fixed-time tasks.

User Settings contains:
* day_start_time and day_end_time: (Strings, "HH:MM:SS") The bounds of the user's day.

Rules for settings:
* No activity may start before day_start_time or end after day_end_time.
* Produce a section for EVERY day of the week, Monday through Sunday, even when a day has no mandatory items.

Output format:
Return the weekly routine as plain TEXT. Mark each day with its name in bold markdown on its own line (e.g. **Monday**). Under each day, list activities as markdown list items, one per line, in exactly this shape:

* 07:00 - 08:00: Morning Yoga (Hobby)

That is: start time, " - ", end time, ": ", activity name, then the activity type in parentheses, with both times as zero-padded 24-hour HH:MM. Do NOT return JSON or any other structured data. Plain TEXT only, in the format described above.`

const offDayInstructions = `Today is the user's off day. Generate a relaxed one-day routine built ONLY from the user's hobbies listed below. Do not schedule any tasks and do not invent activities that are not in the list.

Each hobby object has a name and a category. Spread the hobbies comfortably through the day, picking a reasonable duration for each (default to one hour), with unscheduled breathing room between them.

User Settings contains day_start_time and day_end_time ("HH:MM:SS"); every activity must fall inside that window.

Output format:
Return plain TEXT for the single target day only. Start with the day name in bold markdown on its own line (e.g. **%s**), then one markdown list item per activity in exactly this shape:

* 07:00 - 08:00: Morning Yoga (Hobby)

Both times are zero-padded 24-hour HH:MM. Do NOT return JSON or any other structured data, and do NOT produce sections for any other day.`

// BuildWeeklyPrompt produces the full-week generation instruction. Pure
// function: the snapshot is embedded as JSON so the model sees exactly the
// machine-readable fields.
func BuildWeeklyPrompt(tasks []TaskSpec, hobbies []HobbySpec, settings DaySettings) string {
	if tasks == nil {
		tasks = []TaskSpec{}
	}
	if hobbies == nil {
		hobbies = []HobbySpec{}
	}
	var b strings.Builder
	b.WriteString(weeklyInstructions)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "User Tasks: %s\n", mustJSON(tasks))
	fmt.Fprintf(&b, "User Hobbies: %s\n", mustJSON(hobbies))
	fmt.Fprintf(&b, "User Settings: %s\n", mustJSON(settings))
	return b.String()
}

// BuildOffDayPrompt produces the single-day regeneration instruction for the
// given weekday and date. Hobbies only; same day window, same output grammar.
func BuildOffDayPrompt(hobbies []HobbySpec, settings DaySettings, day, date string) string {
	if hobbies == nil {
		hobbies = []HobbySpec{}
	}
	var b strings.Builder
	fmt.Fprintf(&b, offDayInstructions, day)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Target Day: %s (%s)\n", day, date)
	fmt.Fprintf(&b, "User Hobbies: %s\n", mustJSON(hobbies))
	fmt.Fprintf(&b, "User Settings: %s\n", mustJSON(settings))
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.Marshal(v) // plain structs and slices; marshal cannot fail
	return string(b)
}
