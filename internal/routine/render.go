package routine

import (
	"fmt"
	"sort"
	"strings"
)

// Render writes a schedule back out in the same text grammar the generation
// model is asked to produce. Parsing the result yields an equal schedule.
func Render(s WeeklySchedule) string {
	var b strings.Builder
	for _, day := range dayOrder(s) {
		fmt.Fprintf(&b, "**%s**\n", day)
		for _, e := range s[day] {
			b.WriteString(renderEntry(e))
		}
	}
	return b.String()
}

// RenderDay writes a single day section.
func RenderDay(day string, entries []Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", day)
	for _, e := range entries {
		b.WriteString(renderEntry(e))
	}
	return b.String()
}

func renderEntry(e Entry) string {
	return fmt.Sprintf("* %s - %s: %s (%s)\n", e.Start, e.End, e.Activity, e.Kind)
}

// dayOrder returns the schedule's days with the canonical seven first, in
// week order, followed by any non-canonical names sorted for stability.
func dayOrder(s WeeklySchedule) []string {
	var days []string
	for _, d := range Weekdays {
		if _, ok := s[d]; ok {
			days = append(days, d)
		}
	}
	var extra []string
	for d := range s {
		if !IsWeekday(d) {
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	return append(days, extra...)
}
