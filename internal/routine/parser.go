package routine

import (
	"fmt"
	"regexp"
	"strings"
)

// dayMarker matches a bolded day header on its own line, e.g. "**Monday**".
// The capture group is the day name; anything before the first marker is
// preamble and gets discarded.
var dayMarker = regexp.MustCompile(`\*\*([A-Za-z]+)\*\*\n`)

// entryLine is the fixed activity grammar: "HH:MM - HH:MM: Label (Kind)".
// Anchored at the start only; trailing junk after the kind is tolerated.
var entryLine = regexp.MustCompile(`^(\d{2}:\d{2}) - (\d{2}:\d{2}):\s*(.*?)\s*\((.*?)\)`)

// Parse turns a model's free-text reply into a WeeklySchedule.
//
// The text is split on day markers; each day body is scanned for "* " list
// items matching the entry grammar. Individual lines that don't match are
// dropped, a day with no body yields an empty entry list, and day names are
// recorded as written, canonical or not. The only error is a structural one:
// the marker split producing a shape that can't be paired into
// (day, body) segments.
func Parse(text string) (WeeklySchedule, error) {
	names := dayMarker.FindAllStringSubmatch(text, -1)
	bodies := dayMarker.Split(text, -1)
	if len(bodies) != len(names)+1 {
		return nil, fmt.Errorf("day markers and bodies do not pair up: %d markers, %d segments", len(names), len(bodies))
	}

	sched := make(WeeklySchedule, len(names))
	for i, m := range names {
		day := m[1]
		body := strings.TrimSpace(bodies[i+1])
		entries := []Entry{}
		if body != "" {
			for _, line := range strings.Split(body, "\n") {
				line = strings.TrimSpace(line)
				if !strings.HasPrefix(line, "* ") {
					continue
				}
				if e, ok := parseEntry(strings.TrimPrefix(line, "* ")); ok {
					entries = append(entries, e)
				}
			}
		}
		sched[day] = entries
	}
	return sched, nil
}

// parseEntry matches one candidate activity line. Lines are kept only when
// the grammar matches, both clock values are valid, and the slot has
// positive length.
func parseEntry(line string) (Entry, bool) {
	m := entryLine.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	start, end := m[1], m[2]
	if !validClock(start) || !validClock(end) || start >= end {
		return Entry{}, false
	}
	return Entry{
		Activity: strings.TrimSpace(m[3]),
		Start:    start,
		End:      end,
		Kind:     strings.ToLower(strings.TrimSpace(m[4])),
	}, true
}

// validClock checks a zero-padded "HH:MM" value against a 24-hour clock.
func validClock(s string) bool {
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h < 24 && m < 60
}
