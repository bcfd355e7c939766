package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AkshayMandhan17/flexiplan/internal/planner"
	"github.com/AkshayMandhan17/flexiplan/internal/routine"
)

// BuildAgendaPrompt creates the prompt for the scheduled morning
// message: today's plan from the primary routine, with completion marks.
func BuildAgendaPrompt(p *planner.Planner, userID int64, now time.Time) (string, error) {
	day := now.Weekday().String()

	var b strings.Builder
	fmt.Fprintf(&b, "Good morning! It's %s, %s.\n\n", day, now.Format("2006-01-02"))

	r, err := p.PrimaryRoutine(userID)
	if errors.Is(err, planner.ErrNoPrimaryRoutine) {
		b.WriteString("The user has no routine yet. Offer to generate one from their tasks and hobbies.")
		return b.String(), nil
	}
	if err != nil {
		return "", fmt.Errorf("building agenda context: %w", err)
	}

	entries := r.Schedule[day]
	if len(entries) == 0 {
		b.WriteString("## Today's Plan\nNothing scheduled for today.\n")
	} else {
		b.WriteString("## Today's Plan\n")
		b.WriteString(routine.RenderDay(day, entries))
		var done int
		for _, e := range entries {
			if e.Completed {
				done++
			}
		}
		fmt.Fprintf(&b, "\n%d of %d activities already marked done.\n", done, len(entries))
	}

	b.WriteString("\nBased on the above, send the user a short morning agenda. Lead with the first upcoming activity. Keep it friendly and brief.")
	return b.String(), nil
}
