// Package planner orchestrates routine generation: it snapshots the
// user's tasks, hobbies, and settings, asks the model for a schedule,
// parses the reply, and persists the result.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AkshayMandhan17/flexiplan/internal/db"
	"github.com/AkshayMandhan17/flexiplan/internal/llm"
	"github.com/AkshayMandhan17/flexiplan/internal/routine"
)

const defaultTimeout = 90 * time.Second

type Planner struct {
	db      *db.DB
	client  llm.Client
	timeout time.Duration
	now     func() time.Time // swapped in tests
}

func New(d *db.DB, client llm.Client, timeout time.Duration) *Planner {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Planner{db: d, client: client, timeout: timeout, now: time.Now}
}

// GenerateWeek builds a fresh weekly routine for the user and makes it
// their primary routine, replacing any previous one. The new routine is
// valid for [today, today+7d].
func (p *Planner) GenerateWeek(ctx context.Context, userID int64) (*db.Routine, error) {
	if _, err := p.db.GetUser(userID); err != nil {
		return nil, err
	}
	tasks, err := p.db.ListTasks(userID)
	if err != nil {
		return nil, err
	}
	hobbies, err := p.db.ListUserHobbies(userID)
	if err != nil {
		return nil, err
	}
	settings, err := p.db.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	prompt := routine.BuildWeeklyPrompt(taskSpecs(tasks), hobbySpecs(hobbies), settings.DaySettings())
	text, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	sched, err := routine.Parse(text)
	if err != nil {
		return nil, &ParseError{RawText: text, Err: err}
	}

	today := p.now()
	start := today.Format("2006-01-02")
	end := today.AddDate(0, 0, 7).Format("2006-01-02")
	id, err := p.db.ReplacePrimaryRoutine(userID, start, end, sched)
	if err != nil {
		return nil, err
	}
	return &db.Routine{ID: id, StartDate: start, EndDate: end, Schedule: sched}, nil
}

// RegenerateOffDay replaces only today's entries in the user's primary
// routine with a relaxed, hobbies-only plan, and returns the updated
// routine together with the weekday it regenerated. Every other day
// keeps its schedule untouched. The generation service is never called
// when no primary routine covers today.
func (p *Planner) RegenerateOffDay(ctx context.Context, userID int64) (*db.Routine, string, error) {
	today := p.now()
	date := today.Format("2006-01-02")
	day := today.Weekday().String()

	r, err := p.db.FindRoutineForDate(userID, date)
	if errors.Is(err, db.ErrNotFound) {
		return nil, "", ErrNoPrimaryRoutine
	}
	if err != nil {
		return nil, "", err
	}

	hobbies, err := p.db.ListUserHobbies(userID)
	if err != nil {
		return nil, "", err
	}
	settings, err := p.db.GetSettings(userID)
	if err != nil {
		return nil, "", err
	}

	prompt := routine.BuildOffDayPrompt(hobbySpecs(hobbies), settings.DaySettings(), day, date)
	text, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, "", err
	}

	sched, err := routine.Parse(text)
	if err != nil {
		return nil, "", &ParseError{RawText: text, Err: err}
	}
	entries := sched[day]
	if len(entries) == 0 {
		return nil, "", &DayNotProducedError{Day: day, RawText: text}
	}

	if err := p.db.UpdateRoutineDay(r.ID, day, entries); err != nil {
		return nil, "", err
	}
	r.Schedule[day] = entries
	return r, day, nil
}

// SetCompletion marks an activity in the user's primary routine as done
// or not done. Repeated calls with the same key overwrite the flag.
func (p *Planner) SetCompletion(userID int64, day, activity, kind string, done bool) error {
	r, err := p.db.GetPrimaryRoutine(userID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrNoPrimaryRoutine
	}
	if err != nil {
		return err
	}
	return p.db.UpsertCompletion(userID, r.ID, db.Completion{
		Day:       day,
		Activity:  activity,
		Kind:      strings.ToLower(strings.TrimSpace(kind)),
		Completed: done,
	})
}

// PrimaryRoutine returns the user's primary routine with completion
// flags overlaid on each entry. The stored schedule itself is never
// mutated; the overlay happens on a copy at read time.
func (p *Planner) PrimaryRoutine(userID int64) (*db.Routine, error) {
	r, err := p.db.GetPrimaryRoutine(userID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNoPrimaryRoutine
	}
	if err != nil {
		return nil, err
	}
	marks, err := p.db.ListCompletions(userID, r.ID)
	if err != nil {
		return nil, err
	}

	type key struct{ day, activity, kind string }
	done := make(map[key]bool, len(marks))
	for _, m := range marks {
		done[key{m.Day, m.Activity, m.Kind}] = m.Completed
	}

	overlaid := r.Schedule.Clone()
	for day, entries := range overlaid {
		for i, e := range entries {
			entries[i].Completed = done[key{day, e.Activity, e.Kind}]
		}
		overlaid[day] = entries
	}
	r.Schedule = overlaid
	return r, nil
}

// generate runs one model call under the planner's timeout. A transport
// failure (timeouts included) comes back as a GenerationError; a
// successful call with no text is ErrGenerationEmpty.
func (p *Planner) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := llm.Generate(ctx, p.client, prompt)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if text == "" {
		return "", ErrGenerationEmpty
	}
	return text, nil
}

func taskSpecs(tasks []db.Task) []routine.TaskSpec {
	specs := make([]routine.TaskSpec, len(tasks))
	for i, t := range tasks {
		specs[i] = t.TaskSpec
	}
	return specs
}

func hobbySpecs(hobbies []db.Hobby) []routine.HobbySpec {
	specs := make([]routine.HobbySpec, len(hobbies))
	for i, h := range hobbies {
		specs[i] = h.HobbySpec
	}
	return specs
}

// Describe renders a routine for human display, used by the CLI and the
// morning agenda.
func Describe(r *db.Routine) string {
	return fmt.Sprintf("Routine #%d (%s to %s)\n\n%s", r.ID, r.StartDate, r.EndDate, routine.Render(r.Schedule))
}
