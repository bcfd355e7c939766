package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationEmpty means the model call succeeded but returned no text.
	ErrGenerationEmpty = errors.New("generation service returned no text")

	// ErrNoPrimaryRoutine means the user has no active routine to work on.
	ErrNoPrimaryRoutine = errors.New("no primary routine")
)

// GenerationError wraps a transport or API failure talking to the model,
// including timeouts.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("calling generation service: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ParseError means the model's output could not be understood at the
// structural level. RawText carries the full model output so an operator
// can see exactly what came back.
type ParseError struct {
	RawText string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not understand model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DayNotProducedError means an off-day regeneration parsed cleanly but
// the target weekday came back missing or empty.
type DayNotProducedError struct {
	Day     string
	RawText string
}

func (e *DayNotProducedError) Error() string {
	return fmt.Sprintf("model output has no entries for %s", e.Day)
}
