package models

import (
	"errors"
	"time"
)

// Completion represents a single instant at which a habit was marked done.
// Several completions may land in the same period; the streak engine counts
// the period once.
type Completion struct {
	ID          string     `json:"id"`
	HabitID     string     `json:"habit_id"`
	CompletedAt time.Time  `json:"completed_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Validate checks that the completion references a habit and carries a
// usable instant.
func (c *Completion) Validate() error {
	if c.HabitID == "" {
		return errors.New("completion habit id is required")
	}
	if c.CompletedAt.IsZero() {
		return errors.New("completion timestamp is required")
	}
	return nil
}

// Instants extracts the completion timestamps in input order.
func Instants(completions []Completion) []time.Time {
	out := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		out = append(out, c.CompletedAt)
	}
	return out
}
