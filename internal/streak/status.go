package streak

import (
	"fmt"
	"time"

	"github.com/julianstephens/stride/internal/models"
)

// State classifies a habit relative to a reference instant.
type State string

const (
	// StateDone means the habit was completed in the reference instant's period.
	StateDone State = "DONE"
	// StateDue means the current period is still open: either nothing was ever
	// completed, or the latest completion sits in the immediately preceding
	// period, so no full period has been missed yet.
	StateDue State = "DUE"
	// StateOverdue means at least one full period passed with no completion.
	StateOverdue State = "OVERDUE"
)

// Status is the evaluation of one habit at one reference instant.
type Status struct {
	State State
	// NextDue is the first instant of the period after the reference
	// instant's period, i.e. when the obligation renews.
	NextDue time.Time
}

// EvaluateStatus classifies a habit as done, due, or overdue at asOf. The
// decision compares the period of the most recent completion with asOf's
// period: same period is DONE, one period behind is DUE, further behind is
// OVERDUE. An empty history is DUE, never an error: the first completion is
// always still achievable. The result depends only on the three arguments.
func EvaluateStatus(p models.Periodicity, completions []time.Time, asOf time.Time) (Status, error) {
	keys, err := periodSet(p, completions)
	if err != nil {
		return Status{}, err
	}
	ref, err := PeriodKeyFor(asOf, p)
	if err != nil {
		return Status{}, fmt.Errorf("reference instant: %w", err)
	}

	status := Status{NextDue: ref.Next().Start(asOf.Location())}
	if len(keys) == 0 {
		status.State = StateDue
		return status, nil
	}

	last := keys[len(keys)-1]
	switch {
	case last == ref:
		status.State = StateDone
	case ref.Follows(last):
		status.State = StateDue
	case last.Before(ref):
		status.State = StateOverdue
	default:
		// Completions recorded ahead of asOf leave the current period
		// unsatisfied but nothing missed.
		status.State = StateDue
	}
	return status, nil
}
