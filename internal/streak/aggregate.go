package streak

import (
	"fmt"
	"time"

	"github.com/julianstephens/stride/internal/models"
)

// History pairs a habit's cadence with its completion instants, the two
// inputs the engine needs for cross-habit queries.
type History struct {
	Periodicity models.Periodicity
	Completions []time.Time
}

// LongestStreakForHabit returns the longest run of consecutive completed
// periods in one habit's history. Unlike the current streak it does not
// depend on a reference instant.
func LongestStreakForHabit(p models.Periodicity, completions []time.Time) (int, error) {
	keys, err := periodSet(p, completions)
	if err != nil {
		return 0, err
	}
	return longestRun(keys), nil
}

// LongestStreakAcrossHabits returns the maximum longest streak over a
// collection of habit histories, 0 for an empty collection. Each habit is
// scored independently under its own periodicity.
func LongestStreakAcrossHabits(histories []History) (int, error) {
	max := 0
	for _, h := range histories {
		longest, err := LongestStreakForHabit(h.Periodicity, h.Completions)
		if err != nil {
			return 0, err
		}
		if longest > max {
			max = longest
		}
	}
	return max, nil
}

// GroupByPeriodicity partitions habits by cadence, preserving each habit's
// relative order within its group.
func GroupByPeriodicity(habits []models.Habit) (map[models.Periodicity][]models.Habit, error) {
	groups := make(map[models.Periodicity][]models.Habit)
	for _, h := range habits {
		if !h.Periodicity.Valid() {
			return nil, fmt.Errorf("%w: habit %q has periodicity %q", models.ErrInvalidPeriodicity, h.Name, h.Periodicity)
		}
		groups[h.Periodicity] = append(groups[h.Periodicity], h)
	}
	return groups, nil
}
