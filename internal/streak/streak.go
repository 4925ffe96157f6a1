// Package streak converts a habit's completion timestamps into period
// buckets, streak lengths, and due/overdue status. Every entry point is a
// pure function of its arguments: the reference instant is always passed in
// explicitly, nothing is cached between calls, and identical inputs always
// produce identical results, so the package is safe for concurrent use
// without locking.
package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/stride/internal/models"
)

// StreakResult holds the two streak lengths computed from one habit's
// completion history.
type StreakResult struct {
	// Current counts consecutive completed periods ending at the reference
	// instant's period or the one immediately before it. Zero when the habit
	// has already missed a full period.
	Current int
	// Longest is the maximum run of consecutive completed periods anywhere
	// in the history. Always >= Current.
	Longest int
}

// ComputeStreak derives the current and longest streak for one habit.
// Completions may arrive unordered and may repeat within a period; a period
// counts once no matter how many completions land in it. The current streak
// stays alive while the period containing asOf is still open: a history
// whose latest completed period immediately precedes asOf's period has not
// yet missed anything.
func ComputeStreak(p models.Periodicity, completions []time.Time, asOf time.Time) (StreakResult, error) {
	keys, err := periodSet(p, completions)
	if err != nil {
		return StreakResult{}, err
	}
	ref, err := PeriodKeyFor(asOf, p)
	if err != nil {
		return StreakResult{}, fmt.Errorf("reference instant: %w", err)
	}
	if len(keys) == 0 {
		return StreakResult{}, nil
	}

	return StreakResult{
		Current: currentRun(keys, ref),
		Longest: longestRun(keys),
	}, nil
}

// periodSet maps completions to period keys, deduplicates, and sorts
// ascending. Invalid instants are rejected rather than skipped.
func periodSet(p models.Periodicity, completions []time.Time) ([]PeriodKey, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidPeriodicity, p)
	}

	seen := make(map[PeriodKey]struct{}, len(completions))
	keys := make([]PeriodKey, 0, len(completions))
	for _, c := range completions {
		k, err := PeriodKeyFor(c, p)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})
	return keys, nil
}

// longestRun scans the sorted, deduplicated keys for the longest run of
// consecutive periods.
func longestRun(keys []PeriodKey) int {
	if len(keys) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(keys); i++ {
		if keys[i].Follows(keys[i-1]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// currentRun counts backward from the latest completed period. The run is
// alive only if that period is ref or the period immediately before ref;
// anything older means at least one full period was missed.
func currentRun(keys []PeriodKey, ref PeriodKey) int {
	if len(keys) == 0 {
		return 0
	}
	last := keys[len(keys)-1]
	if last != ref && !ref.Follows(last) {
		return 0
	}
	run := 1
	for i := len(keys) - 2; i >= 0; i-- {
		if !keys[i+1].Follows(keys[i]) {
			break
		}
		run++
	}
	return run
}
