package streak

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/stride/internal/models"
)

// daysFrom returns n consecutive daily instants starting at start.
func daysFrom(start time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

func TestComputeStreak_Daily(t *testing.T) {
	// Mirrors the reference history: a daily habit completed every day from
	// 2025-10-20 through 2025-11-16, evaluated on the evening of the last day.
	asOf := at(2025, time.November, 16, 20, 0, 0)
	tests := []struct {
		name        string
		completions []time.Time
		asOf        time.Time
		want        StreakResult
	}{
		{
			name:        "no completions",
			completions: nil,
			asOf:        asOf,
			want:        StreakResult{Current: 0, Longest: 0},
		},
		{
			name:        "single completion in current period",
			completions: []time.Time{at(2025, time.November, 16, 8, 0, 0)},
			asOf:        asOf,
			want:        StreakResult{Current: 1, Longest: 1},
		},
		{
			name:        "28 consecutive days ending today",
			completions: daysFrom(date(2025, time.October, 20), 28),
			asOf:        asOf,
			want:        StreakResult{Current: 28, Longest: 28},
		},
		{
			name:        "28 consecutive days ending yesterday still alive",
			completions: daysFrom(date(2025, time.October, 19), 28),
			asOf:        asOf,
			want:        StreakResult{Current: 28, Longest: 28},
		},
		{
			name:        "run ended two days ago is broken",
			completions: daysFrom(date(2025, time.October, 18), 28),
			asOf:        asOf,
			want:        StreakResult{Current: 0, Longest: 28},
		},
		{
			name: "gap splits runs and current restarts",
			completions: append(
				daysFrom(date(2025, time.November, 7), 5), // days 1-5
				date(2025, time.November, 16),             // day 10
			),
			asOf: asOf,
			want: StreakResult{Current: 1, Longest: 5},
		},
		{
			name: "several completions in one day count once",
			completions: []time.Time{
				at(2025, time.November, 15, 7, 0, 0),
				at(2025, time.November, 15, 22, 0, 0),
				at(2025, time.November, 16, 9, 0, 0),
				at(2025, time.November, 16, 9, 5, 0),
			},
			asOf: asOf,
			want: StreakResult{Current: 2, Longest: 2},
		},
		{
			name: "unordered input",
			completions: []time.Time{
				date(2025, time.November, 16),
				date(2025, time.November, 14),
				date(2025, time.November, 15),
			},
			asOf: asOf,
			want: StreakResult{Current: 3, Longest: 3},
		},
		{
			name:        "only future completions leave current dead",
			completions: []time.Time{date(2025, time.November, 20)},
			asOf:        asOf,
			want:        StreakResult{Current: 0, Longest: 1},
		},
		{
			name:        "history far in the past keeps longest",
			completions: daysFrom(date(2024, time.March, 1), 10),
			asOf:        asOf,
			want:        StreakResult{Current: 0, Longest: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStreak(models.PeriodicityDaily, tt.completions, tt.asOf)
			if err != nil {
				t.Fatalf("ComputeStreak() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeStreak() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeStreak_Weekly(t *testing.T) {
	tests := []struct {
		name        string
		completions []time.Time
		asOf        time.Time
		want        StreakResult
	}{
		{
			name: "four consecutive iso weeks",
			completions: []time.Time{
				date(2025, time.October, 21),  // 2025-W43
				date(2025, time.October, 29),  // 2025-W44
				date(2025, time.November, 3),  // 2025-W45
				date(2025, time.November, 11), // 2025-W46
			},
			asOf: at(2025, time.November, 15, 12, 0, 0), // Saturday of W46
			want: StreakResult{Current: 4, Longest: 4},
		},
		{
			name: "completion last week keeps streak alive",
			completions: []time.Time{
				date(2025, time.October, 29), // W44
				date(2025, time.November, 5), // W45
			},
			asOf: at(2025, time.November, 12, 12, 0, 0), // W46, nothing yet
			want: StreakResult{Current: 2, Longest: 2},
		},
		{
			name: "week fully missed breaks the run",
			completions: []time.Time{
				date(2025, time.October, 21), // W43
				date(2025, time.October, 29), // W44
			},
			asOf: at(2025, time.November, 12, 12, 0, 0), // W46, W45 missed
			want: StreakResult{Current: 0, Longest: 2},
		},
		{
			name: "streak across 2020-W53 into 2021",
			completions: []time.Time{
				date(2020, time.December, 16), // 2020-W51
				date(2020, time.December, 23), // 2020-W52
				date(2021, time.January, 1),   // 2020-W53
				date(2021, time.January, 5),   // 2021-W01
			},
			asOf: at(2021, time.January, 8, 12, 0, 0), // Friday of 2021-W01
			want: StreakResult{Current: 4, Longest: 4},
		},
		{
			name: "streak across a plain 52-week rollover",
			completions: []time.Time{
				date(2025, time.December, 23), // 2025-W52
				date(2025, time.December, 30), // 2026-W01
			},
			asOf: at(2026, time.January, 2, 12, 0, 0), // Friday of 2026-W01
			want: StreakResult{Current: 2, Longest: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStreak(models.PeriodicityWeekly, tt.completions, tt.asOf)
			if err != nil {
				t.Fatalf("ComputeStreak() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeStreak() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeStreak_MonthlyAndYearly(t *testing.T) {
	tests := []struct {
		name        string
		periodicity models.Periodicity
		completions []time.Time
		asOf        time.Time
		want        StreakResult
	}{
		{
			name:        "monthly run across year end",
			periodicity: models.PeriodicityMonthly,
			completions: []time.Time{
				date(2025, time.November, 20),
				date(2025, time.December, 2),
				date(2026, time.January, 28),
			},
			asOf: at(2026, time.January, 30, 9, 0, 0),
			want: StreakResult{Current: 3, Longest: 3},
		},
		{
			name:        "monthly completion two months back is broken",
			periodicity: models.PeriodicityMonthly,
			completions: []time.Time{date(2025, time.September, 10)},
			asOf:        at(2025, time.November, 16, 9, 0, 0),
			want:        StreakResult{Current: 0, Longest: 1},
		},
		{
			name:        "yearly consecutive years",
			periodicity: models.PeriodicityYearly,
			completions: []time.Time{
				date(2023, time.June, 1),
				date(2024, time.February, 10),
				date(2025, time.August, 30),
			},
			asOf: at(2025, time.November, 16, 9, 0, 0),
			want: StreakResult{Current: 3, Longest: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStreak(tt.periodicity, tt.completions, tt.asOf)
			if err != nil {
				t.Fatalf("ComputeStreak() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeStreak() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeStreak_LongestNeverBelowCurrent(t *testing.T) {
	asOf := at(2025, time.November, 16, 20, 0, 0)
	histories := [][]time.Time{
		nil,
		{date(2025, time.November, 16)},
		daysFrom(date(2025, time.October, 20), 28),
		append(daysFrom(date(2025, time.September, 1), 12), daysFrom(date(2025, time.November, 14), 3)...),
		{date(2025, time.November, 1), date(2025, time.November, 16)},
	}

	for _, completions := range histories {
		got, err := ComputeStreak(models.PeriodicityDaily, completions, asOf)
		if err != nil {
			t.Fatalf("ComputeStreak() error = %v", err)
		}
		if got.Longest < got.Current {
			t.Errorf("Longest %d < Current %d for %d completions", got.Longest, got.Current, len(completions))
		}
	}
}

func TestComputeStreak_Pure(t *testing.T) {
	completions := daysFrom(date(2025, time.October, 20), 28)
	asOf := at(2025, time.November, 16, 20, 0, 0)

	first, err := ComputeStreak(models.PeriodicityDaily, completions, asOf)
	if err != nil {
		t.Fatalf("ComputeStreak() error = %v", err)
	}
	second, err := ComputeStreak(models.PeriodicityDaily, completions, asOf)
	if err != nil {
		t.Fatalf("ComputeStreak() error = %v", err)
	}
	if first != second {
		t.Errorf("repeated call differed: %+v vs %+v", first, second)
	}
}

func TestComputeStreak_Errors(t *testing.T) {
	asOf := at(2025, time.November, 16, 20, 0, 0)

	if _, err := ComputeStreak("fortnightly", nil, asOf); !errors.Is(err, models.ErrInvalidPeriodicity) {
		t.Errorf("invalid periodicity error = %v, want ErrInvalidPeriodicity", err)
	}
	if _, err := ComputeStreak(models.PeriodicityDaily, []time.Time{{}}, asOf); !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("zero completion error = %v, want ErrInvalidTimestamp", err)
	}
	if _, err := ComputeStreak(models.PeriodicityDaily, nil, time.Time{}); !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("zero asOf error = %v, want ErrInvalidTimestamp", err)
	}
}
