package streak

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/stride/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func mustKey(t *testing.T, instant time.Time, p models.Periodicity) PeriodKey {
	t.Helper()
	k, err := PeriodKeyFor(instant, p)
	if err != nil {
		t.Fatalf("PeriodKeyFor(%v, %v) error = %v", instant, p, err)
	}
	return k
}

func TestPeriodKeyFor_SameBucket(t *testing.T) {
	tests := []struct {
		name        string
		periodicity models.Periodicity
		a, b        time.Time
	}{
		{"daily same date different times", models.PeriodicityDaily, at(2025, time.November, 16, 0, 1, 0), at(2025, time.November, 16, 23, 59, 0)},
		{"weekly monday and sunday of one iso week", models.PeriodicityWeekly, date(2025, time.November, 10), date(2025, time.November, 16)},
		{"weekly midweek pair", models.PeriodicityWeekly, date(2025, time.November, 12), date(2025, time.November, 14)},
		{"weekly spanning new year within 2020-W53", models.PeriodicityWeekly, date(2020, time.December, 31), date(2021, time.January, 3)},
		{"weekly spanning new year within 2015-W53", models.PeriodicityWeekly, date(2015, time.December, 28), date(2016, time.January, 3)},
		{"monthly first and last day", models.PeriodicityMonthly, date(2025, time.February, 1), date(2025, time.February, 28)},
		{"yearly january and december", models.PeriodicityYearly, date(2025, time.January, 1), date(2025, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := mustKey(t, tt.a, tt.periodicity)
			kb := mustKey(t, tt.b, tt.periodicity)
			if ka != kb {
				t.Errorf("keys differ: %v vs %v", ka, kb)
			}
		})
	}
}

func TestPeriodKeyFor_DifferentBuckets(t *testing.T) {
	tests := []struct {
		name        string
		periodicity models.Periodicity
		a, b        time.Time
	}{
		{"daily adjacent dates", models.PeriodicityDaily, at(2025, time.November, 16, 23, 59, 0), at(2025, time.November, 17, 0, 0, 0)},
		{"weekly sunday and following monday", models.PeriodicityWeekly, date(2025, time.November, 16), date(2025, time.November, 17)},
		{"monthly across month end", models.PeriodicityMonthly, date(2025, time.January, 31), date(2025, time.February, 1)},
		{"yearly across new year", models.PeriodicityYearly, date(2025, time.December, 31), date(2026, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := mustKey(t, tt.a, tt.periodicity)
			kb := mustKey(t, tt.b, tt.periodicity)
			if ka == kb {
				t.Errorf("keys equal: %v", ka)
			}
		})
	}
}

func TestPeriodKeyFor_Adjacency(t *testing.T) {
	tests := []struct {
		name        string
		periodicity models.Periodicity
		prev, next  time.Time
	}{
		{"daily across month end", models.PeriodicityDaily, date(2025, time.January, 31), date(2025, time.February, 1)},
		{"daily across new year", models.PeriodicityDaily, date(2025, time.December, 31), date(2026, time.January, 1)},
		{"daily across leap day", models.PeriodicityDaily, date(2024, time.February, 29), date(2024, time.March, 1)},
		{"weekly plain rollover 52 to 1", models.PeriodicityWeekly, date(2025, time.December, 28), date(2025, time.December, 29)},
		{"weekly 2020-W53 to 2021-W01", models.PeriodicityWeekly, date(2021, time.January, 3), date(2021, time.January, 4)},
		{"weekly 2015-W53 to 2016-W01", models.PeriodicityWeekly, date(2016, time.January, 3), date(2016, time.January, 4)},
		{"monthly december to january", models.PeriodicityMonthly, date(2025, time.December, 15), date(2026, time.January, 15)},
		{"yearly consecutive", models.PeriodicityYearly, date(2025, time.June, 1), date(2026, time.June, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := mustKey(t, tt.prev, tt.periodicity)
			next := mustKey(t, tt.next, tt.periodicity)
			if !next.Follows(prev) {
				t.Errorf("%v does not follow %v", next, prev)
			}
			if prev.Next() != next {
				t.Errorf("Next() of %v = %v, want %v", prev, prev.Next(), next)
			}
		})
	}
}

// 2025-12-29 is the Monday of 2026-W01: late-December dates belong to the
// next ISO year's first week. The reverse assignment happens in January of a
// week-53 year.
func TestPeriodKeyFor_ISOYearBoundaryAssignment(t *testing.T) {
	lateDecember := mustKey(t, date(2025, time.December, 30), models.PeriodicityWeekly)
	if got := lateDecember.String(); got != "2026-W01" {
		t.Errorf("2025-12-30 week = %s, want 2026-W01", got)
	}

	earlyJanuary := mustKey(t, date(2021, time.January, 1), models.PeriodicityWeekly)
	if got := earlyJanuary.String(); got != "2020-W53" {
		t.Errorf("2021-01-01 week = %s, want 2020-W53", got)
	}
}

func TestPeriodKeyFor_Monotonicity(t *testing.T) {
	// Ascending instants, deliberately including pre-epoch dates, leap days,
	// and ISO week 53 spans.
	instants := []time.Time{
		date(1969, time.December, 28),
		date(1969, time.December, 31),
		date(1970, time.January, 1),
		date(1970, time.January, 5),
		date(2015, time.December, 28),
		date(2016, time.January, 3),
		date(2016, time.January, 4),
		date(2020, time.February, 29),
		date(2020, time.December, 31),
		at(2021, time.January, 1, 12, 30, 0),
		date(2021, time.January, 4),
		date(2025, time.November, 16),
		date(2026, time.January, 1),
	}

	for _, p := range models.Periodicities() {
		for i := 1; i < len(instants); i++ {
			prev := mustKey(t, instants[i-1], p)
			cur := mustKey(t, instants[i], p)
			if cur.Before(prev) {
				t.Errorf("%v: key(%v) > key(%v)", p, instants[i-1], instants[i])
			}
		}
	}
}

func TestPeriodKeyFor_CivilReadingInZone(t *testing.T) {
	// 00:30 on the 16th in UTC+13 is 11:30 on the 15th UTC. Instants are read
	// on their own civil calendar, so the zoned instant belongs to the 16th's
	// bucket while the equivalent UTC instant belongs to the 15th's.
	zone := time.FixedZone("UTC+13", 13*3600)
	zoned := time.Date(2025, time.November, 16, 0, 30, 0, 0, zone)

	k := mustKey(t, zoned, models.PeriodicityDaily)
	if got := k.String(); got != "2025-11-16" {
		t.Errorf("daily bucket = %s, want 2025-11-16", got)
	}

	utc := zoned.UTC() // 2025-11-15 11:30 UTC
	if utc.Day() != 15 {
		t.Fatalf("expected UTC date to fall on the 15th, got %v", utc)
	}
	if mustKey(t, utc, models.PeriodicityDaily) == k {
		t.Errorf("instants with different civil dates mapped to one bucket")
	}
}

func TestPeriodKey_Start(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*3600)
	tests := []struct {
		name        string
		periodicity models.Periodicity
		instant     time.Time
		want        time.Time
	}{
		{"daily", models.PeriodicityDaily, at(2025, time.November, 16, 15, 4, 0), date(2025, time.November, 16)},
		{"weekly lands on monday", models.PeriodicityWeekly, date(2025, time.November, 16), date(2025, time.November, 10)},
		{"weekly week 53", models.PeriodicityWeekly, date(2021, time.January, 1), date(2020, time.December, 28)},
		{"monthly", models.PeriodicityMonthly, date(2025, time.November, 16), date(2025, time.November, 1)},
		{"yearly", models.PeriodicityYearly, date(2025, time.November, 16), date(2025, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := mustKey(t, tt.instant, tt.periodicity)
			if got := k.Start(time.UTC); !got.Equal(tt.want) {
				t.Errorf("Start(UTC) = %v, want %v", got, tt.want)
			}

			// Start in another location keeps the civil date and midnight.
			zoned := k.Start(zone)
			y, m, d := zoned.Date()
			wy, wm, wd := tt.want.Date()
			if y != wy || m != wm || d != wd || zoned.Hour() != 0 {
				t.Errorf("Start(zone) = %v, want civil %04d-%02d-%02d midnight", zoned, wy, wm, wd)
			}

			// Round trip: the bucket's start is inside the bucket.
			if back := mustKey(t, k.Start(time.UTC), tt.periodicity); back != k {
				t.Errorf("round trip = %v, want %v", back, k)
			}
		})
	}
}

func TestPeriodKey_StartBeforeEpoch(t *testing.T) {
	k := mustKey(t, date(1969, time.December, 31), models.PeriodicityDaily)
	if got := k.Start(time.UTC); !got.Equal(date(1969, time.December, 31)) {
		t.Errorf("Start(UTC) = %v, want 1969-12-31", got)
	}

	// 1970-01-01 fell in the ISO week starting Monday 1969-12-29.
	wk := mustKey(t, date(1970, time.January, 1), models.PeriodicityWeekly)
	if got := wk.Start(time.UTC); !got.Equal(date(1969, time.December, 29)) {
		t.Errorf("week Start(UTC) = %v, want 1969-12-29", got)
	}
}

func TestPeriodKey_String(t *testing.T) {
	tests := []struct {
		name        string
		periodicity models.Periodicity
		instant     time.Time
		want        string
	}{
		{"daily", models.PeriodicityDaily, date(2025, time.November, 16), "2025-11-16"},
		{"weekly", models.PeriodicityWeekly, date(2025, time.November, 16), "2025-W46"},
		{"weekly week 53", models.PeriodicityWeekly, date(2020, time.December, 31), "2020-W53"},
		{"monthly", models.PeriodicityMonthly, date(2025, time.November, 16), "2025-11"},
		{"yearly", models.PeriodicityYearly, date(2025, time.November, 16), "2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustKey(t, tt.instant, tt.periodicity).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeriodKeyFor_Errors(t *testing.T) {
	if _, err := PeriodKeyFor(date(2025, time.November, 16), "fortnightly"); !errors.Is(err, models.ErrInvalidPeriodicity) {
		t.Errorf("unknown periodicity error = %v, want ErrInvalidPeriodicity", err)
	}
	if _, err := PeriodKeyFor(time.Time{}, models.PeriodicityDaily); !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("zero instant error = %v, want ErrInvalidTimestamp", err)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{0, 7, 0},
		{6, 7, 0},
		{7, 7, 1},
		{-1, 7, -1},
		{-7, 7, -1},
		{-8, 7, -2},
		{-4, 7, -1},
		{86400, 86400, 1},
		{-86400, 86400, -1},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
