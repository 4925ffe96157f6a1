package streak

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/stride/internal/models"
)

// ErrInvalidTimestamp is returned when a supplied instant cannot be read as
// a point on the civil calendar. The zero time.Time is the usual culprit: it
// is what a failed parse upstream leaves behind, and bucketing it silently
// would corrupt streak results without any signal to the caller.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// PeriodKey identifies the calendar bucket an instant falls into under a
// given periodicity. Two instants map to the same key iff they share the
// bucket, keys order chronologically by bucket start, and consecutive
// buckets differ by exactly one step. Keys from different periodicities are
// never compared.
type PeriodKey struct {
	cadence models.Periodicity
	index   int64
}

// PeriodKeyFor maps an instant to its period bucket. The instant is read on
// its own civil calendar: year, month, day, and ISO week are taken in the
// location the time.Time carries.
func PeriodKeyFor(t time.Time, p models.Periodicity) (PeriodKey, error) {
	if !p.Valid() {
		return PeriodKey{}, fmt.Errorf("%w: %q", models.ErrInvalidPeriodicity, p)
	}
	if t.IsZero() {
		return PeriodKey{}, fmt.Errorf("%w: zero instant", ErrInvalidTimestamp)
	}

	switch p {
	case models.PeriodicityDaily:
		return PeriodKey{cadence: p, index: dayIndexOf(t)}, nil
	case models.PeriodicityWeekly:
		// ISO weeks are Monday-start blocks of seven days. 1970-01-05 is the
		// Monday of week index 0, so shifting the day index by its offset and
		// flooring by 7 lands every day of a week, across any year boundary
		// and through week 53, on the same index.
		return PeriodKey{cadence: p, index: floorDiv(dayIndexOf(t)-mondayEpochOffset, 7)}, nil
	case models.PeriodicityMonthly:
		y, m, _ := t.Date()
		return PeriodKey{cadence: p, index: int64(y)*12 + int64(m) - 1}, nil
	default:
		return PeriodKey{cadence: p, index: int64(t.Year())}, nil
	}
}

// mondayEpochOffset is the day index of 1970-01-05, the first Monday on or
// after the Unix epoch.
const mondayEpochOffset = 4

// Periodicity returns the cadence the key was derived under.
func (k PeriodKey) Periodicity() models.Periodicity {
	return k.cadence
}

// Before reports whether k's bucket starts before other's. Both keys must
// come from the same periodicity.
func (k PeriodKey) Before(other PeriodKey) bool {
	return k.index < other.index
}

// Next returns the key of the immediately following calendar bucket.
func (k PeriodKey) Next() PeriodKey {
	return PeriodKey{cadence: k.cadence, index: k.index + 1}
}

// Follows reports whether k is the bucket immediately after prev.
func (k PeriodKey) Follows(prev PeriodKey) bool {
	return k.cadence == prev.cadence && k.index == prev.index+1
}

// Start returns the first instant of the bucket, at civil midnight in loc.
func (k PeriodKey) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	switch k.cadence {
	case models.PeriodicityDaily:
		return time.Date(1970, time.January, 1+int(k.index), 0, 0, 0, 0, loc)
	case models.PeriodicityWeekly:
		return time.Date(1970, time.January, 1+int(7*k.index+mondayEpochOffset), 0, 0, 0, 0, loc)
	case models.PeriodicityMonthly:
		year := floorDiv(k.index, 12)
		month := k.index - year*12
		return time.Date(int(year), time.Month(month+1), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(int(k.index), time.January, 1, 0, 0, 0, 0, loc)
	}
}

// String renders the bucket in a stable human-readable form: 2025-11-16,
// 2025-W46, 2025-11, or 2025.
func (k PeriodKey) String() string {
	switch k.cadence {
	case models.PeriodicityDaily:
		return k.Start(time.UTC).Format("2006-01-02")
	case models.PeriodicityWeekly:
		isoYear, isoWeek := k.Start(time.UTC).ISOWeek()
		return fmt.Sprintf("%04d-W%02d", isoYear, isoWeek)
	case models.PeriodicityMonthly:
		return k.Start(time.UTC).Format("2006-01")
	default:
		return k.Start(time.UTC).Format("2006")
	}
}

// dayIndexOf returns the number of civil days between the instant's date and
// 1970-01-01, negative for earlier dates. The date is read in the instant's
// own location; converting it to midnight UTC makes the count independent of
// zone offsets and daylight saving.
func dayIndexOf(t time.Time) int64 {
	y, m, d := t.Date()
	return floorDiv(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix(), 86400)
}

// floorDiv divides rounding toward negative infinity, which Go's integer
// division does not do for negative operands.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
