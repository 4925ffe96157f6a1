package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Periodicity is the cadence at which a habit recurs.
type Periodicity string

const (
	PeriodicityDaily   Periodicity = "daily"
	PeriodicityWeekly  Periodicity = "weekly"
	PeriodicityMonthly Periodicity = "monthly"
	PeriodicityYearly  Periodicity = "yearly"
)

// ErrInvalidPeriodicity is returned for any periodicity value outside the
// fixed set of daily, weekly, monthly, and yearly. Unknown values are
// rejected, never coerced to a default.
var ErrInvalidPeriodicity = errors.New("invalid periodicity")

// Periodicities lists every valid cadence in display order.
func Periodicities() []Periodicity {
	return []Periodicity{PeriodicityDaily, PeriodicityWeekly, PeriodicityMonthly, PeriodicityYearly}
}

// ParsePeriodicity converts user input to a Periodicity, ignoring case and
// surrounding whitespace.
func ParsePeriodicity(s string) (Periodicity, error) {
	switch Periodicity(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodicityDaily:
		return PeriodicityDaily, nil
	case PeriodicityWeekly:
		return PeriodicityWeekly, nil
	case PeriodicityMonthly:
		return PeriodicityMonthly, nil
	case PeriodicityYearly:
		return PeriodicityYearly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriodicity, s)
	}
}

// Valid reports whether p is one of the four known cadences.
func (p Periodicity) Valid() bool {
	switch p {
	case PeriodicityDaily, PeriodicityWeekly, PeriodicityMonthly, PeriodicityYearly:
		return true
	}
	return false
}

func (p Periodicity) String() string {
	return string(p)
}

// Habit represents a recurring practice to track
type Habit struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Periodicity Periodicity `json:"periodicity"`
	CreatedAt   time.Time   `json:"created_at"`
	ArchivedAt  *time.Time  `json:"archived_at,omitempty"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty"`
}

// Validate checks that the habit has a name and a known periodicity.
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("habit name is required")
	}
	if !h.Periodicity.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPeriodicity, h.Periodicity)
	}
	return nil
}

// IsArchived reports whether the habit is hidden from the default list view.
func (h *Habit) IsArchived() bool {
	return h.ArchivedAt != nil
}

// IsDeleted reports whether the habit is soft deleted.
func (h *Habit) IsDeleted() bool {
	return h.DeletedAt != nil
}
