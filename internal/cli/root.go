package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/stride/internal/backup"
	"github.com/julianstephens/stride/internal/logger"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/storage"
	"github.com/julianstephens/stride/internal/streak"
	"github.com/julianstephens/stride/internal/utils"
)

type Context struct {
	Store storage.Provider
}

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ColorizeState renders a habit state with its conventional color:
// DONE green, DUE yellow, OVERDUE red.
func ColorizeState(state streak.State) string {
	switch state {
	case streak.StateDone:
		return doneStyle.Render(string(state))
	case streak.StateDue:
		return dueStyle.Render(string(state))
	case streak.StateOverdue:
		return overdueStyle.Render(string(state))
	default:
		return string(state)
	}
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	// Backups cover the local database file only
	if _, ok := c.Store.(*storage.SQLiteStore); !ok {
		return
	}
	if settings, err := c.Store.GetSettings(); err == nil && !settings.AutoBackup {
		return
	}

	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Now returns the current instant in the configured timezone.
func (c *Context) Now() (time.Time, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return utils.NowFromSettings(settings)
}

// Location returns the configured timezone's location.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return utils.LoadLocation(settings.Timezone)
}

// ResolveHabit finds a live habit by exact name, falling back to ID.
func (c *Context) ResolveHabit(nameOrID string) (models.Habit, error) {
	habit, err := c.Store.GetHabitByName(nameOrID)
	if err == nil {
		return habit, nil
	}

	habit, err = c.Store.GetHabit(nameOrID)
	if err == nil && habit.DeletedAt == nil {
		return habit, nil
	}

	return models.Habit{}, fmt.Errorf("habit %q not found", nameOrID)
}

// Evaluation bundles everything the presentation layer shows for one habit
// at one reference instant.
type Evaluation struct {
	Streak         streak.StreakResult
	Status         streak.Status
	LastCompletion *time.Time
}

// Evaluate loads a habit's completions and computes its streaks and status
// at asOf.
func (c *Context) Evaluate(habit models.Habit, asOf time.Time) (Evaluation, error) {
	completions, err := c.Store.GetCompletionsForHabit(habit.ID)
	if err != nil {
		return Evaluation{}, err
	}

	instants := models.Instants(completions)

	result, err := streak.ComputeStreak(habit.Periodicity, instants, asOf)
	if err != nil {
		return Evaluation{}, fmt.Errorf("habit %q: %w", habit.Name, err)
	}
	status, err := streak.EvaluateStatus(habit.Periodicity, instants, asOf)
	if err != nil {
		return Evaluation{}, fmt.Errorf("habit %q: %w", habit.Name, err)
	}

	eval := Evaluation{Streak: result, Status: status}
	for i := range instants {
		if eval.LastCompletion == nil || instants[i].After(*eval.LastCompletion) {
			eval.LastCompletion = &instants[i]
		}
	}

	return eval, nil
}
