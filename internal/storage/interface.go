package storage

import "github.com/julianstephens/stride/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error
	// PurgeHabit permanently removes a habit and its completion history.
	PurgeHabit(id string) error

	// Completions
	AddCompletion(models.Completion) error
	GetCompletion(id string) (models.Completion, error)
	// GetCompletionsForHabit returns the habit's completions ordered by
	// completion instant, oldest first.
	GetCompletionsForHabit(habitID string) ([]models.Completion, error)
	GetLatestCompletion(habitID string) (models.Completion, error)
	GetAllCompletions(includeDeleted bool) ([]models.Completion, error)
	DeleteCompletion(id string) error
	RestoreCompletion(id string) error

	// Utils
	GetConfigPath() string
}
