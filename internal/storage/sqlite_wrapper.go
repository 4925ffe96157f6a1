package storage

import (
	"database/sql"

	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to the Provider interface.
type SQLiteStore struct {
	store *sqlite.Store
	db    *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed store at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		store: sqlite.NewStore(path),
	}
}

// Lifecycle methods
func (s *SQLiteStore) Init() error {
	err := s.store.Init()
	if err == nil {
		s.db = s.store.GetDB()
	}
	return err
}

func (s *SQLiteStore) Load() error {
	err := s.store.Load()
	if err == nil {
		s.db = s.store.GetDB()
	}
	return err
}

func (s *SQLiteStore) Close() error          { return s.store.Close() }
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }
func (s *SQLiteStore) GetDB() *sql.DB {
	if s.db == nil {
		s.db = s.store.GetDB()
	}
	return s.db
}

// Settings methods
func (s *SQLiteStore) GetSettings() (models.Settings, error) { return s.store.GetSettings() }
func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	return s.store.SaveSettings(settings)
}

// Habit methods
func (s *SQLiteStore) AddHabit(habit models.Habit) error        { return s.store.AddHabit(habit) }
func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) { return s.store.GetHabit(id) }
func (s *SQLiteStore) GetHabitByName(name string) (models.Habit, error) {
	return s.store.GetHabitByName(name)
}
func (s *SQLiteStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	return s.store.GetAllHabits(includeArchived, includeDeleted)
}
func (s *SQLiteStore) UpdateHabit(habit models.Habit) error { return s.store.UpdateHabit(habit) }
func (s *SQLiteStore) ArchiveHabit(id string) error         { return s.store.ArchiveHabit(id) }
func (s *SQLiteStore) UnarchiveHabit(id string) error       { return s.store.UnarchiveHabit(id) }
func (s *SQLiteStore) DeleteHabit(id string) error          { return s.store.DeleteHabit(id) }
func (s *SQLiteStore) RestoreHabit(id string) error         { return s.store.RestoreHabit(id) }
func (s *SQLiteStore) PurgeHabit(id string) error           { return s.store.PurgeHabit(id) }

// Completion methods
func (s *SQLiteStore) AddCompletion(completion models.Completion) error {
	return s.store.AddCompletion(completion)
}
func (s *SQLiteStore) GetCompletion(id string) (models.Completion, error) {
	return s.store.GetCompletion(id)
}
func (s *SQLiteStore) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	return s.store.GetCompletionsForHabit(habitID)
}
func (s *SQLiteStore) GetLatestCompletion(habitID string) (models.Completion, error) {
	return s.store.GetLatestCompletion(habitID)
}
func (s *SQLiteStore) GetAllCompletions(includeDeleted bool) ([]models.Completion, error) {
	return s.store.GetAllCompletions(includeDeleted)
}
func (s *SQLiteStore) DeleteCompletion(id string) error  { return s.store.DeleteCompletion(id) }
func (s *SQLiteStore) RestoreCompletion(id string) error { return s.store.RestoreCompletion(id) }
