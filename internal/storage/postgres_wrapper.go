package storage

import (
	"database/sql"
	"net/url"
	"strings"

	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/storage/postgres"
)

// PostgresStore adapts postgres.Store to the Provider interface.
type PostgresStore struct {
	store *postgres.Store
}

// NewPostgresStore creates a new PostgreSQL-backed store for the given
// connection string.
func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		store: postgres.New(connStr),
	}
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password. Credentials belong in the OS keyring, environment, or .pgpass,
// never on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, isSet := u.User.Password(); isSet {
				return true
			}
		}
		return false
	}

	for _, pair := range strings.Fields(connStr) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return true
		}
	}
	return false
}

// Lifecycle methods
func (s *PostgresStore) Init() error           { return s.store.Init() }
func (s *PostgresStore) Load() error           { return s.store.Load() }
func (s *PostgresStore) Close() error          { return s.store.Close() }
func (s *PostgresStore) GetConfigPath() string { return s.store.GetConfigPath() }

// GetDB exposes the underlying connection for diagnostics and migrations.
func (s *PostgresStore) GetDB() *sql.DB { return s.store.GetDB() }

// Settings methods
func (s *PostgresStore) GetSettings() (models.Settings, error) { return s.store.GetSettings() }
func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	return s.store.SaveSettings(settings)
}

// Habit methods
func (s *PostgresStore) AddHabit(habit models.Habit) error        { return s.store.AddHabit(habit) }
func (s *PostgresStore) GetHabit(id string) (models.Habit, error) { return s.store.GetHabit(id) }
func (s *PostgresStore) GetHabitByName(name string) (models.Habit, error) {
	return s.store.GetHabitByName(name)
}
func (s *PostgresStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	return s.store.GetAllHabits(includeArchived, includeDeleted)
}
func (s *PostgresStore) UpdateHabit(habit models.Habit) error { return s.store.UpdateHabit(habit) }
func (s *PostgresStore) ArchiveHabit(id string) error         { return s.store.ArchiveHabit(id) }
func (s *PostgresStore) UnarchiveHabit(id string) error       { return s.store.UnarchiveHabit(id) }
func (s *PostgresStore) DeleteHabit(id string) error          { return s.store.DeleteHabit(id) }
func (s *PostgresStore) RestoreHabit(id string) error         { return s.store.RestoreHabit(id) }
func (s *PostgresStore) PurgeHabit(id string) error           { return s.store.PurgeHabit(id) }

// Completion methods
func (s *PostgresStore) AddCompletion(completion models.Completion) error {
	return s.store.AddCompletion(completion)
}
func (s *PostgresStore) GetCompletion(id string) (models.Completion, error) {
	return s.store.GetCompletion(id)
}
func (s *PostgresStore) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	return s.store.GetCompletionsForHabit(habitID)
}
func (s *PostgresStore) GetLatestCompletion(habitID string) (models.Completion, error) {
	return s.store.GetLatestCompletion(habitID)
}
func (s *PostgresStore) GetAllCompletions(includeDeleted bool) ([]models.Completion, error) {
	return s.store.GetAllCompletions(includeDeleted)
}
func (s *PostgresStore) DeleteCompletion(id string) error  { return s.store.DeleteCompletion(id) }
func (s *PostgresStore) RestoreCompletion(id string) error { return s.store.RestoreCompletion(id) }
