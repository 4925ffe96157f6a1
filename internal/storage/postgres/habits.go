package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/stride/internal/models"
)

const habitColumns = "id, name, description, periodicity, created_at, archived_at, deleted_at"

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = $1", id)
	habit, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	return habit, err
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE name = $1 AND deleted_at IS NULL", name)
	habit, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit not found: %s", name)
	}
	return habit, err
}

func (s *Store) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits"
	conditions := []string{}
	if !includeDeleted {
		conditions = append(conditions, "deleted_at IS NULL")
	}
	if !includeArchived {
		conditions = append(conditions, "archived_at IS NULL")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	var archivedAt, deletedAt sql.NullString
	if habit.ArchivedAt != nil {
		archivedAt = sql.NullString{String: habit.ArchivedAt.Format(time.RFC3339), Valid: true}
	}
	if habit.DeletedAt != nil {
		deletedAt = sql.NullString{String: habit.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, description, periodicity, created_at, archived_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			periodicity = EXCLUDED.periodicity,
			created_at = EXCLUDED.created_at,
			archived_at = EXCLUDED.archived_at,
			deleted_at = EXCLUDED.deleted_at
	`, habit.ID, habit.Name, habit.Description, string(habit.Periodicity),
		habit.CreatedAt.Format(time.RFC3339), archivedAt, deletedAt)
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}

	return nil
}

func (s *Store) ArchiveHabit(id string) error {
	result, err := s.db.Exec(
		"UPDATE habits SET archived_at = $1 WHERE id = $2 AND archived_at IS NULL AND deleted_at IS NULL",
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check archive result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("habit not found or already archived: %s", id)
	}

	return nil
}

func (s *Store) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(
		"UPDATE habits SET archived_at = NULL WHERE id = $1 AND archived_at IS NOT NULL AND deleted_at IS NULL",
		id)
	if err != nil {
		return fmt.Errorf("failed to unarchive habit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check unarchive result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("habit not found or not archived: %s", id)
	}

	return nil
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(
		"UPDATE habits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL",
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("habit not found or already deleted: %s", id)
	}

	return nil
}

func (s *Store) RestoreHabit(id string) error {
	result, err := s.db.Exec(
		"UPDATE habits SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL",
		id)
	if err != nil {
		return fmt.Errorf("failed to restore habit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check restore result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("habit not found or not deleted: %s", id)
	}

	return nil
}

// PurgeHabit permanently removes a habit and all of its completions.
// Both deletes run in a single transaction.
func (s *Store) PurgeHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin purge: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = $1", id); err != nil {
		return fmt.Errorf("failed to purge completions: %w", err)
	}

	result, err := tx.Exec("DELETE FROM habits WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to purge habit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check purge result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}

	return tx.Commit()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (models.Habit, error) {
	var habit models.Habit
	var periodicity, createdAtStr string
	var archivedAtStr, deletedAtStr sql.NullString

	err := row.Scan(&habit.ID, &habit.Name, &habit.Description, &periodicity,
		&createdAtStr, &archivedAtStr, &deletedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, err
		}
		return models.Habit{}, fmt.Errorf("failed to scan habit: %w", err)
	}

	habit.Periodicity = models.Periodicity(periodicity)

	habit.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", habit.ID, err)
	}

	if archivedAtStr.Valid {
		t, err := time.Parse(time.RFC3339, archivedAtStr.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse archived_at for habit %s: %w", habit.ID, err)
		}
		habit.ArchivedAt = &t
	}

	if deletedAtStr.Valid {
		t, err := time.Parse(time.RFC3339, deletedAtStr.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at for habit %s: %w", habit.ID, err)
		}
		habit.DeletedAt = &t
	}

	return habit, nil
}
