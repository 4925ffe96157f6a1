package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/stride/internal/models"
)

const completionColumns = "id, habit_id, completed_at, deleted_at"

func (s *Store) AddCompletion(completion models.Completion) error {
	var deletedAt sql.NullString
	if completion.DeletedAt != nil {
		deletedAt = sql.NullString{String: completion.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, completed_at, deleted_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			habit_id = excluded.habit_id,
			completed_at = excluded.completed_at,
			deleted_at = excluded.deleted_at
	`, completion.ID, completion.HabitID,
		completion.CompletedAt.Format(time.RFC3339), deletedAt)
	if err != nil {
		return fmt.Errorf("failed to save completion: %w", err)
	}

	return nil
}

func (s *Store) GetCompletion(id string) (models.Completion, error) {
	row := s.db.QueryRow("SELECT "+completionColumns+" FROM completions WHERE id = ?", id)
	completion, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return models.Completion{}, fmt.Errorf("completion not found: %s", id)
	}
	return completion, err
}

// GetCompletionsForHabit returns the habit's live completions ordered
// oldest first.
func (s *Store) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	rows, err := s.db.Query(
		"SELECT "+completionColumns+" FROM completions WHERE habit_id = ? AND deleted_at IS NULL ORDER BY completed_at",
		habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	return collectCompletions(rows)
}

// GetLatestCompletion returns the habit's most recent live completion.
func (s *Store) GetLatestCompletion(habitID string) (models.Completion, error) {
	row := s.db.QueryRow(
		"SELECT "+completionColumns+" FROM completions WHERE habit_id = ? AND deleted_at IS NULL ORDER BY completed_at DESC LIMIT 1",
		habitID)
	completion, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return models.Completion{}, fmt.Errorf("no completions recorded for habit: %s", habitID)
	}
	return completion, err
}

func (s *Store) GetAllCompletions(includeDeleted bool) ([]models.Completion, error) {
	// Check if completions table exists
	exists, err := s.tableExists("completions")
	if err != nil {
		return nil, fmt.Errorf("failed to check completions table: %w", err)
	}
	if !exists {
		return []models.Completion{}, nil
	}

	query := "SELECT " + completionColumns + " FROM completions"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY completed_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	return collectCompletions(rows)
}

func (s *Store) DeleteCompletion(id string) error {
	result, err := s.db.Exec(
		"UPDATE completions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("completion not found or already deleted: %s", id)
	}

	return nil
}

func (s *Store) RestoreCompletion(id string) error {
	result, err := s.db.Exec(
		"UPDATE completions SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL",
		id)
	if err != nil {
		return fmt.Errorf("failed to restore completion: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check restore result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("completion not found or not deleted: %s", id)
	}

	return nil
}

func scanCompletion(row scanner) (models.Completion, error) {
	var completion models.Completion
	var completedAtStr string
	var deletedAtStr sql.NullString

	err := row.Scan(&completion.ID, &completion.HabitID, &completedAtStr, &deletedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Completion{}, err
		}
		return models.Completion{}, fmt.Errorf("failed to scan completion: %w", err)
	}

	completion.CompletedAt, err = time.Parse(time.RFC3339, completedAtStr)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse completed_at for completion %s: %w", completion.ID, err)
	}

	if deletedAtStr.Valid {
		t, err := time.Parse(time.RFC3339, deletedAtStr.String)
		if err != nil {
			return models.Completion{}, fmt.Errorf("failed to parse deleted_at for completion %s: %w", completion.ID, err)
		}
		completion.DeletedAt = &t
	}

	return completion, nil
}

func collectCompletions(rows *sql.Rows) ([]models.Completion, error) {
	var completions []models.Completion
	for rows.Next() {
		completion, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, completion)
	}
	return completions, rows.Err()
}
