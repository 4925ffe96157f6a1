package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
)

// TestStore_Integration tests the PostgreSQL store against a real database.
// Set POSTGRES_TEST_URL to run it, e.g.
// POSTGRES_TEST_URL="postgres://stride_user@localhost:5432/stride_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}

		// Verify default settings were created
		if settings.Timezone != constants.DefaultTimezone {
			t.Errorf("Expected timezone %s, got %s", constants.DefaultTimezone, settings.Timezone)
		}

		settings.DefaultPeriodicity = models.PeriodicityWeekly
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}

		updated, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get updated settings: %v", err)
		}
		if updated.DefaultPeriodicity != models.PeriodicityWeekly {
			t.Errorf("Expected default periodicity weekly, got %s", updated.DefaultPeriodicity)
		}
	})

	t.Run("Habits", func(t *testing.T) {
		habit := models.Habit{
			ID:          "test-habit-pg-1",
			Name:        "Test PostgreSQL Habit",
			Description: "integration fixture",
			Periodicity: models.PeriodicityDaily,
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		}
		defer store.PurgeHabit(habit.ID)

		if err := store.AddHabit(habit); err != nil {
			t.Fatalf("Failed to add habit: %v", err)
		}

		retrieved, err := store.GetHabit(habit.ID)
		if err != nil {
			t.Fatalf("Failed to get habit: %v", err)
		}
		if retrieved.Name != habit.Name || retrieved.Periodicity != habit.Periodicity {
			t.Errorf("Retrieved habit mismatch: got %+v", retrieved)
		}

		byName, err := store.GetHabitByName(habit.Name)
		if err != nil {
			t.Fatalf("Failed to get habit by name: %v", err)
		}
		if byName.ID != habit.ID {
			t.Errorf("GetHabitByName returned ID %s, want %s", byName.ID, habit.ID)
		}

		if err := store.ArchiveHabit(habit.ID); err != nil {
			t.Fatalf("Failed to archive habit: %v", err)
		}
		archived, err := store.GetHabit(habit.ID)
		if err != nil {
			t.Fatalf("Failed to get archived habit: %v", err)
		}
		if archived.ArchivedAt == nil {
			t.Error("Expected archived_at to be set")
		}
		if err := store.UnarchiveHabit(habit.ID); err != nil {
			t.Fatalf("Failed to unarchive habit: %v", err)
		}
	})

	t.Run("Completions", func(t *testing.T) {
		habit := models.Habit{
			ID:          "test-habit-pg-2",
			Name:        "Test PostgreSQL Completions",
			Periodicity: models.PeriodicityDaily,
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		}
		if err := store.AddHabit(habit); err != nil {
			t.Fatalf("Failed to add habit: %v", err)
		}
		defer store.PurgeHabit(habit.ID)

		base := time.Date(2025, 11, 14, 8, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			completion := models.Completion{
				ID:          "test-completion-pg-" + string(rune('a'+i)),
				HabitID:     habit.ID,
				CompletedAt: base.AddDate(0, 0, i),
			}
			if err := store.AddCompletion(completion); err != nil {
				t.Fatalf("Failed to add completion: %v", err)
			}
		}

		completions, err := store.GetCompletionsForHabit(habit.ID)
		if err != nil {
			t.Fatalf("Failed to get completions: %v", err)
		}
		if len(completions) != 3 {
			t.Fatalf("Expected 3 completions, got %d", len(completions))
		}
		for i := 1; i < len(completions); i++ {
			if completions[i].CompletedAt.Before(completions[i-1].CompletedAt) {
				t.Error("Completions not ordered oldest first")
			}
		}

		latest, err := store.GetLatestCompletion(habit.ID)
		if err != nil {
			t.Fatalf("Failed to get latest completion: %v", err)
		}
		if !latest.CompletedAt.Equal(base.AddDate(0, 0, 2)) {
			t.Errorf("Latest completion = %v, want %v", latest.CompletedAt, base.AddDate(0, 0, 2))
		}

		if err := store.DeleteCompletion(latest.ID); err != nil {
			t.Fatalf("Failed to delete completion: %v", err)
		}
		remaining, err := store.GetCompletionsForHabit(habit.ID)
		if err != nil {
			t.Fatalf("Failed to get completions after delete: %v", err)
		}
		if len(remaining) != 2 {
			t.Errorf("Expected 2 live completions after delete, got %d", len(remaining))
		}

		if err := store.RestoreCompletion(latest.ID); err != nil {
			t.Fatalf("Failed to restore completion: %v", err)
		}
	})
}
