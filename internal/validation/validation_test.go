package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", value, err)
	}
	return parsed
}

func conflictTypes(result ValidationResult) []constants.ConflictType {
	types := make([]constants.ConflictType, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		types = append(types, c.Type)
	}
	return types
}

func hasConflictType(result ValidationResult, want constants.ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == want {
			return true
		}
	}
	return false
}

func TestValidateHabits(t *testing.T) {
	created := mustParse(t, "2025-01-01T08:00:00Z")
	deleted := mustParse(t, "2025-02-01T08:00:00Z")

	tests := []struct {
		name      string
		habits    []models.Habit
		wantTypes []constants.ConflictType
	}{
		{
			name: "clean habits",
			habits: []models.Habit{
				{ID: "h1", Name: "Reading", Periodicity: models.PeriodicityDaily, CreatedAt: created},
				{ID: "h2", Name: "Gym", Periodicity: models.PeriodicityWeekly, CreatedAt: created},
			},
			wantTypes: nil,
		},
		{
			name: "unknown periodicity",
			habits: []models.Habit{
				{ID: "h1", Name: "Reading", Periodicity: "fortnightly", CreatedAt: created},
			},
			wantTypes: []constants.ConflictType{constants.ConflictUnknownPeriodicity},
		},
		{
			name: "missing creation timestamp",
			habits: []models.Habit{
				{ID: "h1", Name: "Reading", Periodicity: models.PeriodicityDaily},
			},
			wantTypes: []constants.ConflictType{constants.ConflictInvalidDateTime},
		},
		{
			name: "duplicate names",
			habits: []models.Habit{
				{ID: "h1", Name: "Reading", Periodicity: models.PeriodicityDaily, CreatedAt: created},
				{ID: "h2", Name: "Reading", Periodicity: models.PeriodicityWeekly, CreatedAt: created},
			},
			wantTypes: []constants.ConflictType{constants.ConflictDuplicateHabitName},
		},
		{
			name: "duplicate name with deleted habit is allowed",
			habits: []models.Habit{
				{ID: "h1", Name: "Reading", Periodicity: models.PeriodicityDaily, CreatedAt: created},
				{ID: "h2", Name: "Reading", Periodicity: models.PeriodicityDaily, CreatedAt: created, DeletedAt: &deleted},
			},
			wantTypes: nil,
		},
	}

	validator := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.ValidateHabits(tt.habits)
			got := conflictTypes(result)
			if len(got) != len(tt.wantTypes) {
				t.Fatalf("got conflicts %v, want %v", got, tt.wantTypes)
			}
			for i, wantType := range tt.wantTypes {
				if got[i] != wantType {
					t.Errorf("conflict[%d] = %s, want %s", i, got[i], wantType)
				}
			}
		})
	}
}

func TestValidateCompletions(t *testing.T) {
	created := mustParse(t, "2025-06-01T08:00:00Z")
	asOf := mustParse(t, "2025-06-15T12:00:00Z")
	deleted := mustParse(t, "2025-06-10T08:00:00Z")

	habits := []models.Habit{
		{ID: "h1", Name: "Reading", Periodicity: models.PeriodicityDaily, CreatedAt: created},
	}

	tests := []struct {
		name        string
		completions []models.Completion
		wantTypes   []constants.ConflictType
	}{
		{
			name: "clean completion",
			completions: []models.Completion{
				{ID: "c1", HabitID: "h1", CompletedAt: mustParse(t, "2025-06-05T09:00:00Z")},
			},
			wantTypes: nil,
		},
		{
			name: "orphaned completion",
			completions: []models.Completion{
				{ID: "c1", HabitID: "missing", CompletedAt: mustParse(t, "2025-06-05T09:00:00Z")},
			},
			wantTypes: []constants.ConflictType{constants.ConflictOrphanedCompletion},
		},
		{
			name: "completion before habit creation",
			completions: []models.Completion{
				{ID: "c1", HabitID: "h1", CompletedAt: mustParse(t, "2025-05-20T09:00:00Z")},
			},
			wantTypes: []constants.ConflictType{constants.ConflictCompletionBeforeCreation},
		},
		{
			name: "future completion",
			completions: []models.Completion{
				{ID: "c1", HabitID: "h1", CompletedAt: mustParse(t, "2025-07-01T09:00:00Z")},
			},
			wantTypes: []constants.ConflictType{constants.ConflictFutureCompletion},
		},
		{
			name: "missing timestamp",
			completions: []models.Completion{
				{ID: "c1", HabitID: "h1"},
			},
			wantTypes: []constants.ConflictType{constants.ConflictInvalidDateTime},
		},
		{
			name: "deleted completion is skipped",
			completions: []models.Completion{
				{ID: "c1", HabitID: "missing", CompletedAt: mustParse(t, "2025-06-05T09:00:00Z"), DeletedAt: &deleted},
			},
			wantTypes: nil,
		},
	}

	validator := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.ValidateCompletions(habits, tt.completions, asOf)
			got := conflictTypes(result)
			if len(got) != len(tt.wantTypes) {
				t.Fatalf("got conflicts %v, want %v", got, tt.wantTypes)
			}
			for i, wantType := range tt.wantTypes {
				if got[i] != wantType {
					t.Errorf("conflict[%d] = %s, want %s", i, got[i], wantType)
				}
			}
		})
	}
}

func TestValidateCombines(t *testing.T) {
	created := mustParse(t, "2025-06-01T08:00:00Z")
	asOf := mustParse(t, "2025-06-15T12:00:00Z")

	habits := []models.Habit{
		{ID: "h1", Name: "Reading", Periodicity: "never", CreatedAt: created},
	}
	completions := []models.Completion{
		{ID: "c1", HabitID: "ghost", CompletedAt: mustParse(t, "2025-06-05T09:00:00Z")},
	}

	result := New().Validate(habits, completions, asOf)
	if len(result.Conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %v", len(result.Conflicts), conflictTypes(result))
	}
	if !hasConflictType(result, constants.ConflictUnknownPeriodicity) {
		t.Error("expected unknown periodicity conflict")
	}
	if !hasConflictType(result, constants.ConflictOrphanedCompletion) {
		t.Error("expected orphaned completion conflict")
	}
}

func TestFormatReport(t *testing.T) {
	empty := ValidationResult{}
	if empty.HasConflicts() {
		t.Error("empty result should have no conflicts")
	}
	if got := empty.FormatReport(); got != "No conflicts detected." {
		t.Errorf("empty report = %q", got)
	}

	result := ValidationResult{Conflicts: []Conflict{
		{Type: constants.ConflictDuplicateHabitName, Description: "Duplicate habit name: \"Reading\""},
	}}
	report := result.FormatReport()
	if !strings.Contains(report, "Conflicts detected:") {
		t.Errorf("report missing header: %q", report)
	}
	if !strings.Contains(report, "Duplicate habit name") {
		t.Errorf("report missing conflict description: %q", report)
	}
}
