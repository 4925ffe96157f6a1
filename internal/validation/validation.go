package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
)

// Conflict represents a detected data conflict in habits or completions.
// Conflicts are conditions that would silently corrupt streak and status
// results if left in the store.
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Habit/completion identifiers involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates habits and completions for data conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate checks habits and their completions together, relative to the
// given reference instant.
func (v *Validator) Validate(habits []models.Habit, completions []models.Completion, asOf time.Time) ValidationResult {
	result := v.ValidateHabits(habits)
	completionResult := v.ValidateCompletions(habits, completions, asOf)
	result.Conflicts = append(result.Conflicts, completionResult.Conflicts...)
	return result
}

// ValidateHabits checks habits for conflicts: unknown periodicity values and
// duplicate names among live habits.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, habit := range habits {
		if habit.DeletedAt != nil {
			continue // Skip deleted habits
		}

		if !habit.Periodicity.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictUnknownPeriodicity,
				Description: fmt.Sprintf("Habit %q has unknown periodicity: %q", habit.Name, habit.Periodicity),
				Items:       []string{habit.ID},
			})
		}

		if habit.CreatedAt.IsZero() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidDateTime,
				Description: fmt.Sprintf("Habit %q has no creation timestamp", habit.Name),
				Items:       []string{habit.ID},
			})
		}

		// Skip empty names to avoid false positives
		if habit.Name == "" {
			continue
		}
		nameCount[habit.Name] = append(nameCount[habit.Name], habit.ID)
	}

	names := make([]string, 0, len(nameCount))
	for name := range nameCount {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ids := nameCount[name]
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				Items:       ids,
			})
		}
	}

	return result
}

// ValidateCompletions checks completions against their habits: orphaned
// rows, instants before the habit existed, instants in the future of asOf,
// and missing timestamps. Future completions do not break anything by
// themselves, but they make current-streak and status results misleading
// until the wall clock catches up.
func (v *Validator) ValidateCompletions(habits []models.Habit, completions []models.Completion, asOf time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	habitsByID := make(map[string]models.Habit, len(habits))
	for _, habit := range habits {
		habitsByID[habit.ID] = habit
	}

	for _, completion := range completions {
		if completion.DeletedAt != nil {
			continue
		}

		habit, ok := habitsByID[completion.HabitID]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictOrphanedCompletion,
				Description: fmt.Sprintf("Completion %s references non-existent habit %s", completion.ID, completion.HabitID),
				Items:       []string{completion.ID},
			})
			continue
		}

		if completion.CompletedAt.IsZero() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidDateTime,
				Description: fmt.Sprintf("Completion %s for habit %q has no timestamp", completion.ID, habit.Name),
				Items:       []string{completion.ID},
			})
			continue
		}

		if !habit.CreatedAt.IsZero() && completion.CompletedAt.Before(habit.CreatedAt) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: constants.ConflictCompletionBeforeCreation,
				Description: fmt.Sprintf("Completion %s for habit %q predates the habit (%s < %s)",
					completion.ID, habit.Name,
					completion.CompletedAt.Format(constants.DateFormat),
					habit.CreatedAt.Format(constants.DateFormat)),
				Date:  completion.CompletedAt.Format(constants.DateFormat),
				Items: []string{completion.ID},
			})
		}

		if completion.CompletedAt.After(asOf) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: constants.ConflictFutureCompletion,
				Description: fmt.Sprintf("Completion %s for habit %q is in the future (%s)",
					completion.ID, habit.Name,
					completion.CompletedAt.Format(constants.DateFormat)),
				Date:  completion.CompletedAt.Format(constants.DateFormat),
				Items: []string{completion.ID},
			})
		}
	}

	return result
}
