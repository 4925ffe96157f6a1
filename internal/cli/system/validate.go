package system

import (
	"fmt"

	"github.com/julianstephens/stride/internal/cli"
	"github.com/julianstephens/stride/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	completions, err := ctx.Store.GetAllCompletions(false)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}

	result := validation.New().Validate(habits, completions, now)
	fmt.Print(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) detected", len(result.Conflicts))
	}

	return nil
}
