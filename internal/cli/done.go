package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/utils"
)

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name."`
	At    string `help:"Completion instant, 'YYYY-MM-DD' or 'YYYY-MM-DD HH:MM' (default: now)."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}

	completedAt := now
	if c.At != "" {
		loc, err := ctx.Location()
		if err != nil {
			return err
		}
		completedAt, err = utils.ParseInstant(c.At, loc)
		if err != nil {
			return err
		}
	}

	if completedAt.Before(habit.CreatedAt) {
		return fmt.Errorf("completion instant %s predates habit %q (created %s)",
			completedAt.Format(constants.DateTimeFormat), habit.Name,
			habit.CreatedAt.Format(constants.DateTimeFormat))
	}
	if completedAt.After(now) {
		return fmt.Errorf("completion instant %s is in the future", completedAt.Format(constants.DateTimeFormat))
	}

	ctx.PerformAutomaticBackup()

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		CompletedAt: completedAt,
	}
	if err := ctx.Store.AddCompletion(completion); err != nil {
		return err
	}

	eval, err := ctx.Evaluate(habit, now)
	if err != nil {
		return err
	}

	fmt.Printf("Completed %q at %s\n", habit.Name, completedAt.Format(constants.DateTimeFormat))
	fmt.Printf("Current streak: %d (longest: %d)\n", eval.Streak.Current, eval.Streak.Longest)
	return nil
}

type UndoCmd struct {
	Habit string `arg:"" help:"Habit name."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	latest, err := ctx.Store.GetLatestCompletion(habit.ID)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteCompletion(latest.ID); err != nil {
		return err
	}

	fmt.Printf("Removed completion of %q from %s\n", habit.Name,
		latest.CompletedAt.Format(constants.DateTimeFormat))
	return nil
}
