package cli

import (
	"fmt"

	"github.com/julianstephens/stride/internal/constants"
)

type StatusCmd struct {
	Habit string `arg:"" help:"Habit name."`
}

func (c *StatusCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}

	eval, err := ctx.Evaluate(habit, now)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", habit.Name, habit.Periodicity)
	if habit.Description != "" {
		fmt.Printf("  %s\n", habit.Description)
	}
	fmt.Printf("  Status:         %s\n", ColorizeState(eval.Status.State))
	fmt.Printf("  Next due:       %s\n", eval.Status.NextDue.Format(constants.DateTimeFormat))
	fmt.Printf("  Current streak: %d\n", eval.Streak.Current)
	fmt.Printf("  Longest streak: %d\n", eval.Streak.Longest)
	if eval.LastCompletion != nil {
		fmt.Printf("  Last completed: %s\n", eval.LastCompletion.Format(constants.DateTimeFormat))
	} else {
		fmt.Println("  Last completed: never")
	}

	return nil
}
