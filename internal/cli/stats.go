package cli

import (
	"fmt"

	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/streak"
)

type StatsCmd struct {
	Habit       string `arg:"" optional:"" help:"Show stats for a single habit."`
	All         bool   `help:"Show the longest streak across all habits."`
	Periodicity string `help:"Only include habits with this periodicity."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	now, err := ctx.Now()
	if err != nil {
		return err
	}

	if c.Habit != "" {
		habit, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		eval, err := ctx.Evaluate(habit, now)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s): current %d, longest %d\n",
			habit.Name, habit.Periodicity, eval.Streak.Current, eval.Streak.Longest)
		return nil
	}

	var filter models.Periodicity
	if c.Periodicity != "" {
		filter, err = models.ParsePeriodicity(c.Periodicity)
		if err != nil {
			return err
		}
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}

	var selected []models.Habit
	for _, habit := range habits {
		if filter != "" && habit.Periodicity != filter {
			continue
		}
		selected = append(selected, habit)
	}

	if len(selected) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	grouped, err := streak.GroupByPeriodicity(selected)
	if err != nil {
		return err
	}

	var histories []streak.History
	for _, p := range models.Periodicities() {
		group, ok := grouped[p]
		if !ok {
			continue
		}

		fmt.Printf("%s habits:\n", p)
		for _, habit := range group {
			eval, err := ctx.Evaluate(habit, now)
			if err != nil {
				return err
			}
			fmt.Printf("  %-24s current %3d  longest %3d\n",
				habit.Name, eval.Streak.Current, eval.Streak.Longest)

			completions, err := ctx.Store.GetCompletionsForHabit(habit.ID)
			if err != nil {
				return err
			}
			histories = append(histories, streak.History{
				Periodicity: habit.Periodicity,
				Completions: models.Instants(completions),
			})
		}
		fmt.Println()
	}

	if c.All {
		longest, err := streak.LongestStreakAcrossHabits(histories)
		if err != nil {
			return err
		}
		fmt.Printf("Longest streak across all habits: %d\n", longest)
	}

	return nil
}
