package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/streak"
)

type LogCmd struct {
	Habit   string `arg:"" help:"Habit name."`
	Periods int    `help:"Number of periods to show in the grid." default:"14"`
	Entries int    `help:"Number of recent completions to list." default:"10"`
}

func (c *LogCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	completions, err := ctx.Store.GetCompletionsForHabit(habit.ID)
	if err != nil {
		return err
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}
	loc, err := ctx.Location()
	if err != nil {
		return err
	}

	fmt.Printf("Log for %q (%s)\n\n", habit.Name, habit.Periodicity)

	if len(completions) == 0 {
		fmt.Println("No completions recorded yet.")
		return nil
	}

	// Recent completions, newest first
	start := len(completions) - c.Entries
	if start < 0 {
		start = 0
	}
	for i := len(completions) - 1; i >= start; i-- {
		fmt.Printf("  %s\n", completions[i].CompletedAt.In(loc).Format(constants.DateTimeFormat))
	}
	if start > 0 {
		fmt.Printf("  ... and %d earlier\n", start)
	}
	fmt.Println()

	return printPeriodGrid(habit, completions, now, loc, c.Periods)
}

// printPeriodGrid renders an ASCII row of the last n periods, marking the
// ones that contain at least one completion.
func printPeriodGrid(habit models.Habit, completions []models.Completion, asOf time.Time, loc *time.Location, n int) error {
	ref, err := streak.PeriodKeyFor(asOf, habit.Periodicity)
	if err != nil {
		return err
	}

	keys := make([]streak.PeriodKey, n)
	k := ref
	for i := n - 1; i >= 0; i-- {
		keys[i] = k
		if i == 0 {
			break
		}
		// Step into the previous period via the instant just before this
		// period's start.
		prev, err := streak.PeriodKeyFor(k.Start(loc).Add(-time.Second), habit.Periodicity)
		if err != nil {
			return err
		}
		k = prev
	}

	completed := make(map[streak.PeriodKey]bool)
	for _, completion := range completions {
		key, err := streak.PeriodKeyFor(completion.CompletedAt.In(loc), habit.Periodicity)
		if err != nil {
			return err
		}
		completed[key] = true
	}

	var labels, marks []string
	for _, key := range keys {
		labels = append(labels, fmt.Sprintf("%7s", periodLabel(key, loc)))
		mark := "."
		if completed[key] {
			mark = "x"
		}
		marks = append(marks, fmt.Sprintf("%7s", mark))
	}

	fmt.Printf("Last %d %s periods:\n", n, habit.Periodicity)
	fmt.Println(strings.Join(labels, ""))
	fmt.Println(strings.Join(marks, ""))
	return nil
}

func periodLabel(key streak.PeriodKey, loc *time.Location) string {
	start := key.Start(loc)
	switch key.Periodicity() {
	case models.PeriodicityDaily:
		return start.Format("01/02")
	case models.PeriodicityWeekly:
		return "w" + start.Format("01/02")
	case models.PeriodicityMonthly:
		return start.Format("2006-01")
	case models.PeriodicityYearly:
		return start.Format("2006")
	default:
		return key.String()
	}
}
