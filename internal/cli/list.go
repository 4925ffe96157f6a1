package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
)

type ListCmd struct {
	Periodicity string `help:"Only show habits with this periodicity."`
	Archived    bool   `help:"Include archived habits."`
	Deleted     bool   `help:"Include deleted habits."`
}

func (c *ListCmd) Run(ctx *Context) error {
	var filter models.Periodicity
	if c.Periodicity != "" {
		parsed, err := models.ParsePeriodicity(c.Periodicity)
		if err != nil {
			return err
		}
		filter = parsed
	}

	habits, err := ctx.Store.GetAllHabits(c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, habit := range habits {
		if filter != "" && habit.Periodicity != filter {
			continue
		}

		eval, err := ctx.Evaluate(habit, now)
		if err != nil {
			return err
		}

		name := habit.Name
		if habit.DeletedAt != nil {
			name += " [DELETED]"
		} else if habit.ArchivedAt != nil {
			name += " [ARCHIVED]"
		}

		lastCompletion := "-"
		if eval.LastCompletion != nil {
			lastCompletion = eval.LastCompletion.Format(constants.DateTimeFormat)
		}

		rows = append(rows, []string{
			shortID(habit.ID),
			name,
			habit.Description,
			string(habit.Periodicity),
			strconv.Itoa(eval.Streak.Current),
			ColorizeState(eval.Status.State),
			habit.CreatedAt.Format(constants.DateFormat),
			lastCompletion,
		})
	}

	if len(rows) == 0 {
		fmt.Println("No habits found. Use 'stride add' to create one.")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "Name", "Description", "Periodicity", "Streak", "Status", "Created", "Last Completion").
		Rows(rows...)

	fmt.Println(t)
	return nil
}

// shortID truncates a UUID to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
