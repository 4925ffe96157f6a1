package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/stride/internal/models"
)

type AddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Description string `help:"Habit description."`
	Periodicity string `help:"Periodicity: daily, weekly, monthly, or yearly (default: from settings)."`
}

func (c *AddCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	name := strings.TrimSpace(c.Name)
	description := c.Description
	periodicity := settings.DefaultPeriodicity
	if c.Periodicity != "" {
		periodicity, err = models.ParsePeriodicity(c.Periodicity)
		if err != nil {
			return err
		}
	}

	// No name on the command line: fall back to an interactive form
	if name == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("name is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("Description").
					Value(&description),
				huh.NewSelect[models.Periodicity]().
					Title("Periodicity").
					Options(
						huh.NewOption("Daily", models.PeriodicityDaily),
						huh.NewOption("Weekly", models.PeriodicityWeekly),
						huh.NewOption("Monthly", models.PeriodicityMonthly),
						huh.NewOption("Yearly", models.PeriodicityYearly),
					).
					Value(&periodicity),
			),
		).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
		name = strings.TrimSpace(name)
	}

	// Check if habit with same name already exists
	if _, err := ctx.Store.GetHabitByName(name); err == nil {
		return fmt.Errorf("habit with name %q already exists", name)
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Periodicity: periodicity,
		CreatedAt:   now,
	}
	if err := habit.Validate(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added %s habit: %s\n", habit.Periodicity, habit.Name)
	return nil
}

type ArchiveCmd struct {
	Habit string `arg:"" help:"Habit name to archive."`
}

func (c *ArchiveCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type UnarchiveCmd struct {
	Habit string `arg:"" help:"Habit name to unarchive."`
}

func (c *UnarchiveCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(true, false)
	if err != nil {
		return err
	}

	for _, habit := range habits {
		if habit.Name == c.Habit && habit.ArchivedAt != nil {
			if err := ctx.Store.UnarchiveHabit(habit.ID); err != nil {
				return err
			}
			fmt.Printf("Unarchived habit: %s\n", habit.Name)
			return nil
		}
	}

	return fmt.Errorf("archived habit %q not found", c.Habit)
}

type DeleteCmd struct {
	Habit string `arg:"" help:"Habit name to delete."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	fmt.Println("(This is a soft delete. Use 'stride restore' to undo)")
	return nil
}

type RestoreCmd struct {
	Habit string `arg:"" help:"Habit name to restore."`
}

func (c *RestoreCmd) Run(ctx *Context) error {
	// Search deleted habits too
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}

	for _, habit := range habits {
		if habit.Name == c.Habit && habit.DeletedAt != nil {
			if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
				return err
			}
			fmt.Printf("Restored habit: %s\n", habit.Name)
			return nil
		}
	}

	return fmt.Errorf("deleted habit %q not found", c.Habit)
}

type PurgeCmd struct {
	Habit string `arg:"" help:"Habit name to permanently remove."`
	Force bool   `help:"Skip the confirmation prompt."`
}

func (c *PurgeCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}

	var target *models.Habit
	for i, habit := range habits {
		if habit.Name == c.Habit {
			target = &habits[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("habit %q not found", c.Habit)
	}

	if !c.Force {
		var confirmed bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Permanently remove %q and all of its completions?", target.Name)).
					Value(&confirmed),
			),
		).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.PurgeHabit(target.ID); err != nil {
		return err
	}

	fmt.Printf("Purged habit: %s\n", target.Name)
	return nil
}
