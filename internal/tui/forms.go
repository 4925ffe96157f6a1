package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/utils"
)

type HabitFormModel struct {
	Name        string
	Description string
	Periodicity models.Periodicity
}

type CompletionFormModel struct {
	At string
}

type SettingsFormModel struct {
	Timezone           string
	DefaultPeriodicity models.Periodicity
	AutoBackup         bool
}

func periodicityOptions() []huh.Option[models.Periodicity] {
	return []huh.Option[models.Periodicity]{
		huh.NewOption("Daily", models.PeriodicityDaily),
		huh.NewOption("Weekly", models.PeriodicityWeekly),
		huh.NewOption("Monthly", models.PeriodicityMonthly),
		huh.NewOption("Yearly", models.PeriodicityYearly),
	}
}

func newHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&f.Description),
			huh.NewSelect[models.Periodicity]().
				Title("Periodicity").
				Options(periodicityOptions()...).
				Value(&f.Periodicity),
		),
	).WithTheme(huh.ThemeDracula())
}

func newCompletionForm(f *CompletionFormModel, habitName string, loc *time.Location) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("When did you complete %q?", habitName)).
				Description("YYYY-MM-DD or YYYY-MM-DD HH:MM").
				Value(&f.At).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("an instant is required")
					}
					_, err := utils.ParseInstant(strings.TrimSpace(s), loc)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newSettingsForm(f *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("IANA name, or \"Local\" for the system timezone").
				Value(&f.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(strings.TrimSpace(s)) {
						return fmt.Errorf("unknown timezone %q", s)
					}
					return nil
				}),
			huh.NewSelect[models.Periodicity]().
				Title("Default periodicity").
				Options(periodicityOptions()...).
				Value(&f.DefaultPeriodicity),
			huh.NewConfirm().
				Title("Automatic backups").
				Value(&f.AutoBackup),
		),
	).WithTheme(huh.ThemeDracula())
}
