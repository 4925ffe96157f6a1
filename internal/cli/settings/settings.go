package settings

import (
	"fmt"

	"github.com/julianstephens/stride/internal/cli"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone           *string `help:"IANA timezone for period bucketing (e.g. 'America/New_York', 'Local')."`
	DefaultPeriodicity *string `help:"Default periodicity for new habits."`
	AutoBackup         *bool   `help:"Enable or disable automatic backups before mutations."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:            %s\n", settings.Timezone)
		fmt.Printf("  Default Periodicity: %s\n", settings.DefaultPeriodicity)
		fmt.Printf("  Auto Backup:         %v\n", settings.AutoBackup)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("unknown timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultPeriodicity != nil {
		periodicity, err := models.ParsePeriodicity(*c.DefaultPeriodicity)
		if err != nil {
			return err
		}
		settings.DefaultPeriodicity = periodicity
		updated = true
	}
	if c.AutoBackup != nil {
		settings.AutoBackup = *c.AutoBackup
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
