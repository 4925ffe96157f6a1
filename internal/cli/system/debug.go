package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/stride/internal/cli"
)

type DebugCmd struct {
	DBPath          *DebugDBPathCmd          `cmd:"" help:"Show database path."`
	DumpHabit       *DebugDumpHabitCmd       `cmd:"" help:"Dump habit data as JSON."`
	DumpCompletions *DebugDumpCompletionsCmd `cmd:"" help:"Dump a habit's completions as JSON."`
	DumpSettings    *DebugDumpSettingsCmd    `cmd:"" help:"Dump settings data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()

	// Output in machine-readable format
	output := map[string]string{
		"path": path,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpHabitCmd struct {
	Habit string `arg:"" help:"Name or ID of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	habit, err := ctx.ResolveHabit(cmd.Habit)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(habit, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal habit: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpCompletionsCmd struct {
	Habit string `arg:"" help:"Name or ID of the habit whose completions to dump."`
}

func (cmd *DebugDumpCompletionsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	habit, err := ctx.ResolveHabit(cmd.Habit)
	if err != nil {
		return err
	}

	completions, err := ctx.Store.GetCompletionsForHabit(habit.ID)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(completions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal completions: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
