package settings

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/stride/internal/cli"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/storage"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store: store,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		List: true,
	}

	err := cmd.Run(ctx)
	if err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_UpdateTimezone(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tz := "America/New_York"
	cmd := &SettingsCmd{
		Timezone: &tz,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings update failed: %v", err)
	}

	updated, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	if updated.Timezone != tz {
		t.Errorf("expected timezone %s, got %s", tz, updated.Timezone)
	}
}

func TestSettingsCmd_UpdateTimezone_Invalid(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tz := "Mars/Olympus_Mons"
	cmd := &SettingsCmd{
		Timezone: &tz,
	}

	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for unknown timezone, got nil")
	}
}

func TestSettingsCmd_UpdateDefaultPeriodicity(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	periodicity := "weekly"
	cmd := &SettingsCmd{
		DefaultPeriodicity: &periodicity,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings update failed: %v", err)
	}

	updated, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	if updated.DefaultPeriodicity != models.PeriodicityWeekly {
		t.Errorf("expected default periodicity weekly, got %s", updated.DefaultPeriodicity)
	}
}

func TestSettingsCmd_UpdateDefaultPeriodicity_Invalid(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	periodicity := "fortnightly"
	cmd := &SettingsCmd{
		DefaultPeriodicity: &periodicity,
	}

	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for invalid periodicity, got nil")
	}
}

func TestSettingsCmd_UpdateMultiple(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tz := "Europe/Berlin"
	periodicity := "monthly"
	autoBackup := false

	cmd := &SettingsCmd{
		Timezone:           &tz,
		DefaultPeriodicity: &periodicity,
		AutoBackup:         &autoBackup,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings update failed: %v", err)
	}

	updated, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	if updated.Timezone != tz {
		t.Errorf("expected timezone %s, got %s", tz, updated.Timezone)
	}
	if updated.DefaultPeriodicity != models.PeriodicityMonthly {
		t.Errorf("expected default periodicity monthly, got %s", updated.DefaultPeriodicity)
	}
	if updated.AutoBackup != autoBackup {
		t.Errorf("expected auto backup %v, got %v", autoBackup, updated.AutoBackup)
	}
}
