package system

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/stride/internal/backup"
	"github.com/julianstephens/stride/internal/cli"
	"github.com/julianstephens/stride/internal/keyring"
	"github.com/julianstephens/stride/internal/storage"
	"github.com/julianstephens/stride/internal/streak"
	"github.com/julianstephens/stride/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Backups present (warning only, local database only)
	if _, ok := ctx.Store.(*storage.SQLiteStore); ok {
		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	} else {
		fmt.Printf("⊘ Backups present: SKIPPED (remote database)\n")
	}

	// Check 5: Data validation (only if DB is reachable)
	if dbReachable {
		if err := checkValidation(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (database not reachable)\n")
	}

	// Check 6: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 7: Orphaned completions (only if DB is reachable)
	if dbReachable {
		if err := checkOrphanedCompletions(ctx); err != nil {
			fmt.Printf("❌ Orphaned completions: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Orphaned completions: OK\n")
		}
	} else {
		fmt.Printf("⊘ Orphaned completions: SKIPPED (database not reachable)\n")
	}

	// Check 8: Duplicate completions per period (warning only: the engine
	// counts a period once no matter how many completions land in it)
	if dbReachable {
		if err := checkDuplicateCompletions(ctx); err != nil {
			fmt.Printf("⚠ Duplicate completions: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Duplicate completions: OK\n")
		}
	} else {
		fmt.Printf("⊘ Duplicate completions: SKIPPED (database not reachable)\n")
	}

	// Check 9: Timestamp integrity (only if DB is reachable)
	if dbReachable {
		if err := checkTimestampIntegrity(ctx); err != nil {
			fmt.Printf("❌ Timestamp integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Timestamp integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Timestamp integrity: SKIPPED (database not reachable)\n")
	}

	// Check 10: Concurrent process (warning only)
	if err := checkConcurrentProcess(); err != nil {
		fmt.Printf("⚠ Concurrent process: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent process: OK\n")
	}

	// Check 11: Keyring availability (relevant for remote databases only)
	if _, ok := ctx.Store.(*storage.PostgresStore); ok {
		if keyring.IsAvailable() {
			fmt.Printf("✓ Keyring available: OK\n")
		} else {
			fmt.Printf("⚠ Keyring available: WARNING\n")
			fmt.Printf("   OS keyring is not available; connection strings cannot be stored securely\n")
		}
	} else {
		fmt.Printf("⊘ Keyring available: SKIPPED (local database)\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

// storeDB returns the raw connection behind either storage backend.
func storeDB(ctx *cli.Context) *sql.DB {
	switch s := ctx.Store.(type) {
	case *storage.SQLiteStore:
		return s.GetDB()
	case *storage.PostgresStore:
		return s.GetDB()
	default:
		return nil
	}
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	db := storeDB(ctx)
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := newMigrationRunner(ctx.Store)
	if err != nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}

	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := newMigrationRunner(ctx.Store)
	if err != nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", currentVersion, latestVersion)
	}

	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'stride backup create'")
	}

	return nil
}

func checkValidation(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	completions, err := ctx.Store.GetAllCompletions(false)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}
	now, err := ctx.Now()
	if err != nil {
		return err
	}

	result := validation.New().Validate(habits, completions, now)
	if result.HasConflicts() {
		return fmt.Errorf("%s", strings.TrimSpace(result.FormatReport()))
	}

	return nil
}

func checkClockTimezone() error {
	// Check if system time is reasonable
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}

func checkOrphanedCompletions(ctx *cli.Context) error {
	db := storeDB(ctx)
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var orphanedCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM completions c
		LEFT JOIN habits h ON c.habit_id = h.id
		WHERE h.id IS NULL AND c.deleted_at IS NULL
	`).Scan(&orphanedCount)
	if err != nil {
		return fmt.Errorf("failed to check orphaned completions: %w", err)
	}
	if orphanedCount > 0 {
		return fmt.Errorf("found %d orphaned completions (referencing non-existent habits)", orphanedCount)
	}

	return nil
}

func checkDuplicateCompletions(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true, false)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	duplicatePeriods := 0
	for _, habit := range habits {
		completions, err := ctx.Store.GetCompletionsForHabit(habit.ID)
		if err != nil {
			return fmt.Errorf("failed to get completions for habit %s: %w", habit.ID, err)
		}

		counts := make(map[streak.PeriodKey]int)
		for _, completion := range completions {
			key, err := streak.PeriodKeyFor(completion.CompletedAt, habit.Periodicity)
			if err != nil {
				return fmt.Errorf("habit %q: %w", habit.Name, err)
			}
			counts[key]++
		}
		for _, count := range counts {
			if count > 1 {
				duplicatePeriods++
			}
		}
	}

	if duplicatePeriods > 0 {
		return fmt.Errorf("found %d periods with more than one completion (each period still counts once)", duplicatePeriods)
	}

	return nil
}

func checkTimestampIntegrity(ctx *cli.Context) error {
	db := storeDB(ctx)
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var corruptedCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM completions
		WHERE completed_at = ''
	`).Scan(&corruptedCount)
	if err != nil {
		return fmt.Errorf("failed to check completion timestamps: %w", err)
	}
	if corruptedCount > 0 {
		return fmt.Errorf("found %d completions with corrupted timestamps", corruptedCount)
	}

	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM habits
		WHERE created_at = ''
	`).Scan(&corruptedCount)
	if err != nil {
		return fmt.Errorf("failed to check habit timestamps: %w", err)
	}
	if corruptedCount > 0 {
		return fmt.Errorf("found %d habits with corrupted timestamps", corruptedCount)
	}

	return nil
}

// checkConcurrentProcess looks for another running stride process. SQLite
// handles concurrent access poorly, so a second writer is worth flagging.
func checkConcurrentProcess() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	binary := filepath.Base(os.Args[0])
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		if p.Executable() == binary {
			return fmt.Errorf("another %s process is running (pid %d)", binary, p.Pid())
		}
	}

	return nil
}
