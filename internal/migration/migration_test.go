package migration

import (
	"database/sql"
	"strings"
	"testing"
	"testing/fstest"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fs := fstest.MapFS{}
	for name, content := range files {
		fs[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fs
}

func TestReadMigrationFiles(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		wantCount int
		wantErr   string
	}{
		{
			name: "sorted by version",
			files: map[string]string{
				"002_completions.sql": "CREATE TABLE completions (id TEXT);",
				"001_habits.sql":      "CREATE TABLE habits (id TEXT);",
			},
			wantCount: 2,
		},
		{
			name: "non-sql files ignored",
			files: map[string]string{
				"001_habits.sql": "CREATE TABLE habits (id TEXT);",
				"README.md":      "notes",
			},
			wantCount: 1,
		},
		{
			name:    "missing name part",
			files:   map[string]string{"001.sql": "SELECT 1;"},
			wantErr: "invalid migration filename",
		},
		{
			name:    "non-numeric version",
			files:   map[string]string{"abc_init.sql": "SELECT 1;"},
			wantErr: "invalid version number",
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_init.sql": "SELECT 1;"},
			wantErr: "must be at least 1",
		},
		{
			name: "duplicate versions",
			files: map[string]string{
				"001_first.sql":  "SELECT 1;",
				"001_second.sql": "SELECT 1;",
			},
			wantErr: "duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, migrationFS(tt.files))
			migrations, err := runner.ReadMigrationFiles()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ReadMigrationFiles() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadMigrationFiles() error = %v", err)
			}
			if len(migrations) != tt.wantCount {
				t.Fatalf("got %d migrations, want %d", len(migrations), tt.wantCount)
			}
			for i := 1; i < len(migrations); i++ {
				if migrations[i].Version <= migrations[i-1].Version {
					t.Errorf("migrations not sorted: %d before %d", migrations[i-1].Version, migrations[i].Version)
				}
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)

	fs := migrationFS(map[string]string{
		"001_habits.sql":      "CREATE TABLE habits (id TEXT PRIMARY KEY, name TEXT);",
		"002_completions.sql": "CREATE TABLE completions (id TEXT PRIMARY KEY, habit_id TEXT);",
	})
	runner := NewRunner(db, fs)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if count != 2 {
		t.Errorf("applied %d migrations, want 2", count)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 2 {
		t.Errorf("schema version = %d, want 2", version)
	}

	// Both tables are queryable
	for _, table := range []string{"habits", "completions"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}

	// Second run is a no-op
	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations() error = %v", err)
	}
	if count != 0 {
		t.Errorf("second run applied %d migrations, want 0", count)
	}
}

func TestApplyMigrationsRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)

	fs := migrationFS(map[string]string{
		"001_habits.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
		"002_broken.sql": "THIS IS NOT SQL;",
	})
	runner := NewRunner(db, fs)

	count, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if count != 1 {
		t.Errorf("applied %d migrations before failure, want 1", count)
	}

	// Version stays at the last successful migration
	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 1 {
		t.Errorf("schema version = %d, want 1", version)
	}
}

func TestValidateVersion(t *testing.T) {
	db := setupTestDB(t)

	fs := migrationFS(map[string]string{
		"001_habits.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
	})
	runner := NewRunner(db, fs)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() error = %v", err)
	}

	// A database stamped newer than the available migrations is rejected
	if err := runner.SetVersion(99); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion() expected error for newer database version")
	}
}
