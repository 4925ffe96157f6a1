package system

import (
	"fmt"
	"io/fs"

	"github.com/julianstephens/stride/internal/cli"
	"github.com/julianstephens/stride/internal/migration"
	"github.com/julianstephens/stride/internal/storage"
	"github.com/julianstephens/stride/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	runner, err := newMigrationRunner(ctx.Store)
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}

// newMigrationRunner builds a runner over the store's connection and the
// embedded migration files for its backend.
func newMigrationRunner(store storage.Provider) (*migration.Runner, error) {
	switch s := store.(type) {
	case *storage.SQLiteStore:
		db := s.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		subFS, err := fs.Sub(migrations.FS, "sqlite")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
		}
		return migration.NewRunner(db, subFS), nil
	case *storage.PostgresStore:
		db := s.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		subFS, err := fs.Sub(migrations.FS, "postgres")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
		}
		return migration.NewRunner(db, subFS), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend for migrations")
	}
}
