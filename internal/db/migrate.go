package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/udisondev/zonecore/internal/db/migrations"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// RunMigrations applies the embedded migrations for driver to the database at dsn.
func RunMigrations(ctx context.Context, driver, dsn string) error {
	if _, _, err := dialectFor(driver); err != nil {
		return err
	}
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	return migrate(ctx, sqlDB, driver)
}

// dialectFor maps a driver name to its goose dialect and migrations directory.
func dialectFor(driver string) (database.Dialect, string, error) {
	switch driver {
	case DriverPostgres:
		return database.DialectPostgres, "postgres", nil
	case DriverSQLite:
		return database.DialectSQLite3, "sqlite", nil
	default:
		return "", "", fmt.Errorf("migrations for %q: %w", driver, ErrUnknownDriver)
	}
}

func migrate(ctx context.Context, sqlDB *sql.DB, driver string) error {
	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("opening %s migrations: %w", dir, err)
	}
	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "driver", driver, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
