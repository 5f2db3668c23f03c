package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*/*.sql
var migrations embed.FS

const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

// Migrate applies (or rolls back one step of) the embedded schema for the driver
// and returns the resulting schema version.
func Migrate(ctx context.Context, db *sqlx.DB, direction string) (int64, error) {
	dialect, dir, err := migrationSource(db.DriverName())
	if err != nil {
		return 0, err
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}

	switch direction {
	case MigrateUp:
		err = goose.UpContext(ctx, db.DB, dir)
	case MigrateDown:
		err = goose.DownContext(ctx, db.DB, dir)
	case "":
	default:
		return 0, fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to run migrations: %w", err)
	}

	return goose.GetDBVersionContext(ctx, db.DB)
}

func migrationSource(driver string) (dialect, dir string, err error) {
	switch driver {
	case DriverPostgres:
		return "postgres", "migrations/postgres", nil
	case DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	}
	return "", "", fmt.Errorf("no migrations for driver %q", driver)
}
