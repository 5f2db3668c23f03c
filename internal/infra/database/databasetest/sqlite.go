// Package databasetest opens throwaway migrated SQLite databases for tests.
package databasetest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DioGolang/GoUniversity/internal/infra/database"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Open returns a migrated database file under t.TempDir, closed on cleanup.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "university.db")
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)

	db, err := database.Open(context.Background(), database.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = database.Migrate(context.Background(), db, database.MigrateUp)
	require.NoError(t, err)
	return db
}
