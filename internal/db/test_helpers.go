package db

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
)

// NewTestDB opens a private in-memory sqlite database with all migrations
// applied. It is only for use in tests; the database is closed on cleanup.
func NewTestDB(t testing.TB) *DB {
	t.Helper()

	sqlDB, err := sql.Open(string(DialectSQLite), ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	database := &DB{
		DB:      sqlDB,
		dialect: DialectSQLite,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close() //nolint:errcheck // test cleanup
	})

	return database
}
