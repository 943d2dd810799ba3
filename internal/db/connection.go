// Package db provides database connection and management utilities.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/benx421/payment-gateway/escrow/internal/config"
	"github.com/lib/pq"

	// Register the pure-Go sqlite driver with database/sql
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour behind a connection
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DB wraps the database connection pool
type DB struct {
	*sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// Connect establishes a connection to the configured database
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	dialect := Dialect(cfg.Driver)

	switch dialect {
	case DialectPostgres:
		logger.Info("connecting to database",
			"driver", cfg.Driver,
			"host", cfg.Host,
			"port", cfg.Port,
			"database", cfg.DBName,
		)
	case DialectSQLite:
		logger.Info("connecting to database",
			"driver", cfg.Driver,
			"path", cfg.SQLitePath,
		)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := sql.Open(string(dialect), dsnFor(dialect, cfg))
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}

	logger.Info("successfully connected to database",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
		"conn_max_lifetime", cfg.ConnMaxLifetime,
	)

	return &DB{
		DB:      db,
		dialect: dialect,
		logger:  logger,
	}, nil
}

func dsnFor(dialect Dialect, cfg *config.DatabaseConfig) string {
	if dialect != DialectSQLite {
		return cfg.DSN()
	}
	return "file:" + cfg.SQLitePath + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// Dialect reports the SQL flavour of the connection
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Rebind rewrites '?' placeholders into the connection's native form.
// Queries passed here must not contain literal question marks.
func (db *DB) Rebind(query string) string {
	if db.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close closes the database connection and logs the closure.
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// IsUniqueViolation reports whether err came from a unique constraint
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
