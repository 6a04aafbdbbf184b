// Package storage provides task data access and persistence functionality.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	// Database drivers registered by side effect. Both accept the $N
	// placeholder syntax used by the repository queries.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"smart-task-api/internal/config"
)

// driverNames maps config storage providers to database/sql driver names.
var driverNames = map[string]string{
	config.StorageProviderSQLite:   "sqlite3",
	config.StorageProviderPostgres: "postgres",
}

// Open opens a database connection for the configured storage provider
func Open(cfg *config.StorageConfig) (*sql.DB, error) {
	driver, ok := driverNames[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported storage provider: %q", cfg.Provider)
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Provider, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	return db, nil
}

// Migrate creates the tasks schema if it does not exist yet
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT,
			due_date    TIMESTAMP,
			status      TEXT NOT NULL DEFAULT 'pending',
			created_at  TIMESTAMP NOT NULL,
			updated_at  TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks (due_date)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks (created_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
