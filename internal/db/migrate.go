package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS programs (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		mode       TEXT NOT NULL DEFAULT 'weekly'
		           CHECK(mode IN ('weekly','flat')),
		doc        TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS library_snapshots (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		kind       TEXT NOT NULL CHECK(kind IN ('program','session')),
		doc        TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_programs_updated ON programs(updated_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_library_kind_name ON library_snapshots(kind, name)`,

	// Added after the first release.
	`ALTER TABLE programs ADD COLUMN session_count INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE library_snapshots ADD COLUMN summary TEXT NOT NULL DEFAULT ''`,
}
