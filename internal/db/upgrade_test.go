package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_FirstRelease upgrades a store created before the
// session_count and summary columns existed. Rows survive and pick up the
// column defaults.
func TestMigrate_UpgradePath_FirstRelease(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE programs (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			mode       TEXT NOT NULL DEFAULT 'weekly'
			           CHECK(mode IN ('weekly','flat')),
			doc        TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE library_snapshots (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			kind       TEXT NOT NULL CHECK(kind IN ('program','session')),
			doc        TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`INSERT INTO programs (id, name, mode, doc, created_at, updated_at)
			VALUES ('p1', 'Legacy block', 'weekly', '{"version":1}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		`INSERT INTO library_snapshots (id, name, kind, doc, created_at, updated_at)
			VALUES ('l1', 'Leg day', 'session', '{"version":1}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
	}
	for i, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "legacy statement %d failed", i)
	}

	require.NoError(t, Migrate(db), "migration on legacy schema should succeed")
	require.NoError(t, Migrate(db), "second run tolerates existing columns")

	var name, doc string
	var sessions int
	err = db.QueryRow(`SELECT name, doc, session_count FROM programs WHERE id = 'p1'`).Scan(&name, &doc, &sessions)
	require.NoError(t, err)
	assert.Equal(t, "Legacy block", name)
	assert.Equal(t, `{"version":1}`, doc)
	assert.Equal(t, 0, sessions)

	var summary string
	err = db.QueryRow(`SELECT summary FROM library_snapshots WHERE id = 'l1'`).Scan(&summary)
	require.NoError(t, err)
	assert.Equal(t, "", summary)
}
