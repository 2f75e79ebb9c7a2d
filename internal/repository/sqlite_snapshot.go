package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/repsheet/internal/db"
	"github.com/alexanderramin/repsheet/internal/snapshot"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

const snapshotColumns = `id, name, kind, doc, summary, created_at, updated_at`

func (r *SQLiteSnapshotRepo) Save(ctx context.Context, s *SnapshotRecord) error {
	query := `INSERT INTO library_snapshots (` + snapshotColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, name) DO UPDATE SET
			doc = excluded.doc,
			summary = excluded.summary,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		string(s.Kind),
		string(s.Doc),
		s.Summary,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving library snapshot: %w", err)
	}

	// The row may predate this save; report its id and creation time.
	stored, err := r.GetByName(ctx, s.Kind, s.Name)
	if err != nil {
		return err
	}
	s.ID = stored.ID
	s.CreatedAt = stored.CreatedAt
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*SnapshotRecord, error) {
	query := `SELECT ` + snapshotColumns + ` FROM library_snapshots WHERE id = ?`
	s, err := scanSnapshot(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("library snapshot %s: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSnapshotRepo) GetByName(ctx context.Context, kind snapshot.Kind, name string) (*SnapshotRecord, error) {
	query := `SELECT ` + snapshotColumns + ` FROM library_snapshots WHERE kind = ? AND name = ?`
	s, err := scanSnapshot(r.db.QueryRowContext(ctx, query, string(kind), name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("library %s %q: %w", kind, name, ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSnapshotRepo) List(ctx context.Context, kind snapshot.Kind) ([]*SnapshotRecord, error) {
	query := `SELECT ` + snapshotColumns + ` FROM library_snapshots
		WHERE (? = '' OR kind = ?) ORDER BY kind, name`
	rows, err := r.db.QueryContext(ctx, query, string(kind), string(kind))
	if err != nil {
		return nil, fmt.Errorf("listing library snapshots: %w", err)
	}
	defer rows.Close()

	var out []*SnapshotRecord
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		s.Doc = nil
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating library snapshots: %w", err)
	}
	return out, nil
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM library_snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting library snapshot: %w", err)
	}
	return requireAffected(res, "library snapshot", id)
}

func scanSnapshot(row scanner) (*SnapshotRecord, error) {
	var s SnapshotRecord
	var kind, doc, createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.Name, &kind, &doc, &s.Summary, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning library snapshot: %w", err)
	}
	s.Kind = snapshot.Kind(kind)
	s.Doc = []byte(doc)

	var err error
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
