package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/repsheet/internal/db"
	"github.com/alexanderramin/repsheet/internal/domain"
)

// SQLiteProgramRepo implements ProgramRepo using a SQLite database.
type SQLiteProgramRepo struct {
	db db.DBTX
}

func NewSQLiteProgramRepo(conn db.DBTX) *SQLiteProgramRepo {
	return &SQLiteProgramRepo{db: conn}
}

func (r *SQLiteProgramRepo) Save(ctx context.Context, p *ProgramRecord) error {
	query := `INSERT INTO programs (id, name, mode, doc, session_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			mode = excluded.mode,
			doc = excluded.doc,
			session_count = excluded.session_count,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		string(p.Mode),
		string(p.Doc),
		p.SessionCount,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving program: %w", err)
	}
	return nil
}

func (r *SQLiteProgramRepo) GetByID(ctx context.Context, id string) (*ProgramRecord, error) {
	query := `SELECT id, name, mode, doc, session_count, created_at, updated_at
		FROM programs WHERE id = ?`
	p, err := scanProgram(r.db.QueryRowContext(ctx, query, id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("program %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProgramRepo) GetByName(ctx context.Context, name string) (*ProgramRecord, error) {
	query := `SELECT id, name, mode, doc, session_count, created_at, updated_at
		FROM programs WHERE name = ? COLLATE NOCASE
		ORDER BY updated_at DESC LIMIT 1`
	p, err := scanProgram(r.db.QueryRowContext(ctx, query, name), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("program %q: %w", name, ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProgramRepo) List(ctx context.Context) ([]*ProgramRecord, error) {
	query := `SELECT id, name, mode, '', session_count, created_at, updated_at
		FROM programs ORDER BY updated_at DESC, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var programs []*ProgramRecord
	for rows.Next() {
		p, err := scanProgram(rows, false)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating programs: %w", err)
	}
	return programs, nil
}

func (r *SQLiteProgramRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	return requireAffected(res, "program", id)
}

func scanProgram(row scanner, withDoc bool) (*ProgramRecord, error) {
	var p ProgramRecord
	var mode, doc, createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Name, &mode, &doc, &p.SessionCount, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning program: %w", err)
	}
	p.Mode = domain.ProgramMode(mode)
	if withDoc {
		p.Doc = []byte(doc)
	}

	var err error
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
