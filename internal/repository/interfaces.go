package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/snapshot"
)

var ErrNotFound = errors.New("not found")

// ProgramRecord is one stored program. Doc holds the program snapshot JSON;
// list queries leave it nil.
type ProgramRecord struct {
	ID           string
	Name         string
	Mode         domain.ProgramMode
	Doc          []byte
	SessionCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SnapshotRecord is one named library entry.
type SnapshotRecord struct {
	ID        string
	Name      string
	Kind      snapshot.Kind
	Doc       []byte
	Summary   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProgramRepo interface {
	// Save inserts the program or replaces the stored row with the same id.
	Save(ctx context.Context, p *ProgramRecord) error
	GetByID(ctx context.Context, id string) (*ProgramRecord, error)
	// GetByName matches case-insensitively and returns the most recently
	// updated program of that name.
	GetByName(ctx context.Context, name string) (*ProgramRecord, error)
	List(ctx context.Context) ([]*ProgramRecord, error)
	Delete(ctx context.Context, id string) error
}

type SnapshotRepo interface {
	// Save stores the snapshot under (kind, name), replacing an existing
	// entry of the same name while keeping its id and creation time.
	Save(ctx context.Context, s *SnapshotRecord) error
	GetByID(ctx context.Context, id string) (*SnapshotRecord, error)
	GetByName(ctx context.Context, kind snapshot.Kind, name string) (*SnapshotRecord, error)
	// List returns entries of kind, or of every kind when kind is empty.
	List(ctx context.Context, kind snapshot.Kind) ([]*SnapshotRecord, error)
	Delete(ctx context.Context, id string) error
}
