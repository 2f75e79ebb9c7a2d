package service

import (
	"context"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/repository"
	"github.com/alexanderramin/repsheet/internal/snapshot"
)

// CreateProgramRequest describes a new program. Zero settings fall back to
// the program defaults.
type CreateProgramRequest struct {
	Name     string
	Mode     domain.ProgramMode
	Settings domain.Settings
}

// ProgramService loads and stores whole programs. A program ref is an id or
// a name.
type ProgramService interface {
	Create(ctx context.Context, req CreateProgramRequest, opts ...program.Option) (*program.Engine, error)
	Open(ctx context.Context, ref string, opts ...program.Option) (*program.Engine, error)
	Get(ctx context.Context, ref string) (*repository.ProgramRecord, error)
	List(ctx context.Context) ([]*repository.ProgramRecord, error)
	Save(ctx context.Context, e *program.Engine) error
	Delete(ctx context.Context, ref string) error
}

// LibraryService keeps named program and session snapshots and splices them
// back into programs with fresh ids.
type LibraryService interface {
	SaveProgram(ctx context.Context, name string, e *program.Engine) (*repository.SnapshotRecord, error)
	SaveSession(ctx context.Context, name string, e *program.Engine, sessionID string) (*repository.SnapshotRecord, error)
	List(ctx context.Context, kind snapshot.Kind) ([]*repository.SnapshotRecord, error)
	Get(ctx context.Context, kind snapshot.Kind, name string) (*snapshot.Snapshot, error)
	Delete(ctx context.Context, kind snapshot.Kind, name string) error

	// ImportSession splices a saved session into weekID of e, or into the
	// flat list when weekID is empty, and returns the new session id.
	ImportSession(ctx context.Context, name string, e *program.Engine, weekID string) (string, error)
	// ImportProgram appends every week or session of a saved program to e.
	ImportProgram(ctx context.Context, name string, e *program.Engine) error

	// ImportFile stores a snapshot file in the library, under name when it
	// is not empty.
	ImportFile(ctx context.Context, path, name string) (*repository.SnapshotRecord, error)
	ExportFile(ctx context.Context, kind snapshot.Kind, name, path string) error
}
