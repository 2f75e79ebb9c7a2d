package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/repsheet/internal/db"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/repository"
	"github.com/alexanderramin/repsheet/internal/snapshot"
	"github.com/google/uuid"
)

type libraryService struct {
	snapshots repository.SnapshotRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
	now       func() time.Time
}

func NewLibraryService(snapshots repository.SnapshotRepo, uow db.UnitOfWork, observers ...UseCaseObserver) LibraryService {
	return &libraryService{
		snapshots: snapshots,
		uow:       uow,
		observer:  combineObservers(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *libraryService) SaveProgram(ctx context.Context, name string, e *program.Engine) (rec *repository.SnapshotRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name, "program_id": e.Program().ID}
	defer observe(ctx, s.observer, "library-save-program", startedAt, fields, &err)

	if name, err = libraryName(name); err != nil {
		return nil, err
	}
	return s.store(ctx, snapshot.FromProgram(name, e.Bundle(), s.now()))
}

func (s *libraryService) SaveSession(ctx context.Context, name string, e *program.Engine, sessionID string) (rec *repository.SnapshotRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name, "session_id": sessionID}
	defer observe(ctx, s.observer, "library-save-session", startedAt, fields, &err)

	if name, err = libraryName(name); err != nil {
		return nil, err
	}
	var b program.SessionBundle
	if b, err = e.SessionBundle(sessionID); err != nil {
		return nil, err
	}
	return s.store(ctx, snapshot.FromSession(name, b, s.now()))
}

func (s *libraryService) List(ctx context.Context, kind snapshot.Kind) ([]*repository.SnapshotRecord, error) {
	return s.snapshots.List(ctx, kind)
}

func (s *libraryService) Get(ctx context.Context, kind snapshot.Kind, name string) (*snapshot.Snapshot, error) {
	rec, err := s.snapshots.GetByName(ctx, kind, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	snap, err := snapshot.Unmarshal(rec.Doc)
	if err != nil {
		return nil, fmt.Errorf("decoding library %s %q: %w", kind, rec.Name, err)
	}
	return snap, nil
}

func (s *libraryService) Delete(ctx context.Context, kind snapshot.Kind, name string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name, "kind": string(kind)}
	defer observe(ctx, s.observer, "library-delete", startedAt, fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSnapshots := repository.NewSQLiteSnapshotRepo(tx)
		rec, err := txSnapshots.GetByName(ctx, kind, strings.TrimSpace(name))
		if err != nil {
			return err
		}
		return txSnapshots.Delete(ctx, rec.ID)
	})
}

func (s *libraryService) ImportSession(ctx context.Context, name string, e *program.Engine, weekID string) (sessionID string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name, "program_id": e.Program().ID, "week_id": weekID}
	defer observe(ctx, s.observer, "library-import-session", startedAt, fields, &err)

	var snap *snapshot.Snapshot
	if snap, err = s.Get(ctx, snapshot.KindSession, name); err != nil {
		return "", err
	}
	var b program.SessionBundle
	if b, err = snap.SessionBundle(); err != nil {
		return "", err
	}
	if sessionID, err = e.SpliceSession(weekID, b); err != nil {
		return "", err
	}
	fields["session_id"] = sessionID
	fields["exercises"] = len(b.Exercises)
	return sessionID, nil
}

func (s *libraryService) ImportProgram(ctx context.Context, name string, e *program.Engine) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name, "program_id": e.Program().ID}
	defer observe(ctx, s.observer, "library-import-program", startedAt, fields, &err)

	var snap *snapshot.Snapshot
	if snap, err = s.Get(ctx, snapshot.KindProgram, name); err != nil {
		return err
	}
	var b program.ProgramBundle
	if b, err = snap.ProgramBundle(); err != nil {
		return err
	}
	before := e.Counts()["sessions"]
	if err = e.SpliceProgram(b); err != nil {
		return err
	}
	fields["sessions"] = e.Counts()["sessions"] - before
	return nil
}

func (s *libraryService) ImportFile(ctx context.Context, path, name string) (rec *repository.SnapshotRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "library-import-file", startedAt, fields, &err)

	var snap *snapshot.Snapshot
	if snap, err = snapshot.Load(path); err != nil {
		return nil, fmt.Errorf("loading snapshot file: %w", err)
	}
	if strings.TrimSpace(name) != "" {
		snap.Name = name
	}
	if snap.Name, err = libraryName(snap.Name); err != nil {
		return nil, err
	}
	fields["name"] = snap.Name
	fields["kind"] = string(snap.Kind)
	return s.store(ctx, snap)
}

func (s *libraryService) ExportFile(ctx context.Context, kind snapshot.Kind, name, path string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name, "kind": string(kind), "path": path}
	defer observe(ctx, s.observer, "library-export-file", startedAt, fields, &err)

	var rec *repository.SnapshotRecord
	if rec, err = s.snapshots.GetByName(ctx, kind, strings.TrimSpace(name)); err != nil {
		return err
	}
	if err = os.WriteFile(path, rec.Doc, 0o644); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	return nil
}

func (s *libraryService) store(ctx context.Context, snap *snapshot.Snapshot) (*repository.SnapshotRecord, error) {
	doc, err := snapshot.Marshal(snap)
	if err != nil {
		return nil, err
	}
	now := s.now()
	rec := &repository.SnapshotRecord{
		ID:        uuid.New().String(),
		Name:      snap.Name,
		Kind:      snap.Kind,
		Doc:       doc,
		Summary:   snap.Summary(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSnapshotRepo(tx).Save(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func libraryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("library name is required")
	}
	return name, nil
}
