package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/repsheet/internal/db"
	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/repository"
	"github.com/alexanderramin/repsheet/internal/snapshot"
)

type programService struct {
	programs repository.ProgramRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProgramService(programs repository.ProgramRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProgramService {
	return &programService{
		programs: programs,
		uow:      uow,
		observer: combineObservers(observers),
	}
}

func (s *programService) Create(ctx context.Context, req CreateProgramRequest, opts ...program.Option) (e *program.Engine, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"program": req.Name, "mode": string(req.Mode)}
	defer observe(ctx, s.observer, "create-program", startedAt, fields, &err)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("program name is required")
	}
	if req.Mode != "" && !domain.ValidProgramModes[req.Mode] {
		return nil, fmt.Errorf("invalid program mode %q", req.Mode)
	}

	e, err = program.Start(domain.Program{Name: name, Mode: req.Mode, Settings: req.Settings}, opts...)
	if err != nil {
		return nil, err
	}
	fields["program_id"] = e.Program().ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return storeProgram(ctx, repository.NewSQLiteProgramRepo(tx), e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *programService) Open(ctx context.Context, ref string, opts ...program.Option) (e *program.Engine, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ref": ref}
	defer observe(ctx, s.observer, "open-program", startedAt, fields, &err)

	var rec *repository.ProgramRecord
	rec, err = s.resolve(ctx, s.programs, ref)
	if err != nil {
		return nil, err
	}
	fields["program_id"] = rec.ID

	e, err = engineFromRecord(rec, opts...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *programService) Get(ctx context.Context, ref string) (*repository.ProgramRecord, error) {
	return s.resolve(ctx, s.programs, ref)
}

func (s *programService) List(ctx context.Context) ([]*repository.ProgramRecord, error) {
	return s.programs.List(ctx)
}

func (s *programService) Save(ctx context.Context, e *program.Engine) (err error) {
	startedAt := time.Now().UTC()
	p := e.Program()
	fields := map[string]any{"program_id": p.ID, "program": p.Name}
	defer observe(ctx, s.observer, "save-program", startedAt, fields, &err)

	counts := e.Counts()
	fields["sessions"] = counts["sessions"]
	fields["exercises"] = counts["exercises"]

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return storeProgram(ctx, repository.NewSQLiteProgramRepo(tx), e)
	})
}

func (s *programService) Delete(ctx context.Context, ref string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ref": ref}
	defer observe(ctx, s.observer, "delete-program", startedAt, fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPrograms := repository.NewSQLiteProgramRepo(tx)
		rec, err := s.resolve(ctx, txPrograms, ref)
		if err != nil {
			return err
		}
		fields["program_id"] = rec.ID
		return txPrograms.Delete(ctx, rec.ID)
	})
}

// resolve looks ref up as an id, then as a name.
func (s *programService) resolve(ctx context.Context, programs repository.ProgramRepo, ref string) (*repository.ProgramRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("program reference is required")
	}
	rec, err := programs.GetByID(ctx, ref)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	rec, err = programs.GetByName(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("program %q: %w", ref, repository.ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func storeProgram(ctx context.Context, programs repository.ProgramRepo, e *program.Engine) error {
	p := e.Program()
	doc, err := snapshot.Marshal(snapshot.FromProgram(p.Name, e.Bundle(), p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("encoding program %s: %w", p.ID, err)
	}
	return programs.Save(ctx, &repository.ProgramRecord{
		ID:           p.ID,
		Name:         p.Name,
		Mode:         p.Mode,
		Doc:          doc,
		SessionCount: e.Counts()["sessions"],
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	})
}

func engineFromRecord(rec *repository.ProgramRecord, opts ...program.Option) (*program.Engine, error) {
	snap, err := snapshot.Unmarshal(rec.Doc)
	if err != nil {
		return nil, fmt.Errorf("decoding program %s: %w", rec.ID, err)
	}
	b, err := snap.ProgramBundle()
	if err != nil {
		return nil, fmt.Errorf("decoding program %s: %w", rec.ID, err)
	}
	e, err := program.Restore(b, opts...)
	if err != nil {
		return nil, fmt.Errorf("restoring program %s: %w", rec.ID, err)
	}
	return e, nil
}
