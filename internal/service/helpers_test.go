package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/repository"
	"github.com/alexanderramin/repsheet/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type fixture struct {
	db       *sql.DB
	programs ProgramService
	library  LibraryService
	observer *recordingObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}
	return &fixture{
		db:       database,
		programs: NewProgramService(repository.NewSQLiteProgramRepo(database), uow, obs),
		library:  NewLibraryService(repository.NewSQLiteSnapshotRepo(database), uow, obs),
		observer: obs,
	}
}

func fixedClock() program.Option {
	return program.WithClock(func() time.Time { return testutil.FixedTime })
}
