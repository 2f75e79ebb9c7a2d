package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/repsheet/internal/db"
)

// FailingWrites returns a unit of work whose nth write inside a transaction
// fails with err. Writes are counted from 1; reads are never counted. The
// transaction is rolled back like any other failed unit of work, so tests
// can check that a program or library save leaves nothing behind.
func FailingWrites(database *sql.DB, nth int32, err error) db.UnitOfWork {
	return db.UnitOfWorkFunc(func(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
		tx, beginErr := database.BeginTx(ctx, nil)
		if beginErr != nil {
			return fmt.Errorf("beginning transaction: %w", beginErr)
		}
		if fnErr := fn(ctx, &failingTx{DBTX: tx, nth: nth, err: err}); fnErr != nil {
			_ = tx.Rollback()
			return fnErr
		}
		return tx.Commit()
	})
}

type failingTx struct {
	db.DBTX
	writes atomic.Int32
	nth    int32
	err    error
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.nth {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
