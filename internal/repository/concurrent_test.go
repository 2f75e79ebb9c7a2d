package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/repsheet/internal/db"
	"github.com/alexanderramin/repsheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// Readers listing programs while a writer saves them never see a torn row.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteProgramRepo(database)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			rec := newProgramRecord(fmt.Sprintf("p%02d", i), fmt.Sprintf("Block %d", i), testutil.FixedTime.Add(time.Duration(i)*time.Minute))
			if err := repo.Save(ctx, rec); err != nil {
				t.Errorf("writer: save program %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				programs, err := repo.List(ctx)
				if err != nil {
					t.Errorf("reader %d: list programs: %v", reader, err)
					return
				}
				for _, p := range programs {
					if p.ID == "" || p.Name == "" {
						t.Errorf("reader %d: got program with empty fields", reader)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	programs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, programs, 20)
}

// Concurrent transactional library saves under one name leave exactly one row.
func TestConcurrentAccess_LibrarySaveSameName(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)

	retryTx := func(fn func() error) error {
		var err error
		for attempt := 0; attempt < 10; attempt++ {
			if err = fn(); err == nil {
				return nil
			}
			time.Sleep(time.Duration(attempt+1) * 5 * time.Millisecond)
		}
		return err
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(writer int) {
			defer wg.Done()
			err := retryTx(func() error {
				return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					rec := newSnapshotRecord(fmt.Sprintf("s%d", writer), "session", "Shared", testutil.FixedTime)
					return NewSQLiteSnapshotRepo(tx).Save(ctx, rec)
				})
			})
			if err != nil {
				t.Errorf("writer %d: %v", writer, err)
			}
		}(w)
	}
	wg.Wait()

	all, err := NewSQLiteSnapshotRepo(database).List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
