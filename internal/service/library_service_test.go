package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/repository"
	"github.com/alexanderramin/repsheet/internal/snapshot"
	"github.com/alexanderramin/repsheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryService_SaveSessionAndImportTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	src := testutil.NewTestEngine(t, "Source", testutil.WithLifts("Bench", "Row", "Curl"))
	rec, err := f.library.SaveSession(ctx, " Upper A ", src, src.AllSessions()[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Upper A", rec.Name)
	assert.Equal(t, snapshot.KindSession, rec.Kind)
	assert.Equal(t, "3 exercises", rec.Summary)

	dst := testutil.NewTestEngine(t, "Target")
	wid := dst.Weeks()[0].ID
	first, err := f.library.ImportSession(ctx, "Upper A", dst, wid)
	require.NoError(t, err)
	second, err := f.library.ImportSession(ctx, "Upper A", dst, wid)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	a, err := dst.Exercises(first)
	require.NoError(t, err)
	b, err := dst.Exercises(second)
	require.NoError(t, err)
	require.Len(t, a, 3)
	require.Len(t, b, 3)
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.NotEqual(t, a[i].ID, b[i].ID)
	}

	sessions, err := dst.Sessions(wid)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
	assert.Equal(t, 3, sessions[2].Day)

	ev := f.observer.last()
	assert.Equal(t, "library-import-session", ev.Name)
	assert.Equal(t, second, ev.Fields["session_id"])
}

func TestLibraryService_ImportProgramAppendsWeeks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	src := testutil.NewTestEngine(t, "Block", testutil.WithWeeks(2), testutil.WithSessions(2))
	_, err := f.library.SaveProgram(ctx, "Block", src)
	require.NoError(t, err)

	dst := testutil.NewTestEngine(t, "Season")
	require.NoError(t, f.library.ImportProgram(ctx, "Block", dst))
	weeks := dst.Weeks()
	require.Len(t, weeks, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{weeks[0].WeekNumber, weeks[1].WeekNumber, weeks[2].WeekNumber})
	assert.Equal(t, 4, f.observer.last().Fields["sessions"])
}

func TestLibraryService_ImportProgramIntoFlat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	src := testutil.NewTestEngine(t, "Block", testutil.WithWeeks(2))
	_, err := f.library.SaveProgram(ctx, "Block", src)
	require.NoError(t, err)

	dst := testutil.NewTestEngine(t, "Flat", testutil.WithFlatMode())
	require.NoError(t, f.library.ImportProgram(ctx, "Block", dst))
	sessions, err := dst.Sessions("")
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
	assert.Empty(t, dst.Weeks())
}

func TestLibraryService_SaveSameNameOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e := testutil.NewTestEngine(t, "P", testutil.WithLifts("Squat"))
	sid := e.AllSessions()[0].ID
	first, err := f.library.SaveSession(ctx, "Legs", e, sid)
	require.NoError(t, err)

	_, err = e.AddExercise(sid, program.ExercisePatch{Name: program.Ptr("Lunge")})
	require.NoError(t, err)
	second, err := f.library.SaveSession(ctx, "Legs", e, sid)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := f.library.List(ctx, snapshot.KindSession)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2 exercises", list[0].Summary)
}

func TestLibraryService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := testutil.NewTestEngine(t, "P")

	_, err := f.library.SaveProgram(ctx, "", e)
	require.EqualError(t, err, "library name is required")

	_, err = f.library.SaveSession(ctx, "x", e, "missing")
	assert.ErrorIs(t, err, program.ErrNotFound)

	_, err = f.library.ImportSession(ctx, "missing", e, e.Weeks()[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, f.library.Delete(ctx, snapshot.KindSession, "missing"), repository.ErrNotFound)
}

func TestLibraryService_ImportSessionModeMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	src := testutil.NewTestEngine(t, "Src")
	_, err := f.library.SaveSession(ctx, "Day", src, src.AllSessions()[0].ID)
	require.NoError(t, err)

	dst := testutil.NewTestEngine(t, "Weekly")
	before := dst.Counts()
	_, err = f.library.ImportSession(ctx, "Day", dst, "")
	assert.ErrorIs(t, err, program.ErrModeMismatch)
	assert.Equal(t, before, dst.Counts())
}

func TestLibraryService_FileRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := t.TempDir()

	e := testutil.NewTestEngine(t, "P", testutil.WithLifts("Deadlift", "Pull-up"))
	_, err := f.library.SaveSession(ctx, "Pull", e, e.AllSessions()[0].ID)
	require.NoError(t, err)

	path := filepath.Join(dir, "pull.json")
	require.NoError(t, f.library.ExportFile(ctx, snapshot.KindSession, "Pull", path))
	_, err = os.Stat(path)
	require.NoError(t, err)

	rec, err := f.library.ImportFile(ctx, path, "Pull copy")
	require.NoError(t, err)
	assert.Equal(t, "Pull copy", rec.Name)

	snap, err := f.library.Get(ctx, snapshot.KindSession, "Pull copy")
	require.NoError(t, err)
	require.NotNil(t, snap.Session)
	require.Len(t, snap.Session.Exercises, 2)
	assert.Equal(t, "Deadlift", snap.Session.Exercises[0].Name)
}

func TestLibraryService_ImportFileRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"kind":"session","name":"x"}`), 0o644))

	_, err := f.library.ImportFile(context.Background(), path, "")
	assert.ErrorIs(t, err, snapshot.ErrInvalidSnapshot)

	list, err := f.library.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}
