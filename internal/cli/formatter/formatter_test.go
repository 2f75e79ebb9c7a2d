package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/repository"
	"github.com/alexanderramin/repsheet/internal/snapshot"
	"github.com/alexanderramin/repsheet/internal/testutil"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripANSI removes escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansi.Strip(s)
}

func TestRenderTable_PadsColumns(t *testing.T) {
	got := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{{"xxx", "y"}}))
	assert.Equal(t, "A    BB\n───  ──\nxxx  y\n", got)
}

func TestRenderTable_ShortRowsAndNoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))

	got := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"note"}}))
	assert.Equal(t, "A     B\n────  ─\nnote  \n", got)
}

func TestRenderTableAligned_RightAlignsNumbers(t *testing.T) {
	got := stripANSI(RenderTableAligned(
		[]string{"N", "X"},
		[][]string{{"7", "a"}, {"12", "b"}},
		map[int]bool{0: true},
	))
	assert.Equal(t, " N  X\n──  ─\n 7  a\n12  b\n", got)
}

func TestRenderTree_Connectors(t *testing.T) {
	got := stripANSI(RenderTree([]TreeItem{
		{Title: "Plan"},
		{Title: "Week 1", Level: 1},
		{Title: "Day 1", Level: 2, IsLast: true},
		{Title: "Week 2", Level: 1, IsLast: true},
		{Title: "Day 1", Level: 2, IsLast: true},
	}))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Plan", lines[0])
	assert.Equal(t, "├─ Week 1", lines[1])
	assert.Equal(t, "│  └─ Day 1", lines[2])
	assert.Equal(t, "└─ Week 2", lines[3])
	assert.Equal(t, "   └─ Day 1", lines[4])
}

func TestRenderTree_ActiveAndDetail(t *testing.T) {
	got := stripANSI(RenderTree([]TreeItem{
		{Title: "Day 1", Active: true, Detail: "3 exercises"},
		{Title: "Day 2 · Pull", Detail: "1 exercise"},
	}))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "▶ Day 1 "))
	assert.True(t, strings.HasSuffix(lines[0], "  [ 3 exercises ]"))
	assert.Equal(t, "Day 2 · Pull  [ 1 exercise ]", lines[1])
	assert.Empty(t, RenderTree(nil))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-30 * time.Hour), "Yesterday"},
		{"older", time.Date(2025, 9, 30, 8, 0, 0, 0, time.UTC), "Sep 30, 2025"},
		{"future today", now.Add(time.Hour), "Today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestamp(tt.at, now))
		})
	}
}

func TestCountAndTruncID(t *testing.T) {
	assert.Equal(t, "1 set", Count(1, "set"))
	assert.Equal(t, "3 sets", Count(3, "set"))
	assert.Equal(t, "abcdef12", stripANSI(TruncID("abcdef12-3456")))
	assert.Equal(t, "--", stripANSI(TruncID("")))
}

func TestFormatProgramList(t *testing.T) {
	now := testutil.FixedTime
	out := stripANSI(FormatProgramList([]*repository.ProgramRecord{
		{ID: "0a1b2c3d-0000", Name: "Block A", Mode: domain.ModeWeekly, SessionCount: 8, UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "ffffeeee-1111", Name: "Travel", Mode: domain.ModeFlat, SessionCount: 3, UpdatedAt: now},
	}, now))

	assert.Contains(t, out, "PROGRAMS")
	assert.Contains(t, out, "0a1b2c3d")
	assert.NotContains(t, out, "0a1b2c3d-0000")
	assert.Contains(t, out, "Block A")
	assert.Contains(t, out, "weekly")
	assert.Contains(t, out, "flat")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "Just now")

	assert.Contains(t, stripANSI(FormatProgramList(nil, now)), "No programs yet")
}

func TestFormatLibraryList(t *testing.T) {
	now := testutil.FixedTime
	out := stripANSI(FormatLibraryList([]*repository.SnapshotRecord{
		{Name: "Push day", Kind: snapshot.KindSession, Summary: "4 exercises", UpdatedAt: now},
		{Name: "Base block", Kind: snapshot.KindProgram, UpdatedAt: now},
	}, now))

	assert.Contains(t, out, "LIBRARY")
	assert.Contains(t, out, "session")
	assert.Contains(t, out, "Push day")
	assert.Contains(t, out, "4 exercises")
	assert.Contains(t, out, "program")
	assert.Contains(t, out, "--")

	assert.Contains(t, stripANSI(FormatLibraryList(nil, now)), "library is empty")
}

func TestFormatProgramTree_Weekly(t *testing.T) {
	e := testutil.NewTestEngine(t, "Strength", testutil.WithWeeks(2), testutil.WithSessions(2),
		testutil.WithLifts("Squat", "Bench"))

	out := stripANSI(FormatProgramTree(e))

	assert.Contains(t, out, "Strength")
	assert.Contains(t, out, "├─ Week 1")
	assert.Contains(t, out, "└─ Week 2")
	assert.Contains(t, out, "▶ Day 1")
	assert.Contains(t, out, "[ 2 exercises ]")
	assert.Contains(t, out, "[ 2 sessions ]")
	assert.Equal(t, 1, strings.Count(out, "▶"))
}

func TestFormatProgramTree_Flat(t *testing.T) {
	e := testutil.NewTestEngine(t, "Travel", testutil.WithFlatMode(), testutil.WithSessions(3))

	out := stripANSI(FormatProgramTree(e))

	assert.Contains(t, out, "[ flat ]")
	assert.NotContains(t, out, "Week")
	assert.Contains(t, out, "└─ Day 3")
}

func TestFormatSession_ComposedSheet(t *testing.T) {
	e := testutil.NewTestEngine(t, "Strength", testutil.WithLifts("Squat"))
	sid := e.ActiveSessionID()
	exs, err := e.Exercises(sid)
	require.NoError(t, err)
	squat := exs[0]

	sets, err := e.Sets(squat.ID)
	require.NoError(t, err)
	require.NoError(t, e.UpdateSet(sid, squat.ID, sets[0].ID, program.SetPatch{
		Reps:   program.Ptr("5"),
		Weight: program.Ptr("225 lbs"),
	}))
	_, err = e.AddSet(sid, squat.ID, nil)
	require.NoError(t, err)

	cid, _, err := e.AddCircuit(sid, "Superset")
	require.NoError(t, err)
	_, err = e.AddExerciseToCircuit(sid, cid, program.ExercisePatch{Name: program.Ptr("Pull-up")})
	require.NoError(t, err)

	out, err := FormatSession(e, sid)
	require.NoError(t, err)
	out = stripANSI(out)

	assert.Contains(t, out, "DAY 1")
	assert.Contains(t, out, "Squat")
	assert.Equal(t, 2, strings.Count(out, "225 lbs"))
	assert.Contains(t, out, "Superset · 3 rounds")
	assert.Contains(t, out, "  Pull-up")
	assert.Less(t, strings.Index(out, "Squat"), strings.Index(out, "Superset"))
	assert.Less(t, strings.Index(out, "Superset"), strings.Index(out, "Pull-up"))
}

func TestFormatSession_UnknownSession(t *testing.T) {
	e := testutil.NewTestEngine(t, "Strength")
	_, err := FormatSession(e, "missing")
	assert.ErrorIs(t, err, program.ErrNotFound)
}
