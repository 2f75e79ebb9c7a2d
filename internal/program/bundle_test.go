package program

import (
	"testing"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCircuitSession adds a superset with two members and a group with one
// exercise to the active session.
func buildCircuitSession(t *testing.T, e *Engine) string {
	t.Helper()
	sid := e.ActiveSessionID()
	cid, _, err := e.AddCircuit(sid, "Superset")
	require.NoError(t, err)
	_, err = e.AddExerciseToCircuit(sid, cid, ExercisePatch{Name: Ptr("Row")})
	require.NoError(t, err)
	m2, err := e.AddExerciseToCircuit(sid, cid, ExercisePatch{Name: Ptr("Press")})
	require.NoError(t, err)
	_, err = e.AddSet(sid, m2, nil)
	require.NoError(t, err)
	gid, err := e.AddGroup(sid, "Finisher")
	require.NoError(t, err)
	_, err = e.AddExerciseToGroup(sid, gid, ExercisePatch{Name: Ptr("Carry")})
	require.NoError(t, err)
	return sid
}

func TestRestore_RoundTripsBundle(t *testing.T) {
	e, _ := newTestEngine(t, domain.ModeWeekly)
	buildCircuitSession(t, e)
	_, _ = e.AddWeek("Two")
	require.NoError(t, e.SetActiveSession(e.Weeks()[1].SessionIDs[0]))
	b := e.Bundle()

	restored, err := Restore(b, WithClock(fixedClock))
	require.NoError(t, err)

	assert.Equal(t, b, restored.Bundle())
	assert.Equal(t, e.Counts(), restored.Counts())
	assert.Equal(t, b.ActiveSessionID, restored.ActiveSessionID())
}

func TestRestore_RecomputesNumbering(t *testing.T) {
	e, _ := newTestEngine(t, domain.ModeWeekly)
	_, _ = e.AddWeek("")
	b := e.Bundle()
	b.Weeks[0].Week.WeekNumber = 7
	b.Weeks[1].Sessions[0].Session.Day = 4

	restored, err := Restore(b)
	require.NoError(t, err)

	weeks := restored.Weeks()
	assert.Equal(t, 1, weeks[0].WeekNumber)
	s, _ := restored.Session(weeks[1].SessionIDs[0])
	assert.Equal(t, 1, s.Day)
}

func TestRestore_FallsBackToFirstSessionWhenActiveMissing(t *testing.T) {
	e, _ := newTestEngine(t, domain.ModeFlat)
	b := e.Bundle()
	b.ActiveSessionID = "gone"

	restored, err := Restore(b)
	require.NoError(t, err)
	assert.Equal(t, b.Sessions[0].Session.ID, restored.ActiveSessionID())
}

func TestSpliceSession_FreshIDsTwice(t *testing.T) {
	src, _ := newTestEngine(t, domain.ModeWeekly)
	sid := buildCircuitSession(t, src)
	sb, err := src.SessionBundle(sid)
	require.NoError(t, err)

	dst, err := Start(domain.Program{Name: "Target"})
	require.NoError(t, err)
	wid := dst.Weeks()[0].ID

	first, err := dst.SpliceSession(wid, sb)
	require.NoError(t, err)
	second, err := dst.SpliceSession(wid, sb)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	sessions, _ := dst.Sessions(wid)
	require.Len(t, sessions, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{sessions[0].Day, sessions[1].Day, sessions[2].Day})

	srcIDs := map[string]bool{}
	for _, eb := range sb.Exercises {
		srcIDs[eb.Exercise.ID] = true
		for _, s := range eb.Sets {
			srcIDs[s.ID] = true
		}
	}
	for _, c := range sb.Circuits {
		srcIDs[c.ID] = true
	}

	for _, spliced := range []string{first, second} {
		b, err := dst.SessionBundle(spliced)
		require.NoError(t, err)
		require.Len(t, b.Exercises, len(sb.Exercises))
		require.Len(t, b.Circuits, 1)
		newCircuit := b.Circuits[0]
		assert.False(t, srcIDs[newCircuit.ID])

		var header string
		for i, eb := range b.Exercises {
			ex := eb.Exercise
			assert.False(t, srcIDs[ex.ID], "exercise id reused")
			assert.Equal(t, spliced, ex.SessionID)
			assert.Equal(t, sb.Exercises[i].Exercise.Name, ex.Name)
			assert.Len(t, eb.Sets, len(sb.Exercises[i].Sets))
			for _, s := range eb.Sets {
				assert.False(t, srcIDs[s.ID], "set id reused")
				assert.Equal(t, ex.ID, s.ExerciseID)
			}
			switch ex.RoleKind() {
			case domain.RoleCircuitHeader:
				header = ex.ID
				assert.Equal(t, newCircuit.ID, ex.CircuitID())
			case domain.RoleCircuitMember:
				assert.Equal(t, newCircuit.ID, ex.CircuitID())
				assert.Contains(t, newCircuit.MemberIDs, ex.ID)
			case domain.RoleGroupHeader:
				assert.Equal(t, "Finisher", ex.Name)
			}
			if gid := ex.GroupID(); gid != "" {
				grp, err := dst.Exercise(gid)
				require.NoError(t, err)
				assert.Equal(t, domain.RoleGroupHeader, grp.RoleKind())
				assert.Equal(t, spliced, grp.SessionID)
			}
		}
		assert.NotEmpty(t, header)
	}
}

func TestSpliceSession_FlatTarget(t *testing.T) {
	src, _ := newTestEngine(t, domain.ModeWeekly)
	sb, _ := src.SessionBundle(src.ActiveSessionID())
	dst, err := Start(domain.Program{Mode: domain.ModeFlat})
	require.NoError(t, err)

	_, err = dst.SpliceSession("", sb)
	require.NoError(t, err)

	sessions, _ := dst.Sessions("")
	assert.Len(t, sessions, 2)
}

func TestSpliceSession_RejectsDanglingMember(t *testing.T) {
	e, _ := newTestEngine(t, domain.ModeWeekly)
	sb := SessionBundle{
		Session: domain.Session{ID: "s"},
		Exercises: []ExerciseBundle{
			{Exercise: domain.Exercise{ID: "m", Role: domain.CircuitMember{CircuitID: "c"}}},
		},
	}
	before := e.Bundle()

	_, err := e.SpliceSession(e.Weeks()[0].ID, sb)

	assert.ErrorIs(t, err, ErrInvalidBundle)
	assert.Equal(t, before, e.Bundle())
}

func TestSpliceProgram_WeeksAppendToWeekly(t *testing.T) {
	src, _ := newTestEngine(t, domain.ModeWeekly)
	_, _ = src.AddWeek("Two")
	dst, err := Start(domain.Program{Name: "Target"})
	require.NoError(t, err)

	require.NoError(t, dst.SpliceProgram(src.Bundle()))
	require.NoError(t, dst.SpliceProgram(src.Bundle()))

	weeks := dst.Weeks()
	require.Len(t, weeks, 5)
	for i, w := range weeks {
		assert.Equal(t, i+1, w.WeekNumber)
	}
	assert.Equal(t, "Two", weeks[2].Name)
	assert.Equal(t, 5, dst.Counts()["sessions"])
}

func TestSpliceProgram_FlatIntoWeeklyMakesOneWeek(t *testing.T) {
	src, _ := newTestEngine(t, domain.ModeFlat)
	_, _ = src.AddSession("", "B")
	dst, err := Start(domain.Program{})
	require.NoError(t, err)

	require.NoError(t, dst.SpliceProgram(src.Bundle()))

	weeks := dst.Weeks()
	require.Len(t, weeks, 2)
	assert.Equal(t, "Test Block", weeks[1].Name)
	assert.Len(t, weeks[1].SessionIDs, 2)
}

func TestSpliceProgram_WeeklyIntoFlatFlattens(t *testing.T) {
	src, _ := newTestEngine(t, domain.ModeWeekly)
	_, _ = src.AddWeek("")
	dst, err := Start(domain.Program{Mode: domain.ModeFlat})
	require.NoError(t, err)

	require.NoError(t, dst.SpliceProgram(src.Bundle()))

	sessions, _ := dst.Sessions("")
	require.Len(t, sessions, 3)
	assert.Equal(t, 3, sessions[2].Day)
}

func TestValidateBundle(t *testing.T) {
	dup := ProgramBundle{
		Program: domain.Program{Mode: domain.ModeFlat},
		Sessions: []SessionBundle{
			{Session: domain.Session{ID: "s1"}, Exercises: []ExerciseBundle{{Exercise: domain.Exercise{ID: "x"}}}},
			{Session: domain.Session{ID: "s2"}, Exercises: []ExerciseBundle{{Exercise: domain.Exercise{ID: "x"}}}},
		},
	}
	assert.ErrorIs(t, ValidateBundle(dup), ErrInvalidBundle)

	mixed := ProgramBundle{
		Program:  domain.Program{Mode: domain.ModeFlat},
		Weeks:    []WeekBundle{{Week: domain.Week{ID: "w"}}},
		Sessions: nil,
	}
	assert.ErrorIs(t, ValidateBundle(mixed), ErrModeMismatch)

	unknownGroup := ProgramBundle{
		Program: domain.Program{Mode: domain.ModeFlat},
		Sessions: []SessionBundle{{
			Session:   domain.Session{ID: "s"},
			Exercises: []ExerciseBundle{{Exercise: domain.Exercise{ID: "x", Role: domain.Plain{GroupID: "g"}}}},
		}},
	}
	assert.ErrorIs(t, ValidateBundle(unknownGroup), ErrInvalidBundle)
}
