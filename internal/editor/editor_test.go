package editor

import (
	"testing"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/grid"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEditor(t *testing.T) (*Editor, *[]string) {
	t.Helper()
	var warnings []string
	e, err := program.Start(domain.Program{Name: "Block"},
		program.WithNotifier(program.NotifierFunc(func(msg string) { warnings = append(warnings, msg) })))
	require.NoError(t, err)
	ed, err := New(e, "")
	require.NoError(t, err)
	return ed, &warnings
}

func firstExercise(t *testing.T, ed *Editor) domain.Exercise {
	t.Helper()
	rows, err := ed.Rows()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	return rows[0].Exercise
}

func value(t *testing.T, ed *Editor, c grid.Coord) string {
	t.Helper()
	v, err := ed.Value(c)
	require.NoError(t, err)
	return v
}

func TestNew_FocusesFirstCell(t *testing.T) {
	ed, _ := newEditor(t)
	c, ok := ed.Focused()
	require.True(t, ok)
	assert.Equal(t, grid.ExerciseCell(firstExercise(t, ed).ID, grid.ColName), c)
}

func TestNew_UnknownSession(t *testing.T) {
	e, err := program.Start(domain.Program{})
	require.NoError(t, err)
	_, err = New(e, "missing")
	assert.ErrorIs(t, err, program.ErrNotFound)
}

func TestUpdateExercise_IntensityCascadeRPEToPercent(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	cell := grid.SetCell(ex.ID, 0, grid.ColIntensity)
	require.NoError(t, ed.SetValue(cell, "RPE 8"))

	require.NoError(t, ed.UpdateExercise(ex.ID, program.ExercisePatch{IntensityType: program.Ptr(domain.IntensityPercent)}))

	// (8 - 1) * 10 + 5
	assert.Equal(t, "75%", value(t, ed, cell))
	got, _ := ed.Engine().Exercise(ex.ID)
	assert.Equal(t, domain.IntensityPercent, got.IntensityType)

	require.NoError(t, ed.UpdateExercise(ex.ID, program.ExercisePatch{IntensityType: program.Ptr(domain.IntensityRPE)}))
	assert.Equal(t, "RPE 8", value(t, ed, cell))
}

func TestUpdateExercise_CascadeSkipsOverriddenSets(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	require.NoError(t, ed.SetValue(grid.SetCell(ex.ID, 0, grid.ColWeight), "135"))
	require.NoError(t, ed.Focus(grid.SetCell(ex.ID, 0, grid.ColWeight)))
	require.NoError(t, ed.AddSet())
	require.NoError(t, ed.UpdateSet(ex.ID, 1, program.SetPatch{WeightType: program.Ptr(domain.WeightKg)}))
	assert.Equal(t, "61.235 kg", value(t, ed, grid.SetCell(ex.ID, 1, grid.ColWeight)))

	require.NoError(t, ed.UpdateExercise(ex.ID, program.ExercisePatch{WeightType: program.Ptr(domain.DistanceMeters)}))

	assert.Equal(t, "", value(t, ed, grid.SetCell(ex.ID, 0, grid.ColWeight)), "cross-family clears")
	assert.Equal(t, "61.235 kg", value(t, ed, grid.SetCell(ex.ID, 1, grid.ColWeight)), "override keeps its unit")
}

func TestUpdateExercise_RepTypeKeepsText(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	cell := grid.SetCell(ex.ID, 0, grid.ColReps)
	require.NoError(t, ed.SetValue(cell, "8"))

	require.NoError(t, ed.UpdateExercise(ex.ID, program.ExercisePatch{RepType: program.Ptr(domain.RepRange)}))
	assert.Equal(t, "8", value(t, ed, cell))

	require.NoError(t, ed.SetValue(cell, "8 to 10"))
	assert.Equal(t, "8-10", value(t, ed, cell))
}

func TestUpdateSet_ClearingOverrideConvertsBack(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	cell := grid.SetCell(ex.ID, 0, grid.ColIntensity)
	require.NoError(t, ed.UpdateSet(ex.ID, 0, program.SetPatch{IntensityType: program.Ptr(domain.IntensityPercent)}))
	require.NoError(t, ed.SetValue(cell, "85"))
	assert.Equal(t, "85%", value(t, ed, cell))

	require.NoError(t, ed.UpdateSet(ex.ID, 0, program.SetPatch{IntensityType: program.Ptr(domain.IntensityType(""))}))

	assert.Equal(t, "RPE 9", value(t, ed, cell))
}

func TestSetValue_Normalises(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)

	require.NoError(t, ed.SetValue(grid.ExerciseCell(ex.ID, grid.ColName), "  Back Squat "))
	require.NoError(t, ed.SetValue(grid.ExerciseCell(ex.ID, grid.ColNotes), " belt "))
	require.NoError(t, ed.SetValue(grid.SetCell(ex.ID, 0, grid.ColReps), "05"))
	require.NoError(t, ed.SetValue(grid.SetCell(ex.ID, 0, grid.ColWeight), "225"))
	require.NoError(t, ed.SetValue(grid.SetCell(ex.ID, 0, grid.ColIntensity), "7.5"))
	require.NoError(t, ed.SetValue(grid.SetCell(ex.ID, 0, grid.ColRest), "180"))

	assert.Equal(t, "Back Squat", value(t, ed, grid.ExerciseCell(ex.ID, grid.ColName)))
	assert.Equal(t, " belt ", value(t, ed, grid.ExerciseCell(ex.ID, grid.ColNotes)))
	assert.Equal(t, "5", value(t, ed, grid.SetCell(ex.ID, 0, grid.ColReps)))
	assert.Equal(t, "225 lbs", value(t, ed, grid.SetCell(ex.ID, 0, grid.ColWeight)))
	assert.Equal(t, "RPE 7.5", value(t, ed, grid.SetCell(ex.ID, 0, grid.ColIntensity)))
	assert.Equal(t, "3:00", value(t, ed, grid.SetCell(ex.ID, 0, grid.ColRest)))
}

func TestSetValue_BadCells(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)

	assert.ErrorIs(t, ed.SetValue(grid.SetCell(ex.ID, 3, grid.ColReps), "5"), program.ErrNotFound)
	assert.ErrorIs(t, ed.SetValue(grid.ExerciseCell("nope", grid.ColName), "x"), program.ErrNotFound)
	assert.ErrorIs(t, ed.SetValue(grid.ExerciseCell(ex.ID, grid.ColReps), "x"), program.ErrNotFound)
}

func TestProps(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)

	p, err := ed.Props(grid.ExerciseCell(ex.ID, grid.ColName))
	require.NoError(t, err)
	assert.True(t, p.Focused)
	assert.Equal(t, "exercise", p.Placeholder)

	p, err = ed.Props(grid.SetCell(ex.ID, 0, grid.ColIntensity))
	require.NoError(t, err)
	assert.False(t, p.Focused)
	assert.Equal(t, "RPE", p.Placeholder)
	assert.Empty(t, p.Value)
}

func TestMove_DownFromLastNotesAddsExercise(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	require.NoError(t, ed.Focus(grid.ExerciseCell(ex.ID, grid.ColNotes)))

	got, err := ed.Move(grid.Down)
	require.NoError(t, err)

	rows, _ := ed.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, grid.ExerciseCell(rows[1].Exercise.ID, grid.ColName), got)
	assert.Len(t, rows[1].Sets, 1)
}

func TestMove_RightFromLastRestExitsToNotes(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	require.NoError(t, ed.Focus(grid.SetCell(ex.ID, 0, grid.ColRest)))

	got, err := ed.Move(grid.Right)
	require.NoError(t, err)

	assert.Equal(t, grid.ExerciseCell(ex.ID, grid.ColNotes), got)
	rows, _ := ed.Rows()
	assert.Len(t, rows, 1)
	assert.Len(t, rows[0].Sets, 1)
}

func TestMove_DownFromLastRestAddsExerciseAndEntersItsSet(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	require.NoError(t, ed.Focus(grid.SetCell(ex.ID, 0, grid.ColRest)))

	got, err := ed.Move(grid.Down)
	require.NoError(t, err)

	rows, _ := ed.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, grid.SetCell(rows[1].Exercise.ID, 0, grid.ColReps), got)
}

func TestMove_WalksThroughCircuitInRenderOrder(t *testing.T) {
	ed, _ := newEditor(t)
	first := firstExercise(t, ed)
	_, err := ed.AddCircuit("Superset")
	require.NoError(t, err)
	require.NoError(t, ed.AddToCircuit())
	rows, _ := ed.Rows()
	require.Len(t, rows, 4)

	require.NoError(t, ed.Focus(grid.ExerciseCell(first.ID, grid.ColName)))
	var visited []string
	for i := 0; i < 3; i++ {
		c, err := ed.Move(grid.Down)
		require.NoError(t, err)
		visited = append(visited, c.ExerciseID)
	}
	assert.Equal(t, []string{rows[1].Exercise.ID, rows[2].Exercise.ID, rows[3].Exercise.ID}, visited)
}

func TestHandle_Events(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	cell := grid.SetCell(ex.ID, 0, grid.ColReps)

	require.NoError(t, ed.Handle(grid.ValueChanged{Coord: cell, Value: "12"}))
	assert.Equal(t, "12", value(t, ed, cell))

	require.NoError(t, ed.Handle(grid.NavigateIntent{From: cell, Direction: grid.Right}))
	got, _ := ed.Focused()
	assert.Equal(t, grid.SetCell(ex.ID, 0, grid.ColWeight), got)
}

func TestAddSet_CopiesAndFocuses(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	require.NoError(t, ed.SetValue(grid.SetCell(ex.ID, 0, grid.ColReps), "5"))

	require.NoError(t, ed.AddSet())

	got, _ := ed.Focused()
	assert.Equal(t, grid.SetCell(ex.ID, 1, grid.ColReps), got)
	assert.Equal(t, "5", value(t, ed, got))
}

func TestAddSet_HeaderRejected(t *testing.T) {
	ed, _ := newEditor(t)
	_, err := ed.AddGroup("Accessories")
	require.NoError(t, err)
	rows, _ := ed.Rows()
	require.NoError(t, ed.Focus(grid.ExerciseCell(rows[1].Exercise.ID, grid.ColName)))

	assert.Error(t, ed.AddSet())
}

func TestDeleteFocusedSet_KeepsLastSet(t *testing.T) {
	ed, _ := newEditor(t)
	ex := firstExercise(t, ed)
	require.NoError(t, ed.Focus(grid.SetCell(ex.ID, 0, grid.ColReps)))
	require.NoError(t, ed.AddSet())

	require.NoError(t, ed.DeleteFocusedSet())
	got, _ := ed.Focused()
	assert.Equal(t, grid.SetCell(ex.ID, 0, grid.ColReps), got)

	require.NoError(t, ed.DeleteFocusedSet())
	rows, _ := ed.Rows()
	assert.Len(t, rows[0].Sets, 1)
}

func TestDeleteFocusedExercise(t *testing.T) {
	ed, warnings := newEditor(t)
	first := firstExercise(t, ed)
	require.NoError(t, ed.AddExercise())
	second, _ := ed.Focused()

	require.NoError(t, ed.DeleteFocusedExercise())
	got, _ := ed.Focused()
	assert.Equal(t, grid.ExerciseCell(first.ID, grid.ColName), got)
	assert.NotEqual(t, second.ExerciseID, got.ExerciseID)

	err := ed.DeleteFocusedExercise()
	assert.ErrorIs(t, err, program.ErrLastExercise)
	assert.Len(t, *warnings, 1)
}

func TestCircuitEditing(t *testing.T) {
	ed, _ := newEditor(t)
	cid, err := ed.AddCircuit("circuit")
	require.NoError(t, err)

	rows, err := ed.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	header := rows[1]
	require.NotNil(t, header.Circuit)
	assert.Equal(t, cid, header.Circuit.ID)
	assert.True(t, rows[2].Nested)
	assert.False(t, header.Nested)

	require.NoError(t, ed.SetValue(grid.ExerciseCell(header.Exercise.ID, grid.ColName), "EMOM"))
	c, _ := ed.Engine().Circuit(cid)
	assert.Equal(t, "EMOM", c.Name)

	require.NoError(t, ed.Focus(grid.ExerciseCell(header.Exercise.ID, grid.ColName)))
	require.NoError(t, ed.SetRounds("amrap"))
	c, _ = ed.Engine().Circuit(cid)
	assert.True(t, c.Rounds.AMRAP)
	assert.Error(t, ed.SetRounds("zero"))
}

func TestSwitchSession(t *testing.T) {
	ed, _ := newEditor(t)
	wid := ed.Engine().Weeks()[0].ID
	sid, err := ed.Engine().AddSession(wid, "B")
	require.NoError(t, err)

	require.NoError(t, ed.SwitchSession(sid))

	assert.Equal(t, sid, ed.SessionID())
	assert.Equal(t, sid, ed.Engine().ActiveSessionID())
	c, ok := ed.Focused()
	require.True(t, ok)
	ex, _ := ed.Engine().Exercise(c.ExerciseID)
	assert.Equal(t, sid, ex.SessionID)
}
