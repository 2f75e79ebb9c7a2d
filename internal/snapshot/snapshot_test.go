package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var savedAt = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) }

// sampleEngine builds a two-week program with a circuit, a group and set
// overrides in the first session.
func sampleEngine(t *testing.T) *program.Engine {
	t.Helper()
	e, err := program.Start(domain.Program{Name: "Strength", Settings: domain.Settings{WeightType: domain.WeightKg}},
		program.WithClock(fixedClock))
	require.NoError(t, err)
	sid := e.ActiveSessionID()
	exs, _ := e.Exercises(sid)
	squat := exs[0].ID
	require.NoError(t, e.UpdateExercise(sid, squat, program.ExercisePatch{Name: program.Ptr("Squat"), Notes: program.Ptr("high bar")}))
	sets, _ := e.Sets(squat)
	require.NoError(t, e.UpdateSet(sid, squat, sets[0].ID, program.SetPatch{
		Reps: program.Ptr("5"), Weight: program.Ptr("140 kg"), Intensity: program.Ptr("RPE 8"), Rest: program.Ptr("3:00"),
		IntensityType: program.Ptr(domain.IntensityARPE),
	}))

	cid, _, err := e.AddCircuit(sid, "AMRAP")
	require.NoError(t, err)
	_, err = e.AddExerciseToCircuit(sid, cid, program.ExercisePatch{Name: program.Ptr("Burpee")})
	require.NoError(t, err)
	_, err = e.AddExerciseToCircuit(sid, cid, program.ExercisePatch{Name: program.Ptr("Row"), WeightType: program.Ptr(domain.DistanceMeters)})
	require.NoError(t, err)
	gid, err := e.AddGroup(sid, "Core")
	require.NoError(t, err)
	_, err = e.AddExerciseToGroup(sid, gid, program.ExercisePatch{Name: program.Ptr("Plank")})
	require.NoError(t, err)

	_, err = e.AddWeek("Deload")
	require.NoError(t, err)
	return e
}

func TestProgramSnapshot_RoundTripsThroughJSON(t *testing.T) {
	e := sampleEngine(t)
	b := e.Bundle()

	data, err := Marshal(FromProgram("strength v1", b, savedAt))
	require.NoError(t, err)
	snap, err := Unmarshal(data)
	require.NoError(t, err)
	got, err := snap.ProgramBundle()
	require.NoError(t, err)

	restored, err := program.Restore(got)
	require.NoError(t, err)
	assert.Equal(t, b, restored.Bundle())
	assert.Equal(t, "strength v1", snap.Name)
	assert.Equal(t, savedAt, snap.SavedAt)
}

func TestProgramSnapshot_UsesTreeFieldNames(t *testing.T) {
	data, err := Marshal(FromProgram("x", sampleEngine(t).Bundle(), savedAt))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	prog := raw["program"].(map[string]any)
	week := prog["weeks"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 1, week["weekNumber"])
	session := week["sessions"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 1, session["day"])

	exercises := session["exercises"].([]any)
	header := exercises[1].(map[string]any)
	assert.Equal(t, true, header["isCircuit"])
	member := exercises[2].(map[string]any)
	assert.Equal(t, true, member["isInCircuit"])
	assert.Equal(t, header["circuitId"], member["circuitId"])
	group := exercises[4].(map[string]any)
	assert.Equal(t, true, group["isGroup"])
	grouped := exercises[5].(map[string]any)
	assert.Equal(t, group["id"], grouped["groupId"])

	circuit := session["circuits"].([]any)[0].(map[string]any)
	assert.Equal(t, "AMRAP", circuit["rounds"])
	assert.Len(t, circuit["exerciseIds"], 2)
}

func TestRoundsDoc_JSON(t *testing.T) {
	cases := []struct {
		in   string
		want RoundsDoc
	}{
		{`3`, RoundsDoc{Count: 3}},
		{`"AMRAP"`, RoundsDoc{AMRAP: true}},
		{`"amrap"`, RoundsDoc{AMRAP: true}},
		{`"5"`, RoundsDoc{Count: 5}},
	}
	for _, tc := range cases {
		var r RoundsDoc
		require.NoError(t, json.Unmarshal([]byte(tc.in), &r), tc.in)
		assert.Equal(t, tc.want, r, tc.in)
	}

	var r RoundsDoc
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &r))
	assert.Error(t, json.Unmarshal([]byte(`true`), &r))

	out, err := json.Marshal(RoundsDoc{Count: 4})
	require.NoError(t, err)
	assert.Equal(t, `4`, string(out))
}

func TestSessionSnapshot_SplicesWithFreshIDs(t *testing.T) {
	src := sampleEngine(t)
	sb, err := src.SessionBundle(src.ActiveSessionID())
	require.NoError(t, err)
	data, err := Marshal(FromSession("day one", sb, savedAt))
	require.NoError(t, err)

	snap, err := Unmarshal(data)
	require.NoError(t, err)
	got, err := snap.SessionBundle()
	require.NoError(t, err)

	dst, err := program.Start(domain.Program{Name: "Other"})
	require.NoError(t, err)
	wid := dst.Weeks()[0].ID
	first, err := dst.SpliceSession(wid, got)
	require.NoError(t, err)
	second, err := dst.SpliceSession(wid, got)
	require.NoError(t, err)

	a, _ := dst.Exercises(first)
	b, _ := dst.Exercises(second)
	require.Len(t, a, 6)
	require.Len(t, b, 6)
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.NotEqual(t, a[i].ID, b[i].ID)
	}
	assert.Equal(t, 1+6+6, dst.Counts()["exercises"])
}

func TestSnapshot_WrongKindConversions(t *testing.T) {
	s := FromSession("s", program.SessionBundle{Session: domain.Session{ID: "s"}}, savedAt)
	_, err := s.ProgramBundle()
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	p := FromProgram("p", program.ProgramBundle{Program: domain.Program{ID: "p"}}, savedAt)
	_, err = p.SessionBundle()
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	s := &Snapshot{
		Version: 9,
		Kind:    KindSession,
		Session: &SessionDoc{
			ID: "s",
			Exercises: []ExerciseDoc{
				{ID: "a", RepType: "lots"},
				{ID: "b", IsInCircuit: true, CircuitID: "nope"},
				{ID: "c", IsCircuit: true, IsGroup: true, CircuitID: "c1"},
				{ID: "a", GroupID: "g"},
			},
			Circuits: []CircuitDoc{{ID: "c1", Rounds: RoundsDoc{}}},
		},
	}

	err := Validate(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
	msg := err.Error()
	for _, want := range []string{
		"version 9",
		`session.exercises[0].repType: invalid value "lots"`,
		`session.exercises[1].circuitId: "nope" is not a circuit`,
		"session.exercises[2]: only one of",
		`session.exercises[3].id: duplicate id "a"`,
		`session.exercises[3].groupId: "g" is not a group`,
		"session.circuits[0].rounds",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestValidate_ProgramShape(t *testing.T) {
	s := &Snapshot{
		Version: Version,
		Kind:    KindProgram,
		Program: &ProgramDoc{
			ID:       "p",
			Mode:     "flat",
			Settings: &SettingsDoc{WeightType: "stone"},
			Weeks:    []WeekDoc{{ID: "w"}},
		},
	}
	err := Validate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flat program cannot have weeks")
	assert.Contains(t, err.Error(), `program.settings.weightType: invalid value "stone"`)

	assert.ErrorIs(t, Validate(&Snapshot{Version: Version, Kind: "week"}), ErrInvalidSnapshot)
	assert.ErrorIs(t, Validate(&Snapshot{Version: Version, Kind: KindProgram}), ErrInvalidSnapshot)
}

func TestMarshal_RejectsInvalid(t *testing.T) {
	_, err := Marshal(&Snapshot{Version: Version, Kind: KindSession})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	src := sampleEngine(t)
	data, err := Marshal(FromProgram("file", src.Bundle(), savedAt))
	require.NoError(t, err)
	path := filepath.Join(dir, "program.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, KindProgram, snap.Kind)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"version": 1, "kind": "session"}`), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestSummary(t *testing.T) {
	e := sampleEngine(t)
	assert.Equal(t, "2 weeks, 2 sessions", FromProgram("p", e.Bundle(), savedAt).Summary())

	sb, _ := e.SessionBundle(e.ActiveSessionID())
	assert.Equal(t, "6 exercises", FromSession("s", sb, savedAt).Summary())
}
