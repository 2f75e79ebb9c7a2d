// Package editor drives one session of a program the way the grid view
// does: it routes cell values into the engine, converts set values when a
// notation changes, and moves focus with auto-extension at the sheet edge.
package editor

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/grid"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/units"
)

type Editor struct {
	engine    *program.Engine
	nav       *grid.Controller
	sessionID string
}

// New opens an editor on sessionID, or on the program's active session
// when sessionID is empty. Focus starts on the first cell.
func New(engine *program.Engine, sessionID string) (*Editor, error) {
	if sessionID == "" {
		sessionID = engine.ActiveSessionID()
	}
	if _, err := engine.Session(sessionID); err != nil {
		return nil, fmt.Errorf("opening editor: %w", err)
	}
	ed := &Editor{engine: engine, nav: grid.NewController(), sessionID: sessionID}
	ed.nav.Reconcile(ed.Sheet())
	return ed, nil
}

func (ed *Editor) Engine() *program.Engine { return ed.engine }

func (ed *Editor) SessionID() string { return ed.sessionID }

// SwitchSession moves the editor, and the program's active session, to id.
func (ed *Editor) SwitchSession(id string) error {
	if err := ed.engine.SetActiveSession(id); err != nil {
		return fmt.Errorf("switching session: %w", err)
	}
	ed.sessionID = id
	ed.nav.Blur()
	ed.nav.Reconcile(ed.Sheet())
	return nil
}

// Sheet returns a live view of the session's shape. It reads the engine on
// every call.
func (ed *Editor) Sheet() grid.Sheet {
	return sessionSheet{engine: ed.engine, sessionID: ed.sessionID}
}

type sessionSheet struct {
	engine    *program.Engine
	sessionID string
}

func (s sessionSheet) Rows() []string {
	exs, err := s.engine.Composed(s.sessionID)
	if err != nil {
		return nil
	}
	ids := make([]string, len(exs))
	for i, ex := range exs {
		ids[i] = ex.ID
	}
	return ids
}

func (s sessionSheet) SetCount(exerciseID string) int {
	ex, err := s.engine.Exercise(exerciseID)
	if err != nil || ex.SessionID != s.sessionID {
		return 0
	}
	return len(ex.SetIDs)
}

// --- focus ---

func (ed *Editor) Focused() (grid.Coord, bool) {
	return ed.nav.Focused()
}

// Focus puts focus on c if it addresses a cell of the session.
func (ed *Editor) Focus(c grid.Coord) error {
	if _, err := ed.resolve(c); err != nil {
		return err
	}
	ed.nav.Focus(c)
	return nil
}

// Move shifts focus in dir. Running off the end of the sheet appends an
// exercise first, so the new row exists before it is focused.
func (ed *Editor) Move(dir grid.Direction) (grid.Coord, error) {
	return ed.nav.Move(ed.Sheet(), dir, func() (string, error) {
		return ed.engine.AddExercise(ed.sessionID, program.ExercisePatch{})
	})
}

// Handle applies an event from a cell view.
func (ed *Editor) Handle(ev grid.CellEvent) error {
	switch ev := ev.(type) {
	case grid.ValueChanged:
		return ed.SetValue(ev.Coord, ev.Value)
	case grid.NavigateIntent:
		if cur, ok := ed.nav.Focused(); !ok || cur != ev.From {
			if err := ed.Focus(ev.From); err != nil {
				return err
			}
		}
		_, err := ed.Move(ev.Direction)
		return err
	}
	return fmt.Errorf("unknown cell event %T", ev)
}

// --- cells ---

type cellRef struct {
	exercise domain.Exercise
	set      domain.Set
	hasSet   bool
}

func (ed *Editor) resolve(c grid.Coord) (cellRef, error) {
	ex, err := ed.engine.Exercise(c.ExerciseID)
	if err != nil {
		return cellRef{}, err
	}
	if ex.SessionID != ed.sessionID {
		return cellRef{}, fmt.Errorf("cell %s is outside session %s: %w", c, ed.sessionID, program.ErrNotFound)
	}
	if !c.IsSet() {
		if c.Column != grid.ColName && c.Column != grid.ColNotes {
			return cellRef{}, fmt.Errorf("cell %s: unknown column: %w", c, program.ErrNotFound)
		}
		return cellRef{exercise: ex}, nil
	}
	if !grid.IsSetColumn(c.Column) {
		return cellRef{}, fmt.Errorf("cell %s: unknown column: %w", c, program.ErrNotFound)
	}
	if c.SetIndex >= len(ex.SetIDs) {
		return cellRef{}, fmt.Errorf("cell %s: set index out of range: %w", c, program.ErrNotFound)
	}
	set, err := ed.engine.Set(ex.SetIDs[c.SetIndex])
	if err != nil {
		return cellRef{}, err
	}
	return cellRef{exercise: ex, set: set, hasSet: true}, nil
}

// Value returns the stored text of a cell.
func (ed *Editor) Value(c grid.Coord) (string, error) {
	ref, err := ed.resolve(c)
	if err != nil {
		return "", err
	}
	switch c.Column {
	case grid.ColName:
		return ref.exercise.Name, nil
	case grid.ColNotes:
		return ref.exercise.Notes, nil
	case grid.ColReps:
		return ref.set.Reps, nil
	case grid.ColWeight:
		return ref.set.Weight, nil
	case grid.ColIntensity:
		return ref.set.Intensity, nil
	default:
		return ref.set.Rest, nil
	}
}

// Props returns everything a cell view needs to render c.
func (ed *Editor) Props(c grid.Coord) (grid.CellProps, error) {
	ref, err := ed.resolve(c)
	if err != nil {
		return grid.CellProps{}, err
	}
	value, _ := ed.Value(c)
	focus, ok := ed.nav.Focused()
	return grid.CellProps{
		Coord:       c,
		Value:       value,
		Placeholder: placeholder(ref, c.Column),
		Focused:     ok && focus == c,
	}, nil
}

func placeholder(ref cellRef, col grid.Column) string {
	switch col {
	case grid.ColName:
		if ref.exercise.RoleKind() == domain.RoleCircuitHeader {
			return "circuit"
		}
		return "exercise"
	case grid.ColNotes:
		return "notes"
	case grid.ColReps:
		return units.RepPlaceholder(ref.set.EffectiveRepType(ref.exercise))
	case grid.ColWeight:
		return units.WeightPlaceholder(ref.set.EffectiveWeightType(ref.exercise))
	case grid.ColIntensity:
		return units.IntensityPlaceholder(ref.set.EffectiveIntensityType(ref.exercise))
	case grid.ColRest:
		return "rest"
	}
	return ""
}

// SetValue stores typed text in a cell, normalised for the cell's notation.
// Renaming a circuit header renames the circuit.
func (ed *Editor) SetValue(c grid.Coord, value string) error {
	ref, err := ed.resolve(c)
	if err != nil {
		return err
	}
	ex := ref.exercise

	if !ref.hasSet {
		if c.Column == grid.ColNotes {
			return ed.engine.UpdateExercise(ed.sessionID, ex.ID, program.ExercisePatch{Notes: &value})
		}
		name := strings.TrimSpace(value)
		if ex.RoleKind() == domain.RoleCircuitHeader {
			return ed.engine.UpdateCircuit(ed.sessionID, ex.CircuitID(), program.CircuitPatch{Name: &name})
		}
		return ed.engine.UpdateExercise(ed.sessionID, ex.ID, program.ExercisePatch{Name: &name})
	}

	var p program.SetPatch
	switch c.Column {
	case grid.ColReps:
		p.Reps = program.Ptr(units.FormatReps(value, ref.set.EffectiveRepType(ex)))
	case grid.ColWeight:
		p.Weight = program.Ptr(units.NormalizeWeight(value, ref.set.EffectiveWeightType(ex)))
	case grid.ColIntensity:
		p.Intensity = program.Ptr(units.NormalizeIntensity(value, ref.set.EffectiveIntensityType(ex)))
	case grid.ColRest:
		p.Rest = program.Ptr(units.FormatRest(value))
	}
	return ed.engine.UpdateSet(ed.sessionID, ex.ID, ref.set.ID, p)
}

// UpdateExercise applies p and, when it changes a notation type, rewrites
// every affected set value in the same step.
func (ed *Editor) UpdateExercise(exerciseID string, p program.ExercisePatch) error {
	ex, err := ed.engine.Exercise(exerciseID)
	if err != nil {
		return err
	}
	sets, err := ed.engine.Sets(exerciseID)
	if err != nil {
		return err
	}
	return ed.engine.UpdateExerciseWithSets(ed.sessionID, exerciseID, p, exerciseConversions(ex, sets, p))
}

// UpdateSet applies p to the set at setIndex, converting the set's values
// when an override changes its effective notation.
func (ed *Editor) UpdateSet(exerciseID string, setIndex int, p program.SetPatch) error {
	ref, err := ed.resolve(grid.SetCell(exerciseID, setIndex, grid.ColReps))
	if err != nil {
		return err
	}
	return ed.engine.UpdateSet(ed.sessionID, exerciseID, ref.set.ID, setConversion(ref.exercise, ref.set, p))
}
