package editor

import (
	"fmt"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/grid"
	"github.com/alexanderramin/repsheet/internal/program"
)

// Row is one exercise row of the rendered sheet with its sets.
type Row struct {
	Exercise domain.Exercise
	Sets     []domain.Set
	Circuit  *domain.Circuit // set on circuit header rows
	Nested   bool            // circuit member or grouped exercise
}

// Rows returns the session in render order.
func (ed *Editor) Rows() ([]Row, error) {
	exs, err := ed.engine.Composed(ed.sessionID)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(exs))
	for _, ex := range exs {
		sets, err := ed.engine.Sets(ex.ID)
		if err != nil {
			return nil, err
		}
		row := Row{
			Exercise: ex,
			Sets:     sets,
			Nested:   ex.RoleKind() == domain.RoleCircuitMember || ex.GroupID() != "",
		}
		if ex.RoleKind() == domain.RoleCircuitHeader {
			c, err := ed.engine.Circuit(ex.CircuitID())
			if err != nil {
				return nil, err
			}
			row.Circuit = &c
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (ed *Editor) focusedExercise() (grid.Coord, domain.Exercise, error) {
	c, ok := ed.nav.Focused()
	if !ok {
		return grid.Coord{}, domain.Exercise{}, fmt.Errorf("no cell focused")
	}
	ex, err := ed.engine.Exercise(c.ExerciseID)
	if err != nil {
		return grid.Coord{}, domain.Exercise{}, err
	}
	return c, ex, nil
}

// AddExercise appends a plain exercise and focuses its name.
func (ed *Editor) AddExercise() error {
	id, err := ed.engine.AddExercise(ed.sessionID, program.ExercisePatch{})
	if err != nil {
		return err
	}
	ed.nav.Focus(grid.ExerciseCell(id, grid.ColName))
	return nil
}

// AddSet appends a copy of the focused exercise's last set and focuses it.
// Header rows hold no sets.
func (ed *Editor) AddSet() error {
	c, ex, err := ed.focusedExercise()
	if err != nil {
		return err
	}
	if ex.IsHeader() {
		return fmt.Errorf("%s rows have no sets", ex.RoleKind())
	}
	if _, err := ed.engine.AddSet(ed.sessionID, ex.ID, nil); err != nil {
		return err
	}
	col := c.Column
	if !c.IsSet() {
		col = grid.SetColumns[0]
	}
	ed.nav.Focus(grid.SetCell(ex.ID, len(ex.SetIDs), col))
	return nil
}

// DeleteFocusedSet removes the focused set. The last set of an exercise is
// kept; the sheet offers no way to remove it.
func (ed *Editor) DeleteFocusedSet() error {
	c, ex, err := ed.focusedExercise()
	if err != nil {
		return err
	}
	if !c.IsSet() {
		return fmt.Errorf("focus is not on a set")
	}
	if len(ex.SetIDs) <= 1 {
		return nil
	}
	if err := ed.engine.DeleteSet(ed.sessionID, ex.ID, ex.SetIDs[c.SetIndex]); err != nil {
		return err
	}
	ed.nav.Reconcile(ed.Sheet())
	return nil
}

// DeleteFocusedExercise removes the focused row with the engine's role
// cascade. Focus moves to the row that took its place.
func (ed *Editor) DeleteFocusedExercise() error {
	_, ex, err := ed.focusedExercise()
	if err != nil {
		return err
	}
	rows := ed.Sheet().Rows()
	pos := indexOf(rows, ex.ID)

	if err := ed.engine.DeleteExercise(ed.sessionID, ex.ID); err != nil {
		return err
	}

	rows = ed.Sheet().Rows()
	if pos >= len(rows) {
		pos = len(rows) - 1
	}
	if pos >= 0 {
		ed.nav.Focus(grid.ExerciseCell(rows[pos], grid.ColName))
	}
	ed.nav.Reconcile(ed.Sheet())
	return nil
}

// AddCircuit appends a circuit with one member and focuses the member.
func (ed *Editor) AddCircuit(name string) (string, error) {
	cid, _, err := ed.engine.AddCircuit(ed.sessionID, name)
	if err != nil {
		return "", err
	}
	mid, err := ed.engine.AddExerciseToCircuit(ed.sessionID, cid, program.ExercisePatch{})
	if err != nil {
		return "", err
	}
	ed.nav.Focus(grid.ExerciseCell(mid, grid.ColName))
	return cid, nil
}

// AddToCircuit adds a member to the circuit of the focused row.
func (ed *Editor) AddToCircuit() error {
	_, ex, err := ed.focusedExercise()
	if err != nil {
		return err
	}
	cid := ex.CircuitID()
	if cid == "" {
		return fmt.Errorf("focused row is not part of a circuit")
	}
	mid, err := ed.engine.AddExerciseToCircuit(ed.sessionID, cid, program.ExercisePatch{})
	if err != nil {
		return err
	}
	ed.nav.Focus(grid.ExerciseCell(mid, grid.ColName))
	return nil
}

// SetRounds parses text as circuit rounds for the focused circuit.
func (ed *Editor) SetRounds(text string) error {
	_, ex, err := ed.focusedExercise()
	if err != nil {
		return err
	}
	cid := ex.CircuitID()
	if cid == "" {
		return fmt.Errorf("focused row is not part of a circuit")
	}
	r, err := domain.ParseRounds(text)
	if err != nil {
		return err
	}
	return ed.engine.UpdateCircuit(ed.sessionID, cid, program.CircuitPatch{Rounds: &r})
}

// AddGroup appends a group header with one exercise and focuses the exercise.
func (ed *Editor) AddGroup(name string) (string, error) {
	gid, err := ed.engine.AddGroup(ed.sessionID, name)
	if err != nil {
		return "", err
	}
	xid, err := ed.engine.AddExerciseToGroup(ed.sessionID, gid, program.ExercisePatch{})
	if err != nil {
		return "", err
	}
	ed.nav.Focus(grid.ExerciseCell(xid, grid.ColName))
	return gid, nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
