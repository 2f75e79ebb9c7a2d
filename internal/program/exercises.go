package program

import (
	"fmt"

	"github.com/alexanderramin/repsheet/internal/domain"
)

// AddExercise appends a plain exercise with one empty set.
func (e *Engine) AddExercise(sessionID string, p ExercisePatch) (string, error) {
	s, ok := e.sessions[sessionID]
	if !ok {
		return "", fmt.Errorf("adding exercise to session %s: %w", sessionID, ErrNotFound)
	}
	ex := e.newExercise(s, domain.Plain{}, p, len(s.ExerciseIDs), true)
	e.touch()
	return ex.ID, nil
}

// UpdateExercise merges p into the exercise. Notation type fields are stored
// as given; converting set values is the caller's job (see
// UpdateExerciseWithSets).
func (e *Engine) UpdateExercise(sessionID, exerciseID string, p ExercisePatch) error {
	_, ex, err := e.exerciseIn(sessionID, exerciseID)
	if err != nil {
		return err
	}
	p.apply(ex)
	e.touch()
	return nil
}

// UpdateExerciseWithSets applies an exercise patch together with patches
// for its sets in one step. Every id is resolved before anything changes.
func (e *Engine) UpdateExerciseWithSets(sessionID, exerciseID string, p ExercisePatch, sets map[string]SetPatch) error {
	_, ex, err := e.exerciseIn(sessionID, exerciseID)
	if err != nil {
		return err
	}
	for id := range sets {
		if indexOf(ex.SetIDs, id) < 0 {
			return fmt.Errorf("set %s in exercise %s: %w", id, exerciseID, ErrNotFound)
		}
	}
	p.apply(ex)
	for id, sp := range sets {
		sp.apply(e.sets[id])
	}
	e.touch()
	return nil
}

// DeleteExercise removes an exercise with a role-aware cascade: a circuit
// header takes its circuit and members, a group header takes the exercises
// of its group. A delete that would empty the session is rejected.
func (e *Engine) DeleteExercise(sessionID, exerciseID string) error {
	s, ex, err := e.exerciseIn(sessionID, exerciseID)
	if err != nil {
		return err
	}

	doomed := e.cascade(s, ex)
	if len(doomed) >= len(s.ExerciseIDs) {
		return e.warn(ErrLastExercise)
	}

	switch r := ex.Role.(type) {
	case domain.CircuitHeader:
		s.CircuitIDs = removeID(s.CircuitIDs, r.CircuitID)
		delete(e.circuits, r.CircuitID)
	case domain.CircuitMember:
		if c, ok := e.circuits[r.CircuitID]; ok {
			c.MemberIDs = removeID(c.MemberIDs, ex.ID)
		}
	}

	kept := s.ExerciseIDs[:0]
	for _, id := range s.ExerciseIDs {
		if doomed[id] {
			e.dropExercise(id)
			continue
		}
		kept = append(kept, id)
	}
	s.ExerciseIDs = kept
	e.touch()
	return nil
}

// cascade returns the ids removed when ex is deleted, ex included.
func (e *Engine) cascade(s *domain.Session, ex *domain.Exercise) map[string]bool {
	doomed := map[string]bool{ex.ID: true}
	for _, id := range s.ExerciseIDs {
		other := e.exercises[id]
		switch ex.RoleKind() {
		case domain.RoleCircuitHeader:
			if other.CircuitID() == ex.CircuitID() {
				doomed[id] = true
			}
		case domain.RoleGroupHeader:
			if other.GroupID() == ex.ID {
				doomed[id] = true
			}
		}
	}
	return doomed
}

// AddSet appends a set. A nil patch copies the previous set, values and
// overrides, or adds an empty set when there is none.
func (e *Engine) AddSet(sessionID, exerciseID string, p *SetPatch) (string, error) {
	_, ex, err := e.exerciseIn(sessionID, exerciseID)
	if err != nil {
		return "", fmt.Errorf("adding set: %w", err)
	}
	set := &domain.Set{}
	if p == nil {
		if n := len(ex.SetIDs); n > 0 {
			*set = *e.sets[ex.SetIDs[n-1]]
		}
	} else {
		p.apply(set)
	}
	set.ID = e.newID()
	set.ExerciseID = ex.ID
	e.sets[set.ID] = set
	ex.SetIDs = append(ex.SetIDs, set.ID)
	e.touch()
	return set.ID, nil
}

func (e *Engine) UpdateSet(sessionID, exerciseID, setID string, p SetPatch) error {
	_, ex, err := e.exerciseIn(sessionID, exerciseID)
	if err != nil {
		return err
	}
	if indexOf(ex.SetIDs, setID) < 0 {
		return fmt.Errorf("set %s in exercise %s: %w", setID, exerciseID, ErrNotFound)
	}
	p.apply(e.sets[setID])
	e.touch()
	return nil
}

// DeleteSet removes a set. An exercise may be left with no sets.
func (e *Engine) DeleteSet(sessionID, exerciseID, setID string) error {
	_, ex, err := e.exerciseIn(sessionID, exerciseID)
	if err != nil {
		return err
	}
	if indexOf(ex.SetIDs, setID) < 0 {
		return fmt.Errorf("set %s in exercise %s: %w", setID, exerciseID, ErrNotFound)
	}
	ex.SetIDs = removeID(ex.SetIDs, setID)
	delete(e.sets, setID)
	e.touch()
	return nil
}

// newExercise inserts an exercise at position pos of the session. Notation
// defaults come from the program settings unless p names them.
func (e *Engine) newExercise(s *domain.Session, role domain.Role, p ExercisePatch, pos int, withSet bool) *domain.Exercise {
	ex := &domain.Exercise{
		ID:            e.newID(),
		SessionID:     s.ID,
		Role:          role,
		RepType:       e.program.Settings.RepType,
		IntensityType: e.program.Settings.IntensityType,
		WeightType:    e.program.Settings.WeightType,
	}
	p.apply(ex)
	e.exercises[ex.ID] = ex
	s.ExerciseIDs = insertAt(s.ExerciseIDs, pos, ex.ID)

	if withSet {
		set := &domain.Set{ID: e.newID(), ExerciseID: ex.ID}
		e.sets[set.ID] = set
		ex.SetIDs = append(ex.SetIDs, set.ID)
	}
	return ex
}

func (e *Engine) dropExercise(id string) {
	ex, ok := e.exercises[id]
	if !ok {
		return
	}
	for _, sid := range ex.SetIDs {
		delete(e.sets, sid)
	}
	delete(e.exercises, id)
}
