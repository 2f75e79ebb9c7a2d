package program

import (
	"fmt"

	"github.com/alexanderramin/repsheet/internal/domain"
)

// AddCircuit creates a circuit and its header row at the end of the session.
// Rounds start from the default for the style the name implies.
func (e *Engine) AddCircuit(sessionID, name string) (circuitID, headerID string, err error) {
	s, ok := e.sessions[sessionID]
	if !ok {
		return "", "", fmt.Errorf("adding circuit to session %s: %w", sessionID, ErrNotFound)
	}
	c := &domain.Circuit{
		ID:        e.newID(),
		SessionID: sessionID,
		Name:      name,
		Rounds:    domain.DefaultRounds(domain.StyleForName(name)),
	}
	e.circuits[c.ID] = c
	s.CircuitIDs = append(s.CircuitIDs, c.ID)

	header := e.newExercise(s, domain.CircuitHeader{CircuitID: c.ID}, ExercisePatch{Name: &name}, len(s.ExerciseIDs), false)
	e.touch()
	return c.ID, header.ID, nil
}

// AddExerciseToCircuit inserts a member right after the circuit's last
// member in session order, or right after its header when it has none.
func (e *Engine) AddExerciseToCircuit(sessionID, circuitID string, p ExercisePatch) (string, error) {
	s, ok := e.sessions[sessionID]
	if !ok {
		return "", fmt.Errorf("adding circuit member to session %s: %w", sessionID, ErrNotFound)
	}
	c, ok := e.circuits[circuitID]
	if !ok || c.SessionID != sessionID {
		return "", fmt.Errorf("circuit %s in session %s: %w", circuitID, sessionID, ErrNotFound)
	}

	after := -1
	order := 0
	for i, id := range s.ExerciseIDs {
		ex := e.exercises[id]
		if ex.CircuitID() != circuitID {
			continue
		}
		after = i
		if ex.RoleKind() == domain.RoleCircuitMember && ex.CircuitOrder() >= order {
			order = ex.CircuitOrder() + 1
		}
	}
	if after < 0 {
		return "", fmt.Errorf("header of circuit %s: %w", circuitID, ErrNotFound)
	}

	ex := e.newExercise(s, domain.CircuitMember{CircuitID: circuitID, Order: order}, p, after+1, true)
	c.MemberIDs = append(c.MemberIDs, ex.ID)
	e.touch()
	return ex.ID, nil
}

// UpdateCircuit merges p into the circuit. A rename also renames the header
// row.
func (e *Engine) UpdateCircuit(sessionID, circuitID string, p CircuitPatch) error {
	c, ok := e.circuits[circuitID]
	if !ok || c.SessionID != sessionID {
		return fmt.Errorf("circuit %s in session %s: %w", circuitID, sessionID, ErrNotFound)
	}
	if p.Rounds != nil && !p.Rounds.Valid() {
		return fmt.Errorf("rounds %s: %w", p.Rounds, ErrInvalidRounds)
	}
	p.apply(c)
	if p.Name != nil {
		if h := e.circuitHeader(c); h != nil {
			h.Name = *p.Name
		}
	}
	e.touch()
	return nil
}

// DeleteCircuit deletes a circuit the same way deleting its header does.
func (e *Engine) DeleteCircuit(sessionID, circuitID string) error {
	c, ok := e.circuits[circuitID]
	if !ok || c.SessionID != sessionID {
		return fmt.Errorf("circuit %s in session %s: %w", circuitID, sessionID, ErrNotFound)
	}
	h := e.circuitHeader(c)
	if h == nil {
		return fmt.Errorf("header of circuit %s: %w", circuitID, ErrNotFound)
	}
	return e.DeleteExercise(sessionID, h.ID)
}

func (e *Engine) circuitHeader(c *domain.Circuit) *domain.Exercise {
	s := e.sessions[c.SessionID]
	for _, id := range s.ExerciseIDs {
		ex := e.exercises[id]
		if r, ok := ex.Role.(domain.CircuitHeader); ok && r.CircuitID == c.ID {
			return ex
		}
	}
	return nil
}

// AddGroup appends a group header row. The header's id is the group id.
func (e *Engine) AddGroup(sessionID, name string) (string, error) {
	s, ok := e.sessions[sessionID]
	if !ok {
		return "", fmt.Errorf("adding group to session %s: %w", sessionID, ErrNotFound)
	}
	h := e.newExercise(s, domain.GroupHeader{}, ExercisePatch{Name: &name}, len(s.ExerciseIDs), false)
	e.touch()
	return h.ID, nil
}

// AddExerciseToGroup inserts a plain exercise tagged with groupID after the
// group's last exercise, or after its header.
func (e *Engine) AddExerciseToGroup(sessionID, groupID string, p ExercisePatch) (string, error) {
	s, h, err := e.exerciseIn(sessionID, groupID)
	if err != nil {
		return "", fmt.Errorf("adding group member: %w", err)
	}
	if h.RoleKind() != domain.RoleGroupHeader {
		return "", fmt.Errorf("exercise %s is not a group header: %w", groupID, ErrNotFound)
	}
	after := indexOf(s.ExerciseIDs, groupID)
	for i, id := range s.ExerciseIDs {
		if e.exercises[id].GroupID() == groupID {
			after = i
		}
	}
	ex := e.newExercise(s, domain.Plain{GroupID: groupID}, p, after+1, true)
	e.touch()
	return ex.ID, nil
}
