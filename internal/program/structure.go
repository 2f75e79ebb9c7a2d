package program

import (
	"fmt"

	"github.com/alexanderramin/repsheet/internal/domain"
)

// AddWeek appends a week holding one default session. The first week of a
// program takes the active session.
func (e *Engine) AddWeek(name string) (string, error) {
	if e.program.Mode == domain.ModeFlat {
		return "", fmt.Errorf("adding week to flat program: %w", ErrModeMismatch)
	}
	first := len(e.weekIDs) == 0

	w := &domain.Week{
		ID:         e.newID(),
		ProgramID:  e.program.ID,
		WeekNumber: len(e.weekIDs) + 1,
		Name:       name,
	}
	e.weeks[w.ID] = w
	e.weekIDs = append(e.weekIDs, w.ID)

	sid := e.newSession(w.ID, "", &w.SessionIDs)
	if first || e.active == "" {
		e.active = sid
	}
	e.touch()
	return w.ID, nil
}

// DeleteWeek removes a week and everything under it, then renumbers the
// remaining weeks. The last week cannot be deleted.
func (e *Engine) DeleteWeek(weekID string) error {
	w, ok := e.weeks[weekID]
	if !ok {
		return fmt.Errorf("week %s: %w", weekID, ErrNotFound)
	}
	if len(e.weekIDs) <= 1 {
		return e.warn(ErrLastWeek)
	}

	heldActive := indexOf(w.SessionIDs, e.active) >= 0
	for _, sid := range w.SessionIDs {
		e.dropSession(sid)
	}
	delete(e.weeks, weekID)
	e.weekIDs = removeID(e.weekIDs, weekID)
	e.renumberWeeks()

	if heldActive {
		e.active = ""
		if first := e.weeks[e.weekIDs[0]]; len(first.SessionIDs) > 0 {
			e.active = first.SessionIDs[0]
		}
	}
	e.touch()
	return nil
}

func (e *Engine) UpdateWeek(weekID string, p WeekPatch) error {
	w, ok := e.weeks[weekID]
	if !ok {
		return fmt.Errorf("week %s: %w", weekID, ErrNotFound)
	}
	p.apply(w)
	e.touch()
	return nil
}

// AddSession appends a session to weekID, or to the flat list when weekID
// is empty on a flat program. The session starts with one empty exercise.
func (e *Engine) AddSession(weekID, name string) (string, error) {
	ids, err := e.sessionList(weekID)
	if err != nil {
		return "", fmt.Errorf("adding session: %w", err)
	}
	sid := e.newSession(weekID, name, ids)
	if e.active == "" {
		e.active = sid
	}
	e.touch()
	return sid, nil
}

// DeleteSession removes a session and renumbers its siblings. The only
// session of a week, or of a flat program, cannot be deleted.
func (e *Engine) DeleteSession(sessionID string) error {
	s, ok := e.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	ids, err := e.sessionList(s.WeekID)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", sessionID, err)
	}
	if len(*ids) <= 1 {
		return e.warn(ErrLastSession)
	}

	*ids = removeID(*ids, sessionID)
	e.dropSession(sessionID)
	e.renumberSessions(*ids)

	if e.active == sessionID {
		e.active = (*ids)[0]
	}
	e.touch()
	return nil
}

func (e *Engine) UpdateSession(sessionID string, p SessionPatch) error {
	s, ok := e.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	p.apply(s)
	e.touch()
	return nil
}

func (e *Engine) newSession(weekID, name string, ids *[]string) string {
	s := &domain.Session{
		ID:        e.newID(),
		ProgramID: e.program.ID,
		WeekID:    weekID,
		Name:      name,
		Day:       len(*ids) + 1,
	}
	e.sessions[s.ID] = s
	*ids = append(*ids, s.ID)
	e.newExercise(s, domain.Plain{}, ExercisePatch{}, len(s.ExerciseIDs), true)
	return s.ID
}

// dropSession deletes a session's subtree from the arena. The caller
// unlinks it from its parent.
func (e *Engine) dropSession(sessionID string) {
	s := e.sessions[sessionID]
	for _, xid := range s.ExerciseIDs {
		e.dropExercise(xid)
	}
	for _, cid := range s.CircuitIDs {
		delete(e.circuits, cid)
	}
	delete(e.sessions, sessionID)
}
