package program

import (
	"fmt"

	"github.com/alexanderramin/repsheet/internal/domain"
)

// Bundles are nested, self-contained copies of a subtree. They are what the
// persistence and library layers serialise.

type ExerciseBundle struct {
	Exercise domain.Exercise
	Sets     []domain.Set
}

type SessionBundle struct {
	Session   domain.Session
	Exercises []ExerciseBundle // stored order
	Circuits  []domain.Circuit
}

type WeekBundle struct {
	Week     domain.Week
	Sessions []SessionBundle
}

// ProgramBundle holds Weeks for a weekly program or Sessions for a flat one.
type ProgramBundle struct {
	Program         domain.Program
	Weeks           []WeekBundle
	Sessions        []SessionBundle
	ActiveSessionID string
}

// Bundle copies the whole tree.
func (e *Engine) Bundle() ProgramBundle {
	b := ProgramBundle{Program: e.program, ActiveSessionID: e.active}
	for _, wid := range e.weekIDs {
		w := e.weeks[wid]
		wb := WeekBundle{Week: w.Clone()}
		for _, sid := range w.SessionIDs {
			wb.Sessions = append(wb.Sessions, e.sessionBundle(sid))
		}
		b.Weeks = append(b.Weeks, wb)
	}
	for _, sid := range e.flatIDs {
		b.Sessions = append(b.Sessions, e.sessionBundle(sid))
	}
	return b
}

// SessionBundle copies one session subtree.
func (e *Engine) SessionBundle(sessionID string) (SessionBundle, error) {
	if _, ok := e.sessions[sessionID]; !ok {
		return SessionBundle{}, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return e.sessionBundle(sessionID), nil
}

func (e *Engine) sessionBundle(sessionID string) SessionBundle {
	s := e.sessions[sessionID]
	sb := SessionBundle{Session: s.Clone()}
	for _, xid := range s.ExerciseIDs {
		ex := e.exercises[xid]
		eb := ExerciseBundle{Exercise: ex.Clone()}
		for _, setID := range ex.SetIDs {
			eb.Sets = append(eb.Sets, *e.sets[setID])
		}
		sb.Exercises = append(sb.Exercises, eb)
	}
	for _, cid := range s.CircuitIDs {
		sb.Circuits = append(sb.Circuits, e.circuits[cid].Clone())
	}
	return sb
}

// Restore rebuilds an engine from a bundle, keeping every id. Numbering is
// recomputed from bundle order.
func Restore(b ProgramBundle, opts ...Option) (*Engine, error) {
	if err := ValidateBundle(b); err != nil {
		return nil, fmt.Errorf("restoring program %s: %w", b.Program.ID, err)
	}
	e := New(b.Program, opts...)
	keep := e.keptIDs()
	for _, wb := range b.Weeks {
		e.insertWeek(wb, keep)
	}
	for _, sb := range b.Sessions {
		e.insertSession(sb, "", &e.flatIDs, keep)
	}
	e.renumberWeeks()
	e.renumberSessions(e.flatIDs)

	e.active = b.ActiveSessionID
	if _, ok := e.sessions[e.active]; !ok {
		e.active = ""
		if order := e.sessionOrder(); len(order) > 0 {
			e.active = order[0]
		}
	}
	return e, nil
}

// SpliceSession imports a session subtree under weekID (or the flat list for
// an empty weekID) with fresh ids for every entity. Importing the same
// bundle twice never collides.
func (e *Engine) SpliceSession(weekID string, b SessionBundle) (string, error) {
	if err := validateSession(b); err != nil {
		return "", fmt.Errorf("splicing session: %w", err)
	}
	ids, err := e.sessionList(weekID)
	if err != nil {
		return "", fmt.Errorf("splicing session: %w", err)
	}
	sid := e.insertSession(b, weekID, ids, e.freshIDs())
	e.renumberSessions(*ids)
	if e.active == "" {
		e.active = sid
	}
	e.touch()
	return sid, nil
}

// SpliceProgram appends every session of b with fresh ids. Weeks are
// appended to a weekly program; a flat program takes the sessions in order.
// Flat sessions imported into a weekly program land in one new week.
func (e *Engine) SpliceProgram(b ProgramBundle) error {
	if err := ValidateBundle(b); err != nil {
		return fmt.Errorf("splicing program: %w", err)
	}

	if e.program.Mode == domain.ModeFlat {
		for _, wb := range b.Weeks {
			for _, sb := range wb.Sessions {
				e.insertSession(sb, "", &e.flatIDs, e.freshIDs())
			}
		}
		for _, sb := range b.Sessions {
			e.insertSession(sb, "", &e.flatIDs, e.freshIDs())
		}
		e.renumberSessions(e.flatIDs)
	} else {
		for _, wb := range b.Weeks {
			e.insertWeek(wb, e.freshIDs())
		}
		if len(b.Sessions) > 0 {
			e.insertWeek(WeekBundle{Week: domain.Week{Name: b.Program.Name}, Sessions: b.Sessions}, e.freshIDs())
		}
		e.renumberWeeks()
	}

	if e.active == "" {
		if order := e.sessionOrder(); len(order) > 0 {
			e.active = order[0]
		}
	}
	e.touch()
	return nil
}

// freshIDs maps every old id to a new one, consistently within one splice.
// Empty ids always get a new id.
func (e *Engine) freshIDs() func(string) string {
	seen := make(map[string]string)
	return func(old string) string {
		if old == "" {
			return e.newID()
		}
		if id, ok := seen[old]; ok {
			return id
		}
		id := e.newID()
		seen[old] = id
		return id
	}
}

// keptIDs keeps ids as they are, filling in any that are empty.
func (e *Engine) keptIDs() func(string) string {
	return func(old string) string {
		if old == "" {
			return e.newID()
		}
		return old
	}
}

func (e *Engine) insertWeek(wb WeekBundle, mapID func(string) string) string {
	w := &domain.Week{
		ID:        mapID(wb.Week.ID),
		ProgramID: e.program.ID,
		Name:      wb.Week.Name,
	}
	e.weeks[w.ID] = w
	e.weekIDs = append(e.weekIDs, w.ID)
	for _, sb := range wb.Sessions {
		e.insertSession(sb, w.ID, &w.SessionIDs, mapID)
	}
	e.renumberSessions(w.SessionIDs)
	return w.ID
}

func (e *Engine) insertSession(sb SessionBundle, weekID string, ids *[]string, mapID func(string) string) string {
	s := &domain.Session{
		ID:        mapID(sb.Session.ID),
		ProgramID: e.program.ID,
		WeekID:    weekID,
		Name:      sb.Session.Name,
	}
	e.sessions[s.ID] = s
	*ids = append(*ids, s.ID)

	for _, c := range sb.Circuits {
		nc := &domain.Circuit{
			ID:        mapID(c.ID),
			SessionID: s.ID,
			Name:      c.Name,
			Rounds:    c.Rounds,
		}
		for _, m := range c.MemberIDs {
			nc.MemberIDs = append(nc.MemberIDs, mapID(m))
		}
		e.circuits[nc.ID] = nc
		s.CircuitIDs = append(s.CircuitIDs, nc.ID)
	}

	for _, eb := range sb.Exercises {
		ex := eb.Exercise.Clone()
		ex.ID = mapID(ex.ID)
		ex.SessionID = s.ID
		ex.SetIDs = nil
		ex.Role = remapRole(ex.Role, mapID)
		e.exercises[ex.ID] = &ex
		s.ExerciseIDs = append(s.ExerciseIDs, ex.ID)

		for _, set := range eb.Sets {
			set.ID = mapID(set.ID)
			set.ExerciseID = ex.ID
			e.sets[set.ID] = &set
			ex.SetIDs = append(ex.SetIDs, set.ID)
		}
	}
	return s.ID
}

func remapRole(r domain.Role, mapID func(string) string) domain.Role {
	switch r := r.(type) {
	case domain.CircuitHeader:
		return domain.CircuitHeader{CircuitID: mapID(r.CircuitID)}
	case domain.CircuitMember:
		return domain.CircuitMember{CircuitID: mapID(r.CircuitID), Order: r.Order}
	case domain.Plain:
		if r.GroupID == "" {
			return r
		}
		return domain.Plain{GroupID: mapID(r.GroupID)}
	case domain.GroupHeader:
		return r
	}
	return domain.Plain{}
}

// ValidateBundle checks the linkage a bundle must satisfy before it is
// loaded: unique ids and members that resolve to a circuit with a header in
// the same session.
func ValidateBundle(b ProgramBundle) error {
	if b.Program.Mode == domain.ModeFlat && len(b.Weeks) > 0 {
		return fmt.Errorf("flat program with weeks: %w", ErrModeMismatch)
	}
	if b.Program.Mode != domain.ModeFlat && len(b.Sessions) > 0 {
		return fmt.Errorf("weekly program with loose sessions: %w", ErrModeMismatch)
	}
	seen := make(map[string]bool)
	check := func(kind, id string) error {
		if id == "" {
			return nil
		}
		if seen[id] {
			return fmt.Errorf("duplicate %s id %s: %w", kind, id, ErrInvalidBundle)
		}
		seen[id] = true
		return nil
	}
	var all []SessionBundle
	for _, wb := range b.Weeks {
		if err := check("week", wb.Week.ID); err != nil {
			return err
		}
		all = append(all, wb.Sessions...)
	}
	all = append(all, b.Sessions...)
	for _, sb := range all {
		if err := check("session", sb.Session.ID); err != nil {
			return err
		}
		for _, eb := range sb.Exercises {
			if err := check("exercise", eb.Exercise.ID); err != nil {
				return err
			}
			for _, set := range eb.Sets {
				if err := check("set", set.ID); err != nil {
					return err
				}
			}
		}
		if err := validateSession(sb); err != nil {
			return err
		}
	}
	return nil
}

func validateSession(sb SessionBundle) error {
	circuits := make(map[string]bool, len(sb.Circuits))
	for _, c := range sb.Circuits {
		circuits[c.ID] = true
	}
	headers := make(map[string]bool)
	groups := make(map[string]bool)
	for _, eb := range sb.Exercises {
		switch r := eb.Exercise.Role.(type) {
		case domain.CircuitHeader:
			if !circuits[r.CircuitID] {
				return fmt.Errorf("header %s names unknown circuit %s: %w", eb.Exercise.ID, r.CircuitID, ErrInvalidBundle)
			}
			headers[r.CircuitID] = true
		case domain.GroupHeader:
			groups[eb.Exercise.ID] = true
		}
	}
	for _, eb := range sb.Exercises {
		ex := eb.Exercise
		if ex.RoleKind() == domain.RoleCircuitMember && !headers[ex.CircuitID()] {
			return fmt.Errorf("member %s has no circuit header for %s: %w", ex.ID, ex.CircuitID(), ErrInvalidBundle)
		}
		if gid := ex.GroupID(); gid != "" && !groups[gid] {
			return fmt.Errorf("exercise %s names unknown group %s: %w", ex.ID, gid, ErrInvalidBundle)
		}
	}
	return nil
}
