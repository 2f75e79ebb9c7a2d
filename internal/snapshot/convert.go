package snapshot

import (
	"fmt"
	"time"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
)

// FromProgram captures a whole program under name.
func FromProgram(name string, b program.ProgramBundle, savedAt time.Time) *Snapshot {
	p := b.Program
	doc := &ProgramDoc{
		ID:   p.ID,
		Name: p.Name,
		Mode: string(p.Mode),
		Settings: &SettingsDoc{
			RepType:       string(p.Settings.RepType),
			IntensityType: string(p.Settings.IntensityType),
			WeightType:    string(p.Settings.WeightType),
		},
		ActiveSessionID: b.ActiveSessionID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	for _, wb := range b.Weeks {
		wd := WeekDoc{ID: wb.Week.ID, Name: wb.Week.Name, WeekNumber: wb.Week.WeekNumber, Sessions: []SessionDoc{}}
		for _, sb := range wb.Sessions {
			wd.Sessions = append(wd.Sessions, sessionDoc(sb))
		}
		doc.Weeks = append(doc.Weeks, wd)
	}
	for _, sb := range b.Sessions {
		doc.Sessions = append(doc.Sessions, sessionDoc(sb))
	}
	return &Snapshot{Version: Version, Kind: KindProgram, Name: name, SavedAt: savedAt, Program: doc}
}

// FromSession captures one session under name.
func FromSession(name string, b program.SessionBundle, savedAt time.Time) *Snapshot {
	doc := sessionDoc(b)
	return &Snapshot{Version: Version, Kind: KindSession, Name: name, SavedAt: savedAt, Session: &doc}
}

func sessionDoc(b program.SessionBundle) SessionDoc {
	doc := SessionDoc{
		ID:        b.Session.ID,
		Name:      b.Session.Name,
		Day:       b.Session.Day,
		Exercises: make([]ExerciseDoc, 0, len(b.Exercises)),
	}
	for _, eb := range b.Exercises {
		doc.Exercises = append(doc.Exercises, exerciseDoc(eb))
	}
	for _, c := range b.Circuits {
		ids := c.MemberIDs
		if ids == nil {
			ids = []string{}
		}
		doc.Circuits = append(doc.Circuits, CircuitDoc{ID: c.ID, Name: c.Name, ExerciseIDs: ids, Rounds: RoundsDoc(c.Rounds)})
	}
	return doc
}

func exerciseDoc(eb program.ExerciseBundle) ExerciseDoc {
	ex := eb.Exercise
	doc := ExerciseDoc{
		ID:            ex.ID,
		Name:          ex.Name,
		Notes:         ex.Notes,
		Sets:          make([]SetDoc, 0, len(eb.Sets)),
		RepType:       string(ex.RepType),
		IntensityType: string(ex.IntensityType),
		WeightType:    string(ex.WeightType),
	}
	switch r := ex.Role.(type) {
	case domain.CircuitHeader:
		doc.IsCircuit = true
		doc.CircuitID = r.CircuitID
	case domain.CircuitMember:
		doc.IsInCircuit = true
		doc.CircuitID = r.CircuitID
		doc.CircuitOrder = r.Order
	case domain.GroupHeader:
		doc.IsGroup = true
	case domain.Plain:
		doc.GroupID = r.GroupID
	}
	for _, s := range eb.Sets {
		doc.Sets = append(doc.Sets, SetDoc{
			ID:            s.ID,
			Reps:          s.Reps,
			Weight:        s.Weight,
			Intensity:     s.Intensity,
			Rest:          s.Rest,
			RepType:       string(s.RepType),
			IntensityType: string(s.IntensityType),
			WeightType:    string(s.WeightType),
		})
	}
	return doc
}

// ProgramBundle converts a program snapshot back into engine form.
func (s *Snapshot) ProgramBundle() (program.ProgramBundle, error) {
	if s.Kind != KindProgram || s.Program == nil {
		return program.ProgramBundle{}, fmt.Errorf("snapshot %q is a %s snapshot: %w", s.Name, s.Kind, ErrInvalidSnapshot)
	}
	p := s.Program
	b := program.ProgramBundle{
		Program: domain.Program{
			ID:        p.ID,
			Name:      p.Name,
			Mode:      domain.ProgramMode(p.Mode),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		ActiveSessionID: p.ActiveSessionID,
	}
	if p.Settings != nil {
		b.Program.Settings = domain.Settings{
			RepType:       domain.RepType(p.Settings.RepType),
			IntensityType: domain.IntensityType(p.Settings.IntensityType),
			WeightType:    domain.WeightType(p.Settings.WeightType),
		}
	}
	for _, wd := range p.Weeks {
		wb := program.WeekBundle{Week: domain.Week{ID: wd.ID, ProgramID: p.ID, Name: wd.Name, WeekNumber: wd.WeekNumber}}
		for _, sd := range wd.Sessions {
			sb := sessionBundle(sd)
			sb.Session.WeekID = wd.ID
			wb.Week.SessionIDs = append(wb.Week.SessionIDs, sd.ID)
			wb.Sessions = append(wb.Sessions, sb)
		}
		b.Weeks = append(b.Weeks, wb)
	}
	for _, sd := range p.Sessions {
		b.Sessions = append(b.Sessions, sessionBundle(sd))
	}
	return b, nil
}

// SessionBundle converts a session snapshot back into engine form.
func (s *Snapshot) SessionBundle() (program.SessionBundle, error) {
	if s.Kind != KindSession || s.Session == nil {
		return program.SessionBundle{}, fmt.Errorf("snapshot %q is a %s snapshot: %w", s.Name, s.Kind, ErrInvalidSnapshot)
	}
	return sessionBundle(*s.Session), nil
}

func sessionBundle(sd SessionDoc) program.SessionBundle {
	sb := program.SessionBundle{Session: domain.Session{ID: sd.ID, Name: sd.Name, Day: sd.Day}}
	for _, cd := range sd.Circuits {
		sb.Circuits = append(sb.Circuits, domain.Circuit{
			ID:        cd.ID,
			SessionID: sd.ID,
			Name:      cd.Name,
			MemberIDs: append([]string(nil), cd.ExerciseIDs...),
			Rounds:    domain.Rounds(cd.Rounds),
		})
		sb.Session.CircuitIDs = append(sb.Session.CircuitIDs, cd.ID)
	}
	for _, ed := range sd.Exercises {
		ex := domain.Exercise{
			ID:            ed.ID,
			SessionID:     sd.ID,
			Name:          ed.Name,
			Notes:         ed.Notes,
			Role:          roleOf(ed),
			RepType:       domain.RepType(ed.RepType),
			IntensityType: domain.IntensityType(ed.IntensityType),
			WeightType:    domain.WeightType(ed.WeightType),
		}
		eb := program.ExerciseBundle{}
		for _, set := range ed.Sets {
			ex.SetIDs = append(ex.SetIDs, set.ID)
			eb.Sets = append(eb.Sets, domain.Set{
				ID:            set.ID,
				ExerciseID:    ed.ID,
				Reps:          set.Reps,
				Weight:        set.Weight,
				Intensity:     set.Intensity,
				Rest:          set.Rest,
				RepType:       domain.RepType(set.RepType),
				IntensityType: domain.IntensityType(set.IntensityType),
				WeightType:    domain.WeightType(set.WeightType),
			})
		}
		eb.Exercise = ex
		sb.Exercises = append(sb.Exercises, eb)
		sb.Session.ExerciseIDs = append(sb.Session.ExerciseIDs, ed.ID)
	}
	return sb
}

func roleOf(ed ExerciseDoc) domain.Role {
	switch {
	case ed.IsCircuit:
		return domain.CircuitHeader{CircuitID: ed.CircuitID}
	case ed.IsInCircuit:
		return domain.CircuitMember{CircuitID: ed.CircuitID, Order: ed.CircuitOrder}
	case ed.IsGroup:
		return domain.GroupHeader{}
	}
	return domain.Plain{GroupID: ed.GroupID}
}
