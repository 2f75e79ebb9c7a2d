package snapshot

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/repsheet/internal/domain"
	"go.uber.org/multierr"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Validate checks a snapshot before it is converted. Every problem found is
// reported, combined into one error wrapping ErrInvalidSnapshot.
func Validate(s *Snapshot) error {
	var err error
	if s.Version != Version {
		err = multierr.Append(err, fmt.Errorf("version %d is not supported (want %d)", s.Version, Version))
	}

	ids := make(map[string]bool)
	switch s.Kind {
	case KindProgram:
		if s.Program == nil {
			err = multierr.Append(err, fmt.Errorf("program snapshot has no program"))
			break
		}
		if s.Session != nil {
			err = multierr.Append(err, fmt.Errorf("program snapshot also carries a session"))
		}
		err = multierr.Append(err, validateProgram(s.Program, ids))
	case KindSession:
		if s.Session == nil {
			err = multierr.Append(err, fmt.Errorf("session snapshot has no session"))
			break
		}
		if s.Program != nil {
			err = multierr.Append(err, fmt.Errorf("session snapshot also carries a program"))
		}
		err = multierr.Append(err, validateSession("session", s.Session, ids))
	default:
		err = multierr.Append(err, fmt.Errorf("kind %q must be %q or %q", s.Kind, KindProgram, KindSession))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return nil
}

func validateProgram(p *ProgramDoc, ids map[string]bool) error {
	var err error
	mode := domain.ProgramMode(p.Mode)
	if p.Mode != "" && !domain.ValidProgramModes[mode] {
		err = multierr.Append(err, fmt.Errorf("program.mode: invalid value %q", p.Mode))
	}
	if mode == domain.ModeFlat && len(p.Weeks) > 0 {
		err = multierr.Append(err, fmt.Errorf("program.weeks: flat program cannot have weeks"))
	}
	if mode != domain.ModeFlat && len(p.Sessions) > 0 {
		err = multierr.Append(err, fmt.Errorf("program.sessions: weekly program keeps sessions in weeks"))
	}
	if p.Settings != nil {
		err = multierr.Append(err, validateNotation("program.settings", p.Settings.RepType, p.Settings.IntensityType, p.Settings.WeightType))
	}
	for i, w := range p.Weeks {
		prefix := fmt.Sprintf("weeks[%d]", i)
		err = multierr.Append(err, checkID(prefix, w.ID, ids))
		for j := range w.Sessions {
			err = multierr.Append(err, validateSession(fmt.Sprintf("%s.sessions[%d]", prefix, j), &w.Sessions[j], ids))
		}
	}
	for i := range p.Sessions {
		err = multierr.Append(err, validateSession(fmt.Sprintf("sessions[%d]", i), &p.Sessions[i], ids))
	}
	return err
}

func validateSession(prefix string, s *SessionDoc, ids map[string]bool) error {
	err := checkID(prefix, s.ID, ids)

	circuits := make(map[string]bool, len(s.Circuits))
	for i, c := range s.Circuits {
		cp := fmt.Sprintf("%s.circuits[%d]", prefix, i)
		err = multierr.Append(err, checkID(cp, c.ID, ids))
		circuits[c.ID] = true
		if !domain.Rounds(c.Rounds).Valid() {
			err = multierr.Append(err, fmt.Errorf("%s.rounds: must be positive or AMRAP", cp))
		}
	}

	groups := make(map[string]bool)
	headers := make(map[string]bool)
	for _, ex := range s.Exercises {
		if ex.IsGroup {
			groups[ex.ID] = true
		}
		if ex.IsCircuit {
			headers[ex.CircuitID] = true
		}
	}

	for i, ex := range s.Exercises {
		ep := fmt.Sprintf("%s.exercises[%d]", prefix, i)
		err = multierr.Append(err, checkID(ep, ex.ID, ids))
		err = multierr.Append(err, validateNotation(ep, ex.RepType, ex.IntensityType, ex.WeightType))

		flags := 0
		for _, f := range []bool{ex.IsCircuit, ex.IsInCircuit, ex.IsGroup} {
			if f {
				flags++
			}
		}
		if flags > 1 {
			err = multierr.Append(err, fmt.Errorf("%s: only one of isCircuit, isInCircuit and isGroup may be set", ep))
		}
		if (ex.IsCircuit || ex.IsInCircuit) && !circuits[ex.CircuitID] {
			err = multierr.Append(err, fmt.Errorf("%s.circuitId: %q is not a circuit of this session", ep, ex.CircuitID))
		}
		if ex.IsInCircuit && circuits[ex.CircuitID] && !headers[ex.CircuitID] {
			err = multierr.Append(err, fmt.Errorf("%s.circuitId: circuit %q has no header exercise", ep, ex.CircuitID))
		}
		if ex.GroupID != "" && !groups[ex.GroupID] {
			err = multierr.Append(err, fmt.Errorf("%s.groupId: %q is not a group of this session", ep, ex.GroupID))
		}
		if ex.GroupID != "" && flags > 0 {
			err = multierr.Append(err, fmt.Errorf("%s.groupId: only plain exercises join a group", ep))
		}

		for j, set := range ex.Sets {
			sp := fmt.Sprintf("%s.sets[%d]", ep, j)
			err = multierr.Append(err, checkID(sp, set.ID, ids))
			err = multierr.Append(err, validateNotation(sp, set.RepType, set.IntensityType, set.WeightType))
		}
	}
	return err
}

func checkID(prefix, id string, ids map[string]bool) error {
	if id == "" {
		return fmt.Errorf("%s.id is required", prefix)
	}
	if ids[id] {
		return fmt.Errorf("%s.id: duplicate id %q", prefix, id)
	}
	ids[id] = true
	return nil
}

func validateNotation(prefix, rep, intensity, weight string) error {
	var err error
	if rep != "" && !domain.ValidRepTypes[domain.RepType(rep)] {
		err = multierr.Append(err, fmt.Errorf("%s.repType: invalid value %q", prefix, rep))
	}
	if intensity != "" && !domain.ValidIntensityTypes[domain.IntensityType(intensity)] {
		err = multierr.Append(err, fmt.Errorf("%s.intensityType: invalid value %q", prefix, intensity))
	}
	if weight != "" && !domain.ValidWeightTypes[domain.WeightType(weight)] {
		err = multierr.Append(err, fmt.Errorf("%s.weightType: invalid value %q", prefix, weight))
	}
	return err
}
