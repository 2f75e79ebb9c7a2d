package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/spf13/pflag"
)

// enumFlag is a pflag.Value restricted to the keys of valid.
type enumFlag[T ~string] struct {
	target *T
	valid  map[T]bool
	kind   string
}

func newEnumFlag[T ~string](target *T, valid map[T]bool, kind string) *enumFlag[T] {
	return &enumFlag[T]{target: target, valid: valid, kind: kind}
}

func (f *enumFlag[T]) String() string {
	if f.target == nil {
		return ""
	}
	return string(*f.target)
}

func (f *enumFlag[T]) Set(s string) error {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if !f.valid[v] {
		return fmt.Errorf("must be one of %s", strings.Join(enumNames(f.valid), ", "))
	}
	*f.target = v
	return nil
}

func (f *enumFlag[T]) Type() string { return f.kind }

func enumNames[T ~string](valid map[T]bool) []string {
	names := make([]string, 0, len(valid))
	for v := range valid {
		names = append(names, string(v))
	}
	sort.Strings(names)
	return names
}

// notationFlags registers --rep-type, --intensity-type and --weight-unit.
type notationFlags struct {
	settings domain.Settings
}

func (n *notationFlags) register(fs *pflag.FlagSet, defaults domain.Settings) {
	n.settings = defaults
	fs.Var(newEnumFlag(&n.settings.RepType, domain.ValidRepTypes, "repType"),
		"rep-type", "rep notation for new exercises ("+strings.Join(enumNames(domain.ValidRepTypes), "|")+")")
	fs.Var(newEnumFlag(&n.settings.IntensityType, domain.ValidIntensityTypes, "intensityType"),
		"intensity-type", "intensity notation ("+strings.Join(enumNames(domain.ValidIntensityTypes), "|")+")")
	fs.Var(newEnumFlag(&n.settings.WeightType, domain.ValidWeightTypes, "unit"),
		"weight-unit", "weight or distance unit ("+strings.Join(enumNames(domain.ValidWeightTypes), "|")+")")
}

// locator picks a week and a day by number. Zero means "the one holding
// the active session".
type locator struct {
	week int
	day  int
}

func (l *locator) register(fs *pflag.FlagSet, withDay bool) {
	fs.IntVar(&l.week, "week", 0, "week number (default: week of the active session)")
	if withDay {
		fs.IntVar(&l.day, "day", 0, "day number within the week (default: active session)")
	}
}

// weekID resolves the week, or "" for a flat program.
func (l locator) weekID(e *program.Engine) (string, error) {
	if e.Program().Mode == domain.ModeFlat {
		if l.week != 0 {
			return "", fmt.Errorf("flat programs have no weeks")
		}
		return "", nil
	}
	weeks := e.Weeks()
	if l.week == 0 {
		active, err := e.Session(e.ActiveSessionID())
		if err != nil {
			return weeks[0].ID, nil
		}
		return active.WeekID, nil
	}
	if l.week < 1 || l.week > len(weeks) {
		return "", fmt.Errorf("week %d does not exist (program has %d)", l.week, len(weeks))
	}
	return weeks[l.week-1].ID, nil
}

// session resolves the located session.
func (l locator) session(e *program.Engine) (domain.Session, error) {
	if l.week == 0 && l.day == 0 {
		return e.Session(e.ActiveSessionID())
	}
	weekID, err := l.weekID(e)
	if err != nil {
		return domain.Session{}, err
	}
	sessions, err := e.Sessions(weekID)
	if err != nil {
		return domain.Session{}, err
	}
	day := l.day
	if day == 0 {
		day = 1
	}
	if day < 1 || day > len(sessions) {
		return domain.Session{}, fmt.Errorf("day %d does not exist (%d in this %s)", day, len(sessions), parentNoun(e))
	}
	return sessions[day-1], nil
}

func parentNoun(e *program.Engine) string {
	if e.Program().Mode == domain.ModeFlat {
		return "program"
	}
	return "week"
}
