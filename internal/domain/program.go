package domain

import "time"

// Settings holds the program-wide notation defaults applied to new exercises.
type Settings struct {
	RepType       RepType
	IntensityType IntensityType
	WeightType    WeightType
}

// DefaultSettings returns the notation defaults used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		RepType:       RepFixed,
		IntensityType: IntensityRPE,
		WeightType:    WeightLbs,
	}
}

// Program is the root of the training plan tree. Children are owned through
// the Week and Session id lists kept by the program engine.
type Program struct {
	ID        string
	Name      string
	Mode      ProgramMode
	Settings  Settings
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Week struct {
	ID         string
	ProgramID  string
	WeekNumber int // always index+1
	Name       string
	SessionIDs []string
}

// Clone returns a copy that shares no slices with w.
func (w Week) Clone() Week {
	w.SessionIDs = cloneIDs(w.SessionIDs)
	return w
}

// Session is one workout day. WeekID is empty for sessions owned directly by
// a flat-mode program.
type Session struct {
	ID          string
	ProgramID   string
	WeekID      string
	Name        string
	Day         int // always index+1 within the parent
	ExerciseIDs []string
	CircuitIDs  []string
}

// Clone returns a copy that shares no slices with s.
func (s Session) Clone() Session {
	s.ExerciseIDs = cloneIDs(s.ExerciseIDs)
	s.CircuitIDs = cloneIDs(s.CircuitIDs)
	return s
}

// Set is one prescribed set. The notation overrides are empty when the set
// follows its exercise.
type Set struct {
	ID         string
	ExerciseID string
	Reps       string
	Weight     string
	Intensity  string
	Rest       string

	RepType       RepType
	WeightType    WeightType
	IntensityType IntensityType
}

// EffectiveRepType resolves the set override against the exercise default.
func (s Set) EffectiveRepType(ex Exercise) RepType {
	return Coalesce(s.RepType, ex.RepType)
}

// EffectiveWeightType resolves the set override against the exercise default.
func (s Set) EffectiveWeightType(ex Exercise) WeightType {
	return Coalesce(s.WeightType, ex.WeightType)
}

// EffectiveIntensityType resolves the set override against the exercise default.
func (s Set) EffectiveIntensityType(ex Exercise) IntensityType {
	return Coalesce(s.IntensityType, ex.IntensityType)
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
