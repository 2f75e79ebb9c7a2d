package program

import "github.com/alexanderramin/repsheet/internal/domain"

// Patches carry partial updates. A nil field leaves the stored value alone.

type WeekPatch struct {
	Name *string
}

type SessionPatch struct {
	Name *string
}

type ExercisePatch struct {
	Name          *string
	Notes         *string
	RepType       *domain.RepType
	IntensityType *domain.IntensityType
	WeightType    *domain.WeightType
}

// SetPatch updates a set. Pointing an override at "" clears it so the set
// follows its exercise again.
type SetPatch struct {
	Reps      *string
	Weight    *string
	Intensity *string
	Rest      *string

	RepType       *domain.RepType
	WeightType    *domain.WeightType
	IntensityType *domain.IntensityType
}

type CircuitPatch struct {
	Name   *string
	Rounds *domain.Rounds
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}

func (p WeekPatch) apply(w *domain.Week) {
	if p.Name != nil {
		w.Name = *p.Name
	}
}

func (p SessionPatch) apply(s *domain.Session) {
	if p.Name != nil {
		s.Name = *p.Name
	}
}

func (p ExercisePatch) apply(ex *domain.Exercise) {
	if p.Name != nil {
		ex.Name = *p.Name
	}
	if p.Notes != nil {
		ex.Notes = *p.Notes
	}
	if p.RepType != nil {
		ex.RepType = *p.RepType
	}
	if p.IntensityType != nil {
		ex.IntensityType = *p.IntensityType
	}
	if p.WeightType != nil {
		ex.WeightType = *p.WeightType
	}
}

func (p SetPatch) apply(s *domain.Set) {
	if p.Reps != nil {
		s.Reps = *p.Reps
	}
	if p.Weight != nil {
		s.Weight = *p.Weight
	}
	if p.Intensity != nil {
		s.Intensity = *p.Intensity
	}
	if p.Rest != nil {
		s.Rest = *p.Rest
	}
	if p.RepType != nil {
		s.RepType = *p.RepType
	}
	if p.WeightType != nil {
		s.WeightType = *p.WeightType
	}
	if p.IntensityType != nil {
		s.IntensityType = *p.IntensityType
	}
}

func (p CircuitPatch) apply(c *domain.Circuit) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Rounds != nil {
		c.Rounds = *p.Rounds
	}
}
