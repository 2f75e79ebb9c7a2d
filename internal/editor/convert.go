package editor

import (
	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/units"
)

// exerciseConversions computes the set patches that keep every set of ex in
// step with the notation types in p. Sets carrying their own override for
// a dimension keep their value for it.
func exerciseConversions(ex domain.Exercise, sets []domain.Set, p program.ExercisePatch) map[string]program.SetPatch {
	out := make(map[string]program.SetPatch)
	for _, s := range sets {
		var sp program.SetPatch
		changed := false
		if p.RepType != nil && s.RepType == "" && *p.RepType != ex.RepType {
			sp.Reps = program.Ptr(units.ConvertReps(s.Reps, ex.RepType, *p.RepType))
			changed = true
		}
		if p.WeightType != nil && s.WeightType == "" && *p.WeightType != ex.WeightType {
			sp.Weight = program.Ptr(units.ConvertWeight(s.Weight, ex.WeightType, *p.WeightType))
			changed = true
		}
		if p.IntensityType != nil && s.IntensityType == "" && *p.IntensityType != ex.IntensityType {
			sp.Intensity = program.Ptr(units.ConvertIntensity(s.Intensity, ex.IntensityType, *p.IntensityType))
			changed = true
		}
		if changed {
			out[s.ID] = sp
		}
	}
	return out
}

// setConversion folds value conversions into a set patch whose override
// fields change the set's effective notation. Values the patch sets
// explicitly are left alone.
func setConversion(ex domain.Exercise, s domain.Set, p program.SetPatch) program.SetPatch {
	if p.RepType != nil && p.Reps == nil {
		from, to := s.EffectiveRepType(ex), domain.Coalesce(*p.RepType, ex.RepType)
		if from != to {
			p.Reps = program.Ptr(units.ConvertReps(s.Reps, from, to))
		}
	}
	if p.WeightType != nil && p.Weight == nil {
		from, to := s.EffectiveWeightType(ex), domain.Coalesce(*p.WeightType, ex.WeightType)
		if from != to {
			p.Weight = program.Ptr(units.ConvertWeight(s.Weight, from, to))
		}
	}
	if p.IntensityType != nil && p.Intensity == nil {
		from, to := s.EffectiveIntensityType(ex), domain.Coalesce(*p.IntensityType, ex.IntensityType)
		if from != to {
			p.Intensity = program.Ptr(units.ConvertIntensity(s.Intensity, from, to))
		}
	}
	return p
}
