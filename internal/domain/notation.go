package domain

// RepType selects how a set's reps text is parsed and formatted.
type RepType string

const (
	RepFixed      RepType = "fixed"
	RepRange      RepType = "range"
	RepDescending RepType = "descending"
	RepTime       RepType = "time"
	RepEachSide   RepType = "each_side"
	RepAMRAP      RepType = "amrap"
)

// IntensityType selects the notation of a set's intensity text.
type IntensityType string

const (
	IntensityRPE      IntensityType = "rpe"
	IntensityARPE     IntensityType = "arpe"
	IntensityPercent  IntensityType = "percent"
	IntensityAbsolute IntensityType = "absolute"
	IntensityVelocity IntensityType = "velocity"
)

// WeightType selects the unit of a set's weight text. The distance units
// share the column with the load units.
type WeightType string

const (
	WeightLbs      WeightType = "lbs"
	WeightKg       WeightType = "kg"
	DistanceMeters WeightType = "m"
	DistanceFeet   WeightType = "ft"
	DistanceYards  WeightType = "yd"
	DistanceMiles  WeightType = "mi"
)

type ProgramMode string

const (
	ModeWeekly ProgramMode = "weekly"
	ModeFlat   ProgramMode = "flat"
)

// ValidRepTypes is the canonical set of accepted rep type strings.
var ValidRepTypes = map[RepType]bool{
	RepFixed: true, RepRange: true, RepDescending: true,
	RepTime: true, RepEachSide: true, RepAMRAP: true,
}

// ValidIntensityTypes is the canonical set of accepted intensity type strings.
var ValidIntensityTypes = map[IntensityType]bool{
	IntensityRPE: true, IntensityARPE: true, IntensityPercent: true,
	IntensityAbsolute: true, IntensityVelocity: true,
}

// ValidWeightTypes is the canonical set of accepted weight type strings.
var ValidWeightTypes = map[WeightType]bool{
	WeightLbs: true, WeightKg: true,
	DistanceMeters: true, DistanceFeet: true, DistanceYards: true, DistanceMiles: true,
}

// ValidProgramModes is the canonical set of accepted program modes.
var ValidProgramModes = map[ProgramMode]bool{
	ModeWeekly: true, ModeFlat: true,
}
