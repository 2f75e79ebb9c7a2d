package units

import (
	"math"
	"strings"

	"github.com/alexanderramin/repsheet/internal/domain"
)

// RPEToPercent applies percent = (rpe - 1) * 10 + 5, capped at 100.
func RPEToPercent(rpe float64) float64 {
	return math.Min((rpe-1)*10+5, 100)
}

// PercentToRPE inverts RPEToPercent, rounding to the nearest 0.5 within [1, 10].
func PercentToRPE(percent float64) float64 {
	return clamp(roundToHalf((percent-5)/10+1), 1, 10)
}

func isEffortScale(t domain.IntensityType) bool {
	return t == domain.IntensityRPE || t == domain.IntensityARPE
}

func isConvertibleIntensity(t domain.IntensityType) bool {
	return isEffortScale(t) || t == domain.IntensityPercent
}

// ConvertIntensity rewrites value from one intensity notation to another.
// RPE and aRPE relabel the same number; either maps to percent-of-max through
// the affine approximation. Absolute load and velocity convert to nothing,
// so switching into or out of them clears the value.
func ConvertIntensity(value string, from, to domain.IntensityType) string {
	if from == to {
		return value
	}
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if !domain.ValidIntensityTypes[from] || !domain.ValidIntensityTypes[to] {
		return value
	}
	if !isConvertibleIntensity(from) || !isConvertibleIntensity(to) {
		return ""
	}
	v := ParseNumber(value)
	if math.IsNaN(v) {
		return value
	}

	switch {
	case isEffortScale(from) && isEffortScale(to):
		return FormatIntensity(v, to)
	case isEffortScale(from):
		return FormatIntensity(RPEToPercent(v), to)
	default:
		return FormatIntensity(PercentToRPE(v), to)
	}
}

// FormatIntensity renders v in the notation of t.
func FormatIntensity(v float64, t domain.IntensityType) string {
	switch t {
	case domain.IntensityRPE:
		return "RPE " + formatNumber(v, 1)
	case domain.IntensityARPE:
		return "aRPE " + formatNumber(v, 1)
	case domain.IntensityPercent:
		return formatNumber(v, 1) + "%"
	case domain.IntensityVelocity:
		return formatNumber(v, 2) + " m/s"
	default:
		return formatNumber(v, 1)
	}
}

// NormalizeIntensity formats freshly typed text in the notation of t.
func NormalizeIntensity(value string, t domain.IntensityType) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	v := ParseNumber(value)
	if math.IsNaN(v) {
		return value
	}
	return FormatIntensity(v, t)
}

// IntensityPlaceholder is the hint shown in an empty intensity cell.
func IntensityPlaceholder(t domain.IntensityType) string {
	switch t {
	case domain.IntensityRPE:
		return "RPE"
	case domain.IntensityARPE:
		return "aRPE"
	case domain.IntensityPercent:
		return "%1RM"
	case domain.IntensityAbsolute:
		return "load"
	case domain.IntensityVelocity:
		return "m/s"
	}
	return "intensity"
}
