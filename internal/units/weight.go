package units

import (
	"math"
	"strings"

	"github.com/alexanderramin/repsheet/internal/domain"
)

// KgPerLb is the fixed pound to kilogram factor.
const KgPerLb = 0.453592

type weightFamily int

const (
	familyUnknown weightFamily = iota
	familyMass
	familyDistance
)

// metersPer routes every distance unit through meters.
var metersPer = map[domain.WeightType]float64{
	domain.DistanceMeters: 1,
	domain.DistanceFeet:   0.3048,
	domain.DistanceYards:  0.9144,
	domain.DistanceMiles:  1609.344,
}

// weightDigits is the most decimals a value is written with.
var weightDigits = map[domain.WeightType]int{
	domain.WeightLbs:      2,
	domain.WeightKg:       3,
	domain.DistanceMeters: 3,
	domain.DistanceFeet:   2,
	domain.DistanceYards:  3,
	domain.DistanceMiles:  6,
}

func familyOf(t domain.WeightType) weightFamily {
	switch t {
	case domain.WeightLbs, domain.WeightKg:
		return familyMass
	case domain.DistanceMeters, domain.DistanceFeet, domain.DistanceYards, domain.DistanceMiles:
		return familyDistance
	}
	return familyUnknown
}

// ConvertWeight rewrites value from one weight/distance unit to another.
// Crossing between the load and distance families clears the value.
// Unparseable text is returned unchanged.
//
// The result uses the fewest decimals that still convert back to the input
// as written in the source unit, so toggling a unit twice restores the value.
func ConvertWeight(value string, from, to domain.WeightType) string {
	if from == to {
		return value
	}
	if strings.TrimSpace(value) == "" {
		return ""
	}
	ff, tf := familyOf(from), familyOf(to)
	if ff == familyUnknown || tf == familyUnknown {
		return value
	}
	if ff != tf {
		return ""
	}
	v := ParseNumber(value)
	if math.IsNaN(v) {
		return value
	}

	want := formatNumber(v, digitsOf(from))
	out := convertMagnitude(v, from, to)
	for p := 0; p < digitsOf(to); p++ {
		y := roundTo(out, p)
		if formatNumber(convertMagnitude(y, to, from), digitsOf(from)) == want {
			return FormatWeight(y, to)
		}
	}
	return FormatWeight(out, to)
}

// convertMagnitude assumes from and to share a family.
func convertMagnitude(v float64, from, to domain.WeightType) float64 {
	if familyOf(from) == familyMass {
		if from == to {
			return v
		}
		if from == domain.WeightLbs {
			return v * KgPerLb
		}
		return v / KgPerLb
	}
	return v * metersPer[from] / metersPer[to]
}

func digitsOf(t domain.WeightType) int {
	if d, ok := weightDigits[t]; ok {
		return d
	}
	return 1
}

// FormatWeight renders v with the unit suffix of t.
func FormatWeight(v float64, t domain.WeightType) string {
	if _, ok := weightDigits[t]; !ok {
		return formatNumber(v, 1)
	}
	return formatNumber(v, digitsOf(t)) + " " + string(t)
}

// NormalizeWeight formats freshly typed text in the notation of t.
func NormalizeWeight(value string, t domain.WeightType) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	v := ParseNumber(value)
	if math.IsNaN(v) {
		return value
	}
	return FormatWeight(v, t)
}

// WeightPlaceholder is the hint shown in an empty weight cell.
func WeightPlaceholder(t domain.WeightType) string {
	if t == "" {
		return "weight"
	}
	return string(t)
}
