// Package units converts set values between rep, intensity and weight
// notations. Every function is pure; values the package cannot parse are
// returned unchanged.
package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var (
	numberPattern    = regexp.MustCompile(`-?\d+(?:,\d+)*(?:\.\d+)?|-?[.,]\d+`)
	decimalPattern   = regexp.MustCompile(`-?\d+(?:[.,]\d+)?|-?[.,]\d+`)
	thousandsPattern = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
)

// ParseNumber extracts the first number in s. It returns NaN when s holds no
// number. Commas before groups of three digits separate thousands ("1,600");
// any other comma is a decimal comma ("62,5").
func ParseNumber(s string) float64 {
	m := numberPattern.FindString(s)
	if m == "" {
		return math.NaN()
	}
	if thousandsPattern.MatchString(m) {
		m = strings.ReplaceAll(m, ",", "")
	} else {
		m = strings.Replace(decimalPattern.FindString(m), ",", ".", 1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// formatNumber rounds v to digits decimal places and drops trailing zeros.
func formatNumber(v float64, digits int) string {
	rounded := roundTo(v, digits)
	if rounded == 0 {
		rounded = 0 // no "-0"
	}
	return humanize.FtoaWithDigits(rounded, digits)
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// roundToHalf rounds v to the nearest 0.5.
func roundToHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
