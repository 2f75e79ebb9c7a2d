package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/repsheet/internal/domain"
)

var (
	fixedRepsRe   = regexp.MustCompile(`^(\d+)$`)
	rangeRepsRe   = regexp.MustCompile(`^(\d+)\s*(?:-|–|to)\s*(\d+)$`)
	repSplitRe    = regexp.MustCompile(`[,/\s]+`)
	clockTimeRe   = regexp.MustCompile(`^(\d+):([0-5]\d)$`)
	secondsTimeRe = regexp.MustCompile(`^(\d+)\s*(?:s|sec|secs|seconds)?$`)
	minutesTimeRe = regexp.MustCompile(`^(\d+)\s*(?:m|min|mins|minutes)$`)
	eachSideRe    = regexp.MustCompile(`^(\d+)\s*(?:/\s*side|each side|each|per side|e/s)?$`)
)

// ConvertReps changes the rep notation of value. Rep types only change how
// the next edit is parsed, so the text is kept as is.
func ConvertReps(value string, from, to domain.RepType) string {
	return value
}

// FormatReps normalises typed reps text for t, returning value unchanged when
// it does not fit the notation.
func FormatReps(value string, t domain.RepType) string {
	out, err := normalizeReps(value, t)
	if err != nil {
		return value
	}
	return out
}

// ValidateReps reports why value does not fit the notation of t.
func ValidateReps(value string, t domain.RepType) error {
	_, err := normalizeReps(value, t)
	return err
}

func normalizeReps(value string, t domain.RepType) (string, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return "", nil
	}

	switch t {
	case domain.RepFixed:
		if fixedRepsRe.MatchString(s) {
			return trimLeadingZeros(s), nil
		}
		return "", fmt.Errorf("reps %q must be a whole number", value)

	case domain.RepRange:
		m := rangeRepsRe.FindStringSubmatch(s)
		if m == nil {
			return "", fmt.Errorf("reps %q must be a range like 8-10", value)
		}
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > hi {
			return "", fmt.Errorf("range %q must go from low to high", value)
		}
		return fmt.Sprintf("%d-%d", lo, hi), nil

	case domain.RepDescending:
		parts := repSplitRe.Split(s, -1)
		if len(parts) < 2 {
			return "", fmt.Errorf("reps %q must list at least two counts like 10,8,6", value)
		}
		counts := make([]string, 0, len(parts))
		prev := -1
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return "", fmt.Errorf("reps %q: %q is not a whole number", value, p)
			}
			if prev >= 0 && n > prev {
				return "", fmt.Errorf("reps %q must not increase", value)
			}
			prev = n
			counts = append(counts, strconv.Itoa(n))
		}
		return strings.Join(counts, ","), nil

	case domain.RepTime:
		secs, err := parseSeconds(s)
		if err != nil {
			return "", fmt.Errorf("time %q: %w", value, err)
		}
		return formatSeconds(secs), nil

	case domain.RepEachSide:
		m := eachSideRe.FindStringSubmatch(s)
		if m == nil {
			return "", fmt.Errorf("reps %q must be a count per side like 10/side", value)
		}
		return trimLeadingZeros(m[1]) + "/side", nil

	case domain.RepAMRAP:
		return "AMRAP", nil
	}
	return "", fmt.Errorf("unknown rep type %q", t)
}

func parseSeconds(s string) (int, error) {
	if m := clockTimeRe.FindStringSubmatch(s); m != nil {
		mins, _ := strconv.Atoi(m[1])
		secs, _ := strconv.Atoi(m[2])
		return mins*60 + secs, nil
	}
	if m := minutesTimeRe.FindStringSubmatch(s); m != nil {
		mins, _ := strconv.Atoi(m[1])
		return mins * 60, nil
	}
	if m := secondsTimeRe.FindStringSubmatch(s); m != nil {
		secs, _ := strconv.Atoi(m[1])
		return secs, nil
	}
	return 0, fmt.Errorf("expected seconds, minutes or m:ss")
}

func formatSeconds(secs int) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func trimLeadingZeros(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	return strconv.Itoa(n)
}

// RepPlaceholder is the hint shown in an empty reps cell.
func RepPlaceholder(t domain.RepType) string {
	switch t {
	case domain.RepFixed:
		return "8"
	case domain.RepRange:
		return "8-10"
	case domain.RepDescending:
		return "10,8,6"
	case domain.RepTime:
		return "30s"
	case domain.RepEachSide:
		return "10/side"
	case domain.RepAMRAP:
		return "AMRAP"
	}
	return "reps"
}

// FormatRest normalises rest text, which always uses time notation.
func FormatRest(value string) string {
	return FormatReps(value, domain.RepTime)
}
