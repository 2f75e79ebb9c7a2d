package program

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// Invariant violations. The tree is left unchanged and the notifier is warned.
	ErrLastWeek     = errors.New("cannot delete the last week")
	ErrLastSession  = errors.New("cannot delete the last session")
	ErrLastExercise = errors.New("cannot delete the last exercise")

	ErrModeMismatch  = errors.New("operation does not fit the program mode")
	ErrInvalidBundle = errors.New("invalid bundle")
	ErrInvalidRounds = errors.New("invalid rounds")
)

// IsInvariantViolation reports whether err is a rejected delete that only
// warrants a warning.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrLastWeek) || errors.Is(err, ErrLastSession) || errors.Is(err, ErrLastExercise)
}
