package domain

// Coalesce returns the first non-empty value from vals. It backs the
// set-level notation overrides, which fall back to the exercise default.
func Coalesce[T ~string](vals ...T) T {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
