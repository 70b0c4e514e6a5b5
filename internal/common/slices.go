package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Unique splits s into its first occurrences (in order) and the repeated elements.
func Unique[S ~[]E, E comparable](s S) (uniq S, dups S) {
	seen := make(map[E]struct{}, len(s))

	for _, e := range s {
		if _, ok := seen[e]; ok {
			dups = append(dups, e)
			continue
		}

		seen[e] = struct{}{}
		uniq = append(uniq, e)
	}

	return uniq, dups
}
