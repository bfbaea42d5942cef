package fuzzy

// Matches reports whether a and b are similar enough to be treated as the
// same term.
func Matches(a, b string) bool {
	return PartialRatio(a, b) > Threshold
}

// MatchesAny reports whether term matches at least one candidate.
func MatchesAny(term string, candidates []string) bool {
	for _, candidate := range candidates {
		if Matches(term, candidate) {
			return true
		}
	}
	return false
}
