package naming

import "strings"

const (
	containmentMinLength = 3
	containmentMinRatio  = 0.7
	overlapMinWords      = 2
	overlapMinShared     = 2
	overlapMinRatio      = 0.5
)

// AreSimilar reports whether two normalized names denote the same title.
// Checks run in order of strictness: exact equality, containment with a
// length-ratio guard, then word-set overlap. The relation is symmetric.
func AreSimilar(a, b string) bool {
	if a == b {
		return true
	}
	if containsSimilar(a, b) || containsSimilar(b, a) {
		return true
	}
	return wordOverlapSimilar(a, b)
}

// containsSimilar handles prefix/suffix variants such as "the matrix" vs
// "the matrix reloaded trailer": the shorter name must be long enough to be
// meaningful and cover most of the longer one.
func containsSimilar(longer, shorter string) bool {
	if len(shorter) >= len(longer) || len(shorter) < containmentMinLength {
		return false
	}
	if !strings.Contains(longer, shorter) {
		return false
	}
	return float64(len(shorter))/float64(len(longer)) >= containmentMinRatio
}

func wordOverlapSimilar(a, b string) bool {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) < overlapMinWords || len(wordsB) < overlapMinWords {
		return false
	}
	shared := 0
	for word := range wordsA {
		if _, ok := wordsB[word]; ok {
			shared++
		}
	}
	if shared < overlapMinShared {
		return false
	}
	largest := len(wordsA)
	if len(wordsB) > largest {
		largest = len(wordsB)
	}
	return float64(shared)/float64(largest) >= overlapMinRatio
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[strings.ToLower(field)] = struct{}{}
	}
	return set
}
