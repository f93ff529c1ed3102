package algorithms

import (
	"sort"
	"strings"
)

// TokenSetRatio computes a similarity score in [0,100] that is insensitive
// to token order and duplication. The strings are split into unique token
// sets; the shared tokens and the per-side remainders are recombined into
// sorted strings and compared pairwise with Ratio, taking the maximum.
// Robust against word reordering ("toko abadi jaya" vs "jaya toko abadi")
// and against one side carrying extra tokens.
func TokenSetRatio(a, b string) int {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 100
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for tok := range setA {
		if setB[tok] {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			onlyB = append(onlyB, tok)
		}
	}

	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(shared, " ")
	combinedA := joinNonEmpty(base, strings.Join(onlyA, " "))
	combinedB := joinNonEmpty(base, strings.Join(onlyB, " "))

	score := Ratio(base, combinedA)
	if s := Ratio(base, combinedB); s > score {
		score = s
	}
	if s := Ratio(combinedA, combinedB); s > score {
		score = s
	}
	return score
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(text) {
		set[tok] = true
	}
	return set
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}
