package algorithms

import "strings"

// BestRatio computes the similarity of two already-normalized field values
// as the maximum of Ratio, TokenSetRatio and PartialRatio. Different store
// name and address variations fail different metrics (abbreviation vs.
// reordering vs. truncation); taking the maximum keeps the score robust to
// the dominant failure mode without per-field tuning.
//
// A blank side always scores 0: a missing field is treated as no evidence,
// not as a perfect match between two empty values.
func BestRatio(a, b string) int {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}

	best := Ratio(a, b)
	if s := TokenSetRatio(a, b); s > best {
		best = s
	}
	if best == 100 {
		return best
	}
	if s := PartialRatio(a, b); s > best {
		best = s
	}
	return best
}
