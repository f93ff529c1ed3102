package algorithms

// Ratio computes a full-string similarity score in [0,100] based on the
// indel distance between the two strings (insertions and deletions only).
// Equivalent to 200*LCS(a,b) / (len(a)+len(b)), rounded to nearest.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}

	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	lcs := lcsLength(ra, rb)
	return roundRatio(2*lcs, total)
}

// lcsLength computes the length of the longest common subsequence
// using two rolling rows.
func lcsLength(ra, rb []rune) int {
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// roundRatio converts the fraction num/den to a 0-100 score,
// rounded to the nearest integer.
func roundRatio(num, den int) int {
	if den == 0 {
		return 0
	}
	return (num*100 + den/2) / den
}
