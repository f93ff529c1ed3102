package algorithms

// PartialRatio computes the best substring match score in [0,100]: the
// shorter string is compared against every window of the same length in
// the longer one, returning the highest Ratio. Catches truncations such
// as "toko abadi" vs "toko abadi jaya cabang 2".
func PartialRatio(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 && len(rb) == 0 {
		return 100
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	shorter, longer := ra, rb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := 0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		window := longer[start : start+len(shorter)]
		score := Ratio(string(shorter), string(window))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}
