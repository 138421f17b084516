package catalog

// similarity computes a normalized match ratio between two strings:
// 2*M / (len(a)+len(b)), where M is the total length of the longest common
// matching blocks found recursively. Inputs are expected to be lowercased by
// the caller. Operates on runes so accented product names compare correctly.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	matched := matchingTotal(ra, rb)
	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

func matchingTotal(a, b []rune) int {
	i, j, n := longestMatch(a, b)
	if n == 0 {
		return 0
	}
	return n + matchingTotal(a[:i], b[:j]) + matchingTotal(a[i+n:], b[j+n:])
}

// longestMatch finds the longest common contiguous block between a and b,
// returning its start positions and length. Earliest block wins on ties so
// the recursion is deterministic.
func longestMatch(a, b []rune) (bestI, bestJ, bestN int) {
	// lengths[j] holds the length of the common suffix ending at a[i-1], b[j-1]
	// for the previous row of the DP table.
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > bestN {
					bestN = lengths[j]
					bestI = i - bestN
					bestJ = j - bestN
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return bestI, bestJ, bestN
}
