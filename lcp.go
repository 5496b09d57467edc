package suffixindex

// Kasai's algorithm for building the LCP array in O(n) time.
// lcp[i] is the number of characters shared by the suffixes ranked i and i+1.
// Terminators never count as shared, so the prefix stops at the shorter string's end.
func buildLCPArray(suffixArray []int, flat *flatText) []int {
	if len(suffixArray) < 2 {
		return nil
	}

	rank := make([]int, len(suffixArray))
	for i := range suffixArray {
		rank[suffixArray[i]] = i
	}

	lcp := make([]int, len(suffixArray)-1)
	l := 0
	for i := range suffixArray {
		if rank[i]+1 == len(suffixArray) {
			l = 0
			continue
		}
		j := suffixArray[rank[i]+1]
		for {
			c := flat.charAt(i, l)
			if c == terminator || c != flat.charAt(j, l) {
				break
			}
			l++
		}
		lcp[rank[i]] = l
		if l > 0 {
			l--
		}
	}

	return lcp
}
