package segment

// buildDAG maps every rune offset k to the exclusive end offsets of the lexicon
// tokens starting at k, in increasing order. An offset no token starts at gets
// the single-rune fallback end k+1.
func buildDAG(text string, bounds []int, lex Lexicon) [][]int {
	n := len(bounds) - 1
	maxLen := n
	if lex != nil {
		maxLen = maxTokenLength(lex, n)
	}

	dag := make([][]int, n)
	for k := 0; k < n; k++ {
		var ends []int
		if lex != nil {
			last := min(n, k+maxLen)
			for end := k + 1; end <= last; end++ {
				if lex.Contains(text[bounds[k]:bounds[end]]) {
					ends = append(ends, end)
				}
			}
		}
		if len(ends) == 0 {
			ends = []int{k + 1}
		}
		dag[k] = ends
	}
	return dag
}

// FullCut lists every lexicon word found in text, ordered by start offset and then
// by length. Single characters are emitted only when no earlier emitted word already
// covers them, so the output reads like a search-engine index of the text rather than
// a partition of it.
func FullCut(text string, lex Lexicon) []string {
	bounds := runeBoundaries(text)
	dag := buildDAG(text, bounds, lex)

	words := make([]string, 0)
	covered := -1 // last rune offset covered by an emitted word
	for k, ends := range dag {
		if len(ends) == 1 && k > covered {
			words = append(words, text[bounds[k]:bounds[ends[0]]])
			covered = ends[0] - 1
			continue
		}
		for _, end := range ends {
			if end > k+1 {
				words = append(words, text[bounds[k]:bounds[end]])
				covered = end - 1
			}
		}
	}
	return words
}
