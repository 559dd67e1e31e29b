// Package segment splits text into sequences of dictionary tokens.
//
// Enumerate lists every way to cover a text exactly with tokens of a lexicon.
// FullCut lists every dictionary word that occurs in the text, BestCut picks the
// single most probable segmentation from the lexicon scores, and Rank orders
// already enumerated segmentations by the same scoring.
//
// All offsets are rune offsets; a token never starts or ends inside a UTF-8 sequence.
package segment

import (
	"strings"
	"unicode/utf8"
)

// Lexicon is the token set consulted during segmentation.
type Lexicon interface {
	Contains(token string) bool
	Len() int
}

// ScoredLexicon is a Lexicon whose tokens carry a non-negative score,
// typically a frequency or probability.
type ScoredLexicon interface {
	Lexicon
	Score(token string) (float64, bool)
	Total() float64
}

// lengthBounded is implemented by lexicons that know their longest token (in runes).
type lengthBounded interface {
	MaxTokenLength() int
}

// Dict is a literal in-process dictionary mapping tokens to scores.
type Dict map[string]float64

func (d Dict) Contains(token string) bool {
	_, ok := d[token]
	return ok
}

func (d Dict) Len() int {
	return len(d)
}

func (d Dict) Score(token string) (float64, bool) {
	score, ok := d[token]
	return score, ok
}

func (d Dict) Total() float64 {
	total := 0.0
	for _, score := range d {
		total += score
	}
	return total
}

func (d Dict) MaxTokenLength() int {
	longest := 0
	for token := range d {
		if n := utf8.RuneCountInString(token); n > longest {
			longest = n
		}
	}
	return longest
}

// Segmentation is an ordered sequence of tokens.
type Segmentation []string

// Text returns the concatenation of the tokens.
func (s Segmentation) Text() string {
	return strings.Join(s, "")
}

// String renders the tokens separated by "/".
func (s Segmentation) String() string {
	return strings.Join(s, "/")
}

// Equal reports whether both segmentations hold the same tokens in the same order.
func (s Segmentation) Equal(other Segmentation) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Ranked pairs a segmentation with its log-probability score.
type Ranked struct {
	Tokens Segmentation `json:"tokens"`
	Score  float64      `json:"score"`
}

// Covers reports whether seg reconstructs text exactly with no empty tokens.
func Covers(seg Segmentation, text string) bool {
	for _, token := range seg {
		if token == "" {
			return false
		}
	}
	return seg.Text() == text
}

// AllInLexicon reports whether every token of seg is a lexicon key.
func AllInLexicon(seg Segmentation, lex Lexicon) bool {
	for _, token := range seg {
		if !lex.Contains(token) {
			return false
		}
	}
	return true
}

// runeBoundaries returns the byte offset of every rune start plus len(text).
// Character i spans text[b[i]:b[i+1]].
func runeBoundaries(text string) []int {
	bounds := make([]int, 0, len(text)+1)
	for i := range text {
		bounds = append(bounds, i)
	}
	return append(bounds, len(text))
}

// maxTokenLength caps candidate token lengths for a text of n runes.
func maxTokenLength(lex Lexicon, n int) int {
	if lb, ok := lex.(lengthBounded); ok {
		if longest := lb.MaxTokenLength(); longest > 0 && longest < n {
			return longest
		}
	}
	return n
}
