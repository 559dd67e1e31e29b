package segment

import (
	"math"
	"sort"
)

// floorScore stands in for unknown tokens and non-positive scores so that their
// log-probability stays finite.
const floorScore = 1e-8

type scorer struct {
	lex      ScoredLexicon
	logTotal float64
}

func newScorer(lex ScoredLexicon) scorer {
	total := lex.Total()
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		total = 1
	}
	return scorer{lex: lex, logTotal: math.Log(total)}
}

func (s scorer) logProb(token string) float64 {
	score, ok := s.lex.Score(token)
	if !ok || !(score > 0) || math.IsInf(score, 0) {
		score = floorScore
	}
	return math.Log(score) - s.logTotal
}

func (s scorer) sum(seg Segmentation) float64 {
	total := 0.0
	for _, token := range seg {
		total += s.logProb(token)
	}
	return total
}

// ScoreOf returns the log-probability of seg: the sum over its tokens of
// log(score/total). Tokens missing from the lexicon count with a floor score.
func ScoreOf(seg Segmentation, lex ScoredLexicon) float64 {
	return newScorer(lex).sum(seg)
}

// Rank scores every segmentation and orders them from most to least probable.
// Equal scores keep their input order.
func Rank(segs []Segmentation, lex ScoredLexicon) []Ranked {
	s := newScorer(lex)
	ranked := make([]Ranked, len(segs))
	for i, seg := range segs {
		ranked[i] = Ranked{Tokens: seg, Score: s.sum(seg)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BestCut returns the most probable segmentation of text by dynamic programming
// over the word DAG, from the end of the text backwards. Characters no token
// covers become single-character tokens with the floor score, so BestCut always
// covers the text. On equal scores the longer token wins.
func BestCut(text string, lex ScoredLexicon) Ranked {
	bounds := runeBoundaries(text)
	n := len(bounds) - 1
	dag := buildDAG(text, bounds, lex)
	s := newScorer(lex)

	route := make([]float64, n+1)
	next := make([]int, n+1)
	for k := n - 1; k >= 0; k-- {
		best := math.Inf(-1)
		bestEnd := k + 1
		for _, end := range dag[k] {
			candidate := s.logProb(text[bounds[k]:bounds[end]]) + route[end]
			if candidate >= best {
				best = candidate
				bestEnd = end
			}
		}
		route[k] = best
		next[k] = bestEnd
	}

	tokens := make(Segmentation, 0)
	for k := 0; k < n; k = next[k] {
		tokens = append(tokens, text[bounds[k]:bounds[next[k]]])
	}
	return Ranked{Tokens: tokens, Score: route[0]}
}
