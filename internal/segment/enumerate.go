package segment

import (
	"context"

	"github.com/gcbaptista/go-word-segmenter/internal/errors"
)

// cancelCheckInterval is how many search steps run between context checks.
const cancelCheckInterval = 1024

// Options tunes an enumeration. The zero value enumerates everything by plain backtracking.
type Options struct {
	// MaxResults stops the search once that many segmentations were found and more exist.
	// Zero means unlimited.
	MaxResults int
	// Memoize precomputes which split points lead to a full cover so the search
	// skips dead branches. Output and ordering are the same as without it.
	Memoize bool
}

// Enumerate returns every segmentation of text into lexicon tokens.
//
// The search is depth-first over split points, trying shorter tokens first, so
// results come out in that discovery order. A text that cannot be covered yields an
// empty slice and a nil error. An empty text yields exactly one empty segmentation.
// A nil or empty lexicon is an EmptyDictionaryError.
//
// When opts.MaxResults is exceeded the first MaxResults segmentations are returned
// together with a ResultLimitError. Context cancellation returns the context error.
func Enumerate(ctx context.Context, text string, lex Lexicon, opts Options) ([]Segmentation, error) {
	if lex == nil || lex.Len() == 0 {
		return nil, errors.NewEmptyDictionaryError()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := runeBoundaries(text)
	e := &enumerator{
		ctx:    ctx,
		text:   text,
		bounds: bounds,
		lex:    lex,
		maxLen: maxTokenLength(lex, len(bounds)-1),
		limit:  opts.MaxResults,
	}

	if opts.Memoize {
		return e.runMemoized()
	}
	return e.runBacktracking()
}

type enumerator struct {
	ctx    context.Context
	text   string
	bounds []int
	lex    Lexicon
	maxLen int
	limit  int
	steps  int
	err    error

	// backtracking state
	path    Segmentation
	results []Segmentation

	// next[k] lists the viable token ends from offset k when memoized
	next [][]int
}

func (e *enumerator) runes() int {
	return len(e.bounds) - 1
}

// token returns the substring covering runes [start, end).
func (e *enumerator) token(start, end int) string {
	return e.text[e.bounds[start]:e.bounds[end]]
}

// tick counts one search step and reports false once the context is done.
func (e *enumerator) tick() bool {
	e.steps++
	if e.steps%cancelCheckInterval == 0 {
		if err := e.ctx.Err(); err != nil {
			e.err = err
			return false
		}
	}
	return true
}

func (e *enumerator) runBacktracking() ([]Segmentation, error) {
	e.results = make([]Segmentation, 0)
	e.walk(0)
	return e.finish()
}

func (e *enumerator) finish() ([]Segmentation, error) {
	if e.err != nil {
		if _, limited := e.err.(*errors.ResultLimitError); limited {
			return e.results, e.err
		}
		return nil, e.err
	}
	return e.results, nil
}

// walk extends the current path from rune offset start. It returns false when
// the search has to stop.
func (e *enumerator) walk(start int) bool {
	if !e.tick() {
		return false
	}

	n := e.runes()
	if start == n {
		if e.limit > 0 && len(e.results) == e.limit {
			e.err = errors.NewResultLimitError(e.limit)
			return false
		}
		seg := make(Segmentation, len(e.path))
		copy(seg, e.path)
		e.results = append(e.results, seg)
		return true
	}

	if e.next != nil {
		for _, end := range e.next[start] {
			if !e.extend(start, end) {
				return false
			}
		}
		return true
	}

	last := min(n, start+e.maxLen)
	for end := start + 1; end <= last; end++ {
		if !e.lex.Contains(e.token(start, end)) {
			continue
		}
		if !e.extend(start, end) {
			return false
		}
	}
	return true
}

// extend pushes the token [start, end), walks on from end and pops it again.
func (e *enumerator) extend(start, end int) bool {
	e.path = append(e.path, e.token(start, end))
	ok := e.walk(end)
	e.path = e.path[:len(e.path)-1]
	return ok
}

// runMemoized first records, for every start offset, the end offsets of the tokens
// that begin there and lead to a fully coverable suffix. The walk then only follows
// those edges, so it never enters a dead branch and never repeats a dictionary lookup.
// Results are produced by the same depth-first walk, in the same order.
func (e *enumerator) runMemoized() ([]Segmentation, error) {
	n := e.runes()
	next := make([][]int, n+1)
	coverable := make([]bool, n+1)
	coverable[n] = true

	for start := n - 1; start >= 0; start-- {
		last := min(n, start+e.maxLen)
		for end := start + 1; end <= last; end++ {
			if !e.tick() {
				return nil, e.err
			}
			if coverable[end] && e.lex.Contains(e.token(start, end)) {
				next[start] = append(next[start], end)
			}
		}
		coverable[start] = len(next[start]) > 0
	}

	e.results = make([]Segmentation, 0)
	if !coverable[0] {
		return e.results, nil
	}
	e.next = next
	e.walk(0)
	return e.finish()
}
