// Package dictionary holds scored token dictionaries used for segmentation.
package dictionary

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/gcbaptista/go-word-segmenter/internal/errors"
)

// Dictionary is a concurrency-safe mapping from token to score.
// It satisfies segment.ScoredLexicon.
type Dictionary struct {
	mu       sync.RWMutex
	entries  map[string]float64
	total    float64
	maxRunes int
}

// gobDictionaryData is a helper struct for Gob encoding/decoding Dictionary data.
// It excludes the mutex and the derived fields.
type gobDictionaryData struct {
	Entries map[string]float64
}

// New creates a dictionary from the given entries. Invalid entries are rejected.
func New(entries map[string]float64) (*Dictionary, error) {
	d := &Dictionary{entries: make(map[string]float64, len(entries))}
	if err := d.AddAll(entries); err != nil {
		return nil, err
	}
	return d, nil
}

// ValidateEntry checks that a token is non-empty and its score finite and non-negative.
func ValidateEntry(token string, score float64) error {
	if token == "" {
		return errors.NewValidationError("token", "token cannot be empty")
	}
	if !utf8.ValidString(token) {
		return errors.NewValidationError("token", fmt.Sprintf("token %q is not valid UTF-8", token))
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return errors.NewValidationError("score", fmt.Sprintf("score for token '%s' must be a finite non-negative number", token))
	}
	return nil
}

// Add inserts or replaces a token.
func (d *Dictionary) Add(token string, score float64) error {
	if err := ValidateEntry(token, score); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.addUnsafe(token, score)
	return nil
}

// AddAll inserts or replaces every entry. Nothing is added if any entry is invalid.
func (d *Dictionary) AddAll(entries map[string]float64) error {
	for token, score := range entries {
		if err := ValidateEntry(token, score); err != nil {
			return err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for token, score := range entries {
		d.addUnsafe(token, score)
	}
	return nil
}

func (d *Dictionary) addUnsafe(token string, score float64) {
	if d.entries == nil {
		d.entries = make(map[string]float64)
	}
	if old, exists := d.entries[token]; exists {
		d.total -= old
	}
	d.entries[token] = score
	d.total += score
	if n := utf8.RuneCountInString(token); n > d.maxRunes {
		d.maxRunes = n
	}
}

// Remove deletes a token and reports whether it was present.
func (d *Dictionary) Remove(token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	score, exists := d.entries[token]
	if !exists {
		return false
	}
	delete(d.entries, token)
	d.total -= score
	if utf8.RuneCountInString(token) == d.maxRunes {
		d.recomputeUnsafe()
	}
	return true
}

// recomputeUnsafe rebuilds the derived total and longest-token fields.
func (d *Dictionary) recomputeUnsafe() {
	d.total = 0
	d.maxRunes = 0
	for token, score := range d.entries {
		d.total += score
		if n := utf8.RuneCountInString(token); n > d.maxRunes {
			d.maxRunes = n
		}
	}
}

func (d *Dictionary) Contains(token string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.entries[token]
	return ok
}

func (d *Dictionary) Score(token string) (float64, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	score, ok := d.entries[token]
	return score, ok
}

func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Total returns the sum of all scores.
func (d *Dictionary) Total() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.total
}

// MaxTokenLength returns the rune length of the longest token.
func (d *Dictionary) MaxTokenLength() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.maxRunes
}

// Entries returns a copy of the token to score mapping.
func (d *Dictionary) Entries() map[string]float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]float64, len(d.entries))
	for token, score := range d.entries {
		out[token] = score
	}
	return out
}

// Tokens returns all tokens in lexical order.
func (d *Dictionary) Tokens() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tokens := make([]string, 0, len(d.entries))
	for token := range d.entries {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// GobEncode implements the gob.GobEncoder interface for Dictionary.
func (d *Dictionary) GobEncode() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(gobDictionaryData{Entries: d.entries}); err != nil {
		return nil, fmt.Errorf("failed to gob encode dictionary data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for Dictionary.
func (d *Dictionary) GobDecode(data []byte) error {
	decoded := gobDictionaryData{}
	decoder := gob.NewDecoder(bytes.NewBuffer(data))
	if err := decoder.Decode(&decoded); err != nil {
		return fmt.Errorf("failed to gob decode dictionary data: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = decoded.Entries
	if d.entries == nil {
		d.entries = make(map[string]float64)
	}
	d.recomputeUnsafe()
	return nil
}
