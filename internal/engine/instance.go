package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/dictionary"
	"github.com/gcbaptista/go-word-segmenter/internal/errors"
	"github.com/gcbaptista/go-word-segmenter/internal/segment"
	"github.com/gcbaptista/go-word-segmenter/internal/tokenizer"
	"github.com/gcbaptista/go-word-segmenter/services"
)

// DictionaryInstance holds the tokens and settings of a single named dictionary.
// It implements the services.DictionaryAccessor interface.
type DictionaryInstance struct {
	mu       sync.RWMutex
	settings config.DictionarySettings
	dict     *dictionary.Dictionary
}

// NewDictionaryInstance creates a dictionary instance from settings and initial entries.
// Entries are normalised first when the settings ask for it.
func NewDictionaryInstance(settings config.DictionarySettings, entries map[string]float64) (*DictionaryInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("dictionary name cannot be empty in settings")
	}
	settings.ApplyDefaults()

	if settings.Normalize {
		entries = dictionary.NormalizeEntries(entries)
	}
	dict, err := dictionary.New(entries)
	if err != nil {
		return nil, err
	}

	return &DictionaryInstance{settings: settings, dict: dict}, nil
}

// Settings returns a copy of the dictionary settings.
func (i *DictionaryInstance) Settings() config.DictionarySettings {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.settings
}

func (i *DictionaryInstance) setSettings(settings config.DictionarySettings) {
	i.mu.Lock()
	i.settings = settings
	i.mu.Unlock()
}

func (i *DictionaryInstance) dictionary() *dictionary.Dictionary {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.dict
}

// snapshot returns the settings and dictionary as one consistent pair.
func (i *DictionaryInstance) snapshot() (config.DictionarySettings, *dictionary.Dictionary) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.settings, i.dict
}

// applySettings installs new settings. Turning normalisation on rewrites the tokens
// into a fresh dictionary; the copy and the swap happen under the instance lock so no
// concurrent entry change is lost or left unnormalised. It reports whether the tokens
// were rewritten.
func (i *DictionaryInstance) applySettings(settings config.DictionarySettings) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	rewritten := false
	if settings.Normalize && !i.settings.Normalize {
		normalized, err := dictionary.New(dictionary.NormalizeEntries(i.dict.Entries()))
		if err != nil {
			return false, err
		}
		i.dict = normalized
		rewritten = true
	}
	i.settings = settings
	return rewritten, nil
}

// Stats summarises the dictionary.
func (i *DictionaryInstance) Stats() services.DictionaryStats {
	settings, dict := i.snapshot()
	return services.DictionaryStats{
		Name:           settings.Name,
		TokenCount:     dict.Len(),
		TotalScore:     dict.Total(),
		MaxTokenLength: dict.MaxTokenLength(),
	}
}

// AddEntries adds or replaces tokens. Either every entry is applied or none is.
func (i *DictionaryInstance) AddEntries(entries map[string]float64) error {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.settings.Normalize {
		entries = dictionary.NormalizeEntries(entries)
	}
	return i.dict.AddAll(entries)
}

// RemoveEntries deletes tokens and returns how many were present.
func (i *DictionaryInstance) RemoveEntries(tokens []string) int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	removed := 0
	for _, token := range tokens {
		if i.settings.Normalize {
			token = dictionary.Normalize(token)
		}
		if i.dict.Remove(token) {
			removed++
		}
	}
	return removed
}

// Entries returns a copy of every token and its score.
func (i *DictionaryInstance) Entries() map[string]float64 {
	return i.dictionary().Entries()
}

// Segment runs one segmentation request against the dictionary.
func (i *DictionaryInstance) Segment(ctx context.Context, req services.SegmentRequest) (services.SegmentResult, error) {
	startTime := time.Now()

	if !req.Mode.Valid() {
		return services.SegmentResult{}, errors.NewValidationError("mode", fmt.Sprintf("unknown mode '%s', expected one of all, full, best", req.Mode))
	}
	if req.Mode == "" {
		req.Mode = services.ModeAll
	}
	if req.MaxResults < 0 {
		return services.SegmentResult{}, errors.NewValidationError("max_results", "max_results cannot be negative")
	}
	if !utf8.ValidString(req.Text) {
		return services.SegmentResult{}, errors.NewValidationError("text", "text is not valid UTF-8")
	}

	settings, dict := i.snapshot()

	text := req.Text
	if settings.Normalize {
		text = dictionary.Normalize(text)
	}
	if dict.Len() == 0 {
		return services.SegmentResult{}, errors.NewEmptyDictionaryError(settings.Name)
	}

	result := services.SegmentResult{
		RequestID:  uuid.New().String(),
		Dictionary: settings.Name,
		Mode:       req.Mode,
		Text:       text,
	}

	switch req.Mode {
	case services.ModeAll:
		if n := utf8.RuneCountInString(text); settings.MaxTextLength > 0 && n > settings.MaxTextLength {
			return services.SegmentResult{}, errors.NewValidationError("text", fmt.Sprintf("text has %d characters, dictionary '%s' accepts at most %d for mode 'all'", n, settings.Name, settings.MaxTextLength))
		}

		segs, err := segment.Enumerate(ctx, text, dict, segment.Options{
			MaxResults: settings.EffectiveMaxResults(req.MaxResults),
			Memoize:    settings.Memoize,
		})
		if err != nil {
			if !stderrors.Is(err, errors.ErrResultLimitExceeded) {
				return services.SegmentResult{}, err
			}
			result.Truncated = true
		}

		result.Segmentations = make([]services.Segmentation, 0, len(segs))
		if req.Rank {
			for _, r := range segment.Rank(segs, dict) {
				score := r.Score
				result.Segmentations = append(result.Segmentations, services.Segmentation{Tokens: r.Tokens, Score: &score})
			}
		} else {
			for _, seg := range segs {
				result.Segmentations = append(result.Segmentations, services.Segmentation{Tokens: seg})
			}
		}
		result.Total = len(result.Segmentations)

	case services.ModeFull:
		result.Words = fullCutBlocks(text, dict)
		result.Total = len(result.Words)

	case services.ModeBest:
		tokens, score := bestCutBlocks(text, dict)
		result.Segmentations = []services.Segmentation{{Tokens: tokens, Score: &score}}
		result.Total = 1
	}

	result.Took = time.Since(startTime).Milliseconds()
	return result, nil
}

// fullCutBlocks runs FullCut on every word block of text. Whitespace and
// punctuation blocks are listed as they are.
func fullCutBlocks(text string, dict *dictionary.Dictionary) []string {
	words := make([]string, 0)
	for _, block := range tokenizer.Split(text) {
		if !block.Word {
			words = append(words, block.Text)
			continue
		}
		words = append(words, segment.FullCut(block.Text, dict)...)
	}
	return words
}

// bestCutBlocks runs BestCut on every word block of text and joins the results.
// Whitespace and punctuation blocks become tokens of their own and add nothing to the score.
func bestCutBlocks(text string, dict *dictionary.Dictionary) ([]string, float64) {
	tokens := make([]string, 0)
	score := 0.0
	for _, block := range tokenizer.Split(text) {
		if !block.Word {
			tokens = append(tokens, block.Text)
			continue
		}
		best := segment.BestCut(block.Text, dict)
		tokens = append(tokens, best.Tokens...)
		score += best.Score
	}
	return tokens, score
}
