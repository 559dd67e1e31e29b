package services

import (
	"context"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/model"
)

// SegmentMode selects the segmentation algorithm.
type SegmentMode string

const (
	// ModeAll enumerates every segmentation covering the text exactly.
	ModeAll SegmentMode = "all"
	// ModeFull lists every dictionary word occurring in the text (search-engine style).
	ModeFull SegmentMode = "full"
	// ModeBest returns the single most probable segmentation by dictionary score.
	ModeBest SegmentMode = "best"
)

// Valid reports whether m is a known mode. The empty mode means ModeAll.
func (m SegmentMode) Valid() bool {
	switch m {
	case "", ModeAll, ModeFull, ModeBest:
		return true
	}
	return false
}

// SegmentRequest describes one segmentation call.
type SegmentRequest struct {
	Text       string      `json:"text"`
	Mode       SegmentMode `json:"mode,omitempty"`        // Defaults to "all"
	MaxResults int         `json:"max_results,omitempty"` // Lowers the dictionary budget for mode "all"
	Rank       bool        `json:"rank,omitempty"`        // Order "all" results by score, best first
}

// Segmentation is one result of mode "all" or "best".
type Segmentation struct {
	Tokens []string `json:"tokens"`
	Score  *float64 `json:"score,omitempty"` // Log-probability, present when ranked or in mode "best"
}

// SegmentResult is the answer to a SegmentRequest.
type SegmentResult struct {
	RequestID     string         `json:"request_id"` // unique UUID for this request
	Dictionary    string         `json:"dictionary"`
	Mode          SegmentMode    `json:"mode"`
	Text          string         `json:"text"` // The text actually segmented (after normalisation)
	Segmentations []Segmentation `json:"segmentations"`   // Empty when no segmentation exists; null in mode "full"
	Words         []string       `json:"words,omitempty"` // Mode "full" only
	Total         int            `json:"total"`
	Truncated     bool           `json:"truncated"` // The result budget stopped the enumeration
	Took          int64          `json:"took"`      // milliseconds
}

// DictionaryStats summarises a dictionary.
type DictionaryStats struct {
	Name           string  `json:"name"`
	TokenCount     int     `json:"token_count"`
	TotalScore     float64 `json:"total_score"`
	MaxTokenLength int     `json:"max_token_length"`
}

// Segmenter segments texts against one dictionary.
type Segmenter interface {
	Segment(ctx context.Context, req SegmentRequest) (SegmentResult, error)
}

// EntryEditor changes the tokens of one dictionary in memory.
type EntryEditor interface {
	AddEntries(entries map[string]float64) error
	RemoveEntries(tokens []string) int
	Entries() map[string]float64
}

// DictionaryAccessor combines segmentation and entry access for one dictionary.
type DictionaryAccessor interface {
	Segmenter
	EntryEditor
	Settings() config.DictionarySettings
	Stats() DictionaryStats
}

// DictionaryManager manages the lifecycle of dictionaries
type DictionaryManager interface {
	CreateDictionary(settings config.DictionarySettings, entries map[string]float64) error
	GetDictionary(name string) (DictionaryAccessor, error)
	GetDictionarySettings(name string) (config.DictionarySettings, error)
	UpdateDictionarySettings(name string, settings config.DictionarySettings) error
	RenameDictionary(oldName, newName string) error
	DeleteDictionary(name string) error
	ListDictionaries() []string
	PersistDictionary(name string) error
}

// AsyncDictionaryManager extends DictionaryManager with background operations
type AsyncDictionaryManager interface {
	DictionaryManager
	ImportEntriesAsync(name, format, content string) (string, error) // Returns job ID
	SegmentAsync(name string, req SegmentRequest) (string, error)    // Returns job ID
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(dictionaryName string, status *model.JobStatus) []*model.Job
	CancelJob(jobID string) error
}
