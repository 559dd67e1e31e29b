// Package config provides configuration structures for the segmentation service.
// It defines per-dictionary settings and the process-level server configuration.
package config

import (
	"strings"
)

const (
	// DefaultMaxResults bounds the number of segmentations returned for one text
	// unless a dictionary overrides it.
	DefaultMaxResults = 10000

	// HardMaxResults is the largest budget a dictionary or request may ask for.
	HardMaxResults = 1000000

	// DefaultMaxTextLength caps, in characters, the texts accepted for exhaustive enumeration.
	DefaultMaxTextLength = 256
)

// DictionarySettings contains all configuration options for a named dictionary.
type DictionarySettings struct {
	Name       string `json:"name"`        // Unique name for the dictionary
	Normalize  bool   `json:"normalize"`   // Apply NFKC normalisation to tokens and texts (e.g. full-width "ＡＢ" becomes "AB")
	MaxResults int    `json:"max_results"` // Budget for exhaustive enumeration; requests may lower it but not raise it
	Memoize    bool   `json:"memoize"`     // Cache suffix segmentations during enumeration (same output, more memory)

	MaxTextLength int `json:"max_text_length"` // Longest text, in characters, accepted for mode "all"
}

// Validate returns a message for every problem found in the settings.
func (settings *DictionarySettings) Validate() []string {
	var conflicts []string

	if strings.TrimSpace(settings.Name) == "" {
		conflicts = append(conflicts, "Dictionary name cannot be empty or whitespace-only")
	} else if strings.TrimSpace(settings.Name) != settings.Name {
		conflicts = append(conflicts, "Dictionary name cannot have leading or trailing whitespace")
	}

	if strings.ContainsAny(settings.Name, `/\`) || settings.Name == "." || settings.Name == ".." {
		conflicts = append(conflicts, "Dictionary name '"+settings.Name+"' is not a valid directory name")
	}

	if settings.MaxResults < 0 {
		conflicts = append(conflicts, "max_results cannot be negative")
	}
	if settings.MaxResults > HardMaxResults {
		conflicts = append(conflicts, "max_results cannot exceed 1000000")
	}
	if settings.MaxTextLength < 0 {
		conflicts = append(conflicts, "max_text_length cannot be negative")
	}

	return conflicts
}

// ApplyDefaults applies default values to the dictionary settings
func (settings *DictionarySettings) ApplyDefaults() {
	if settings.MaxResults == 0 {
		settings.MaxResults = DefaultMaxResults
	}
	if settings.MaxTextLength == 0 {
		settings.MaxTextLength = DefaultMaxTextLength
	}
}

// EffectiveMaxResults resolves a per-request budget against the dictionary budget.
// A zero or larger request falls back to the dictionary budget.
func (settings *DictionarySettings) EffectiveMaxResults(requested int) int {
	limit := settings.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if requested > 0 && requested < limit {
		return requested
	}
	return limit
}
