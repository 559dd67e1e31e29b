package engine

import (
	"fmt"
	"log"
	"strings"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/errors"
)

// UpdateDictionarySettings replaces the settings of an existing dictionary and persists them.
// The name cannot change here; use RenameDictionary. Turning normalisation on
// rewrites the stored tokens into their normalised form.
func (e *Engine) UpdateDictionarySettings(name string, newSettings config.DictionarySettings) error {
	if newSettings.Name != "" && newSettings.Name != name {
		return errors.NewValidationError("name", fmt.Sprintf("cannot change dictionary name from '%s' to '%s' during settings update", name, newSettings.Name))
	}
	newSettings.Name = name
	newSettings.ApplyDefaults()
	if conflicts := newSettings.Validate(); len(conflicts) > 0 {
		return errors.NewValidationError("settings", strings.Join(conflicts, "; "))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.dictionaries[name]
	if !exists {
		return errors.NewDictionaryNotFoundError(name)
	}

	rewritten, err := instance.applySettings(newSettings)
	if err != nil {
		return fmt.Errorf("failed to normalise dictionary '%s': %w", name, err)
	}
	if rewritten {
		log.Printf("Tokens of dictionary '%s' normalised (%d tokens).", name, instance.dictionary().Len())
	}

	if err := e.persistInstanceUnsafe(name, instance); err != nil {
		log.Printf("CRITICAL: Failed to persist updated settings for dictionary '%s'. In-memory settings updated, but disk is stale: %v", name, err)
		return fmt.Errorf("failed to save updated settings for dictionary '%s': %w", name, err)
	}

	log.Printf("Settings for dictionary '%s' updated and persisted.", name)
	return nil
}
