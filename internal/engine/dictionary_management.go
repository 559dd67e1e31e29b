package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/errors"
)

// CreateDictionary creates a new dictionary with the given settings and entries and persists it.
func (e *Engine) CreateDictionary(settings config.DictionarySettings, entries map[string]float64) error {
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return errors.NewValidationError("settings", strings.Join(conflicts, "; "))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.dictionaries[settings.Name]; exists {
		return errors.NewDictionaryAlreadyExistsError(settings.Name)
	}

	instance, err := NewDictionaryInstance(settings, entries)
	if err != nil {
		return fmt.Errorf("failed to create dictionary '%s': %w", settings.Name, err)
	}

	if err := e.persistInstanceUnsafe(settings.Name, instance); err != nil {
		return fmt.Errorf("failed to persist new dictionary '%s': %w", settings.Name, err)
	}

	e.dictionaries[settings.Name] = instance
	log.Printf("Dictionary '%s' created with %d tokens and persisted.", settings.Name, instance.dict.Len())
	return nil
}

// DeleteDictionary deletes a dictionary and its data from disk.
func (e *Engine) DeleteDictionary(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.dictionaries[name]; !exists {
		return errors.NewDictionaryNotFoundError(name)
	}

	delete(e.dictionaries, name)

	dictPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(dictPath); err != nil {
		return fmt.Errorf("failed to remove dictionary directory %s: %w", dictPath, err)
	}

	log.Printf("Dictionary '%s' deleted successfully.", name)
	return nil
}

// RenameDictionary renames a dictionary on disk and in memory.
func (e *Engine) RenameDictionary(oldName, newName string) error {
	if oldName == newName {
		return errors.NewSameNameError(oldName)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.dictionaries[oldName]
	if !exists {
		return errors.NewDictionaryNotFoundError(oldName)
	}
	if _, exists := e.dictionaries[newName]; exists {
		return errors.NewDictionaryAlreadyExistsError(newName)
	}

	newSettings := instance.Settings()
	newSettings.Name = newName
	if conflicts := newSettings.Validate(); len(conflicts) > 0 {
		return errors.NewValidationError("new_name", strings.Join(conflicts, "; "))
	}

	instance.setSettings(newSettings)
	if err := e.persistInstanceUnsafe(newName, instance); err != nil {
		oldSettings := newSettings
		oldSettings.Name = oldName
		instance.setSettings(oldSettings)
		return fmt.Errorf("failed to persist renamed dictionary: %w", err)
	}

	e.dictionaries[newName] = instance
	delete(e.dictionaries, oldName)

	oldPath := filepath.Join(e.dataDir, oldName)
	if err := os.RemoveAll(oldPath); err != nil {
		log.Printf("Warning: Failed to remove old dictionary directory %s: %v", oldPath, err)
	}

	log.Printf("Dictionary renamed from '%s' to '%s' successfully.", oldName, newName)
	return nil
}

// AddEntries adds or replaces tokens of a dictionary and persists it.
func (e *Engine) AddEntries(name string, entries map[string]float64) error {
	instance, err := e.instance(name)
	if err != nil {
		return err
	}
	if err := instance.AddEntries(entries); err != nil {
		return err
	}
	return e.PersistDictionary(name)
}

// RemoveEntries deletes tokens from a dictionary, persists it, and returns how many were present.
func (e *Engine) RemoveEntries(name string, tokens []string) (int, error) {
	instance, err := e.instance(name)
	if err != nil {
		return 0, err
	}
	removed := instance.RemoveEntries(tokens)
	if removed == 0 {
		return 0, nil
	}
	return removed, e.PersistDictionary(name)
}

func (e *Engine) instance(name string) (*DictionaryInstance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.dictionaries[name]
	if !exists {
		return nil, errors.NewDictionaryNotFoundError(name)
	}
	return instance, nil
}
