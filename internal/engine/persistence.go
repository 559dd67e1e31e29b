package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/dictionary"
	"github.com/gcbaptista/go-word-segmenter/internal/errors"
	"github.com/gcbaptista/go-word-segmenter/internal/persistence"
)

const (
	dataDirPerm    = 0755
	settingsFile   = "settings.gob"
	dictionaryFile = "dictionary.gob"
)

// loadDictionariesFromDisk loads every dictionary directory found in the data directory.
func (e *Engine) loadDictionariesFromDisk() {
	log.Printf("Loading dictionaries from disk: %s", e.dataDir)

	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No dictionaries loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		name := item.Name()
		dictPath := filepath.Join(e.dataDir, name)

		var settings config.DictionarySettings
		settingsPath := filepath.Join(dictPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			log.Printf("Warning: Failed to load settings for dictionary %s from %s: %v. Skipping this dictionary.", name, settingsPath, err)
			continue
		}

		if settings.Name != name {
			log.Printf("Warning: Dictionary name in settings ('%s') does not match directory name ('%s') for path %s. Skipping this dictionary.", settings.Name, name, dictPath)
			continue
		}

		dict := &dictionary.Dictionary{}
		entriesPath := filepath.Join(dictPath, dictionaryFile)
		if err := persistence.LoadGob(entriesPath, dict); err != nil {
			if err == os.ErrNotExist {
				log.Printf("Info: Dictionary file %s not found for dictionary %s. Initializing empty dictionary.", entriesPath, name)
			} else {
				log.Printf("Warning: Failed to load tokens for dictionary %s from %s: %v. Proceeding with empty dictionary.", name, entriesPath, err)
			}
			dict, _ = dictionary.New(nil)
		}

		settings.ApplyDefaults()
		e.dictionaries[name] = &DictionaryInstance{settings: settings, dict: dict}
		log.Printf("Successfully loaded dictionary: %s (%d tokens)", name, dict.Len())
	}
}

// PersistDictionary writes the settings and tokens of a dictionary to disk.
func (e *Engine) PersistDictionary(name string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.dictionaries[name]
	if !exists {
		return errors.NewDictionaryNotFoundError(name)
	}
	return e.persistInstanceUnsafe(name, instance)
}

// persistInstanceUnsafe writes an instance under dataDir/name.
// The caller must hold e.mu.
func (e *Engine) persistInstanceUnsafe(name string, instance *DictionaryInstance) error {
	settings, dict := instance.snapshot()
	dictPath := filepath.Join(e.dataDir, name)
	if err := os.MkdirAll(dictPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for dictionary %s: %w", name, err)
	}

	if err := persistence.SaveGob(filepath.Join(dictPath, settingsFile), settings); err != nil {
		return fmt.Errorf("failed to save settings for dictionary %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(dictPath, dictionaryFile), dict); err != nil {
		return fmt.Errorf("failed to save tokens for dictionary %s: %w", name, err)
	}
	return nil
}
