package engine

import (
	"log"
	"os"
	"sort"
	"sync"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/errors"
	"github.com/gcbaptista/go-word-segmenter/internal/jobs"
	"github.com/gcbaptista/go-word-segmenter/model"
	"github.com/gcbaptista/go-word-segmenter/services"
)

const defaultMaxWorkers = 4

// Engine manages multiple named dictionaries.
// It implements the services.AsyncDictionaryManager and services.JobManager interfaces.
type Engine struct {
	mu           sync.RWMutex
	dictionaries map[string]*DictionaryInstance
	dataDir      string
	jobManager   *jobs.Manager
}

// NewEngine creates a new engine storing its dictionaries under dataDir.
func NewEngine(dataDir string) *Engine {
	return NewEngineWithWorkers(dataDir, defaultMaxWorkers)
}

// NewEngineWithWorkers creates a new engine whose background jobs run on at most maxWorkers goroutines.
func NewEngineWithWorkers(dataDir string, maxWorkers int) *Engine {
	eng := &Engine{
		dictionaries: make(map[string]*DictionaryInstance),
		dataDir:      dataDir,
		jobManager:   jobs.NewManager(maxWorkers),
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for new dictionaries if loading fails.", dataDir, err)
	}
	eng.loadDictionariesFromDisk()
	eng.jobManager.Start()
	return eng
}

// Close stops background jobs, cancelling any still running.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// GetDictionary retrieves a dictionary by its name.
func (e *Engine) GetDictionary(name string) (services.DictionaryAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.dictionaries[name]
	if !exists {
		return nil, errors.NewDictionaryNotFoundError(name)
	}
	return instance, nil
}

// GetDictionarySettings retrieves the settings for a specific dictionary.
func (e *Engine) GetDictionarySettings(name string) (config.DictionarySettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.dictionaries[name]
	if !exists {
		return config.DictionarySettings{}, errors.NewDictionaryNotFoundError(name)
	}
	return instance.Settings(), nil
}

// ListDictionaries returns the names of all loaded dictionaries in lexical order.
func (e *Engine) ListDictionaries() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.dictionaries))
	for name := range e.dictionaries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetJob returns a copy of a background job.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns the jobs of a dictionary, optionally filtered by status.
func (e *Engine) ListJobs(dictionaryName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(dictionaryName, status)
}

// CancelJob requests cancellation of a pending or running job.
func (e *Engine) CancelJob(jobID string) error {
	return e.jobManager.CancelJob(jobID)
}

// GetJobMetrics returns current job performance metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate.
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs.
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
