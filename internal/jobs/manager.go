package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-word-segmenter/internal/errors"
	"github.com/gcbaptista/go-word-segmenter/model"
)

// JobFunc is the work of one job. The returned value is stored as the job result.
type JobFunc func(ctx context.Context, jobID string) (interface{}, error)

// Manager handles background job execution and tracking
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	cancels  map[string]context.CancelFunc
	workers  chan struct{} // Limits concurrent jobs
	ctx      context.Context
	stop     context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
	metrics  *JobMetrics
}

// NewManager creates a new job manager with specified worker count
func NewManager(maxWorkers int) *Manager {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Manager{
		jobs:    make(map[string]*model.Job),
		cancels: make(map[string]context.CancelFunc),
		workers: make(chan struct{}, maxWorkers),
		ctx:     ctx,
		stop:    stop,
		metrics: NewJobMetrics(),
	}
}

// Start begins the background cleanup of finished jobs
func (m *Manager) Start() {
	log.Printf("Job manager started with %d max workers", cap(m.workers))
	go m.cleanupRoutine()
}

// Stop cancels every running job and waits for them to return. It is safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		m.stop()
		m.wg.Wait()
		log.Printf("Job manager stopped")
	})
}

// CreateJob registers a pending job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, dictionaryName string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:             uuid.New().String(),
		Type:           jobType,
		Status:         model.JobStatusPending,
		DictionaryName: dictionaryName,
		CreatedAt:      time.Now(),
		Metadata:       metadata,
	}

	m.jobs[job.ID] = job
	m.metrics.RecordJobCreated(jobType)
	log.Printf("Created job %s (type: %s) for dictionary '%s'", job.ID, job.Type, job.DictionaryName)
	return job.ID
}

// GetJob returns a copy of the job with the given ID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns the jobs of a dictionary, newest first, optionally filtered by status
func (m *Manager) ListJobs(dictionaryName string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Job, 0)
	for _, job := range m.jobs {
		if job.DictionaryName != dictionaryName {
			continue
		}
		if status != nil && job.Status != *status {
			continue
		}
		result = append(result, copyJob(job))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	if job.Metadata != nil {
		jobCopy.Metadata = make(map[string]string, len(job.Metadata))
		for k, v := range job.Metadata {
			jobCopy.Metadata[k] = v
		}
	}
	return &jobCopy
}

// ExecuteJob runs a pending job in the background once a worker slot is free.
// It returns immediately; the job stays pending until it gets a slot.
func (m *Manager) ExecuteJob(jobID string, jobFunc JobFunc) error {
	if m.ctx.Err() != nil {
		return fmt.Errorf("job manager is shutting down")
	}

	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancels[jobID] = cancel
	jobType := job.Type
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.forgetCancel(jobID)
		defer cancel()

		select {
		case m.workers <- struct{}{}:
		case <-ctx.Done():
			m.finishJob(jobID, model.JobStatusCancelled, nil, "job cancelled before it started")
			return
		}
		defer func() { <-m.workers }()
		if ctx.Err() != nil {
			m.finishJob(jobID, model.JobStatusCancelled, nil, "job cancelled before it started")
			return
		}

		m.markRunning(jobID)
		startTime := time.Now()

		result, err := jobFunc(ctx, jobID)
		executionTime := time.Since(startTime)

		switch {
		case err != nil && ctx.Err() != nil:
			m.finishJob(jobID, model.JobStatusCancelled, result, err.Error())
			log.Printf("Job %s cancelled after %v: %v", jobID, executionTime, err)
		case err != nil:
			m.finishJob(jobID, model.JobStatusFailed, result, err.Error())
			m.metrics.RecordJobFailed(jobType)
			log.Printf("Job %s failed after %v: %v", jobID, executionTime, err)
		default:
			m.finishJob(jobID, model.JobStatusCompleted, result, "")
			m.metrics.RecordJobCompleted(jobType, executionTime)
			log.Printf("Job %s completed successfully in %v", jobID, executionTime)
		}
	}()

	return nil
}

// CancelJob requests cancellation of a pending or running job
func (m *Manager) CancelJob(jobID string) error {
	m.mu.RLock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.RUnlock()
		return errors.NewJobNotFoundError(jobID)
	}
	terminal := job.IsTerminal()
	cancel := m.cancels[jobID]
	m.mu.RUnlock()

	if terminal {
		return fmt.Errorf("job with ID '%s' has already finished", jobID)
	}
	if cancel == nil {
		// Never scheduled: finish it directly.
		m.finishJob(jobID, model.JobStatusCancelled, nil, "job cancelled before it started")
		return nil
	}
	cancel()
	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}
	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

func (m *Manager) forgetCancel(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cancels, jobID)
}

func (m *Manager) markRunning(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	oldStatus := job.Status
	job.Status = model.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	m.metrics.RecordJobStatusChange(oldStatus, job.Status)
}

// finishJob moves a job to a terminal status and stores its result
func (m *Manager) finishJob(jobID string, status model.JobStatus, result interface{}, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists || job.IsTerminal() {
		return
	}

	oldStatus := job.Status
	job.Status = status
	job.Result = result
	if errorMsg != "" {
		job.Error = errorMsg
	}
	now := time.Now()
	job.CompletedAt = &now

	m.metrics.RecordJobStatusChange(oldStatus, status)
}

// cleanupRoutine runs periodic job cleanup
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(24 * time.Hour)
		case <-m.ctx.Done():
			return
		}
	}
}

// CleanupOldJobs removes finished jobs older than maxAge
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("Cleaned up %d old jobs", cleaned)
	}
	return cleaned
}

// GetMetrics returns current job performance metrics
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate
func (m *Manager) GetJobSuccessRate() float64 {
	return m.metrics.GetSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.GetCurrentWorkload()
}
