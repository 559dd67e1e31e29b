package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-word-segmenter/model"
)

// JobMetricsData is a point-in-time copy of JobMetrics that is safe to serialise.
type JobMetricsData struct {
	JobsCreated          int64                     `json:"jobs_created"`
	JobsCompleted        int64                     `json:"jobs_completed"`
	JobsFailed           int64                     `json:"jobs_failed"`
	JobsCancelled        int64                     `json:"jobs_cancelled"`
	TotalExecutionTime   time.Duration             `json:"total_execution_time_ns"`
	AverageExecutionTime time.Duration             `json:"average_execution_time_ns"`
	JobsByType           map[model.JobType]int64   `json:"jobs_by_type"`
	JobsByStatus         map[model.JobStatus]int64 `json:"jobs_by_status"`
	LastUpdated          time.Time                 `json:"last_updated"`
}

// typeTiming accumulates completed-job durations for one job type.
type typeTiming struct {
	count int64
	total time.Duration
}

// JobMetrics tracks counters and timings of background jobs.
type JobMetrics struct {
	mu           sync.RWMutex
	created      int64
	completed    int64
	failed       int64
	cancelled    int64
	totalTime    time.Duration
	byType       map[model.JobType]int64
	byStatus     map[model.JobStatus]int64
	timingByType map[model.JobType]*typeTiming
	lastUpdated  time.Time
}

// NewJobMetrics creates a new metrics collector
func NewJobMetrics() *JobMetrics {
	return &JobMetrics{
		byType:       make(map[model.JobType]int64),
		byStatus:     make(map[model.JobStatus]int64),
		timingByType: make(map[model.JobType]*typeTiming),
		lastUpdated:  time.Now(),
	}
}

// RecordJobCreated increments job creation counter
func (m *JobMetrics) RecordJobCreated(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.created++
	m.byType[jobType]++
	m.byStatus[model.JobStatusPending]++
	m.lastUpdated = time.Now()
}

// RecordJobStatusChange moves one job from oldStatus to newStatus in the status counters
func (m *JobMetrics) RecordJobStatusChange(oldStatus, newStatus model.JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" && m.byStatus[oldStatus] > 0 {
		m.byStatus[oldStatus]--
	}
	m.byStatus[newStatus]++
	if newStatus == model.JobStatusCancelled {
		m.cancelled++
	}
	m.lastUpdated = time.Now()
}

// RecordJobCompleted records successful job completion
func (m *JobMetrics) RecordJobCompleted(jobType model.JobType, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.completed++
	m.totalTime += executionTime

	timing, ok := m.timingByType[jobType]
	if !ok {
		timing = &typeTiming{}
		m.timingByType[jobType] = timing
	}
	timing.count++
	timing.total += executionTime

	m.lastUpdated = time.Now()
}

// RecordJobFailed records job failure
func (m *JobMetrics) RecordJobFailed(_ model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failed++
	m.lastUpdated = time.Now()
}

// GetMetrics returns a copy of the current metrics
func (m *JobMetrics) GetMetrics() JobMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byType := make(map[model.JobType]int64, len(m.byType))
	for k, v := range m.byType {
		byType[k] = v
	}
	byStatus := make(map[model.JobStatus]int64, len(m.byStatus))
	for k, v := range m.byStatus {
		byStatus[k] = v
	}

	var average time.Duration
	if m.completed > 0 {
		average = m.totalTime / time.Duration(m.completed)
	}

	return JobMetricsData{
		JobsCreated:          m.created,
		JobsCompleted:        m.completed,
		JobsFailed:           m.failed,
		JobsCancelled:        m.cancelled,
		TotalExecutionTime:   m.totalTime,
		AverageExecutionTime: average,
		JobsByType:           byType,
		JobsByStatus:         byStatus,
		LastUpdated:          m.lastUpdated,
	}
}

// GetAverageExecutionTimeByType returns the mean duration of completed jobs of one type
func (m *JobMetrics) GetAverageExecutionTimeByType(jobType model.JobType) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	timing, ok := m.timingByType[jobType]
	if !ok || timing.count == 0 {
		return 0
	}
	return timing.total / time.Duration(timing.count)
}

// GetSuccessRate returns the success rate (0.0 to 1.0)
func (m *JobMetrics) GetSuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	finished := m.completed + m.failed
	if finished == 0 {
		return 1.0
	}
	return float64(m.completed) / float64(finished)
}

// GetCurrentWorkload returns the number of pending and running jobs
func (m *JobMetrics) GetCurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.byStatus[model.JobStatusPending] + m.byStatus[model.JobStatusRunning]
}
