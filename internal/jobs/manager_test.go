package jobs

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-word-segmenter/internal/errors"
	"github.com/gcbaptista/go-word-segmenter/model"
)

func waitForStatus(t *testing.T, manager *Manager, jobID string, status model.JobStatus) *model.Job {
	t.Helper()
	var job *model.Job
	require.Eventually(t, func() bool {
		var err error
		job, err = manager.GetJob(jobID)
		return err == nil && job.Status == status
	}, 2*time.Second, 5*time.Millisecond, "job %s never reached status %s", jobID, status)
	return job
}

func TestJobManager_CreateJob(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeSegment, "zh-basic", map[string]string{
		"operation": "test",
	})
	require.NotEmpty(t, jobID)

	job, err := manager.GetJob(jobID)
	require.NoError(t, err)

	assert.Equal(t, model.JobTypeSegment, job.Type)
	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.Equal(t, "zh-basic", job.DictionaryName)
	assert.Equal(t, "test", job.Metadata["operation"])
}

func TestJobManager_GetJobNotFound(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	_, err := manager.GetJob("missing")
	assert.True(t, stderrors.Is(err, errors.ErrJobNotFound))
}

func TestJobManager_ExecuteJob(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeSegment, "zh-basic", nil)

	err := manager.ExecuteJob(jobID, func(ctx context.Context, id string) (interface{}, error) {
		manager.UpdateJobProgress(id, 50, 100, "Halfway done")
		manager.UpdateJobProgress(id, 100, 100, "Completed")
		return []string{"常", "经"}, nil
	})
	require.NoError(t, err)

	job := waitForStatus(t, manager, jobID, model.JobStatusCompleted)
	require.NotNil(t, job.Progress)
	assert.Equal(t, 100, job.Progress.Current)
	assert.Equal(t, 100, job.Progress.Total)
	assert.Equal(t, []string{"常", "经"}, job.Result)
	assert.NotNil(t, job.StartedAt)
	assert.NotNil(t, job.CompletedAt)

	metrics := manager.GetMetrics()
	assert.Equal(t, int64(1), metrics.JobsCompleted)
	assert.Equal(t, 1.0, manager.GetJobSuccessRate())
}

func TestJobManager_ExecuteJobFailure(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeImportEntries, "zh-basic", nil)
	err := manager.ExecuteJob(jobID, func(ctx context.Context, id string) (interface{}, error) {
		return nil, fmt.Errorf("bad dictionary payload")
	})
	require.NoError(t, err)

	job := waitForStatus(t, manager, jobID, model.JobStatusFailed)
	assert.Equal(t, "bad dictionary payload", job.Error)
	assert.Equal(t, 0.0, manager.GetJobSuccessRate())
}

func TestJobManager_ExecuteJobTwice(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeSegment, "zh-basic", nil)
	noop := func(ctx context.Context, id string) (interface{}, error) { return nil, nil }

	require.NoError(t, manager.ExecuteJob(jobID, noop))
	waitForStatus(t, manager, jobID, model.JobStatusCompleted)
	assert.Error(t, manager.ExecuteJob(jobID, noop))
}

func TestJobManager_CancelRunningJob(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	started := make(chan struct{})
	jobID := manager.CreateJob(model.JobTypeSegment, "zh-basic", nil)
	err := manager.ExecuteJob(jobID, func(ctx context.Context, id string) (interface{}, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	require.NoError(t, err)

	<-started
	require.NoError(t, manager.CancelJob(jobID))
	job := waitForStatus(t, manager, jobID, model.JobStatusCancelled)
	assert.Contains(t, job.Error, "canceled")

	assert.Error(t, manager.CancelJob(jobID), "finished jobs cannot be cancelled")
}

func TestJobManager_CancelUnscheduledJob(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeSegment, "zh-basic", nil)
	require.NoError(t, manager.CancelJob(jobID))

	job, err := manager.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCancelled, job.Status)
}

func TestJobManager_StopCancelsQueuedJobs(t *testing.T) {
	manager := NewManager(1)

	release := make(chan struct{})
	blocking := manager.CreateJob(model.JobTypeSegment, "zh-basic", nil)
	require.NoError(t, manager.ExecuteJob(blocking, func(ctx context.Context, id string) (interface{}, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, ctx.Err()
	}))
	waitForStatus(t, manager, blocking, model.JobStatusRunning)

	queued := manager.CreateJob(model.JobTypeSegment, "zh-basic", nil)
	require.NoError(t, manager.ExecuteJob(queued, func(ctx context.Context, id string) (interface{}, error) {
		return nil, nil
	}))

	manager.Stop()
	manager.Stop()
	close(release)

	job, err := manager.GetJob(queued)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCancelled, job.Status)

	assert.Error(t, manager.ExecuteJob(manager.CreateJob(model.JobTypeSegment, "zh-basic", nil), nil))
}

func TestJobManager_ListJobs(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	first := manager.CreateJob(model.JobTypeSegment, "zh-basic", nil)
	time.Sleep(2 * time.Millisecond)
	second := manager.CreateJob(model.JobTypeImportEntries, "zh-basic", nil)
	manager.CreateJob(model.JobTypeSegment, "other", nil)
	require.NoError(t, manager.CancelJob(first))

	jobs := manager.ListJobs("zh-basic", nil)
	require.Len(t, jobs, 2)
	assert.Equal(t, second, jobs[0].ID, "newest job first")

	cancelled := model.JobStatusCancelled
	filtered := manager.ListJobs("zh-basic", &cancelled)
	require.Len(t, filtered, 1)
	assert.Equal(t, first, filtered[0].ID)
}

func TestJobManager_CleanupOldJobs(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeSegment, "zh-basic", nil)
	require.NoError(t, manager.CancelJob(jobID))
	manager.CreateJob(model.JobTypeSegment, "zh-basic", nil)

	assert.Equal(t, 1, manager.CleanupOldJobs(-time.Minute))
	assert.Len(t, manager.ListJobs("zh-basic", nil), 1)
}
