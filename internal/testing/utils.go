// Package testing provides utilities and helpers for testing the word segmenter.
package testing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/engine"
	"github.com/gcbaptista/go-word-segmenter/model"
	"github.com/gcbaptista/go-word-segmenter/services"
)

// ExampleText is segmentable against ExampleEntries in exactly seven ways.
const ExampleText = "常经有意见分歧"

// ExampleEntries returns a small scored Chinese dictionary.
func ExampleEntries() map[string]float64 {
	return map[string]float64{
		"经常":  0.1,
		"经":   0.05,
		"有":   0.1,
		"常":   0.001,
		"有意见": 0.1,
		"歧":   0.001,
		"意见":  0.2,
		"分歧":  0.2,
		"见":   0.05,
		"意":   0.05,
		"见分歧": 0.05,
		"分":   0.1,
	}
}

// CreateTestEngine creates a new engine in a temporary directory. The engine is
// closed and the directory removed when the test ends.
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.NewEngineWithWorkers(t.TempDir(), 2)
	t.Cleanup(eng.Close)
	return eng
}

// CreateTestDictionary creates a dictionary holding ExampleEntries with default settings
func CreateTestDictionary(t *testing.T, eng *engine.Engine, name string) config.DictionarySettings {
	t.Helper()
	settings := config.DictionarySettings{Name: name}
	require.NoError(t, eng.CreateDictionary(settings, ExampleEntries()), "Failed to create test dictionary")

	settings.ApplyDefaults()
	return settings
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      5 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  false,
	}
}

// WaitForJobCompletion polls a job until it completes or times out
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				if opts.LogProgress && job.CompletedAt != nil {
					t.Logf("Job %s completed successfully in %v", jobID, job.CompletedAt.Sub(job.CreatedAt))
				}
				return job
			case model.JobStatusFailed, model.JobStatusCancelled:
				t.Fatalf("Job %s ended with status %s: %s", jobID, job.Status, job.Error)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedDictionary string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedDictionary, job.DictionaryName, "Job dictionary name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// SegmentTestCase represents a test case for segmentation
type SegmentTestCase struct {
	Name     string
	Request  services.SegmentRequest
	Expected []string // Each segmentation joined with "/"; nil skips the check
	Validate func(t *testing.T, result services.SegmentResult)
}

// RunSegmentTests runs a suite of segmentation tests against a dictionary
func RunSegmentTests(t *testing.T, accessor services.Segmenter, tests []SegmentTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := accessor.Segment(context.Background(), tt.Request)
			require.NoError(t, err, "Segmentation should not fail")

			if tt.Expected != nil {
				assert.Equal(t, tt.Expected, JoinSegmentations(result.Segmentations), "Segmentations should match")
			}
			if tt.Validate != nil {
				tt.Validate(t, result)
			}
		})
	}
}

// JoinSegmentations renders every segmentation as its tokens joined with "/".
func JoinSegmentations(segs []services.Segmentation) []string {
	out := make([]string, len(segs))
	for i, seg := range segs {
		out[i] = strings.Join(seg.Tokens, "/")
	}
	return out
}
