package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gcbaptista/go-word-segmenter/internal/dictionary"
	"github.com/gcbaptista/go-word-segmenter/internal/errors"
	"github.com/gcbaptista/go-word-segmenter/model"
	"github.com/gcbaptista/go-word-segmenter/services"
)

// ImportResult is stored on a finished import job.
type ImportResult struct {
	Parsed     int `json:"parsed"`
	TokenCount int `json:"token_count"`
}

// ImportEntriesAsync parses a dictionary file in the background and merges its
// entries into an existing dictionary. Format is "yaml" or "text".
func (e *Engine) ImportEntriesAsync(name, format, content string) (string, error) {
	if _, err := e.instance(name); err != nil {
		return "", err
	}

	jobID := e.jobManager.CreateJob(model.JobTypeImportEntries, name, map[string]string{
		"operation": "import_entries",
		"format":    format,
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, jobID string) (interface{}, error) {
		return e.executeImportEntriesJob(ctx, name, dictionary.Format(format), content, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start import job: %w", err)
	}

	return jobID, nil
}

// executeImportEntriesJob executes the import job.
func (e *Engine) executeImportEntriesJob(ctx context.Context, name string, format dictionary.Format, content string, jobID string) (interface{}, error) {
	e.jobManager.UpdateJobProgress(jobID, 0, 3, "Parsing entries")
	entries, err := dictionary.Parse(format, strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse entries: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.jobManager.UpdateJobProgress(jobID, 1, 3, fmt.Sprintf("Adding %d entries", len(entries)))
	instance, err := e.instance(name)
	if err != nil {
		return nil, err
	}
	if err := instance.AddEntries(entries); err != nil {
		return nil, fmt.Errorf("failed to add entries to dictionary '%s': %w", name, err)
	}

	e.jobManager.UpdateJobProgress(jobID, 2, 3, "Persisting dictionary")
	if err := e.PersistDictionary(name); err != nil {
		return nil, err
	}
	e.jobManager.UpdateJobProgress(jobID, 3, 3, "Import completed")

	log.Printf("Imported %d entries into dictionary '%s' (async).", len(entries), name)
	return ImportResult{Parsed: len(entries), TokenCount: instance.dictionary().Len()}, nil
}

// SegmentAsync runs a segmentation request in the background. The job result is
// the services.SegmentResult. Cancelling the job stops the enumeration.
func (e *Engine) SegmentAsync(name string, req services.SegmentRequest) (string, error) {
	instance, err := e.instance(name)
	if err != nil {
		return "", err
	}
	if !req.Mode.Valid() {
		return "", errors.NewValidationError("mode", fmt.Sprintf("unknown mode '%s', expected one of all, full, best", req.Mode))
	}

	jobID := e.jobManager.CreateJob(model.JobTypeSegment, name, map[string]string{
		"operation": "segment",
		"mode":      string(req.Mode),
	})

	err = e.jobManager.ExecuteJob(jobID, func(ctx context.Context, jobID string) (interface{}, error) {
		e.jobManager.UpdateJobProgress(jobID, 0, 1, "Segmenting text")
		result, err := instance.Segment(ctx, req)
		if err != nil {
			return nil, err
		}
		e.jobManager.UpdateJobProgress(jobID, 1, 1, fmt.Sprintf("Found %d results", result.Total))
		return result, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start segment job: %w", err)
	}

	return jobID, nil
}
