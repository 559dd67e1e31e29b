package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-word-segmenter/internal/engine"
	internalErrors "github.com/gcbaptista/go-word-segmenter/internal/errors"
	"github.com/gcbaptista/go-word-segmenter/model"
	"github.com/gcbaptista/go-word-segmenter/services"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job management not supported by this engine")
		return
	}

	job, err := jobManager.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs for a dictionary
func (api *API) ListJobsHandler(c *gin.Context) {
	name := c.Param("name")
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job management not supported by this engine")
		return
	}

	jobs := jobManager.ListJobs(name, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":       jobs,
		"dictionary": name,
		"total":      len(jobs),
	})
}

// CancelJobHandler cancels a pending or running job
func (api *API) CancelJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job management not supported by this engine")
		return
	}

	if err := jobManager.CancelJob(jobID); err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendError(c, http.StatusConflict, ErrorCodeInvalidRequest, err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Cancellation requested for job '" + jobID + "'",
		"job_id":  jobID,
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	engineWithMetrics, ok := api.engine.(*engine.Engine)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job metrics not supported by this engine")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":          engineWithMetrics.GetJobMetrics(),
		"success_rate":     engineWithMetrics.GetJobSuccessRate(),
		"current_workload": engineWithMetrics.GetCurrentWorkload(),
	})
}
