package api

import (
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-word-segmenter/model"
	"github.com/gcbaptista/go-word-segmenter/services"
)

// SegmentHandler segments one text against a dictionary and returns the result directly.
// Request Body: services.SegmentRequest
func (api *API) SegmentHandler(c *gin.Context) {
	name := c.Param("name")

	if result := ValidateDictionaryName(name); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var req services.SegmentRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateSegmentRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	accessor, err := api.engine.GetDictionary(name)
	if err != nil {
		SendEngineError(c, name, "get dictionary", err)
		return
	}

	startTime := time.Now()
	result, err := accessor.Segment(c.Request.Context(), req)
	if err != nil {
		SendEngineError(c, name, "segmentation", err)
		return
	}

	// Track analytics event
	api.analytics.TrackSegmentEvent(model.SegmentEvent{
		DictionaryName: name,
		Mode:           string(result.Mode),
		TextLength:     utf8.RuneCountInString(req.Text),
		ResponseTime:   time.Since(startTime),
		ResultCount:    result.Total,
		Truncated:      result.Truncated,
	})

	if result.Truncated {
		log.Printf("Warning: Segmentation on dictionary '%s' stopped at %d results (request %s)", name, result.Total, result.RequestID)
	}

	c.JSON(http.StatusOK, result)
}

// SegmentAsyncHandler starts a background segmentation and returns the job id.
// The result is stored on the job once it completes.
func (api *API) SegmentAsyncHandler(c *gin.Context) {
	name := c.Param("name")

	var req services.SegmentRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateSegmentRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobID, err := api.engine.SegmentAsync(name, req)
	if err != nil {
		SendEngineError(c, name, "segment", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Segmentation started on dictionary '" + name + "'",
		"job_id":  jobID,
	})
}
