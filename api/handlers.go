package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-word-segmenter/internal/analytics"
	"github.com/gcbaptista/go-word-segmenter/services"
)

// Version is reported by the health check and the command line.
const Version = "1.0.0"

// API holds dependencies for API handlers, primarily the dictionary manager.
type API struct {
	engine    services.AsyncDictionaryManager
	analytics *analytics.Service
}

// NewAPI creates a new API handler structure with in-memory analytics.
func NewAPI(engine services.AsyncDictionaryManager) *API {
	return NewAPIWithAnalytics(engine, analytics.NewService(engine, ""))
}

// NewAPIWithAnalytics creates a new API handler structure that records into analyticsService.
func NewAPIWithAnalytics(engine services.AsyncDictionaryManager, analyticsService *analytics.Service) *API {
	return &API{
		engine:    engine,
		analytics: analyticsService,
	}
}

// SetupRoutes defines all the API routes for the segmentation service.
func SetupRoutes(router *gin.Engine, engine services.AsyncDictionaryManager) {
	registerRoutes(router, NewAPI(engine))
}

// SetupRoutesWithAnalytics is SetupRoutes with a caller-owned analytics service.
func SetupRoutesWithAnalytics(router *gin.Engine, engine services.AsyncDictionaryManager, analyticsService *analytics.Service) {
	registerRoutes(router, NewAPIWithAnalytics(engine, analyticsService))
}

func registerRoutes(router *gin.Engine, apiHandler *API) {
	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler)    // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)            // Get job status by ID
		jobRoutes.POST("/:jobId/cancel", apiHandler.CancelJobHandler) // Cancel a pending or running job
	}

	// Dictionary management routes
	dictRoutes := router.Group("/dictionaries")
	{
		dictRoutes.POST("", apiHandler.CreateDictionaryHandler)                         // Create a new dictionary
		dictRoutes.GET("", apiHandler.ListDictionariesHandler)                          // List all dictionaries
		dictRoutes.GET("/:name", apiHandler.GetDictionaryHandler)                       // Get dictionary settings
		dictRoutes.DELETE("/:name", apiHandler.DeleteDictionaryHandler)                 // Delete a dictionary
		dictRoutes.PATCH("/:name/settings", apiHandler.UpdateDictionarySettingsHandler) // Update dictionary settings
		dictRoutes.POST("/:name/rename", apiHandler.RenameDictionaryHandler)            // Rename a dictionary
		dictRoutes.GET("/:name/stats", apiHandler.GetDictionaryStatsHandler)            // Get dictionary statistics
		dictRoutes.GET("/:name/jobs", apiHandler.ListJobsHandler)                       // List jobs for a dictionary

		// Entry management routes per dictionary
		entryRoutes := dictRoutes.Group("/:name/entries")
		{
			entryRoutes.PUT("", apiHandler.AddEntriesHandler)       // Add/replace tokens
			entryRoutes.GET("", apiHandler.GetEntriesHandler)       // List tokens with pagination
			entryRoutes.DELETE("", apiHandler.RemoveEntriesHandler) // Remove tokens
		}
		dictRoutes.POST("/:name/import", apiHandler.ImportEntriesHandler) // Import a dictionary file in the background

		// Segmentation routes per dictionary
		dictRoutes.POST("/:name/_segment", apiHandler.SegmentHandler)
		dictRoutes.POST("/:name/_segment/async", apiHandler.SegmentAsyncHandler)
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      "go-word-segmenter",
		"version":      Version,
		"dictionaries": len(api.engine.ListDictionaries()),
		"timestamp":    fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// GetAnalyticsHandler returns the segmentation analytics dashboard
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.GetDashboardData())
}
