package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-word-segmenter/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeDictionaryNotFound ErrorCode = "DICTIONARY_NOT_FOUND"
	ErrorCodeJobNotFound        ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeDictionaryExists   ErrorCode = "DICTIONARY_ALREADY_EXISTS"
	ErrorCodeEmptyDictionary    ErrorCode = "DICTIONARY_EMPTY"
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"
	ErrorCodeSameName           ErrorCode = "SAME_NAME_PROVIDED"
	ErrorCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrorCodeRequestCancelled   ErrorCode = "REQUEST_CANCELLED"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeJobExecutionFailed ErrorCode = "JOB_EXECUTION_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendDictionaryNotFoundError sends a standardized dictionary not found error
func SendDictionaryNotFoundError(c *gin.Context, name string) {
	SendError(c, http.StatusNotFound, ErrorCodeDictionaryNotFound,
		"Dictionary '"+name+"' not found")
}

// SendJobNotFoundError sends a standardized job not found error
func SendJobNotFoundError(c *gin.Context, jobID string) {
	SendError(c, http.StatusNotFound, ErrorCodeJobNotFound,
		"Job '"+jobID+"' not found")
}

// SendDictionaryExistsError sends a standardized dictionary already exists error
func SendDictionaryExistsError(c *gin.Context, name string) {
	SendError(c, http.StatusConflict, ErrorCodeDictionaryExists,
		"Dictionary '"+name+"' already exists")
}

// SendSameNameError sends a standardized same name error
func SendSameNameError(c *gin.Context, name string) {
	SendError(c, http.StatusBadRequest, ErrorCodeSameName,
		"New name '"+name+"' is the same as the current name")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendJobExecutionError sends a standardized job execution error
func SendJobExecutionError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed,
		"Failed to start "+operation+" job: "+err.Error())
}

// SendEngineError maps an engine error onto the matching HTTP status and error code.
// name is the dictionary the request addressed.
func SendEngineError(c *gin.Context, name, operation string, err error) {
	var validationErr *internalErrors.ValidationError
	switch {
	case errors.Is(err, internalErrors.ErrDictionaryNotFound):
		SendDictionaryNotFoundError(c, name)
	case errors.Is(err, internalErrors.ErrDictionaryAlreadyExists):
		var existsErr *internalErrors.DictionaryAlreadyExistsError
		if errors.As(err, &existsErr) {
			name = existsErr.Name
		}
		SendDictionaryExistsError(c, name)
	case errors.Is(err, internalErrors.ErrSameName):
		SendSameNameError(c, name)
	case errors.As(err, &validationErr):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", ErrorDetail{
			Field:   validationErr.Field,
			Message: validationErr.Message,
			Code:    "VALIDATION_ERROR",
		})
	case errors.Is(err, internalErrors.ErrEmptyDictionary):
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeEmptyDictionary,
			"Dictionary '"+name+"' has no tokens")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		SendError(c, http.StatusRequestTimeout, ErrorCodeRequestCancelled,
			"Request was cancelled during "+operation+": "+err.Error())
	default:
		SendInternalError(c, operation, err)
	}
}
