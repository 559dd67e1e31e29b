// Package api provides the HTTP interface of the segmentation service.
package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/dictionary"
	"github.com/gcbaptista/go-word-segmenter/services"
)

const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateDictionaryName validates a dictionary name parameter
func ValidateDictionaryName(name string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if name == "" {
		result.AddError("name", "Dictionary name is required")
		return result
	}

	if strings.TrimSpace(name) != name {
		result.AddError("name", "Dictionary name cannot have leading or trailing whitespace")
	}

	return result
}

// ValidateDictionarySettings validates dictionary settings for creation and applies defaults
func ValidateDictionarySettings(settings *config.DictionarySettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Dictionary settings are required")
		return result
	}

	if settings.Name == "" {
		result.AddError("name", "Dictionary name is required")
		return result
	}

	settings.ApplyDefaults()
	for _, conflict := range settings.Validate() {
		result.AddError("settings", conflict)
	}

	return result
}

// ValidateEntries validates token/score pairs before they reach a dictionary
func ValidateEntries(entries map[string]float64) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(entries) == 0 {
		result.AddError("entries", "No entries provided")
		return result
	}

	for token, score := range entries {
		if err := dictionary.ValidateEntry(token, score); err != nil {
			result.AddError(fmt.Sprintf("entries[%q]", token), err.Error())
		}
	}

	return result
}

// ValidateTokens validates a list of tokens to remove
func ValidateTokens(tokens []string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(tokens) == 0 {
		result.AddError("tokens", "No tokens provided")
		return result
	}

	for i, token := range tokens {
		if token == "" {
			result.AddError(fmt.Sprintf("tokens[%d]", i), "Token cannot be empty")
		}
	}

	return result
}

// ValidateSegmentRequest validates a segmentation request body
func ValidateSegmentRequest(req *services.SegmentRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.Text == "" {
		result.AddError("text", "Text is required")
	} else if !utf8.ValidString(req.Text) {
		result.AddError("text", "Text must be valid UTF-8")
	}

	if !req.Mode.Valid() {
		result.AddError("mode", fmt.Sprintf("Unknown mode '%s', expected one of all, full, best", req.Mode))
	}

	if req.MaxResults < 0 {
		result.AddError("max_results", "max_results cannot be negative")
	} else if req.MaxResults > config.HardMaxResults {
		result.AddError("max_results", fmt.Sprintf("max_results cannot exceed %d", config.HardMaxResults))
	}

	if req.Rank && req.Mode != "" && req.Mode != services.ModeAll {
		result.AddError("rank", "rank only applies to mode 'all'")
	}

	return result
}

// ValidateImportRequest validates an asynchronous import request
func ValidateImportRequest(format, content string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	switch dictionary.Format(format) {
	case "", dictionary.FormatText, dictionary.FormatYAML:
	default:
		result.AddError("format", fmt.Sprintf("Unsupported format '%s', expected 'text' or 'yaml'", format))
	}

	if strings.TrimSpace(content) == "" {
		result.AddError("content", "Content is required")
	}

	return result
}

// ValidatePagination validates pagination parameters
func ValidatePagination(page, pageSize int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if page < 0 {
		result.AddError("page", "Page number cannot be negative")
	}
	if pageSize < 0 {
		result.AddError("page_size", "Page size cannot be negative")
	}

	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	return page, pageSize, result
}

// ValidateRenameRequest validates a rename dictionary request
func ValidateRenameRequest(oldName, newName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if oldName == "" {
		result.AddError("oldName", "Current dictionary name is required")
	}

	if newName == "" {
		result.AddError("new_name", "New name is required and cannot be empty")
	}

	if strings.TrimSpace(newName) != newName {
		result.AddError("new_name", "New name cannot have leading or trailing whitespace")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}
