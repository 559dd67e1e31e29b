package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-word-segmenter/config"
)

// CreateDictionaryRequest is the body of a create call: settings plus optional initial entries.
type CreateDictionaryRequest struct {
	config.DictionarySettings
	Entries map[string]float64 `json:"entries,omitempty"`
}

// CreateDictionaryHandler handles the request to create a new dictionary.
// Request Body: CreateDictionaryRequest
func (api *API) CreateDictionaryHandler(c *gin.Context) {
	var req CreateDictionaryRequest

	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if result := ValidateDictionarySettings(&req.DictionarySettings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if len(req.Entries) > 0 {
		if result := ValidateEntries(req.Entries); result.HasErrors() {
			SendValidationError(c, result)
			return
		}
	}

	if err := api.engine.CreateDictionary(req.DictionarySettings, req.Entries); err != nil {
		SendEngineError(c, req.Name, "create dictionary", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Dictionary '" + req.Name + "' created successfully",
		"name":        req.Name,
		"token_count": len(req.Entries),
	})
}

// ListDictionariesHandler lists all available dictionaries.
func (api *API) ListDictionariesHandler(c *gin.Context) {
	names := api.engine.ListDictionaries()
	c.JSON(http.StatusOK, gin.H{"dictionaries": names, "count": len(names)})
}

// GetDictionaryHandler retrieves the settings of a specific dictionary.
func (api *API) GetDictionaryHandler(c *gin.Context) {
	name := c.Param("name")
	settings, err := api.engine.GetDictionarySettings(name)
	if err != nil {
		SendEngineError(c, name, "get dictionary", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// DeleteDictionaryHandler handles deleting a dictionary.
func (api *API) DeleteDictionaryHandler(c *gin.Context) {
	name := c.Param("name")

	if err := api.engine.DeleteDictionary(name); err != nil {
		SendEngineError(c, name, "delete dictionary", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dictionary '" + name + "' deleted successfully"})
}

// RenameDictionaryRequest defines the structure for renaming a dictionary
type RenameDictionaryRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

// RenameDictionaryHandler handles requests to rename a dictionary
func (api *API) RenameDictionaryHandler(c *gin.Context) {
	oldName := c.Param("name")

	var req RenameDictionaryRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if result := ValidateRenameRequest(oldName, req.NewName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.RenameDictionary(oldName, req.NewName); err != nil {
		SendEngineError(c, oldName, "rename dictionary", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Dictionary renamed: '%s' -> '%s'", oldName, req.NewName),
		"old_name": oldName,
		"new_name": req.NewName,
	})
}

// UpdateDictionarySettingsHandler handles partial updates of dictionary settings.
// Only the keys present in the body change.
func (api *API) UpdateDictionarySettingsHandler(c *gin.Context) {
	name := c.Param("name")

	settings, err := api.engine.GetDictionarySettings(name)
	if err != nil {
		SendEngineError(c, name, "get dictionary settings", err)
		return
	}

	// Read raw request first to check for key presence
	rawRequest := make(map[string]interface{})
	if err := c.ShouldBindJSON(&rawRequest); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	result := &ValidationResult{Valid: true}
	updated := false

	if fieldValue, keyExists := rawRequest["normalize"]; keyExists {
		if b, isBool := fieldValue.(bool); isBool {
			settings.Normalize = b
			updated = true
		} else {
			result.AddError("normalize", "normalize must be a boolean")
		}
	}

	if fieldValue, keyExists := rawRequest["memoize"]; keyExists {
		if b, isBool := fieldValue.(bool); isBool {
			settings.Memoize = b
			updated = true
		} else {
			result.AddError("memoize", "memoize must be a boolean")
		}
	}

	if fieldValue, keyExists := rawRequest["max_results"]; keyExists {
		if num, isNum := fieldValue.(float64); isNum && num == float64(int(num)) {
			settings.MaxResults = int(num)
			updated = true
		} else {
			result.AddError("max_results", "max_results must be an integer")
		}
	}

	if fieldValue, keyExists := rawRequest["max_text_length"]; keyExists {
		if num, isNum := fieldValue.(float64); isNum && num == float64(int(num)) {
			settings.MaxTextLength = int(num)
			updated = true
		} else {
			result.AddError("max_text_length", "max_text_length must be an integer")
		}
	}

	if _, keyExists := rawRequest["name"]; keyExists {
		result.AddError("name", "Use the rename endpoint to change a dictionary name")
	}

	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if !updated {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "No valid updatable fields provided")
		return
	}

	if err := api.engine.UpdateDictionarySettings(name, settings); err != nil {
		SendEngineError(c, name, "update dictionary settings", err)
		return
	}

	updatedSettings, err := api.engine.GetDictionarySettings(name)
	if err != nil {
		SendEngineError(c, name, "get dictionary settings", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings updated successfully for dictionary '" + name + "'",
		"settings": updatedSettings,
	})
}

// GetDictionaryStatsHandler returns statistics for a specific dictionary
func (api *API) GetDictionaryStatsHandler(c *gin.Context) {
	name := c.Param("name")
	accessor, err := api.engine.GetDictionary(name)
	if err != nil {
		SendEngineError(c, name, "get dictionary", err)
		return
	}

	stats := accessor.Stats()
	settings := accessor.Settings()

	c.JSON(http.StatusOK, gin.H{
		"name":             stats.Name,
		"token_count":      stats.TokenCount,
		"total_score":      stats.TotalScore,
		"max_token_length": stats.MaxTokenLength,
		"settings": gin.H{
			"normalize":       settings.Normalize,
			"max_results":     settings.MaxResults,
			"memoize":         settings.Memoize,
			"max_text_length": settings.MaxTextLength,
		},
	})
}
