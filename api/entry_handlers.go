package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
)

// EntryResponse is one token of a dictionary listing
type EntryResponse struct {
	Token string  `json:"token"`
	Score float64 `json:"score"`
}

// AddEntriesHandler adds or replaces tokens of a dictionary.
// Request Body: {"entries": {"token": score, ...}}
func (api *API) AddEntriesHandler(c *gin.Context) {
	name := c.Param("name")

	var req struct {
		Entries map[string]float64 `json:"entries"`
	}
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateEntries(req.Entries); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	accessor, err := api.engine.GetDictionary(name)
	if err != nil {
		SendEngineError(c, name, "get dictionary", err)
		return
	}
	if err := accessor.AddEntries(req.Entries); err != nil {
		SendEngineError(c, name, "add entries", err)
		return
	}
	if err := api.engine.PersistDictionary(name); err != nil {
		SendEngineError(c, name, "persist dictionary", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Entries added to dictionary '" + name + "'",
		"added":       len(req.Entries),
		"token_count": accessor.Stats().TokenCount,
	})
}

// GetEntriesHandler lists the tokens of a dictionary in lexical order with pagination.
// Query: page, page_size
func (api *API) GetEntriesHandler(c *gin.Context) {
	name := c.Param("name")

	page, pageErr := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, sizeErr := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageErr != nil || sizeErr != nil {
		result := &ValidationResult{Valid: true}
		if pageErr != nil {
			result.AddError("page", "Page must be an integer")
		}
		if sizeErr != nil {
			result.AddError("page_size", "Page size must be an integer")
		}
		SendValidationError(c, result)
		return
	}
	page, pageSize, result := ValidatePagination(page, pageSize)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	accessor, err := api.engine.GetDictionary(name)
	if err != nil {
		SendEngineError(c, name, "get dictionary", err)
		return
	}

	entries := accessor.Entries()
	tokens := make([]string, 0, len(entries))
	for token := range entries {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	start := min((page-1)*pageSize, len(tokens))
	end := min(start+pageSize, len(tokens))

	items := make([]EntryResponse, 0, end-start)
	for _, token := range tokens[start:end] {
		items = append(items, EntryResponse{Token: token, Score: entries[token]})
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":   items,
		"total":     len(tokens),
		"page":      page,
		"page_size": pageSize,
	})
}

// RemoveEntriesHandler removes tokens from a dictionary.
// Request Body: {"tokens": ["token", ...]}
func (api *API) RemoveEntriesHandler(c *gin.Context) {
	name := c.Param("name")

	var req struct {
		Tokens []string `json:"tokens"`
	}
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateTokens(req.Tokens); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	accessor, err := api.engine.GetDictionary(name)
	if err != nil {
		SendEngineError(c, name, "get dictionary", err)
		return
	}

	removed := accessor.RemoveEntries(req.Tokens)
	if removed > 0 {
		if err := api.engine.PersistDictionary(name); err != nil {
			SendEngineError(c, name, "persist dictionary", err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Entries removed from dictionary '" + name + "'",
		"removed":     removed,
		"token_count": accessor.Stats().TokenCount,
	})
}

// ImportEntriesRequest carries a dictionary file to merge into a dictionary
type ImportEntriesRequest struct {
	Format  string `json:"format"` // "text" (jieba dict.txt lines, the default) or "yaml"
	Content string `json:"content"`
}

// ImportEntriesHandler starts a background import of a dictionary file.
func (api *API) ImportEntriesHandler(c *gin.Context) {
	name := c.Param("name")

	var req ImportEntriesRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateImportRequest(req.Format, req.Content); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobID, err := api.engine.ImportEntriesAsync(name, req.Format, req.Content)
	if err != nil {
		SendEngineError(c, name, "import entries", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Entry import started for dictionary '" + name + "'",
		"job_id":  jobID,
	})
}
