package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/engine"
	testutil "github.com/gcbaptista/go-word-segmenter/internal/testing"
	"github.com/gcbaptista/go-word-segmenter/model"
	"github.com/gcbaptista/go-word-segmenter/services"
)

var exampleEntries = testutil.ExampleEntries()

func setupTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return testutil.CreateTestEngine(t)
}

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	SetupRoutes(router, eng)
	return router
}

func createExampleDictionary(t *testing.T, eng *engine.Engine, name string) {
	t.Helper()
	testutil.CreateTestDictionary(t, eng, name)
}

func performRequest(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr), w.Body.String())
	return apiErr
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := performRequest(router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "go-word-segmenter", body["service"])
}

func TestCreateDictionaryHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	createExampleDictionary(t, eng, "existing")

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{
			name:           "valid dictionary creation",
			requestBody:    map[string]interface{}{"name": "zh-basic", "max_results": 100, "entries": exampleEntries},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "valid empty dictionary",
			requestBody:    map[string]interface{}{"name": "empty"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
		{
			name:           "missing dictionary name",
			requestBody:    map[string]interface{}{"max_results": 10},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
		{
			name:           "invalid directory name",
			requestBody:    map[string]interface{}{"name": "../etc"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
		{
			name:           "negative score",
			requestBody:    map[string]interface{}{"name": "bad", "entries": map[string]float64{"有": -1}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
		{
			name:           "already exists",
			requestBody:    map[string]interface{}{"name": "existing"},
			expectedStatus: http.StatusConflict,
			expectedCode:   ErrorCodeDictionaryExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "POST", "/dictionaries", tt.requestBody)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedCode != "" {
				apiErr := decodeAPIError(t, w)
				assert.Equal(t, tt.expectedCode, apiErr.Code)
				assert.NotEmpty(t, apiErr.RequestID)
			}
		})
	}

	settings, err := eng.GetDictionarySettings("zh-basic")
	require.NoError(t, err)
	assert.Equal(t, 100, settings.MaxResults)
}

func TestListAndGetDictionaryHandlers(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	createExampleDictionary(t, eng, "b-dict")
	createExampleDictionary(t, eng, "a-dict")

	w := performRequest(router, "GET", "/dictionaries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Dictionaries []string `json:"dictionaries"`
		Count        int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, []string{"a-dict", "b-dict"}, list.Dictionaries)
	assert.Equal(t, 2, list.Count)

	w = performRequest(router, "GET", "/dictionaries/a-dict", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var settings config.DictionarySettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "a-dict", settings.Name)
	assert.Equal(t, config.DefaultMaxResults, settings.MaxResults)

	w = performRequest(router, "GET", "/dictionaries/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorCodeDictionaryNotFound, decodeAPIError(t, w).Code)

	w = performRequest(router, "GET", "/dictionaries/a-dict/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, float64(len(exampleEntries)), stats["token_count"])
	assert.Equal(t, float64(3), stats["max_token_length"])
}

func TestSegmentHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	createExampleDictionary(t, eng, "zh-basic")
	require.NoError(t, eng.CreateDictionary(config.DictionarySettings{Name: "empty"}, nil))

	t.Run("all segmentations", func(t *testing.T) {
		w := performRequest(router, "POST", "/dictionaries/zh-basic/_segment", services.SegmentRequest{Text: "常经有意见分歧"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result services.SegmentResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, services.ModeAll, result.Mode)
		assert.Equal(t, 7, result.Total)
		assert.False(t, result.Truncated)
		assert.Equal(t, []string{"常", "经", "有", "意", "见", "分", "歧"}, result.Segmentations[0].Tokens)
		assert.Equal(t, []string{"常", "经", "有意见", "分歧"}, result.Segmentations[6].Tokens)
	})

	t.Run("ranked with budget", func(t *testing.T) {
		w := performRequest(router, "POST", "/dictionaries/zh-basic/_segment", services.SegmentRequest{Text: "常经有意见分歧", Rank: true, MaxResults: 7})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result services.SegmentResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.Len(t, result.Segmentations, 7)
		assert.Equal(t, []string{"常", "经", "有意见", "分歧"}, result.Segmentations[0].Tokens)
		require.NotNil(t, result.Segmentations[0].Score)
	})

	t.Run("truncated", func(t *testing.T) {
		w := performRequest(router, "POST", "/dictionaries/zh-basic/_segment", services.SegmentRequest{Text: "常经有意见分歧", MaxResults: 2})
		require.Equal(t, http.StatusOK, w.Code)

		var result services.SegmentResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.Truncated)
		assert.Equal(t, 2, result.Total)
	})

	t.Run("full mode", func(t *testing.T) {
		w := performRequest(router, "POST", "/dictionaries/zh-basic/_segment", services.SegmentRequest{Text: "常经有意见分歧", Mode: services.ModeFull})
		require.Equal(t, http.StatusOK, w.Code)

		var result services.SegmentResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, []string{"常", "经", "有意见", "意见", "见分歧", "分歧"}, result.Words)
	})

	t.Run("unsegmentable text lists no segmentations", func(t *testing.T) {
		w := performRequest(router, "POST", "/dictionaries/zh-basic/_segment", services.SegmentRequest{Text: "常经X"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		require.Contains(t, raw, "segmentations")
		assert.JSONEq(t, "[]", string(raw["segmentations"]))
		assert.JSONEq(t, "0", string(raw["total"]))
	})

	errorCases := []struct {
		name           string
		path           string
		body           interface{}
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{"unknown dictionary", "/dictionaries/missing/_segment", services.SegmentRequest{Text: "有"}, http.StatusNotFound, ErrorCodeDictionaryNotFound},
		{"empty dictionary", "/dictionaries/empty/_segment", services.SegmentRequest{Text: "有"}, http.StatusUnprocessableEntity, ErrorCodeEmptyDictionary},
		{"missing text", "/dictionaries/zh-basic/_segment", map[string]string{"mode": "all"}, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"unknown mode", "/dictionaries/zh-basic/_segment", services.SegmentRequest{Text: "有", Mode: "quick"}, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"text too long", "/dictionaries/zh-basic/_segment", services.SegmentRequest{Text: strings.Repeat("有", config.DefaultMaxTextLength+1)}, http.StatusBadRequest, ErrorCodeValidationFailed},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "POST", tt.path, tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.expectedCode, decodeAPIError(t, w).Code)
		})
	}
}

func TestEntryHandlers(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	require.NoError(t, eng.CreateDictionary(config.DictionarySettings{Name: "zh"}, map[string]float64{"经": 1}))

	w := performRequest(router, "PUT", "/dictionaries/zh/entries", map[string]interface{}{
		"entries": map[string]float64{"经常": 2, "有": 3},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(router, "PUT", "/dictionaries/zh/entries", map[string]interface{}{"entries": map[string]float64{}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, "PUT", "/dictionaries/missing/entries", map[string]interface{}{"entries": map[string]float64{"有": 1}})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, "GET", "/dictionaries/zh/entries?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Entries []EntryResponse `json:"entries"`
		Total   int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, []EntryResponse{{Token: "有", Score: 3}, {Token: "经", Score: 1}}, page.Entries)

	w = performRequest(router, "GET", "/dictionaries/zh/entries?page=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, "DELETE", "/dictionaries/zh/entries", map[string]interface{}{"tokens": []string{"有", "不存在"}})
	require.Equal(t, http.StatusOK, w.Code)
	var removed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &removed))
	assert.Equal(t, float64(1), removed["removed"])
	assert.Equal(t, float64(2), removed["token_count"])
}

func TestUpdateDictionarySettingsHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	createExampleDictionary(t, eng, "zh")

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{"update budget and memoize", map[string]interface{}{"max_results": 5, "memoize": true}, http.StatusOK},
		{"no fields", map[string]interface{}{}, http.StatusBadRequest},
		{"wrong type", map[string]interface{}{"memoize": "yes"}, http.StatusBadRequest},
		{"fractional budget", map[string]interface{}{"max_results": 2.5}, http.StatusBadRequest},
		{"negative budget", map[string]interface{}{"max_results": -5}, http.StatusBadRequest},
		{"name change", map[string]interface{}{"name": "other"}, http.StatusBadRequest},
		{"invalid JSON", "{", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "PATCH", "/dictionaries/zh/settings", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}

	settings, err := eng.GetDictionarySettings("zh")
	require.NoError(t, err)
	assert.Equal(t, 5, settings.MaxResults)
	assert.True(t, settings.Memoize)

	w := performRequest(router, "PATCH", "/dictionaries/missing/settings", map[string]interface{}{"memoize": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenameDictionaryHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	createExampleDictionary(t, eng, "zh")
	createExampleDictionary(t, eng, "taken")

	tests := []struct {
		name           string
		path           string
		requestBody    interface{}
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{"missing new name", "/dictionaries/zh/rename", map[string]string{}, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"same name", "/dictionaries/zh/rename", RenameDictionaryRequest{NewName: "zh"}, http.StatusBadRequest, ErrorCodeSameName},
		{"target exists", "/dictionaries/zh/rename", RenameDictionaryRequest{NewName: "taken"}, http.StatusConflict, ErrorCodeDictionaryExists},
		{"source missing", "/dictionaries/nope/rename", RenameDictionaryRequest{NewName: "x"}, http.StatusNotFound, ErrorCodeDictionaryNotFound},
		{"valid rename", "/dictionaries/zh/rename", RenameDictionaryRequest{NewName: "zh-renamed"}, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "POST", tt.path, tt.requestBody)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeAPIError(t, w).Code)
			}
		})
	}

	assert.Equal(t, []string{"taken", "zh-renamed"}, eng.ListDictionaries())

	accessor, err := eng.GetDictionary("zh-renamed")
	require.NoError(t, err)
	testutil.RunSegmentTests(t, accessor, []testutil.SegmentTestCase{
		{
			Name:     "renamed dictionary still segments",
			Request:  services.SegmentRequest{Text: "经常有"},
			Expected: []string{"经/常/有", "经常/有"},
		},
		{
			Name:    "renamed dictionary reports its new name",
			Request: services.SegmentRequest{Text: "有", Mode: services.ModeBest},
			Validate: func(t *testing.T, result services.SegmentResult) {
				assert.Equal(t, "zh-renamed", result.Dictionary)
			},
		},
	})
}

func TestDeleteDictionaryHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	createExampleDictionary(t, eng, "zh")

	w := performRequest(router, "DELETE", "/dictionaries/zh", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "DELETE", "/dictionaries/zh", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func waitForJobStatus(t *testing.T, router http.Handler, jobID, status string) map[string]interface{} {
	t.Helper()
	var job map[string]interface{}
	require.Eventually(t, func() bool {
		w := performRequest(router, "GET", "/jobs/"+jobID, nil)
		if w.Code != http.StatusOK {
			return false
		}
		job = nil
		if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
			return false
		}
		return job["status"] == status
	}, 2*time.Second, 10*time.Millisecond, "job %s never reached status %s", jobID, status)
	return job
}

func jobIDFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var accepted map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	jobID, ok := accepted["job_id"].(string)
	require.True(t, ok, w.Body.String())
	return jobID
}

func TestImportEntriesHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	require.NoError(t, eng.CreateDictionary(config.DictionarySettings{Name: "zh"}, nil))

	w := performRequest(router, "POST", "/dictionaries/zh/import", ImportEntriesRequest{Format: "text", Content: "经常 3 d\n有 2\n"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	job := waitForJobStatus(t, router, jobIDFrom(t, w), "completed")
	assert.Equal(t, "import_entries", job["type"])

	accessor, err := eng.GetDictionary("zh")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"经常": 3, "有": 2}, accessor.Entries())

	w = performRequest(router, "POST", "/dictionaries/zh/import", ImportEntriesRequest{Format: "csv", Content: "a,1"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, "POST", "/dictionaries/missing/import", ImportEntriesRequest{Content: "a 1"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, "GET", "/dictionaries/zh/jobs?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var jobs map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	assert.Equal(t, float64(1), jobs["total"])
}

func TestSegmentAsyncHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	createExampleDictionary(t, eng, "zh")

	w := performRequest(router, "POST", "/dictionaries/zh/_segment/async", services.SegmentRequest{Text: "常经有意见分歧"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	jobID := jobIDFrom(t, w)
	completed := testutil.WaitForJobCompletion(t, eng, jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, completed, "segment", "zh")

	job := waitForJobStatus(t, router, jobID, "completed")
	result, ok := job["result"].(map[string]interface{})
	require.True(t, ok, "job result should be a segment result")
	assert.Equal(t, float64(7), result["total"])

	w = performRequest(router, "POST", "/dictionaries/zh/_segment/async", services.SegmentRequest{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	createExampleDictionary(t, eng, "zh")
	createExampleDictionary(t, eng, "idle")

	w := performRequest(router, "POST", "/dictionaries/zh/_segment", services.SegmentRequest{Text: testutil.ExampleText, MaxResults: 2})
	require.Equal(t, http.StatusOK, w.Code)
	w = performRequest(router, "POST", "/dictionaries/zh/_segment", services.SegmentRequest{Text: testutil.ExampleText, Mode: services.ModeBest})
	require.Equal(t, http.StatusOK, w.Code)
	// Failed requests are not tracked.
	w = performRequest(router, "POST", "/dictionaries/missing/_segment", services.SegmentRequest{Text: "有"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, "GET", "/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dashboard model.AnalyticsDashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, 2, dashboard.TotalSegmentations)
	assert.Equal(t, 1, dashboard.TruncatedCount)
	assert.Equal(t, 2, dashboard.ActiveDictionaries)
	assert.Equal(t, 2*len(exampleEntries), dashboard.TotalTokens)
	assert.Equal(t, model.SegmentModeStats{All: 1, Best: 1}, dashboard.Modes)

	require.Len(t, dashboard.DictionaryUsage, 2)
	assert.Equal(t, "zh", dashboard.DictionaryUsage[0].DictionaryName)
	assert.Equal(t, 2, dashboard.DictionaryUsage[0].SegmentCount)
	assert.Equal(t, 0, dashboard.DictionaryUsage[1].SegmentCount)
}

func TestJobHandlers(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	w := performRequest(router, "GET", "/jobs/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorCodeJobNotFound, decodeAPIError(t, w).Code)

	w = performRequest(router, "POST", "/jobs/does-not-exist/cancel", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, "GET", "/jobs/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var metrics map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metrics))
	assert.Contains(t, metrics, "success_rate")
	assert.Contains(t, metrics, "current_workload")
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("request id", func(t *testing.T) {
		router := setupTestRouter(setupTestEngine(t))
		w := performRequest(router, "GET", "/health", nil)
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))

		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set(requestIDHeader, "client-id")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "client-id", w.Header().Get(requestIDHeader))
	})

	t.Run("cors preflight", func(t *testing.T) {
		router := gin.New()
		router.Use(CORSMiddleware())
		router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		w := performRequest(router, "OPTIONS", "/ping", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("rate limit", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(0.001, 1))
		router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		assert.Equal(t, http.StatusOK, performRequest(router, "GET", "/ping", nil).Code)
		w := performRequest(router, "GET", "/ping", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("rate limit disabled", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(0, 0))
		router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, performRequest(router, "GET", "/ping", nil).Code)
		}
	})

	t.Run("request size limit", func(t *testing.T) {
		eng := setupTestEngine(t)
		router := gin.New()
		router.Use(RequestSizeLimitMiddleware(64))
		SetupRoutes(router, eng)

		w := performRequest(router, "POST", "/dictionaries", map[string]interface{}{
			"name":    "big",
			"entries": map[string]float64{strings.Repeat("有", 100): 1},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
