package model

import "time"

// SegmentEvent represents a single segmentation request for analytics tracking
type SegmentEvent struct {
	DictionaryName string        `json:"dictionary_name"`
	Mode           string        `json:"mode"` // "all", "full", "best"
	TextLength     int           `json:"text_length"`
	ResponseTime   time.Duration `json:"response_time"`
	ResultCount    int           `json:"result_count"`
	Truncated      bool          `json:"truncated"`
	Timestamp      time.Time     `json:"timestamp"`
}

// DictionaryUsage represents usage statistics for a specific dictionary
type DictionaryUsage struct {
	DictionaryName string `json:"dictionary_name"`
	TokenCount     int    `json:"token_count"`
	SegmentCount   int    `json:"segment_count"`
	TruncatedCount int    `json:"truncated_count"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To25ms     int     `json:"bucket_0_25ms"`
	Bucket25To50ms    int     `json:"bucket_25_50ms"`
	Bucket50To100ms   int     `json:"bucket_50_100ms"`
	Bucket100msPlus   int     `json:"bucket_100ms_plus"`
	Percentage0To25   float64 `json:"percentage_0_25"`
	Percentage25To50  float64 `json:"percentage_25_50"`
	Percentage50To100 float64 `json:"percentage_50_100"`
	Percentage100Plus float64 `json:"percentage_100_plus"`
}

// SegmentModeStats counts requests per segmentation mode
type SegmentModeStats struct {
	All  int `json:"all"`
	Full int `json:"full"`
	Best int `json:"best"`
}

// SegmentPerformanceHourly represents hourly segmentation performance data
type SegmentPerformanceHourly struct {
	Hour            int   `json:"hour"`
	SegmentCount    int   `json:"segment_count"`
	AvgResponseTime int64 `json:"avg_response_time"` // in milliseconds
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics, last 24 hours
	TotalSegmentations int     `json:"total_segmentations"`
	ChangePercent      float64 `json:"change_percent"` // against the 24 hours before
	AvgResponseTime    int64   `json:"avg_response_time"`
	AvgResultCount     float64 `json:"avg_result_count"`
	TruncatedCount     int     `json:"truncated_count"`
	ActiveDictionaries int     `json:"active_dictionaries"`
	TotalTokens        int     `json:"total_tokens"`

	// Detailed analytics
	SegmentPerformance24h    []SegmentPerformanceHourly `json:"segment_performance_24h"`
	DictionaryUsage          []DictionaryUsage          `json:"dictionary_usage"`
	ResponseTimeDistribution ResponseTimeDistribution   `json:"response_time_distribution"`
	Modes                    SegmentModeStats           `json:"modes"`
}
