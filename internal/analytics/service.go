// Package analytics records segmentation requests and summarises them for the dashboard endpoint.
package analytics

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-word-segmenter/model"
	"github.com/gcbaptista/go-word-segmenter/services"
)

const (
	// AnalyticsFileName is the file the service keeps its events in, inside the data directory.
	AnalyticsFileName = "analytics.json"
	maxEventsToKeep   = 10000 // Keep last 10k events for performance
)

// Service implements analytics tracking and reporting
type Service struct {
	mutex             sync.RWMutex
	events            []model.SegmentEvent
	dictionaryManager services.DictionaryManager
	dataFilePath      string

	saveMutex sync.Mutex
	saves     sync.WaitGroup
}

// NewService creates a new analytics service. Events are kept in dataFilePath;
// an empty path keeps them in memory only.
func NewService(dictionaryManager services.DictionaryManager, dataFilePath string) *Service {
	service := &Service{
		events:            make([]model.SegmentEvent, 0),
		dictionaryManager: dictionaryManager,
		dataFilePath:      dataFilePath,
	}

	if err := service.loadData(); err != nil {
		log.Printf("Warning: Failed to load analytics data: %v", err)
	}

	return service
}

// TrackSegmentEvent records a new segmentation event. A zero timestamp is set to now.
func (s *Service) TrackSegmentEvent(event model.SegmentEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	s.mutex.Lock()
	s.events = append(s.events, event)
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
	s.mutex.Unlock()

	if s.dataFilePath == "" {
		return
	}

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		if err := s.saveData(); err != nil {
			log.Printf("Warning: Failed to save analytics data: %v", err)
		}
	}()
}

// EventCount returns the number of events currently kept.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// Close waits for pending writes to finish.
func (s *Service) Close() {
	s.saves.Wait()
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	events := make([]model.SegmentEvent, len(s.events))
	copy(events, s.events)
	s.mutex.RUnlock()

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	last24h := filterEventsByTimeRange(events, yesterday, now.Add(time.Second))
	previous24h := filterEventsByTimeRange(events, yesterday.Add(-24*time.Hour), yesterday)

	dictionaries := s.dictionaryManager.ListDictionaries()
	usage := s.getDictionaryUsage(dictionaries, last24h)

	totalTokens := 0
	for _, u := range usage {
		totalTokens += u.TokenCount
	}

	truncated := 0
	results := 0
	for _, event := range last24h {
		results += event.ResultCount
		if event.Truncated {
			truncated++
		}
	}
	avgResults := 0.0
	if len(last24h) > 0 {
		avgResults = float64(results) / float64(len(last24h))
	}

	return model.AnalyticsDashboard{
		TotalSegmentations:       len(last24h),
		ChangePercent:            calculateChangePercent(len(last24h), len(previous24h)),
		AvgResponseTime:          calculateAvgResponseTime(last24h),
		AvgResultCount:           avgResults,
		TruncatedCount:           truncated,
		ActiveDictionaries:       len(dictionaries),
		TotalTokens:              totalTokens,
		SegmentPerformance24h:    getHourlyPerformance(last24h),
		DictionaryUsage:          usage,
		ResponseTimeDistribution: getResponseTimeDistribution(last24h),
		Modes:                    getModeStats(last24h),
	}
}

// filterEventsByTimeRange returns events within [start, end)
func filterEventsByTimeRange(events []model.SegmentEvent, start, end time.Time) []model.SegmentEvent {
	var filtered []model.SegmentEvent
	for _, event := range events {
		if !event.Timestamp.Before(start) && event.Timestamp.Before(end) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateChangePercent calculates percentage change between current and previous values
func calculateChangePercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(current-previous) / float64(previous) * 100.0
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func calculateAvgResponseTime(events []model.SegmentEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Milliseconds()
}

func getHourlyPerformance(events []model.SegmentEvent) []model.SegmentPerformanceHourly {
	hourlyData := make(map[int][]model.SegmentEvent)
	for _, event := range events {
		hour := event.Timestamp.Hour()
		hourlyData[hour] = append(hourlyData[hour], event)
	}

	performance := make([]model.SegmentPerformanceHourly, 0, 24)
	for hour := 0; hour < 24; hour++ {
		performance = append(performance, model.SegmentPerformanceHourly{
			Hour:            hour,
			SegmentCount:    len(hourlyData[hour]),
			AvgResponseTime: calculateAvgResponseTime(hourlyData[hour]),
		})
	}
	return performance
}

// getDictionaryUsage returns usage statistics for each dictionary, busiest first
func (s *Service) getDictionaryUsage(dictionaries []string, events []model.SegmentEvent) []model.DictionaryUsage {
	segmentCounts := make(map[string]int)
	truncatedCounts := make(map[string]int)
	for _, event := range events {
		segmentCounts[event.DictionaryName]++
		if event.Truncated {
			truncatedCounts[event.DictionaryName]++
		}
	}

	usage := make([]model.DictionaryUsage, 0, len(dictionaries))
	for _, name := range dictionaries {
		tokenCount := 0
		if accessor, err := s.dictionaryManager.GetDictionary(name); err == nil {
			tokenCount = accessor.Stats().TokenCount
		}
		usage = append(usage, model.DictionaryUsage{
			DictionaryName: name,
			TokenCount:     tokenCount,
			SegmentCount:   segmentCounts[name],
			TruncatedCount: truncatedCounts[name],
		})
	}

	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].SegmentCount > usage[j].SegmentCount
	})
	return usage
}

func getResponseTimeDistribution(events []model.SegmentEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)
	if total == 0 {
		return dist
	}

	for _, event := range events {
		ms := event.ResponseTime.Milliseconds()
		switch {
		case ms <= 25:
			dist.Bucket0To25ms++
		case ms <= 50:
			dist.Bucket25To50ms++
		case ms <= 100:
			dist.Bucket50To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}

	dist.Percentage0To25 = float64(dist.Bucket0To25ms) / float64(total) * 100
	dist.Percentage25To50 = float64(dist.Bucket25To50ms) / float64(total) * 100
	dist.Percentage50To100 = float64(dist.Bucket50To100ms) / float64(total) * 100
	dist.Percentage100Plus = float64(dist.Bucket100msPlus) / float64(total) * 100
	return dist
}

func getModeStats(events []model.SegmentEvent) model.SegmentModeStats {
	stats := model.SegmentModeStats{}
	for _, event := range events {
		switch services.SegmentMode(event.Mode) {
		case services.ModeAll, "":
			stats.All++
		case services.ModeFull:
			stats.Full++
		case services.ModeBest:
			stats.Best++
		}
	}
	return stats
}

// loadData loads analytics data from file
func (s *Service) loadData() error {
	if s.dataFilePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.dataFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read analytics file: %w", err)
	}

	if err := json.Unmarshal(data, &s.events); err != nil {
		return fmt.Errorf("failed to unmarshal analytics data: %w", err)
	}
	return nil
}

// saveData saves analytics data to file
func (s *Service) saveData() error {
	s.saveMutex.Lock()
	defer s.saveMutex.Unlock()

	s.mutex.RLock()
	data, err := json.MarshalIndent(s.events, "", "  ")
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal analytics data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.dataFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create analytics directory: %w", err)
	}
	if err := os.WriteFile(s.dataFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write analytics file: %w", err)
	}
	return nil
}
