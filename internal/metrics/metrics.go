package metrics

import (
	"sync"
	"time"
)

// Metrics counts dashboard activity for the /metrics endpoint.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesFetched    int64
	FetchFailures      int64
	SessionCacheHits   int64
	SentimentCacheHits int64
	SentimentCacheMiss int64
	SummariesSucceeded int64
	SummariesFailed    int64
	ClusteringRuns     int64
	ClusteringSkipped  int64

	// Timings
	LastViewTime  time.Duration
	TotalViewTime time.Duration
	ViewCount     int64

	// Status
	LastErrorTime time.Time
	LastError     string
}

// New returns zeroed metrics.
func New() *Metrics {
	return &Metrics{}
}

func (m *Metrics) add(counter *int64, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*counter += n
}

func (m *Metrics) AddArticlesFetched(n int) {
	if m != nil {
		m.add(&m.ArticlesFetched, int64(n))
	}
}

func (m *Metrics) IncrementFetchFailures() {
	if m != nil {
		m.add(&m.FetchFailures, 1)
	}
}

func (m *Metrics) IncrementSessionCacheHits() {
	if m != nil {
		m.add(&m.SessionCacheHits, 1)
	}
}

func (m *Metrics) IncrementSentimentCacheHits() {
	if m != nil {
		m.add(&m.SentimentCacheHits, 1)
	}
}

func (m *Metrics) IncrementSentimentCacheMisses() {
	if m != nil {
		m.add(&m.SentimentCacheMiss, 1)
	}
}

func (m *Metrics) IncrementSummaries(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.add(&m.SummariesSucceeded, 1)
		return
	}
	m.add(&m.SummariesFailed, 1)
}

func (m *Metrics) IncrementClustering(skipped bool) {
	if m == nil {
		return
	}
	if skipped {
		m.add(&m.ClusteringSkipped, 1)
		return
	}
	m.add(&m.ClusteringRuns, 1)
}

// RecordViewTime tracks how long one dashboard view took to build.
func (m *Metrics) RecordViewTime(duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastViewTime = duration
	m.TotalViewTime += duration
	m.ViewCount++
}

func (m *Metrics) SetError(err string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var average time.Duration
	if m.ViewCount > 0 {
		average = m.TotalViewTime / time.Duration(m.ViewCount)
	}

	lastErrorTime := ""
	if !m.LastErrorTime.IsZero() {
		lastErrorTime = m.LastErrorTime.Format(time.RFC3339)
	}

	return map[string]interface{}{
		"articles_fetched":     m.ArticlesFetched,
		"fetch_failures":       m.FetchFailures,
		"session_cache_hits":   m.SessionCacheHits,
		"sentiment_cache_hits": m.SentimentCacheHits,
		"sentiment_cache_miss": m.SentimentCacheMiss,
		"summaries_succeeded":  m.SummariesSucceeded,
		"summaries_failed":     m.SummariesFailed,
		"clustering_runs":      m.ClusteringRuns,
		"clustering_skipped":   m.ClusteringSkipped,
		"views_served":         m.ViewCount,
		"last_view_time_ms":    m.LastViewTime.Milliseconds(),
		"average_view_time_ms": average.Milliseconds(),
		"last_error_time":      lastErrorTime,
		"last_error":           m.LastError,
	}
}
