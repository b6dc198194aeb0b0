package observability

import (
	"strconv"
	"time"
)

// MetricsRegistry provides an interface for recording application metrics.
// Components receive it by injection instead of touching the Prometheus globals.
type MetricsRegistry interface {
	// HTTP Request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Derived view metrics
	RecordDerive(duration time.Duration, visible, total int)

	// Collection mutation metrics
	IncrementAdsCreated(platform string)
	IncrementBookmarkToggles(bookmarked bool)

	// Image acquisition metrics
	IncrementImageAcquisitions(method, outcome string)

	// Rate limiting metrics
	IncrementRateLimitRequests(client string)
	IncrementRateLimitHits(client string)

	// Notification metrics
	IncrementPublishErrors()
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

// HTTP Request metrics
func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// Derived view metrics
func (r *PrometheusRegistry) RecordDerive(duration time.Duration, visible, total int) {
	DeriveDuration.Observe(duration.Seconds())
	VisibleAds.Set(float64(visible))
	CollectionSize.Set(float64(total))
}

// Collection mutation metrics
func (r *PrometheusRegistry) IncrementAdsCreated(platform string) {
	AdsCreated.WithLabelValues(platform).Inc()
}

func (r *PrometheusRegistry) IncrementBookmarkToggles(bookmarked bool) {
	BookmarkToggles.WithLabelValues(strconv.FormatBool(bookmarked)).Inc()
}

// Image acquisition metrics
func (r *PrometheusRegistry) IncrementImageAcquisitions(method, outcome string) {
	ImageAcquisitions.WithLabelValues(method, outcome).Inc()
}

// Rate limiting metrics
func (r *PrometheusRegistry) IncrementRateLimitRequests(client string) {
	RateLimitRequests.WithLabelValues(client).Inc()
}

func (r *PrometheusRegistry) IncrementRateLimitHits(client string) {
	RateLimitHits.WithLabelValues(client).Inc()
}

// Notification metrics
func (r *PrometheusRegistry) IncrementPublishErrors() {
	PublishErrors.Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) RecordDerive(duration time.Duration, visible, total int)              {}
func (r *NoOpRegistry) IncrementAdsCreated(platform string)                                  {}
func (r *NoOpRegistry) IncrementBookmarkToggles(bookmarked bool)                             {}
func (r *NoOpRegistry) IncrementImageAcquisitions(method, outcome string)                    {}
func (r *NoOpRegistry) IncrementRateLimitRequests(client string)                             {}
func (r *NoOpRegistry) IncrementRateLimitHits(client string)                                 {}
func (r *NoOpRegistry) IncrementPublishErrors()                                              {}
