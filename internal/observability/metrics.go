package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adlibrary_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adlibrary_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// time spent recomputing the visible list
	DeriveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adlibrary_derive_duration_seconds",
			Help:    "Duration of filter/sort recomputations",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	// number of ads in the current filtered view
	VisibleAds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "adlibrary_visible_ads",
			Help: "Ads visible under the current filters",
		},
	)

	// number of ads in the collection
	CollectionSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "adlibrary_collection_ads",
			Help: "Ads held in the collection",
		},
	)

	// ads created, labelled by platform
	AdsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adlibrary_ads_created_total",
			Help: "Total ads added to the library",
		},
		[]string{"platform"},
	)

	// bookmark toggles, labelled by resulting state
	BookmarkToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adlibrary_bookmark_toggles_total",
			Help: "Total bookmark toggles",
		},
		[]string{"state"},
	)

	// image uploads and URL previews, labelled by outcome
	ImageAcquisitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adlibrary_image_acquisitions_total",
			Help: "Total image uploads and URL previews",
		},
		[]string{"method", "outcome"},
	)

	// rate limit hits per client
	RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adlibrary_ratelimit_hits_total",
			Help: "Total rate limit hits per client",
		},
		[]string{"client"},
	)

	// rate limit requests per client
	RateLimitRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adlibrary_ratelimit_requests_total",
			Help: "Total rate limit requests per client",
		},
		[]string{"client"},
	)

	// failures publishing update notifications
	PublishErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adlibrary_publish_errors_total",
			Help: "Total update notification publish errors",
		},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		DeriveDuration,
		VisibleAds,
		CollectionSize,
		AdsCreated,
		BookmarkToggles,
		ImageAcquisitions,
		RateLimitHits,
		RateLimitRequests,
		PublishErrors,
	)
}
