package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Gauge != nil {
		return out.GetGauge().GetValue()
	}
	return out.GetCounter().GetValue()
}

func TestPrometheusRegistryRecordsDerive(t *testing.T) {
	reg := NewPrometheusRegistry()
	reg.RecordDerive(time.Millisecond, 2, 6)

	assert.Equal(t, 2.0, value(t, VisibleAds))
	assert.Equal(t, 6.0, value(t, CollectionSize))
}

func TestPrometheusRegistryCounters(t *testing.T) {
	reg := NewPrometheusRegistry()

	before := value(t, AdsCreated.WithLabelValues("meta-ads"))
	reg.IncrementAdsCreated("meta-ads")
	assert.Equal(t, before+1, value(t, AdsCreated.WithLabelValues("meta-ads")))

	before = value(t, BookmarkToggles.WithLabelValues("true"))
	reg.IncrementBookmarkToggles(true)
	assert.Equal(t, before+1, value(t, BookmarkToggles.WithLabelValues("true")))

	before = value(t, RateLimitHits.WithLabelValues("10.0.0.1"))
	reg.IncrementRateLimitHits("10.0.0.1")
	assert.Equal(t, before+1, value(t, RateLimitHits.WithLabelValues("10.0.0.1")))
}

func TestNoOpRegistry(t *testing.T) {
	var reg MetricsRegistry = NewNoOpRegistry()
	assert.NotPanics(t, func() {
		reg.IncrementRequests("/api/ads", "GET", "200")
		reg.RecordRequestLatency("/api/ads", "GET", time.Second)
		reg.RecordDerive(time.Second, 1, 1)
		reg.IncrementAdsCreated("google-ads")
		reg.IncrementBookmarkToggles(false)
		reg.IncrementImageAcquisitions("upload", "ok")
		reg.IncrementRateLimitRequests("c")
		reg.IncrementRateLimitHits("c")
		reg.IncrementPublishErrors()
	})
}

func TestLogLevel(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zap.DebugLevel, LogLevel())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, zap.WarnLevel, LogLevel())

	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "bogus")
	assert.Equal(t, zap.InfoLevel, LogLevel())
}

func TestShouldSampleBounds(t *testing.T) {
	assert.True(t, ShouldSample(1))
	assert.False(t, ShouldSample(0))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), Sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), Sampler(0).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), Sampler(0.25).Description())
}
