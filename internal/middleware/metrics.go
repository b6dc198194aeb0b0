package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/patrickwarner/adlibrary/internal/observability"
	"go.uber.org/zap"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// routeName returns the mux path template, so ids do not explode label
// cardinality.
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// WithMetrics records request count and latency per route and logs a
// sampled access line.
func WithMetrics(metrics observability.MetricsRegistry, logger *zap.Logger) mux.MiddlewareFunc {
	rate := observability.SamplingRate()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			endpoint := routeName(r)
			elapsed := time.Since(start)
			metrics.IncrementRequests(endpoint, r.Method, strconv.Itoa(rec.status))
			metrics.RecordRequestLatency(endpoint, r.Method, elapsed)

			if rec.status >= http.StatusInternalServerError || observability.ShouldSample(rate) {
				LoggerFromRequest(r, logger).Debug("request",
					zap.String("method", r.Method),
					zap.String("route", endpoint),
					zap.Int("status", rec.status),
					zap.Duration("duration", elapsed),
				)
			}
		})
	}
}
