// Package middleware holds the HTTP middleware shared by the catalog routes.
package middleware

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type loggerKey struct{}

// WithTraceLogger stores a logger carrying the request's trace and span ids
// in the request context.
func WithTraceLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l, ok := traced(r.Context(), logger); ok {
				r = r.WithContext(context.WithValue(r.Context(), loggerKey{}, l))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func traced(ctx context.Context, logger *zap.Logger) (*zap.Logger, bool) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return logger, false
	}
	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	), true
}

// LoggerFromContext returns the logger stored by WithTraceLogger. Without
// one, fallback is returned, enriched with trace ids when a span is active.
func LoggerFromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	l, _ := traced(ctx, fallback)
	return l
}

// LoggerFromRequest is LoggerFromContext for r's context.
func LoggerFromRequest(r *http.Request, fallback *zap.Logger) *zap.Logger {
	return LoggerFromContext(r.Context(), fallback)
}
