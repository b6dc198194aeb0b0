package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/patrickwarner/adlibrary/internal/logic/ratelimit"
	"go.uber.org/zap"
)

// ClientKey identifies the caller: the first X-Forwarded-For hop when
// present, otherwise the remote host.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// WithWriteRateLimit rejects mutating requests with 429 once the client's
// bucket is empty. Reads are never limited.
func WithWriteRateLimit(limiter *ratelimit.ClientLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			client := ClientKey(r)
			if !limiter.Allow(client) {
				LoggerFromRequest(r, logger).Warn("rate limited", zap.String("client", client), zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
