package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickwarner/adlibrary/internal/observability"
)

// Config holds the configuration for rate limiting.
type Config struct {
	Capacity   int  // Token bucket capacity (burst allowance)
	RefillRate int  // Tokens added per second (sustained rate)
	Enabled    bool // Whether rate limiting is active
}

// ClientLimiter keeps one token bucket per client key, created on first use.
//
//	limiter := NewClientLimiter(Config{Capacity: 20, RefillRate: 5, Enabled: true}, metrics)
//	if !limiter.Allow(clientIP) {
//	    // reply 429
//	}
type ClientLimiter struct {
	buckets map[string]*TokenBucket
	mu      sync.RWMutex
	config  Config
	metrics observability.MetricsRegistry
	now     func() time.Time
}

// NewClientLimiter creates a limiter with the given configuration.
func NewClientLimiter(config Config, metrics observability.MetricsRegistry) *ClientLimiter {
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &ClientLimiter{
		buckets: make(map[string]*TokenBucket),
		config:  config,
		metrics: metrics,
		now:     time.Now,
	}
}

// Enabled reports whether the limiter rejects anything at all.
func (l *ClientLimiter) Enabled() bool {
	return l.config.Enabled
}

// Allow reports whether a request from client may proceed. It always
// returns true when rate limiting is disabled.
func (l *ClientLimiter) Allow(client string) bool {
	if !l.config.Enabled {
		return true
	}

	l.metrics.IncrementRateLimitRequests(client)

	l.mu.RLock()
	bucket, exists := l.buckets[client]
	l.mu.RUnlock()

	if !exists {
		l.mu.Lock()
		bucket, exists = l.buckets[client]
		if !exists {
			bucket = newTokenBucket(l.config.Capacity, l.config.RefillRate, l.now)
			l.buckets[client] = bucket
		}
		l.mu.Unlock()
	}

	allowed := bucket.Allow()
	if !allowed {
		l.metrics.IncrementRateLimitHits(client)
	}
	return allowed
}

// Prune drops buckets that have been idle for longer than idle and returns
// how many were removed.
func (l *ClientLimiter) Prune(idle time.Duration) int {
	cutoff := l.now().Add(-idle)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for client, bucket := range l.buckets {
		if bucket.idleSince().Before(cutoff) {
			delete(l.buckets, client)
			removed++
		}
	}
	return removed
}

// Stats returns a snapshot of per-client statistics.
func (l *ClientLimiter) Stats() map[string]Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := make(map[string]Stats, len(l.buckets))
	for client, bucket := range l.buckets {
		hits, total := bucket.Stats()
		hitRate := 0.0
		if total > 0 {
			hitRate = float64(hits) / float64(total)
		}
		stats[client] = Stats{Client: client, Hits: hits, Total: total, HitRate: hitRate}
	}
	return stats
}

// Stats describes rate limiting for a single client.
type Stats struct {
	Client  string  `json:"client"`
	Hits    int64   `json:"hits"`     // rejected requests
	Total   int64   `json:"total"`    // all requests seen
	HitRate float64 `json:"hit_rate"` // 0.0-1.0
}

func (s Stats) String() string {
	return fmt.Sprintf("client %s: %d/%d hits (%.2f%%)", s.Client, s.Hits, s.Total, s.HitRate*100)
}
