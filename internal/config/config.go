package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration derived from environment variables.
type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ServiceName  string
	// PublicURL prefixes share links; empty means links are relative.
	PublicURL string
	// RedisAddr enables update notifications when non-empty.
	RedisAddr string
	// Session authentication
	AuthSecret        string
	AuthTokenTTL      time.Duration
	AuthBootstrapUser string
	// Share links
	ShareSecret string
	ShareTTL    time.Duration
	// Write rate limiting, per client
	RateLimitEnabled    bool
	RateLimitCapacity   int
	RateLimitRefillRate int
	// Collection seeding
	SeedFile      string
	SeedSampleAds bool
	// Creation preview URL checks
	ImageCheckTimeout time.Duration
	// Tracing configuration
	TracingEnabled    bool
	TempoEndpoint     string
	TracingSampleRate float64
}

// Load parses environment variables and returns a Config populated with
// defaults when variables are absent.
func Load() Config {
	cfg := Config{}

	cfg.Port = getenv("PORT", "8787")
	cfg.ReadTimeout = envDuration("READ_TIMEOUT", 5*time.Second)
	cfg.WriteTimeout = envDuration("WRITE_TIMEOUT", 10*time.Second)
	cfg.ServiceName = getenv("SERVICE_NAME", "adlibrary")
	cfg.PublicURL = strings.TrimSuffix(os.Getenv("PUBLIC_URL"), "/")
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	cfg.AuthSecret = getenv("AUTH_SECRET", "")
	cfg.AuthTokenTTL = envDuration("AUTH_TOKEN_TTL", 12*time.Hour)
	cfg.AuthBootstrapUser = getenv("AUTH_BOOTSTRAP_USER", "")

	// share links fall back to the auth secret
	cfg.ShareSecret = getenv("SHARE_SECRET", cfg.AuthSecret)
	cfg.ShareTTL = envDuration("SHARE_TTL", 7*24*time.Hour)

	cfg.RateLimitEnabled = envBool("RATE_LIMIT_ENABLED", true)
	cfg.RateLimitCapacity = envInt("RATE_LIMIT_CAPACITY", 20)
	cfg.RateLimitRefillRate = envInt("RATE_LIMIT_REFILL_RATE", 5)

	cfg.SeedFile = getenv("SEED_FILE", "")
	cfg.SeedSampleAds = envBool("SEED_SAMPLE_ADS", true)
	cfg.ImageCheckTimeout = envDuration("IMAGE_CHECK_TIMEOUT", 5*time.Second)

	cfg.TracingEnabled = envBool("TRACING_ENABLED", false)
	cfg.TempoEndpoint = getenv("TEMPO_ENDPOINT", "tempo:4317")
	cfg.TracingSampleRate = envFloat("TRACING_SAMPLE_RATE", 1.0)

	return cfg
}

// getenv returns the value of the environment variable if set, otherwise def.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration parses an environment variable into a time.Duration.
// The value can be a duration string (e.g. "5s") or a number of seconds.
// If the variable is unset or invalid, def is returned.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

// envBool parses a boolean environment variable. Accepted values are those
// supported by strconv.ParseBool. When unset or invalid, def is returned.
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// envInt parses an integer environment variable. When unset or invalid, def is returned.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

// envFloat parses a float64 environment variable. When unset or invalid, def is returned.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}
