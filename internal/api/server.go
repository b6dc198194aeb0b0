package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/patrickwarner/adlibrary/internal/auth"
	"github.com/patrickwarner/adlibrary/internal/config"
	"github.com/patrickwarner/adlibrary/internal/db"
	"github.com/patrickwarner/adlibrary/internal/logic/ratelimit"
	"github.com/patrickwarner/adlibrary/internal/observability"
	"github.com/patrickwarner/adlibrary/internal/session"

	"go.uber.org/zap"
)

var tracer = observability.Tracer("api")

// Publisher announces catalog mutations.
type Publisher interface {
	Publish(ctx context.Context, msg db.UpdateMessage) error
}

// ImageChecker checks that a remote URL serves an image.
type ImageChecker interface {
	Check(ctx context.Context, rawURL string) (string, error)
}

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger      *zap.Logger
	Session     *session.State
	Auth        *auth.Provider
	Verifier    *auth.Verifier
	Publisher   Publisher
	Checker     ImageChecker
	Limiter     *ratelimit.ClientLimiter
	Metrics     observability.MetricsRegistry
	ShareSecret []byte
	ShareTTL    time.Duration
	PublicURL   string
	now         func() time.Time
}

// NewServer constructs a Server. publisher may be nil, in which case
// mutations are not announced.
func NewServer(logger *zap.Logger, state *session.State, provider *auth.Provider, verifier *auth.Verifier, publisher Publisher, checker ImageChecker, limiter *ratelimit.ClientLimiter, metrics observability.MetricsRegistry, cfg config.Config) *Server {
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	if limiter == nil {
		limiter = ratelimit.NewClientLimiter(ratelimit.Config{Enabled: false}, metrics)
	}
	return &Server{
		Logger:      logger,
		Session:     state,
		Auth:        provider,
		Verifier:    verifier,
		Publisher:   publisher,
		Checker:     checker,
		Limiter:     limiter,
		Metrics:     metrics,
		ShareSecret: []byte(cfg.ShareSecret),
		ShareTTL:    cfg.ShareTTL,
		PublicURL:   cfg.PublicURL,
		now:         time.Now,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer func() {
		_ = r.Body.Close()
	}()
	return json.NewDecoder(r.Body).Decode(v)
}

// notifyUpdate publishes a mutation. Failures are logged and never reach
// the client.
func (s *Server) notifyUpdate(ctx context.Context, entity, action, id string) {
	if s.Publisher == nil {
		return
	}
	msg := db.UpdateMessage{Entity: entity, Action: action, ID: id}
	if err := s.Publisher.Publish(context.WithoutCancel(ctx), msg); err != nil {
		s.Metrics.IncrementPublishErrors()
		s.Logger.Error("failed to publish update message",
			zap.String("entity", entity),
			zap.String("action", action),
			zap.String("id", id),
			zap.Error(err))
	}
}
