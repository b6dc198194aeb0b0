package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickwarner/adlibrary/internal/api"
	"github.com/patrickwarner/adlibrary/internal/auth"
	"github.com/patrickwarner/adlibrary/internal/config"
	"github.com/patrickwarner/adlibrary/internal/db"
	"github.com/patrickwarner/adlibrary/internal/logic/ratelimit"
	"github.com/patrickwarner/adlibrary/internal/media"
	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/patrickwarner/adlibrary/internal/observability"
	"github.com/patrickwarner/adlibrary/internal/session"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// rateLimitIdle is how long a client bucket may sit unused before it is pruned.
const rateLimitIdle = 10 * time.Minute

func main() {
	cfg := config.Load()

	logger, err := observability.InitLoggerWithService(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.TempoEndpoint, cfg.TracingSampleRate)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown()
	}

	ads, skipped, err := loadAds(cfg)
	if err != nil {
		return err
	}
	if len(skipped) > 0 {
		logger.Warn("skipped sample ads with ids taken by the seed file", zap.Strings("ids", skipped))
	}
	store := models.NewInMemoryAdStore(ads)

	metricsRegistry := observability.NewPrometheusRegistry()

	state := session.New(store, logger, metricsRegistry)
	provider := auth.NewProvider()
	detach := state.AttachAuth(provider)
	defer detach()

	if cfg.AuthSecret == "" {
		cfg.AuthSecret = randomSecret()
		logger.Warn("AUTH_SECRET not set, session tokens will not survive a restart")
	}
	if cfg.ShareSecret == "" {
		cfg.ShareSecret = cfg.AuthSecret
	}
	verifier := auth.NewVerifier([]byte(cfg.AuthSecret))

	// The provider starts out loading; resolve it once startup is done.
	if cfg.AuthBootstrapUser != "" {
		provider.SignIn(auth.Identity{ID: cfg.AuthBootstrapUser})
		logger.Info("signed in bootstrap user", zap.String("user_id", cfg.AuthBootstrapUser))
	} else {
		provider.SignOut()
	}

	var publisher api.Publisher
	if cfg.RedisAddr != "" {
		redisStore, err := db.InitRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect redis: %w", err)
		}
		defer redisStore.Close()
		publisher = redisStore
		logger.Info("publishing updates", zap.String("redis_addr", cfg.RedisAddr), zap.String("channel", db.UpdateChannel))
	}

	rateLimiter := ratelimit.NewClientLimiter(ratelimit.Config{
		Capacity:   cfg.RateLimitCapacity,
		RefillRate: cfg.RateLimitRefillRate,
		Enabled:    cfg.RateLimitEnabled,
	}, metricsRegistry)

	checker := media.NewURLChecker(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}, cfg.ImageCheckTimeout)

	srvDeps := api.NewServer(logger, state, provider, verifier, publisher, checker, rateLimiter, metricsRegistry, cfg)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(srvDeps.Router(), cfg.ServiceName),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("Ad library running",
		zap.String("addr", addr),
		zap.Int("ads", store.Len()),
		zap.Bool("rate_limit", rateLimiter.Enabled()))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	if rateLimiter.Enabled() {
		ticker := time.NewTicker(rateLimitIdle)
		go func() {
			for {
				select {
				case <-ticker.C:
					if n := rateLimiter.Prune(rateLimitIdle); n > 0 {
						logger.Debug("pruned idle rate limit buckets", zap.Int("count", n))
					}
				case <-ctx.Done():
					ticker.Stop()
					return
				}
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

// loadAds builds the initial collection: the seed file first, then the
// bundled sample ads when enabled. Sample ads whose id the seed file already
// uses are skipped and their ids returned.
func loadAds(cfg config.Config) ([]models.Ad, []string, error) {
	var ads []models.Ad
	if cfg.SeedFile != "" {
		seeded, err := models.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load seed file: %w", err)
		}
		ads = seeded
	}
	if !cfg.SeedSampleAds {
		return ads, nil, nil
	}
	merged, skipped := models.MergeAds(ads, models.SampleAds())
	return merged, skipped, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("read random secret: %v", err))
	}
	return hex.EncodeToString(b)
}
