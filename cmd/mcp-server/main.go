package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/adlibrary/internal/auth"
	"github.com/patrickwarner/adlibrary/internal/config"
	"github.com/patrickwarner/adlibrary/internal/db"
	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/patrickwarner/adlibrary/internal/observability"
	"github.com/patrickwarner/adlibrary/internal/session"
	"go.uber.org/zap"
)

const defaultMCPUser = "mcp"

// newLogger writes to stderr, stdout carries the MCP stream.
func newLogger(service string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(observability.LogLevel())
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.NameKey = "logger"
	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.StacktraceKey = "stacktrace"

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(service).With(zap.String("service", service)), nil
}

func main() {
	cfg := config.Load()
	service := cfg.ServiceName + "-mcp"

	logger, err := newLogger(service)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ads []models.Ad
	if cfg.SeedFile != "" {
		ads, err = models.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			logger.Fatal("Failed to load seed file", zap.String("path", cfg.SeedFile), zap.Error(err))
		}
	}
	if cfg.SeedSampleAds {
		var skipped []string
		ads, skipped = models.MergeAds(ads, models.SampleAds())
		if len(skipped) > 0 {
			logger.Warn("Skipped sample ads with ids taken by the seed file", zap.Strings("ids", skipped))
		}
	}
	store := models.NewInMemoryAdStore(ads)
	state := session.New(store, logger, nil)

	provider := auth.NewProvider()
	defer state.AttachAuth(provider)()
	user := os.Getenv("MCP_USER")
	if user == "" {
		user = defaultMCPUser
	}
	provider.SignIn(auth.Identity{ID: user})

	var publisher Publisher
	if cfg.RedisAddr != "" {
		redisStore, err := db.InitRedis(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("Redis unavailable, updates will not be published", zap.Error(err))
		} else {
			defer redisStore.Close()
			publisher = redisStore
			logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
		}
	}

	catalog := NewCatalogServer(state, publisher, logger)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.ServiceName,
		Version: observability.ServiceVersion,
	}, nil)
	catalog.Register(server)

	var logBuffer bytes.Buffer
	transport := &mcp.LoggingTransport{
		Transport: &mcp.StdioTransport{},
		Writer:    &logBuffer,
	}

	logger.Info("MCP server running via stdio", zap.Int("ads", store.Len()), zap.String("user", user))

	if err := server.Run(ctx, transport); err != nil {
		logger.Fatal("Server error", zap.Error(err), zap.String("mcp_logs", logBuffer.String()))
	}
}
