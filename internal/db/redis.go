package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// UpdateChannel is the pub/sub channel catalog mutations are announced on.
const UpdateChannel = "ad-library-updates"

// ErrNoClient is returned when publishing through a store without a client.
var ErrNoClient = errors.New("redis client not configured")

// UpdateMessage announces a change to a catalog entity.
type UpdateMessage struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     string `json:"id"`
}

// RedisStore wraps a redis client.
type RedisStore struct {
	Client *redis.Client
}

// InitRedis connects to addr with tracing instrumentation and verifies the
// connection.
func InitRedis(ctx context.Context, addr string) (*RedisStore, error) {
	rs := NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}))

	if err := redisotel.InstrumentTracing(rs.Client); err != nil {
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}
	if err := rs.Client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	zap.L().Info("connected to Redis", zap.String("addr", addr))
	return rs, nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

// Publish sends msg on UpdateChannel.
func (r *RedisStore) Publish(ctx context.Context, msg UpdateMessage) error {
	if r == nil || r.Client == nil {
		return ErrNoClient
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal update message: %w", err)
	}
	if err := r.Client.Publish(ctx, UpdateChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish update message: %w", err)
	}
	return nil
}

// Close shuts down the Redis client.
func (r *RedisStore) Close() {
	if r != nil && r.Client != nil {
		if err := r.Client.Close(); err != nil {
			zap.L().Error("redis close", zap.Error(err))
		}
	}
}
