package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nivlac17/jwt-pizza-service/internal/config"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// NewClient opens a Redis client for cfg and verifies it answers a PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// SessionStore implements store.SessionStore with one key per token.
type SessionStore struct {
	client goredis.Cmdable
	now    func() time.Time
	logger *slog.Logger
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client goredis.Cmdable, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		client: client,
		now:    time.Now,
		logger: logger.With(slog.String("component", "redis_session_store")),
	}
}

var _ store.SessionStore = (*SessionStore)(nil)

func sessionKey(tokenID string) string {
	return sessionKeyPrefix + tokenID
}

// Create stores the session with a TTL ending at expiresAt.
func (s *SessionStore) Create(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("%w: session already expired", store.ErrInvalidEntity)
	}
	if err := s.client.Set(ctx, sessionKey(tokenID), userID.String(), ttl).Err(); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Exists reports whether the session key is still present.
func (s *SessionStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(tokenID)).Result()
	if err != nil && !errors.Is(err, goredis.Nil) {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to look up session",
			slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to look up session: %w", err)
	}
	return n > 0, nil
}

// Delete removes the session key.
func (s *SessionStore) Delete(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, sessionKey(tokenID)).Err(); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete session",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired is a no-op; Redis evicts expired keys on its own.
func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
