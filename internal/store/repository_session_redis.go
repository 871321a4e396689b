// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/models"
)

const (
	redisSessionPrefix     = "sess:"
	redisUserSessionPrefix = "user_sessions:"
)

// RedisClient is the subset of *redis.Client used by the redis session
// repository.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// NewRedisClient connects to the redis server described by cfg and verifies
// the connection with a PING.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// redisSessionRepository stores each session under "sess:<id>" with a TTL
// equal to its remaining lifetime, so redis expires it natively. A set per
// user ("user_sessions:<user id>") indexes the ids for bulk removal.
type redisSessionRepository struct {
	client RedisClient
	now    func() time.Time
	logger *logger.Logger
}

// NewRedisSessionRepository constructs a [SessionRepository] backed by client.
func NewRedisSessionRepository(client RedisClient, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating redis session repository")
	return &redisSessionRepository{
		client: client,
		now:    time.Now,
		logger: logger,
	}
}

func (r *redisSessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		// already expired, nothing worth storing
		return nil
	}

	blob, err := encodeSession(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if err = r.client.Set(ctx, redisSessionPrefix+session.ID, blob, ttl).Err(); err != nil {
		log.Err(err).
			Str("func", "redisSessionRepository.SaveSession").
			Str("user_id", session.UserID).
			Msg("failed to save session")
		return fmt.Errorf("error saving session: %w", err)
	}

	userKey := redisUserSessionPrefix + session.UserID
	if err = r.client.SAdd(ctx, userKey, session.ID).Err(); err != nil {
		log.Warn().Err(err).
			Str("func", "redisSessionRepository.SaveSession").
			Msg("failed to index session by user")
		return nil
	}
	// the index lives at least as long as the newest session
	r.client.Expire(ctx, userKey, ttl)

	return nil
}

func (r *redisSessionRepository) FindSession(ctx context.Context, sessionID string) (models.Session, error) {
	data, err := r.client.Get(ctx, redisSessionPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "redisSessionRepository.FindSession").
			Msg("failed to get session")
		return models.Session{}, fmt.Errorf("error getting session: %w", err)
	}

	return decodeSession(sessionID, data)
}

func (r *redisSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, redisSessionPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) DeleteUserSessions(ctx context.Context, userID string) (int64, error) {
	userKey := redisUserSessionPrefix + userID

	ids, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return 0, fmt.Errorf("error listing user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, redisSessionPrefix+id)
	}
	keys = append(keys, userKey)

	deleted, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("error deleting user sessions: %w", err)
	}

	// the index key itself is not a session
	if deleted > 0 && len(ids) > 0 {
		deleted--
	}

	return deleted, nil
}

// DeleteExpiredSessions is a no-op: redis drops expired keys itself.
func (r *redisSessionRepository) DeleteExpiredSessions(context.Context, time.Time) (int64, error) {
	return 0, nil
}
