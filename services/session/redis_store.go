package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"salonbot/models"
	"salonbot/utils"
)

// RedisStore keeps sessions as JSON values. Every save refreshes the TTL;
// a zero TTL keeps sessions until they are deleted.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return utils.SessionKeyPrefix + sessionID
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	var s models.BookingSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", sessionID, err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *models.BookingSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", s.SessionID, err)
	}
	if err := r.client.Set(ctx, sessionKey(s.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.SessionID, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}
