// File: services/plan/cache.go
package plan

import (
	"context"
	"encoding/json"
	"time"

	"plannerly/models"

	"github.com/go-redis/redis/v8"
)

const sessionCachePrefix = "plan:sess:"

// SessionStore caches plan sessions between requests. Mongo stays the source
// of truth; a cache miss is not an error.
type SessionStore interface {
	Get(ctx context.Context, planID string) (*models.PlanSession, error)
	Set(ctx context.Context, session *models.PlanSession) error
	Clear(ctx context.Context, planID string) error
}

type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, planID string) (*models.PlanSession, error) {
	key := sessionCachePrefix + planID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session models.PlanSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, session *models.PlanSession) error {
	key := sessionCachePrefix + session.ID
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, planID string) error {
	key := sessionCachePrefix + planID
	return s.client.Del(ctx, key).Err()
}
