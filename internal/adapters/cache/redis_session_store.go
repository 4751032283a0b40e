package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gatehouse/gatehouse/internal/domain"
)

// RedisSessionStore keeps sessions as JSON values with TTL equal to the
// session lifetime, so expiry needs no sweeper.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates the session KV adapter.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Put(ctx context.Context, session domain.Session, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "auth:session:"+session.SessionID.String(), raw, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, "auth:session:"+sessionID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var out domain.Session
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return s.client.Del(ctx, "auth:session:"+sessionID.String()).Err()
}
