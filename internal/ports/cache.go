package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gatehouse/gatehouse/internal/domain"
)

// SessionStore persists sessions in a key-value store with TTL equal to the
// session lifetime. Expiry is TTL-driven; Get on an expired or unknown id
// returns (nil, nil) so callers treat both identically.
type SessionStore interface {
	Put(ctx context.Context, session domain.Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// RateState is the current counter envelope for a rate-limit key.
type RateState struct {
	Count        int
	BlockedUntil *time.Time
}

// RateLimitStore handles short-lived abuse-protection counters.
// It is cache-backed to keep hot paths off the relational store.
type RateLimitStore interface {
	Get(ctx context.Context, key string) (RateState, error)
	Record(ctx context.Context, key string, now time.Time, threshold int, window time.Duration) (RateState, error)
	Clear(ctx context.Context, key string) error
}
