package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the canonical account aggregate.
// It carries lockout counters and last-login audit fields directly so the
// lockout invariants live with the row they protect.
type User struct {
	UserID             uuid.UUID
	Email              string
	EmailNormalized    string
	PasswordHash       string
	FailedAttempts     int
	LockedUntil        *time.Time
	CreatedAt          time.Time
	PasswordChangedAt  time.Time
	LastLoginAt        *time.Time
	LastLoginIP        string
	LastLoginUserAgent string
}

// Locked reports whether the account lockout is still in effect at now.
func (u User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// Session is the server-side record referenced by the opaque session cookie.
// It lives in a TTL'd key-value store; expiry is store-driven, never swept.
type Session struct {
	SessionID uuid.UUID `json:"session_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	CSRFToken string    `json:"csrf_token"`
	IPHash    string    `json:"ip_hash"`
	UserAgent string    `json:"user_agent"`
}

// Expired reports whether the session has passed its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// LoginAttempt records authentication outcomes for audit and lockout review.
type LoginAttempt struct {
	ID            int64
	UserID        *uuid.UUID
	AttemptAt     time.Time
	IPAddress     string
	Status        string
	FailureReason string
	UserAgent     string
}
