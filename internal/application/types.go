package application

import (
	"time"

	"github.com/google/uuid"
)

type Config struct {
	SessionTTL           time.Duration
	FailedLoginThreshold int
	LockoutDuration      time.Duration

	LoginRateLimitIPThreshold            int
	RegisterRateLimitIPThreshold         int
	RegisterRateLimitIdentifierThreshold int
	RateLimitWindow                      time.Duration
}

type RegisterRequest struct {
	Email           string
	Password        string
	ConfirmPassword string
	RedirectTo      string
	IPAddress       string
	UserAgent       string
}

type LoginRequest struct {
	Email      string
	Password   string
	RedirectTo string
	IPAddress  string
	UserAgent  string
}

// AuthResult is the output contract of a successful login or registration.
// It carries everything the boundary needs to set cookies and navigate.
type AuthResult struct {
	UserID     uuid.UUID
	SessionID  uuid.UUID
	CSRFToken  string
	RedirectTo string
}

// UserResponse is the safe account projection handed to presentation code.
// It never includes the password hash or lockout internals.
type UserResponse struct {
	UserID      uuid.UUID
	Email       string
	CreatedAt   time.Time
	LastLoginAt *time.Time
}
