package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gatehouse/gatehouse/internal/domain"
	"github.com/gatehouse/gatehouse/internal/ports"
)

// Register creates an account and immediately issues a session, so a new
// user lands authenticated exactly as if they had logged in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return AuthResult{}, err
	}
	if req.Password != req.ConfirmPassword {
		return AuthResult{}, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return AuthResult{}, err
	}

	if ip := strings.TrimSpace(req.IPAddress); ip != "" {
		if err := s.enforceRateLimit(ctx, "register:ip:"+ip, s.cfg.RegisterRateLimitIPThreshold); err != nil {
			return AuthResult{}, err
		}
	}
	if err := s.enforceRateLimit(ctx, "register:identifier:"+email, s.cfg.RegisterRateLimitIdentifierThreshold); err != nil {
		return AuthResult{}, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.nowFn()
	user, err := s.users.Create(ctx, ports.CreateUserParams{
		Email:           strings.TrimSpace(req.Email),
		EmailNormalized: email,
		PasswordHash:    passwordHash,
		RegisteredAt:    now,
	})
	if err != nil {
		return AuthResult{}, err
	}

	return s.issueSession(ctx, user.UserID, req.RedirectTo, req.IPAddress, req.UserAgent)
}

// Login validates credentials and enforces the lockout policy before issuing
// a session. Unknown email and wrong password collapse into the same error
// so responses cannot be used to enumerate accounts.
func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return AuthResult{}, err
	}

	if ip := strings.TrimSpace(req.IPAddress); ip != "" {
		if err := s.enforceRateLimit(ctx, "login:ip:"+ip, s.cfg.LoginRateLimitIPThreshold); err != nil {
			return AuthResult{}, err
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.recordFailure(ctx, nil, req, "USER_NOT_FOUND")
		return AuthResult{}, domain.ErrInvalidCredentials
	}

	now := s.nowFn()
	if user.Locked(now) {
		s.recordFailure(ctx, &user.UserID, req, "ACCOUNT_LOCKED")
		return AuthResult{}, domain.ErrAccountLocked
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.recordFailure(ctx, &user.UserID, req, "INVALID_PASSWORD")
		updated, failErr := s.users.RecordLoginFailure(ctx, user.UserID, now, s.cfg.FailedLoginThreshold, s.cfg.LockoutDuration)
		if failErr != nil {
			slog.Default().ErrorContext(ctx, "failed to update lockout counters",
				"module", "application",
				"operation", "login",
				"outcome", "failure",
				"error", failErr,
			)
			return AuthResult{}, domain.ErrInvalidCredentials
		}
		if updated.Locked(now) {
			return AuthResult{}, domain.ErrAccountLocked
		}
		return AuthResult{}, domain.ErrInvalidCredentials
	}

	if err := s.users.RecordLoginSuccess(ctx, user.UserID, ports.LoginStamp{
		At:        now,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	}); err != nil {
		return AuthResult{}, fmt.Errorf("record login success: %w", err)
	}

	_ = s.attempts.Insert(ctx, domain.LoginAttempt{
		UserID:    &user.UserID,
		AttemptAt: now,
		IPAddress: req.IPAddress,
		Status:    "SUCCESS",
		UserAgent: req.UserAgent,
	})

	return s.issueSession(ctx, user.UserID, req.RedirectTo, req.IPAddress, req.UserAgent)
}

// Logout destroys the server-side session. A missing session is not an
// error; logout is idempotent from the browser's point of view.
func (s *Service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessions.Delete(ctx, sessionID)
}

// issueSession creates the session record with its CSRF secret and client
// fingerprint, stores it with TTL equal to the session lifetime, and builds
// the AuthResult with a validated redirect target.
func (s *Service) issueSession(ctx context.Context, userID uuid.UUID, redirectTo, ip, userAgent string) (AuthResult, error) {
	now := s.nowFn()
	session := domain.Session{
		SessionID: uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		CSRFToken: randomHex(32),
		IPHash:    hashIP(ip),
		UserAgent: userAgent,
	}
	if err := s.sessions.Put(ctx, session, s.cfg.SessionTTL); err != nil {
		return AuthResult{}, fmt.Errorf("store session: %w", err)
	}

	target, ok := domain.ValidateRedirectPath(redirectTo)
	if !ok {
		target = "/"
	}

	return AuthResult{
		UserID:     userID,
		SessionID:  session.SessionID,
		CSRFToken:  session.CSRFToken,
		RedirectTo: target,
	}, nil
}

// SessionTTL exposes the configured lifetime so the boundary can align
// cookie Max-Age with store TTL.
func (s *Service) SessionTTL() time.Duration {
	return s.cfg.SessionTTL
}
