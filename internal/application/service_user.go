package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gatehouse/gatehouse/internal/domain"
)

// GetCurrentUser resolves a session id to the safe account projection.
// The failure modes are part of the declared contract: the Result carries
// either the UserResponse or the domain error, and callers branch on the
// variant instead of unwinding.
func (s *Service) GetCurrentUser(ctx context.Context, sessionID uuid.UUID) domain.Result[UserResponse, error] {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Err[UserResponse, error](err)
	}
	if session == nil {
		return domain.Err[UserResponse, error](domain.ErrUnauthorized)
	}
	if session.Expired(s.nowFn()) {
		// The store TTL normally removes these; guard anyway against clock skew.
		_ = s.sessions.Delete(ctx, sessionID)
		return domain.Err[UserResponse, error](domain.ErrSessionExpired)
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return domain.Err[UserResponse, error](domain.ErrUnauthorized)
	}

	return domain.Ok[UserResponse, error](UserResponse{
		UserID:      user.UserID,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	})
}

// SessionValidation is the projection handed to trusted internal callers
// resolving a session over gRPC.
type SessionValidation struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// ValidateSession resolves a session id for internal service-to-service
// checks. Unknown and expired sessions both return ErrUnauthorized so
// callers cannot distinguish the two.
func (s *Service) ValidateSession(ctx context.Context, sessionID uuid.UUID) (SessionValidation, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return SessionValidation{}, err
	}
	if session == nil || session.Expired(s.nowFn()) {
		return SessionValidation{}, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return SessionValidation{}, domain.ErrUnauthorized
	}

	return SessionValidation{
		UserID:    user.UserID,
		Email:     user.Email,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// SessionCSRFToken returns the CSRF secret bound to a live session, or
// ErrUnauthorized when the session is unknown or expired.
func (s *Service) SessionCSRFToken(ctx context.Context, sessionID uuid.UUID) (string, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session == nil || session.Expired(s.nowFn()) {
		return "", domain.ErrUnauthorized
	}
	return session.CSRFToken, nil
}

// ListLoginHistory returns recent login attempts for the account.
func (s *Service) ListLoginHistory(ctx context.Context, userID uuid.UUID, limit int) ([]domain.LoginAttempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.attempts.ListByUser(ctx, userID, limit, 0)
}
