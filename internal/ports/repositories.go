package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gatehouse/gatehouse/internal/domain"
)

// CreateUserParams captures the inputs for a new account row.
type CreateUserParams struct {
	Email           string
	EmailNormalized string
	PasswordHash    string
	RegisteredAt    time.Time
}

// LoginStamp records the client context of a successful login.
type LoginStamp struct {
	At        time.Time
	IPAddress string
	UserAgent string
}

// UserRepository defines persistence operations for accounts.
// Failure counters are mutated through dedicated methods so the lockout
// invariants stay in one place.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (domain.User, error)
	GetByEmail(ctx context.Context, emailNormalized string) (domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error)
	// RecordLoginFailure increments the failure counter and, once it reaches
	// threshold, sets locked_until. It returns the updated counter state.
	RecordLoginFailure(ctx context.Context, userID uuid.UUID, now time.Time, threshold int, lockFor time.Duration) (domain.User, error)
	// RecordLoginSuccess resets the failure counter, clears any lockout, and
	// stamps the last-login audit fields.
	RecordLoginSuccess(ctx context.Context, userID uuid.UUID, stamp LoginStamp) error
}

// LoginAttemptRepository stores login outcomes used by audit and lockout review.
type LoginAttemptRepository interface {
	Insert(ctx context.Context, attempt domain.LoginAttempt) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LoginAttempt, error)
}
