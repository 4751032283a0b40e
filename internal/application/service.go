package application

import (
	"time"

	"github.com/gatehouse/gatehouse/internal/ports"
)

// Service orchestrates the authentication use cases against the ports.
// It owns no I/O of its own; every adapter is injected through Dependencies
// so tests can substitute fakes per call.
type Service struct {
	cfg      Config
	users    ports.UserRepository
	attempts ports.LoginAttemptRepository
	sessions ports.SessionStore
	limiter  ports.RateLimitStore
	hasher   ports.PasswordHasher
	nowFn    func() time.Time
}

type Dependencies struct {
	Config   Config
	Users    ports.UserRepository
	Attempts ports.LoginAttemptRepository
	Sessions ports.SessionStore
	Limiter  ports.RateLimitStore
	Hasher   ports.PasswordHasher
}

func NewService(deps Dependencies) *Service {
	return &Service{
		cfg:      deps.Config,
		users:    deps.Users,
		attempts: deps.Attempts,
		sessions: deps.Sessions,
		limiter:  deps.Limiter,
		hasher:   deps.Hasher,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}
