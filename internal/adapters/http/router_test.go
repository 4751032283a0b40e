package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse/gatehouse/internal/application"
	"github.com/gatehouse/gatehouse/internal/domain"
	"github.com/gatehouse/gatehouse/internal/ports"
)

type memUserRepo struct {
	users map[uuid.UUID]domain.User
}

func (r *memUserRepo) Create(_ context.Context, params ports.CreateUserParams) (domain.User, error) {
	for _, u := range r.users {
		if u.EmailNormalized == params.EmailNormalized {
			return domain.User{}, domain.ErrEmailTaken
		}
	}
	user := domain.User{
		UserID:          uuid.New(),
		Email:           params.Email,
		EmailNormalized: params.EmailNormalized,
		PasswordHash:    params.PasswordHash,
		CreatedAt:       params.RegisteredAt,
	}
	r.users[user.UserID] = user
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, emailNormalized string) (domain.User, error) {
	for _, u := range r.users {
		if u.EmailNormalized == emailNormalized {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, userID uuid.UUID) (domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) RecordLoginFailure(_ context.Context, userID uuid.UUID, now time.Time, threshold int, lockFor time.Duration) (domain.User, error) {
	u := r.users[userID]
	u.FailedAttempts++
	if u.FailedAttempts >= threshold {
		until := now.Add(lockFor)
		u.LockedUntil = &until
	}
	r.users[userID] = u
	return u, nil
}

func (r *memUserRepo) RecordLoginSuccess(_ context.Context, userID uuid.UUID, stamp ports.LoginStamp) error {
	u := r.users[userID]
	u.FailedAttempts = 0
	u.LockedUntil = nil
	at := stamp.At
	u.LastLoginAt = &at
	r.users[userID] = u
	return nil
}

type memAttemptRepo struct {
	attempts []domain.LoginAttempt
}

func (r *memAttemptRepo) Insert(_ context.Context, attempt domain.LoginAttempt) error {
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *memAttemptRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, _ int) ([]domain.LoginAttempt, error) {
	var out []domain.LoginAttempt
	for _, a := range r.attempts {
		if a.UserID != nil && *a.UserID == userID {
			out = append(out, a)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type memSessionStore struct {
	sessions map[uuid.UUID]domain.Session
}

func (s *memSessionStore) Put(_ context.Context, session domain.Session, _ time.Duration) error {
	s.sessions[session.SessionID] = session
	return nil
}

func (s *memSessionStore) Get(_ context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID uuid.UUID) error {
	delete(s.sessions, sessionID)
	return nil
}

type memRateLimitStore struct{}

func (memRateLimitStore) Get(context.Context, string) (ports.RateState, error) {
	return ports.RateState{}, nil
}

func (memRateLimitStore) Record(_ context.Context, _ string, _ time.Time, _ int, _ time.Duration) (ports.RateState, error) {
	return ports.RateState{}, nil
}

func (memRateLimitStore) Clear(context.Context, string) error { return nil }

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

func newTestRouter(t *testing.T) (http.Handler, *application.Service) {
	t.Helper()

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			SessionTTL:           time.Hour,
			FailedLoginThreshold: 5,
			LockoutDuration:      15 * time.Minute,
		},
		Users:    &memUserRepo{users: make(map[uuid.UUID]domain.User)},
		Attempts: &memAttemptRepo{},
		Sessions: &memSessionStore{sessions: make(map[uuid.UUID]domain.Session)},
		Limiter:  memRateLimitStore{},
		Hasher:   plainHasher{},
	})
	handler := NewHandler(svc, NewCookieOptions("development"))
	return NewRouter(handler, nil), svc
}

func registerViaForm(t *testing.T, router http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	form.Set("confirm_password", password)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestLoginPageRendered(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/auth/login"`)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestMethodNotAllowedListsAllowedMethods(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/auth/login", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	allow := rec.Header().Get("Allow")
	assert.Contains(t, allow, http.MethodGet)
	assert.Contains(t, allow, http.MethodPost)
}

func TestUnknownRouteNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestAppRedirectsWithoutSession(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
}

func TestAppRedirectsWithGarbageCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/app/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
}

func TestRegisterThenDashboard(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := registerViaForm(t, router, "alice@example.com", "sturdy-passphrase")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	session := cookieByName(t, rec, "session")
	assert.True(t, session.HttpOnly)
	csrf := cookieByName(t, rec, "csrf")
	assert.False(t, csrf.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/app/", nil)
	req.AddCookie(session)
	dash := httptest.NewRecorder()
	router.ServeHTTP(dash, req)

	assert.Equal(t, http.StatusOK, dash.Code)
	assert.Contains(t, dash.Body.String(), "alice@example.com")
	assert.Contains(t, dash.Body.String(), csrf.Value)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)
	registerViaForm(t, router, "alice@example.com", "sturdy-passphrase")

	form := url.Values{}
	form.Set("email", "alice@example.com")
	form.Set("password", "wrong-passphrase")
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, "session", c.Name)
	}
}

func TestLoginPreservesRedirectTarget(t *testing.T) {
	router, _ := newTestRouter(t)
	registerViaForm(t, router, "alice@example.com", "sturdy-passphrase")

	form := url.Values{}
	form.Set("email", "alice@example.com")
	form.Set("password", "sturdy-passphrase")
	form.Set("redirect_to", "/app/security")
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/security", rec.Header().Get("Location"))
}

func TestLoginRejectsOpenRedirect(t *testing.T) {
	router, _ := newTestRouter(t)
	registerViaForm(t, router, "alice@example.com", "sturdy-passphrase")

	form := url.Values{}
	form.Set("email", "alice@example.com")
	form.Set("password", "sturdy-passphrase")
	form.Set("redirect_to", "//evil.example")
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLogoutRejectsBadCSRFToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := registerViaForm(t, router, "alice@example.com", "sturdy-passphrase")
	session := cookieByName(t, rec, "session")

	form := url.Values{}
	form.Set("csrf_token", "forged")
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(session)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)

	assert.Equal(t, http.StatusForbidden, out.Code)

	// The session survives a rejected logout.
	check := httptest.NewRequest(http.MethodGet, "/app/", nil)
	check.AddCookie(session)
	dash := httptest.NewRecorder()
	router.ServeHTTP(dash, check)
	assert.Equal(t, http.StatusOK, dash.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := registerViaForm(t, router, "alice@example.com", "sturdy-passphrase")
	session := cookieByName(t, rec, "session")
	csrf := cookieByName(t, rec, "csrf")

	form := url.Values{}
	form.Set("csrf_token", csrf.Value)
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(session)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)

	assert.Equal(t, http.StatusSeeOther, out.Code)
	assert.Equal(t, "/auth/login", out.Header().Get("Location"))

	check := httptest.NewRequest(http.MethodGet, "/app/", nil)
	check.AddCookie(session)
	dash := httptest.NewRecorder()
	router.ServeHTTP(dash, check)
	assert.Equal(t, http.StatusSeeOther, dash.Code)
}

func TestRegisterValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	form := url.Values{}
	form.Set("email", "alice@example.com")
	form.Set("password", "sturdy-passphrase")
	form.Set("confirm_password", "different-passphrase")
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match.")
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	router, _ := newTestRouter(t)
	registerViaForm(t, router, "alice@example.com", "sturdy-passphrase")

	rec := registerViaForm(t, router, "alice@example.com", "sturdy-passphrase")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestHealthProbes(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReportsUnavailable(t *testing.T) {
	handler := handleReadyz(func() error { return errors.New("postgres down") })
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}

func TestRecoverMiddlewareReturnsOpaque500(t *testing.T) {
	inner := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	recoverMiddleware(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}
