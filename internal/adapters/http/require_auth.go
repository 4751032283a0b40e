package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/gatehouse/gatehouse/internal/application"
)

// DecisionType discriminates the two RequireAuth outcomes.
type DecisionType int

const (
	DecisionAuthenticated DecisionType = iota
	DecisionRedirect
)

// AuthDecision is the result of a session check: either an authenticated
// user for downstream handlers, or a ready-to-write redirect. Callers branch
// on Type explicitly; nothing here writes to the response or panics.
type AuthDecision struct {
	Type      DecisionType
	User      application.UserResponse
	SessionID uuid.UUID
	Status    int
	Location  string
}

func redirectDecision() AuthDecision {
	return AuthDecision{
		Type:     DecisionRedirect,
		Status:   http.StatusSeeOther,
		Location: "/auth/login",
	}
}

// RequireAuth extracts the environment-appropriate session cookie and asks
// the current-user use case to validate it. Absent cookie, unknown session,
// and expired session all collapse into the same login redirect.
func (h *Handler) RequireAuth(r *http.Request) AuthDecision {
	sessionID, ok := h.cookies.sessionIDFromRequest(r)
	if !ok {
		return redirectDecision()
	}

	result := h.service.GetCurrentUser(r.Context(), sessionID)
	if !result.Success() {
		logHTTPOperationError(r.Context(), "require_auth", http.StatusSeeOther, errorCode(result.Err()), result.Err())
		return redirectDecision()
	}

	return AuthDecision{
		Type:      DecisionAuthenticated,
		User:      result.Value(),
		SessionID: sessionID,
	}
}

type authCtxKey string

const (
	ctxKeyUser      authCtxKey = "current_user"
	ctxKeySessionID authCtxKey = "session_id"
)

// requireAuthMiddleware adapts the RequireAuth decision to the chi chain:
// the redirect variant short-circuits, the authenticated variant exposes the
// user through the request context.
func (h *Handler) requireAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := h.RequireAuth(r)
		if decision.Type == DecisionRedirect {
			http.Redirect(w, r, decision.Location, decision.Status)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUser, decision.User)
		ctx = context.WithValue(ctx, ctxKeySessionID, decision.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) (application.UserResponse, bool) {
	v := ctx.Value(ctxKeyUser)
	user, ok := v.(application.UserResponse)
	return user, ok
}

func sessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(ctxKeySessionID)
	id, ok := v.(uuid.UUID)
	return id, ok
}
