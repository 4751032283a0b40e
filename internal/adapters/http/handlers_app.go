package http

import (
	"encoding/json"
	"net/http"

	"github.com/gatehouse/gatehouse/internal/application"
	"github.com/gatehouse/gatehouse/internal/domain"
)

const loginHistoryLimit = 20

type dashboardPageData struct {
	User      application.UserResponse
	CSRFToken string
}

type securityPageData struct {
	User     application.UserResponse
	Attempts []domain.LoginAttempt
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	var csrfToken string
	if sessionID, ok := sessionIDFromContext(r.Context()); ok {
		token, err := h.service.SessionCSRFToken(r.Context(), sessionID)
		if err != nil {
			logHTTPOperationError(r.Context(), "dashboard", http.StatusInternalServerError, errorCode(err), err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		csrfToken = token
	}

	renderPage(w, http.StatusOK, "dashboard.html.tmpl", dashboardPageData{
		User:      user,
		CSRFToken: csrfToken,
	})
}

func (h *Handler) securityActivity(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	attempts, err := h.service.ListLoginHistory(r.Context(), user.UserID, loginHistoryLimit)
	if err != nil {
		logHTTPOperationError(r.Context(), "security_activity", http.StatusInternalServerError, errorCode(err), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderPage(w, http.StatusOK, "security.html.tmpl", securityPageData{
		User:     user,
		Attempts: attempts,
	})
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeProbe(w, http.StatusOK, "ok")
}

// handleReadyz reports whether downstream dependencies answer; ready is nil
// in tests that have no real backends.
func handleReadyz(ready func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(); err != nil {
				logHTTPOperationError(r.Context(), "readyz", http.StatusServiceUnavailable, "NOT_READY", err)
				writeProbe(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		writeProbe(w, http.StatusOK, "ok")
	}
}

func writeProbe(w http.ResponseWriter, statusCode int, status string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
