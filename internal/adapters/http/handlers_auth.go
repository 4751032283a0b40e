package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gatehouse/gatehouse/internal/application"
)

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "login.html.tmpl", loginPageData{
		RedirectTo: safeRedirectOrDefault(r.URL.Query().Get("redirect_to")),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, "login.html.tmpl", loginPageData{
			Error: "Please check the submitted values.",
		})
		return
	}

	req := application.LoginRequest{
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
		RedirectTo: r.PostFormValue("redirect_to"),
		IPAddress:  readIP(r),
		UserAgent:  r.UserAgent(),
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		status := statusForAuthError(err)
		logHTTPOperationError(r.Context(), "login", status, errorCode(err), err)
		renderPage(w, status, "login.html.tmpl", loginPageData{
			Error:      formMessageFor(err),
			Email:      req.Email,
			RedirectTo: safeRedirectOrDefault(req.RedirectTo),
		})
		return
	}

	h.cookies.setAuthCookies(w, result.SessionID, result.CSRFToken, h.service.SessionTTL())
	http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
}

func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "register.html.tmpl", registerPageData{
		RedirectTo: safeRedirectOrDefault(r.URL.Query().Get("redirect_to")),
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, "register.html.tmpl", registerPageData{
			Error: "Please check the submitted values.",
		})
		return
	}

	req := application.RegisterRequest{
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		RedirectTo:      r.PostFormValue("redirect_to"),
		IPAddress:       readIP(r),
		UserAgent:       r.UserAgent(),
	}

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		status := statusForAuthError(err)
		logHTTPOperationError(r.Context(), "register", status, errorCode(err), err)
		renderPage(w, status, "register.html.tmpl", registerPageData{
			Error:      formMessageFor(err),
			Email:      req.Email,
			RedirectTo: safeRedirectOrDefault(req.RedirectTo),
		})
		return
	}

	h.cookies.setAuthCookies(w, result.SessionID, result.CSRFToken, h.service.SessionTTL())
	http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
}

// logout tears down the session. The submitted CSRF token must match the one
// stored with the session; a missing or stale session cookie still clears
// cookies and redirects, so logout is idempotent.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.cookies.sessionIDFromRequest(r)
	if !ok {
		h.cookies.clearAuthCookies(w)
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	expected, err := h.service.SessionCSRFToken(r.Context(), sessionID)
	if err != nil {
		h.cookies.clearAuthCookies(w)
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	submitted := r.PostFormValue("csrf_token")
	if submitted == "" {
		submitted = r.Header.Get("X-CSRF-Token")
	}
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) != 1 {
		logHTTPOperationError(r.Context(), "logout", http.StatusForbidden, "CSRF_MISMATCH", nil)
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		logHTTPOperationError(r.Context(), "logout", http.StatusInternalServerError, errorCode(err), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.cookies.clearAuthCookies(w)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}
