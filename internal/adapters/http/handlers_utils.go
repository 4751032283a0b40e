package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gatehouse/gatehouse/internal/domain"
)

func errorCode(err error) string {
	return domain.ErrorCode(err)
}

// statusForAuthError picks the response status for a failed form submission.
func statusForAuthError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAccountLocked), errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// formMessageFor maps a use-case failure to the message rendered back into
// the form. Credential failures stay deliberately generic so responses
// cannot be used to probe which emails have accounts.
func formMessageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, domain.ErrAccountLocked):
		return "Too many failed attempts. The account is temporarily locked."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please try again later."
	case errors.Is(err, domain.ErrEmailTaken):
		return "An account with that email already exists."
	case errors.Is(err, domain.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
		if msg == "" || msg == err.Error() {
			return "Please check the submitted values."
		}
		return strings.ToUpper(msg[:1]) + msg[1:] + "."
	default:
		return "Something went wrong. Please try again."
	}
}

// safeRedirectOrDefault validates a redirect target for rendering back into
// a form; anything rejected falls back to the application root.
func safeRedirectOrDefault(raw string) string {
	target, ok := domain.ValidateRedirectPath(raw)
	if !ok {
		return "/"
	}
	return target
}
