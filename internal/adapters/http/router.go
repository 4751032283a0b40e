package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gatehouse/gatehouse/internal/application"
)

// Handler bundles the auth use cases with the cookie policy for the
// deployment environment.
type Handler struct {
	service *application.Service
	cookies CookieOptions
}

func NewHandler(service *application.Service, cookies CookieOptions) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// NewRouter wires the HTTP surface: public auth pages, the
// authenticated /app subtree, and liveness probes.
func NewRouter(h *Handler, ready func() error) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(loggingMiddleware)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", h.showLogin)
		r.Post("/login", h.login)
		r.Get("/register", h.showRegister)
		r.Post("/register", h.register)
		r.Post("/logout", h.logout)
	})

	r.Route("/app", func(r chi.Router) {
		r.Use(h.requireAuthMiddleware)
		r.Get("/", h.dashboard)
		r.Get("/security", h.securityActivity)
	})

	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", handleReadyz(ready))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app/", http.StatusSeeOther)
	})

	return r
}
