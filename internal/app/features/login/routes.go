// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// MountRoutes registers the password authentication endpoints on the
// supplied router. Both are anonymous by nature.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/api/login", h.HandleLogin)
	r.Post("/api/signup", h.HandleSignup)
}
