// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// MountRoutes registers the logout endpoint on the supplied router.
// The handler succeeds quietly for anonymous callers, so no session
// middleware is applied.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/api/logout", h.HandleLogout)
}
