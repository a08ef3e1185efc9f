// internal/app/features/adminusers/routes.go
package adminusers

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for admin user management. The handlers
// check authentication and the admin requirement themselves so the
// error kinds stay distinct.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/users", h.HandleList)
	r.Post("/users", h.HandleCreate)
	return r
}
