// internal/app/features/roles/routes.go
package roles

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for role management endpoints. No role
// middleware is applied here: the handler checks authentication and
// the admin requirement itself so the error kinds stay distinct.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/assign", h.HandleAssign)
	return r
}
