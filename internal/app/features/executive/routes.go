// internal/app/features/executive/routes.go
package executive

import (
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the executive overview. Executives
// and admins only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("executive", "admin"))

		pr.Get("/overview", h.ServeOverview)
	})

	return r
}
