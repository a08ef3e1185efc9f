// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the audit views. Admins only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		pr.Get("/roles", h.ServeRoleAudit)
		pr.Get("/system", h.ServeSystemLogs)
	})

	return r
}
