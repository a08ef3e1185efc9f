// internal/app/features/logout/handler.go
package logout

import (
	"encoding/json"
	"net/http"

	"github.com/clubstack/memberhub/internal/app/system/auditlog"
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler clears the session.
type Handler struct {
	sessions *auth.SessionManager
	audit    *auditlog.Logger
	logger   *zap.Logger
}

// NewHandler creates a new logout handler.
func NewHandler(sessions *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{sessions: sessions, audit: audit, logger: logger}
}

// HandleLogout clears the session cookie. Signing out while already
// signed out succeeds quietly.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.CurrentUser(r); ok {
		h.audit.Logout(r.Context(), r, user.ID, user.Email)
	}
	if err := h.sessions.SignOut(w, r); err != nil {
		h.logger.Warn("clear session", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
}
