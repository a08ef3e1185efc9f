// internal/app/features/session/handler.go
package session

import (
	"encoding/json"
	"net/http"

	"github.com/clubstack/memberhub/internal/app/system/auth"
)

// Handler reports the current session state. The client keeps its
// auth context in sync by polling this after page loads.
type Handler struct{}

// NewHandler creates a new session handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ServeSession returns JSON with the current user's authentication
// status, identity, and effective role.
//
// Response format:
//
//	{ "isAuthenticated": bool, "uid": "...", "name": "...", "email": "...", "role": "..." }
//
// The role is re-resolved by the session middleware on every request,
// so this never reports a role the user no longer holds.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isAuthenticated": false,
			"uid":             "",
			"name":            "",
			"email":           "",
			"role":            "",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"isAuthenticated": true,
		"uid":             user.ID,
		"name":            user.Name,
		"email":           user.Email,
		"role":            user.Role,
	})
}
