// internal/app/features/executive/handler.go
package executive

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clubstack/memberhub/internal/app/store/activities"
	userstore "github.com/clubstack/memberhub/internal/app/store/users"
	"github.com/clubstack/memberhub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// recentActivityLimit caps the activity feed on the overview.
const recentActivityLimit = 10

// Handler serves the executive overview: the team roster and the
// recent activity feed.
type Handler struct {
	users      *userstore.Store
	activities *activities.Store
	logger     *zap.Logger
}

// NewHandler creates a new executive handler.
func NewHandler(users *userstore.Store, acts *activities.Store, logger *zap.Logger) *Handler {
	return &Handler{users: users, activities: acts, logger: logger}
}

type memberView struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Department  string `json:"department,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type activityView struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	UserName    string `json:"userName,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// ServeOverview returns the member/executive roster (newest first)
// and the ten most recent activities.
func (h *Handler) ServeOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	team, err := h.users.ListTeam(ctx)
	if err != nil {
		h.logger.Error("list team", zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to load overview", err))
		return
	}

	recent, err := h.activities.ListRecent(ctx, recentActivityLimit)
	if err != nil {
		h.logger.Error("list activities", zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to load overview", err))
		return
	}

	members := make([]memberView, 0, len(team))
	for _, u := range team {
		name := u.DisplayName
		if name == "" {
			name = u.FullName()
		}
		members = append(members, memberView{
			UID:         u.UID,
			DisplayName: name,
			Email:       u.Email,
			Role:        u.Role,
			Department:  u.Department,
			CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	feed := make([]activityView, 0, len(recent))
	for _, a := range recent {
		feed = append(feed, activityView{
			ID:          a.ID.Hex(),
			Type:        a.Type,
			Title:       a.Title,
			Description: a.Description,
			UserName:    a.UserName,
			Timestamp:   a.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"members":    members,
		"activities": feed,
	})
}
