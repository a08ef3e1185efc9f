// internal/app/features/auditlog/handler.go
package auditlog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/clubstack/memberhub/internal/app/store/roleaudit"
	"github.com/clubstack/memberhub/internal/app/store/systemlogs"
	"github.com/clubstack/memberhub/internal/app/system/apperr"
	"github.com/clubstack/memberhub/internal/domain/models"
	"go.uber.org/zap"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Handler serves the admin audit views over the roleAudit and
// systemLogs collections.
type Handler struct {
	roles  *roleaudit.Store
	system *systemlogs.Store
	logger *zap.Logger
}

// NewHandler creates a new auditlog handler.
func NewHandler(roles *roleaudit.Store, system *systemlogs.Store, logger *zap.Logger) *Handler {
	return &Handler{roles: roles, system: system, logger: logger}
}

// parseLimit reads ?limit=, clamped to [1, maxLimit].
func parseLimit(r *http.Request) int64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

type roleEntryView struct {
	ID             string `json:"id"`
	TargetUID      string `json:"targetUid"`
	ChangedBy      string `json:"changedBy"`
	ChangedByEmail string `json:"changedByEmail,omitempty"`
	OldRole        string `json:"oldRole"`
	NewRole        string `json:"newRole"`
	Timestamp      string `json:"timestamp"`
}

// ServeRoleAudit returns recent role changes, newest first. With
// ?uid= the listing is restricted to one target account.
func (h *Handler) ServeRoleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := parseLimit(r)

	var (
		list []models.RoleAuditEntry
		err  error
	)
	if uid := r.URL.Query().Get("uid"); uid != "" {
		list, err = h.roles.ListByTarget(ctx, uid, limit)
	} else {
		list, err = h.roles.ListRecent(ctx, limit)
	}
	if err != nil {
		h.logger.Error("list role audit", zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to load audit trail", err))
		return
	}

	views := make([]roleEntryView, 0, len(list))
	for _, e := range list {
		views = append(views, roleEntryView{
			ID:             e.ID.Hex(),
			TargetUID:      e.TargetUID,
			ChangedBy:      e.ChangedBy,
			ChangedByEmail: e.ChangedByEmail,
			OldRole:        e.OldRole,
			NewRole:        e.NewRole,
			Timestamp:      e.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"entries": views})
}

type systemEntryView struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	UserID         string            `json:"userId,omitempty"`
	UserEmail      string            `json:"userEmail,omitempty"`
	ChangedBy      string            `json:"changedBy,omitempty"`
	ChangedByEmail string            `json:"changedByEmail,omitempty"`
	Timestamp      string            `json:"timestamp"`
	Details        map[string]string `json:"details,omitempty"`
}

// ServeSystemLogs returns recent operational events, newest first.
// With ?type= the listing is restricted to one event type.
func (h *Handler) ServeSystemLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := parseLimit(r)

	var (
		list []models.SystemLogEntry
		err  error
	)
	if eventType := r.URL.Query().Get("type"); eventType != "" {
		list, err = h.system.ListByType(ctx, eventType, limit)
	} else {
		list, err = h.system.ListRecent(ctx, limit)
	}
	if err != nil {
		h.logger.Error("list system logs", zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to load system logs", err))
		return
	}

	views := make([]systemEntryView, 0, len(list))
	for _, e := range list {
		views = append(views, systemEntryView{
			ID:             e.ID.Hex(),
			Type:           e.Type,
			UserID:         e.UserID,
			UserEmail:      e.UserEmail,
			ChangedBy:      e.ChangedBy,
			ChangedByEmail: e.ChangedByEmail,
			Timestamp:      e.Timestamp.UTC().Format(time.RFC3339),
			Details:        e.Details,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"entries": views})
}
