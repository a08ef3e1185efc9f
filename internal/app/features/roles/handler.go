// internal/app/features/roles/handler.go
package roles

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clubstack/memberhub/internal/app/identity"
	userstore "github.com/clubstack/memberhub/internal/app/store/users"
	"github.com/clubstack/memberhub/internal/app/system/apperr"
	"github.com/clubstack/memberhub/internal/app/system/auditlog"
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/clubstack/memberhub/internal/app/system/normalize"
	"github.com/clubstack/memberhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves role assignment for administrators.
type Handler struct {
	users    *userstore.Store
	accounts *identity.Store
	audit    *auditlog.Logger
	logger   *zap.Logger
}

// NewHandler creates a new roles handler.
func NewHandler(users *userstore.Store, accounts *identity.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{users: users, accounts: accounts, audit: audit, logger: logger}
}

// AssignRequest is the payload for HandleAssign.
type AssignRequest struct {
	UID  string `json:"uid"`
	Role string `json:"role"`
}

// HandleAssign sets the target account's role: the role claim on the
// identity account first, then the user record, then the audit trail.
// Preconditions are checked in a fixed order so a request failing
// several of them always gets the same error.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentUser(r)
	if !ok {
		apperr.WriteJSON(w, apperr.New(apperr.Unauthenticated, "User must be authenticated"))
		return
	}
	if caller.Role != models.RoleAdmin {
		apperr.WriteJSON(w, apperr.New(apperr.PermissionDenied, "Only admins can modify user roles"))
		return
	}

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "Request body must be valid JSON"))
		return
	}
	if req.UID == "" || req.Role == "" {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "uid and role are required"))
		return
	}
	req.Role = normalize.Role(req.Role)
	if !models.IsValidRole(req.Role) {
		apperr.WriteJSON(w, apperr.Newf(apperr.InvalidArgument, "Role must be one of: %s", models.AllowedRolesLabel()))
		return
	}

	if err := h.assign(r.Context(), caller, req.UID, req.Role); err != nil {
		h.logger.Error("assign role",
			zap.String("target_uid", req.UID),
			zap.String("role", req.Role),
			zap.String("changed_by", caller.ID),
			zap.Error(err),
		)
		apperr.WriteJSON(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Role " + req.Role + " assigned to user " + req.UID,
	})
}

// assign performs the three writes in order. A user record failure
// rolls the role claim back so the account and record never disagree
// for longer than this request.
func (h *Handler) assign(ctx context.Context, caller *auth.SessionUser, targetUID, role string) error {
	// Old role for the audit entry, read before anything changes.
	// A missing record is recorded as "unknown", not as the member
	// default, so the trail shows the record did not exist yet.
	oldRole := models.RoleUnknown
	if rec, err := h.users.GetByID(ctx, targetUID); err == nil {
		oldRole = rec.Role
		if oldRole == "" {
			oldRole = models.RoleMember
		}
	}

	prevClaim, err := h.accounts.SetRoleClaim(ctx, targetUID, role)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.InvalidArgument, "No account exists for the given uid")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to set role", err)
	}

	if err := h.users.SetRole(ctx, targetUID, role); err != nil {
		if _, revertErr := h.accounts.SetRoleClaim(ctx, targetUID, prevClaim); revertErr != nil {
			h.logger.Error("revert role claim after record write failure",
				zap.String("target_uid", targetUID),
				zap.Error(revertErr),
			)
		}
		return apperr.Wrap(apperr.Internal, "Failed to set role", err)
	}

	h.audit.RoleChanged(ctx, models.RoleAuditEntry{
		TargetUID:      targetUID,
		ChangedBy:      caller.ID,
		ChangedByEmail: caller.Email,
		OldRole:        oldRole,
		NewRole:        role,
	})
	return nil
}
