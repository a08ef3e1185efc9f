// internal/app/features/adminusers/handler.go
package adminusers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/clubstack/memberhub/internal/app/identity"
	userstore "github.com/clubstack/memberhub/internal/app/store/users"
	"github.com/clubstack/memberhub/internal/app/system/apperr"
	"github.com/clubstack/memberhub/internal/app/system/auditlog"
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/clubstack/memberhub/internal/app/system/htmlsanitize"
	"github.com/clubstack/memberhub/internal/app/system/inputval"
	"github.com/clubstack/memberhub/internal/app/system/normalize"
	"github.com/clubstack/memberhub/internal/app/system/passwords"
	"github.com/clubstack/memberhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves admin user provisioning and listing.
type Handler struct {
	users    *userstore.Store
	accounts *identity.Store
	audit    *auditlog.Logger
	logger   *zap.Logger
}

// NewHandler creates a new adminusers handler.
func NewHandler(users *userstore.Store, accounts *identity.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{users: users, accounts: accounts, audit: audit, logger: logger}
}

// CreateRequest is the payload for HandleCreate.
type CreateRequest struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Location   string `json:"location"`
}

// CreateResponse reports the created user's public fields and the
// temporary password. The password is returned exactly once; it is
// never stored in clear.
type CreateResponse struct {
	Success      bool     `json:"success"`
	User         userView `json:"user"`
	TempPassword string   `json:"temporaryPassword"`
}

// HandleCreate provisions a new account with a generated temporary
// password, writes the matching user record, and logs the event.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentUser(r)
	if !ok {
		apperr.WriteJSON(w, apperr.New(apperr.Unauthenticated, "User must be authenticated"))
		return
	}
	if caller.Role != models.RoleAdmin {
		apperr.WriteJSON(w, apperr.New(apperr.PermissionDenied, "Only admins can create users"))
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "Request body must be valid JSON"))
		return
	}
	if missing := inputval.FirstMissing(map[string]string{
		"email":     req.Email,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"role":      req.Role,
	}, "email", "firstName", "lastName", "role"); missing != "" {
		apperr.WriteJSON(w, apperr.Newf(apperr.InvalidArgument, "Missing required field: %s", missing))
		return
	}
	if !inputval.IsValidEmail(req.Email) {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "Email address is not valid"))
		return
	}
	req.Role = normalize.Role(req.Role)
	if !models.IsValidRole(req.Role) {
		apperr.WriteJSON(w, apperr.Newf(apperr.InvalidArgument, "Role must be one of: %s", models.AllowedRolesLabel()))
		return
	}

	resp, err := h.create(r.Context(), caller, req)
	if err != nil {
		h.logger.Error("create user",
			zap.String("email", req.Email),
			zap.String("changed_by", caller.ID),
			zap.Error(err),
		)
		apperr.WriteJSON(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) create(ctx context.Context, caller *auth.SessionUser, req CreateRequest) (*CreateResponse, error) {
	firstName := htmlsanitize.Strip(req.FirstName)
	lastName := htmlsanitize.Strip(req.LastName)
	department := htmlsanitize.Strip(req.Department)
	location := htmlsanitize.Strip(req.Location)

	tempPassword, err := passwords.NewTemporary()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to generate temporary password", err)
	}

	acct, err := h.accounts.Create(ctx, req.Email, tempPassword, firstName+" "+lastName)
	if err == identity.ErrDuplicateEmail {
		return nil, apperr.New(apperr.InvalidArgument, "An account with this email already exists")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create user", err)
	}

	if _, err := h.accounts.SetRoleClaim(ctx, acct.UID, req.Role); err != nil {
		h.cleanupAccount(ctx, acct.UID)
		return nil, apperr.Wrap(apperr.Internal, "Failed to create user", err)
	}

	rec, err := h.users.Create(ctx, models.User{
		UID:        acct.UID,
		Email:      acct.Email,
		FirstName:  firstName,
		LastName:   lastName,
		Role:       req.Role,
		Department: department,
		Location:   location,
		Provider:   "password",
	})
	if err != nil {
		h.cleanupAccount(ctx, acct.UID)
		return nil, apperr.Wrap(apperr.Internal, "Failed to create user", err)
	}

	h.audit.UserCreated(ctx, caller.ID, caller.Email, acct.UID, acct.Email, map[string]string{
		"firstName":  firstName,
		"lastName":   lastName,
		"role":       req.Role,
		"department": department,
		"location":   location,
	})

	return &CreateResponse{Success: true, User: viewOf(rec), TempPassword: tempPassword}, nil
}

// cleanupAccount backs out a half-created account so a failed request
// leaves no identity without a user record.
func (h *Handler) cleanupAccount(ctx context.Context, uid string) {
	if err := h.accounts.Delete(ctx, uid); err != nil {
		h.logger.Error("cleanup orphaned account", zap.String("uid", uid), zap.Error(err))
	}
}

// userView is the JSON shape of one user in the admin listing.
type userView struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Department  string `json:"department,omitempty"`
	Location    string `json:"location,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func viewOf(u models.User) userView {
	return userView{
		UID:         u.UID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Department:  u.Department,
		Location:    u.Location,
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// HandleList returns every user record, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentUser(r)
	if !ok {
		apperr.WriteJSON(w, apperr.New(apperr.Unauthenticated, "User must be authenticated"))
		return
	}
	if caller.Role != models.RoleAdmin {
		apperr.WriteJSON(w, apperr.New(apperr.PermissionDenied, "Only admins can list users"))
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("list users", zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to list users", err))
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, viewOf(u))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"users": views})
}
