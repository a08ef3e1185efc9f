// internal/app/features/login/handler.go
package login

import (
	"encoding/json"
	"net/http"

	"github.com/clubstack/memberhub/internal/app/identity"
	userstore "github.com/clubstack/memberhub/internal/app/store/users"
	"github.com/clubstack/memberhub/internal/app/system/apperr"
	"github.com/clubstack/memberhub/internal/app/system/auditlog"
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/clubstack/memberhub/internal/app/system/htmlsanitize"
	"github.com/clubstack/memberhub/internal/app/system/inputval"
	"github.com/clubstack/memberhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves password authentication: sign-in and self-service
// registration.
type Handler struct {
	accounts *identity.Store
	users    *userstore.Store
	tokens   *identity.Tokens
	sessions *auth.SessionManager
	audit    *auditlog.Logger
	logger   *zap.Logger
}

// NewHandler creates a new login handler.
func NewHandler(accounts *identity.Store, users *userstore.Store, tokens *identity.Tokens, sessions *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		audit:    audit,
		logger:   logger,
	}
}

// LoginRequest is the payload for HandleLogin.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the payload for HandleSignup.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// sessionResponse is the JSON returned after any successful
// authentication. Role is resolved from the user record so a change
// made while the user was signed out is already in effect here.
type sessionResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Token       string `json:"token"`
}

// HandleLogin authenticates an email/password pair, establishes the
// session cookie, and returns a bearer token for cookieless clients.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "Request body must be valid JSON"))
		return
	}
	if req.Email == "" || req.Password == "" {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "email and password are required"))
		return
	}

	ctx := r.Context()
	acct, err := h.accounts.VerifyPassword(ctx, req.Email, req.Password)
	if err == identity.ErrBadCredentials || err == identity.ErrDisabled {
		h.audit.LoginFailed(ctx, r, req.Email, err.Error())
		apperr.WriteJSON(w, apperr.New(apperr.Unauthenticated, "Invalid email or password"))
		return
	}
	if err != nil {
		h.logger.Error("verify password", zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to sign in", err))
		return
	}

	resp, err := h.establish(w, r, acct)
	if err != nil {
		h.logger.Error("establish session", zap.String("uid", acct.UID), zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to sign in", err))
		return
	}

	h.audit.LoginSuccess(ctx, r, acct.UID, acct.Email)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleSignup registers a new member account and signs it in.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "Request body must be valid JSON"))
		return
	}
	if missing := inputval.FirstMissing(map[string]string{
		"email":     req.Email,
		"password":  req.Password,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
	}, "email", "password", "firstName", "lastName"); missing != "" {
		apperr.WriteJSON(w, apperr.Newf(apperr.InvalidArgument, "Missing required field: %s", missing))
		return
	}
	if !inputval.IsValidEmail(req.Email) {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "Email address is not valid"))
		return
	}
	if len(req.Password) < 8 {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "Password must be at least 8 characters"))
		return
	}

	ctx := r.Context()
	firstName := htmlsanitize.Strip(req.FirstName)
	lastName := htmlsanitize.Strip(req.LastName)

	acct, err := h.accounts.Create(ctx, req.Email, req.Password, firstName+" "+lastName)
	if err == identity.ErrDuplicateEmail {
		apperr.WriteJSON(w, apperr.New(apperr.InvalidArgument, "An account with this email already exists"))
		return
	}
	if err != nil {
		h.logger.Error("create account", zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to sign up", err))
		return
	}

	if _, err := h.users.Create(ctx, models.User{
		UID:       acct.UID,
		Email:     acct.Email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleMember,
		Provider:  "password",
	}); err != nil {
		h.logger.Error("create user record", zap.String("uid", acct.UID), zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to sign up", err))
		return
	}

	resp, err := h.establish(w, r, acct)
	if err != nil {
		h.logger.Error("establish session", zap.String("uid", acct.UID), zap.Error(err))
		apperr.WriteJSON(w, apperr.Wrap(apperr.Internal, "Failed to sign up", err))
		return
	}

	h.audit.Signup(ctx, r, acct.UID, acct.Email)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

// establish resolves the effective role, sets the session cookie, and
// issues a bearer token. The users collection record is created on
// demand for accounts that predate it.
func (h *Handler) establish(w http.ResponseWriter, r *http.Request, acct *models.Account) (*sessionResponse, error) {
	ctx := r.Context()

	u, err := h.users.EnsureDefault(ctx, acct.UID, acct.Email)
	if err != nil {
		return nil, err
	}
	if err := h.users.TouchLogin(ctx, acct.UID, "", ""); err != nil {
		h.logger.Warn("record login time", zap.String("uid", acct.UID), zap.Error(err))
	}

	role := u.Role
	if role == "" {
		role = models.RoleMember
	}
	displayName := u.DisplayName
	if displayName == "" {
		displayName = acct.DisplayName
	}

	su := &auth.SessionUser{
		ID:    acct.UID,
		Name:  displayName,
		Email: acct.Email,
		Role:  role,
	}
	if err := h.sessions.SignIn(w, r, su); err != nil {
		return nil, err
	}

	token, err := h.tokens.Issue(acct, role)
	if err != nil {
		return nil, err
	}

	return &sessionResponse{
		UID:         acct.UID,
		Email:       acct.Email,
		DisplayName: displayName,
		Role:        role,
		Token:       token,
	}, nil
}
