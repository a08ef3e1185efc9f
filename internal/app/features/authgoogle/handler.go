// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/clubstack/memberhub/internal/app/identity"
	"github.com/clubstack/memberhub/internal/app/store/oauthstate"
	userstore "github.com/clubstack/memberhub/internal/app/store/users"
	"github.com/clubstack/memberhub/internal/app/system/auditlog"
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/clubstack/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler handles Google OAuth authentication.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger
	Accounts   *identity.Store
	Users      *userstore.Store
	StateStore *oauthstate.Store

	// OAuth configuration
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "https://portal.example.org/auth/google/callback"
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(
	accounts *identity.Store,
	users *userstore.Store,
	stateStore *oauthstate.Store,
	sessionMgr *auth.SessionManager,
	audit *auditlog.Logger,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:          logger,
		SessionMgr:   sessionMgr,
		AuditLog:     audit,
		Accounts:     accounts,
		Users:        users,
		StateStore:   stateStore,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin initiates the Google OAuth flow by redirecting to
// Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	returnURL := r.URL.Query().Get("return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.StateStore.Save(ctx, state, returnURL); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)

	h.Log.Debug("initiating Google OAuth flow",
		zap.String("redirect_url", url),
		zap.String("return_url", returnURL))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback handles the OAuth callback from Google: it exchanges
// the code for tokens, fetches user info, provisions the account and
// user record on first sign-in, and creates the session.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, err := h.StateStore.Consume(ctxTimeout, state)
	if err == oauthstate.ErrNotFound {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	h.Log.Debug("Google user info fetched",
		zap.String("google_id", googleUser.ID),
		zap.String("email", googleUser.Email))

	acct, err := h.ensureAccount(ctxTimeout, googleUser)
	if err == identity.ErrDisabled {
		http.Redirect(w, r, "/login?error=account_disabled", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.Log.Error("failed to provision Google account", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	h.createSessionAndRedirect(w, r, acct.UID, googleUser, returnURL)
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// ensureAccount finds the account matching the Google identity,
// creating one on first sign-in. The matching user record is also
// created with the member default when absent.
func (h *Handler) ensureAccount(ctx context.Context, gu *googleUserInfo) (acct *accountResult, err error) {
	existing, err := h.Accounts.GetByEmail(ctx, gu.Email)
	if err == nil {
		if existing.Disabled {
			return nil, identity.ErrDisabled
		}
		return &accountResult{UID: existing.UID, Email: existing.Email}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	created, err := h.Accounts.CreateFederated(ctx, gu.Email, gu.Name, "google")
	if err == identity.ErrDuplicateEmail {
		// Lost a race with a concurrent first sign-in.
		existing, lookupErr := h.Accounts.GetByEmail(ctx, gu.Email)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return &accountResult{UID: existing.UID, Email: existing.Email}, nil
	}
	if err != nil {
		return nil, err
	}
	return &accountResult{UID: created.UID, Email: created.Email}, nil
}

type accountResult struct {
	UID   string
	Email string
}

// createSessionAndRedirect creates an authenticated session and redirects to the destination.
func (h *Handler) createSessionAndRedirect(w http.ResponseWriter, r *http.Request, uid string, gu *googleUserInfo, returnURL string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.EnsureDefault(ctx, uid, gu.Email)
	if err != nil {
		h.Log.Error("ensure user record", zap.String("uid", uid), zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	if err := h.Users.TouchLogin(ctx, uid, gu.Name, gu.Picture); err != nil {
		h.Log.Warn("record login time", zap.String("uid", uid), zap.Error(err))
	}
	// Keep the account's cached display name in step with the
	// provider's current profile.
	if err := h.Accounts.UpdateDisplayName(ctx, uid, gu.Name); err != nil {
		h.Log.Warn("refresh display name", zap.String("uid", uid), zap.Error(err))
	}

	role := u.Role
	displayName := u.DisplayName
	if displayName == "" {
		displayName = gu.Name
	}

	su := &auth.SessionUser{
		ID:    uid,
		Name:  displayName,
		Email: gu.Email,
		Role:  role,
	}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("uid", uid))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	h.AuditLog.FederatedAuth(r.Context(), r, uid, gu.Email, "google")

	h.Log.Info("user logged in via Google OAuth",
		zap.String("uid", uid),
		zap.String("email", gu.Email))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/"), http.StatusSeeOther)
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
