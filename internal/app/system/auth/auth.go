// internal/app/system/auth/auth.go

// Package auth owns the caller-identity context for every request: the
// cookie session, the bearer-token fallback, and the middleware that
// resolves the current {account, role} pair.
//
// The role is re-resolved from the user record on every request (via
// the UserFetcher) rather than trusted from the session cookie, so role
// changes, disabled accounts, and deletions take effect immediately.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/clubstack/memberhub/internal/app/system/apperr"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
	nameKey   = "user_name"
	emailKey  = "user_email"
	roleKey   = "user_role"
)

// SessionUser is the resolved caller identity injected into r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// UserFetcher loads fresh user data for a session's account ID.
// Returning nil means the caller should be treated as signed out
// (account missing, disabled, or unreadable).
type UserFetcher interface {
	FetchUser(ctx context.Context, uid string) *SessionUser
}

// TokenVerifier validates a bearer identity token and returns the
// caller it identifies.
type TokenVerifier interface {
	VerifyToken(raw string) (*SessionUser, error)
}

// SessionManager wraps the cookie store plus the optional fetcher and
// token verifier. One instance is built at startup and shared.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	fetcher UserFetcher
	tokens  TokenVerifier
	log     *zap.Logger
}

// NewSessionManager builds the cookie session store. The `secure` flag
// controls Secure cookies and the SameSite mode; local dev over http
// needs secure=false so the browser accepts the cookie.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetUserFetcher installs the per-request user resolver.
func (m *SessionManager) SetUserFetcher(f UserFetcher) { m.fetcher = f }

// SetTokenVerifier installs the bearer-token fallback for API clients
// that authenticate with an identity token instead of a cookie.
func (m *SessionManager) SetTokenVerifier(v TokenVerifier) { m.tokens = v }

// GetSession returns the request's session, creating a new one if none
// exists yet.
func (m *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.name)
}

// session returns the request's session, falling back to a fresh one
// when the cookie cannot be decoded (stale key, tampering). Decode
// failures are expected after a key rotation and only warrant a warn.
func (m *SessionManager) session(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error, using fresh session", zap.Error(err))
		}
	}
	return sess
}

// SignIn records the user in the session cookie. The name/email/role
// values are a cache for when no fetcher is configured; with a fetcher
// only the ID matters.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess := m.session(r)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[nameKey] = u.Name
	sess.Values[emailKey] = u.Email
	sess.Values[roleKey] = u.Role
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess := m.session(r)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the resolved caller into the request context.
// Resolution order: cookie session, then Authorization bearer token.
// With a fetcher configured, the user is re-fetched on every request so
// the role is never stale.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := m.resolve(r); u != nil {
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

func (m *SessionManager) resolve(r *http.Request) *SessionUser {
	sess := m.session(r)
	if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
		uid := getString(sess, userIDKey)
		if m.fetcher != nil {
			return m.fetcher.FetchUser(r.Context(), uid)
		}
		return &SessionUser{
			ID:    uid,
			Name:  getString(sess, nameKey),
			Email: getString(sess, emailKey),
			Role:  getString(sess, roleKey),
		}
	}

	raw := bearerToken(r)
	if raw == "" || m.tokens == nil {
		return nil
	}
	u, err := m.tokens.VerifyToken(raw)
	if err != nil {
		m.log.Debug("bearer token rejected", zap.Error(err))
		return nil
	}
	// Token claims can be minutes old; prefer the fresh record.
	if m.fetcher != nil {
		if fresh := m.fetcher.FetchUser(r.Context(), u.ID); fresh != nil {
			return fresh
		}
		return nil
	}
	return u
}

// RequireSignedIn ensures a caller is present, answering 401 JSON
// otherwise.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			apperr.WriteJSON(w, apperr.New(apperr.Unauthenticated, "You must be signed in to call this endpoint."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the caller holds one of the allowed roles,
// answering 401/403 JSON otherwise.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				apperr.WriteJSON(w, apperr.New(apperr.Unauthenticated, "You must be signed in to call this endpoint."))
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				apperr.WriteJSON(w, apperr.New(apperr.PermissionDenied, "You don't have permission to call this endpoint."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the resolved caller and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user directly into the request context,
// bypassing session middleware. For handler tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
