// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	adminusersfeature "github.com/clubstack/memberhub/internal/app/features/adminusers"
	auditlogfeature "github.com/clubstack/memberhub/internal/app/features/auditlog"
	authgooglefeature "github.com/clubstack/memberhub/internal/app/features/authgoogle"
	executivefeature "github.com/clubstack/memberhub/internal/app/features/executive"
	healthfeature "github.com/clubstack/memberhub/internal/app/features/health"
	loginfeature "github.com/clubstack/memberhub/internal/app/features/login"
	logoutfeature "github.com/clubstack/memberhub/internal/app/features/logout"
	rolesfeature "github.com/clubstack/memberhub/internal/app/features/roles"
	sessionfeature "github.com/clubstack/memberhub/internal/app/features/session"
	"github.com/clubstack/memberhub/internal/app/identity"
	"github.com/clubstack/memberhub/internal/app/store/activities"
	"github.com/clubstack/memberhub/internal/app/store/oauthstate"
	"github.com/clubstack/memberhub/internal/app/store/roleaudit"
	"github.com/clubstack/memberhub/internal/app/store/systemlogs"
	userstore "github.com/clubstack/memberhub/internal/app/store/users"
	"github.com/clubstack/memberhub/internal/app/system/auditlog"
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/clubstack/memberhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It creates the session manager, wires
// the per-request user fetcher and bearer-token verifier, builds the
// stores and the audit logger, and mounts every feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MemberHubMongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Stores shared by the features.
	accounts := identity.New(db)
	users := userstore.New(db)
	roleAudit := roleaudit.New(db)
	sysLogs := systemlogs.New(db)
	acts := activities.New(db)
	states := oauthstate.New(db, appCfg.OAuthStateTTL)

	// Set up the UserFetcher so LoadSessionUser resolves fresh user data
	// on each request. This ensures role changes and disabled accounts
	// take effect immediately instead of waiting for the cookie to expire.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(users, accounts, logger))

	// Bearer tokens are a fallback for API clients that do not carry the
	// session cookie.
	tokens, err := identity.NewTokens(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.TokenTTL)
	if err != nil {
		logger.Error("token signer init failed", zap.Error(err))
		return nil, err
	}
	sessionMgr.SetTokenVerifier(tokens)

	audit := auditlog.New(roleAudit, sysLogs, logger, auditlog.Config{
		Roles: appCfg.AuditLogRoles,
		Admin: appCfg.AuditLogAdmin,
		Auth:  appCfg.AuditLogAuth,
	})

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MemberHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication. Credential endpoints sit behind a per-IP limiter
	// to slow brute-force attempts.
	loginHandler := loginfeature.NewHandler(accounts, users, tokens, sessionMgr, audit, logger)
	loginLimiter := ratelimit.New(10, time.Minute)
	r.Group(func(gr chi.Router) {
		gr.Use(loginLimiter.Middleware)
		loginfeature.MountRoutes(gr, loginHandler)
	})

	logoutHandler := logoutfeature.NewHandler(sessionMgr, audit, logger)
	logoutfeature.MountRoutes(r, logoutHandler)

	googleHandler := authgooglefeature.NewHandler(accounts, users, states, sessionMgr, audit,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	if !googleHandler.IsConfigured() {
		logger.Info("Google OAuth not configured; /auth/google will redirect to login with an error")
	}
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Session mirror for the SPA
	sessionfeature.MountRoutes(r, sessionfeature.NewHandler())

	// Role management
	rolesHandler := rolesfeature.NewHandler(users, accounts, audit, logger)
	r.Mount("/api/roles", rolesfeature.Routes(rolesHandler))

	// Admin user management
	adminHandler := adminusersfeature.NewHandler(users, accounts, audit, logger)
	r.Mount("/api/admin", adminusersfeature.Routes(adminHandler))

	// Executive overview
	execHandler := executivefeature.NewHandler(users, acts, logger)
	r.Mount("/api/executive", executivefeature.Routes(execHandler, sessionMgr))

	// Audit views
	auditHandler := auditlogfeature.NewHandler(roleAudit, sysLogs, logger)
	r.Mount("/api/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

	return r, nil
}
