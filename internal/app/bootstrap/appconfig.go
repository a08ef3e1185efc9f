// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request size limits. AppConfig
// is where everything specific to MemberHub lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: memberhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Bearer token configuration for the SPA and API clients
	JWTSecret string        // HMAC signing secret for issued tokens
	JWTIssuer string        // Issuer claim for issued tokens
	TokenTTL  time.Duration // Lifetime of issued tokens

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL used to build the OAuth callback (e.g., "https://portal.example.org")
	BaseURL string

	// Audit logging destinations per event family.
	// Values: "all" (db+log), "db", "log", or "off".
	AuditLogRoles string
	AuditLogAdmin string
	AuditLogAuth  string

	// SuperAdmin bootstrap: email promoted (or provisioned) to admin on startup.
	SuperAdminEmail string

	// Database timeout overrides. Zero keeps the built-in defaults.
	DBTimeoutShort time.Duration
	DBTimeoutLong  time.Duration

	// OAuth state token lifetime
	OAuthStateTTL time.Duration
}
