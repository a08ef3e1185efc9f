// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/clubstack/memberhub/internal/app/store/roleaudit"
	"github.com/clubstack/memberhub/internal/app/store/systemlogs"
	"github.com/clubstack/memberhub/internal/domain/models"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Roles controls logging for role assignment events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Roles string
	// Admin controls logging for admin action events (user creation).
	// Values as for Roles.
	Admin string
	// Auth controls logging for authentication events (login, logout, signup).
	// Values as for Roles.
	Auth string
}

// Logger records audit events to MongoDB (roleAudit and systemLogs
// collections) and mirrors them to structured logs.
type Logger struct {
	roles  *roleaudit.Store
	system *systemlogs.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(roles *roleaudit.Store, system *systemlogs.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		roles:  roles,
		system: system,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) enabled(setting, dest string) bool {
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return false
	}
	return setting == "all" || setting == dest
}

// RoleChanged records a role assignment in the roleAudit collection.
// If the logger is nil, this is a no-op (allows tests to use nil audit
// logger).
func (l *Logger) RoleChanged(ctx context.Context, entry models.RoleAuditEntry) {
	if l == nil {
		return
	}
	if l.enabled(l.config.Roles, "log") {
		l.zapLog.Info("audit event",
			zap.Bool("audit", true),
			zap.String("event_type", "role_changed"),
			zap.String("target_uid", entry.TargetUID),
			zap.String("changed_by", entry.ChangedBy),
			zap.String("old_role", entry.OldRole),
			zap.String("new_role", entry.NewRole),
		)
	}
	if l.enabled(l.config.Roles, "db") {
		if err := l.roles.Append(ctx, entry); err != nil {
			l.zapLog.Error("failed to store role audit entry",
				zap.Error(err),
				zap.String("target_uid", entry.TargetUID),
			)
		}
	}
}

// logSystem writes a systemLogs entry per the category setting,
// mirroring to zap.
func (l *Logger) logSystem(ctx context.Context, setting string, entry models.SystemLogEntry) {
	if l == nil {
		return
	}
	if l.enabled(setting, "log") {
		fields := []zap.Field{
			zap.Bool("audit", true),
			zap.String("event_type", entry.Type),
			zap.String("user_id", entry.UserID),
			zap.String("user_email", entry.UserEmail),
		}
		if entry.ChangedBy != "" {
			fields = append(fields, zap.String("changed_by", entry.ChangedBy))
		}
		for k, v := range entry.Details {
			fields = append(fields, zap.String("detail_"+k, v))
		}
		l.zapLog.Info("audit event", fields...)
	}
	if l.enabled(setting, "db") {
		if err := l.system.Append(ctx, entry); err != nil {
			l.zapLog.Error("failed to store system log entry",
				zap.Error(err),
				zap.String("event_type", entry.Type),
			)
		}
	}
}

// --- Admin Events ---

// UserCreated logs an admin provisioning a new account.
func (l *Logger) UserCreated(ctx context.Context, actorUID, actorEmail, targetUID, targetEmail string, details map[string]string) {
	l.logSystem(ctx, l.configAdmin(), models.SystemLogEntry{
		Type:           models.LogUserCreated,
		UserID:         targetUID,
		UserEmail:      targetEmail,
		ChangedBy:      actorUID,
		ChangedByEmail: actorEmail,
		Details:        details,
	})
}

// --- Authentication Events ---

// LoginSuccess logs a successful password login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, uid, email string) {
	l.logSystem(ctx, l.configAuth(), models.SystemLogEntry{
		Type:      models.LogLoginSuccess,
		UserID:    uid,
		UserEmail: email,
		Details:   map[string]string{"ip": getClientIP(r)},
	})
}

// LoginFailed logs a rejected login attempt. The attempted email is
// recorded; no account identifiers are.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, attemptedEmail, reason string) {
	l.logSystem(ctx, l.configAuth(), models.SystemLogEntry{
		Type:      models.LogLoginFailed,
		UserEmail: attemptedEmail,
		Details: map[string]string{
			"ip":     getClientIP(r),
			"reason": reason,
		},
	})
}

// Logout logs a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, uid, email string) {
	l.logSystem(ctx, l.configAuth(), models.SystemLogEntry{
		Type:      models.LogLogout,
		UserID:    uid,
		UserEmail: email,
		Details:   map[string]string{"ip": getClientIP(r)},
	})
}

// Signup logs a self-service registration.
func (l *Logger) Signup(ctx context.Context, r *http.Request, uid, email string) {
	l.logSystem(ctx, l.configAuth(), models.SystemLogEntry{
		Type:      models.LogSignup,
		UserID:    uid,
		UserEmail: email,
		Details:   map[string]string{"ip": getClientIP(r)},
	})
}

// FederatedAuth logs a sign-in through an external provider.
func (l *Logger) FederatedAuth(ctx context.Context, r *http.Request, uid, email, provider string) {
	l.logSystem(ctx, l.configAuth(), models.SystemLogEntry{
		Type:      models.LogFederatedAuth,
		UserID:    uid,
		UserEmail: email,
		Details: map[string]string{
			"ip":       getClientIP(r),
			"provider": provider,
		},
	})
}

func (l *Logger) configAdmin() string {
	if l == nil {
		return "off"
	}
	return l.config.Admin
}

func (l *Logger) configAuth() string {
	if l == nil {
		return "off"
	}
	return l.config.Auth
}
