// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubstack/memberhub/internal/app/identity"
	userstore "github.com/clubstack/memberhub/internal/app/store/users"
	"github.com/clubstack/memberhub/internal/app/system/passwords"
	"github.com/clubstack/memberhub/internal/app/system/timeouts"
	"github.com/clubstack/memberhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short: appCfg.DBTimeoutShort,
		Long:  appCfg.DBTimeoutLong,
	})

	if appCfg.SuperAdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.SuperAdminEmail, logger); err != nil {
			return fmt.Errorf("admin bootstrap: %w", err)
		}
	}

	return nil
}

// ensureAdmin promotes the configured email to admin, provisioning the
// account with a temporary password if it does not exist yet. Run on
// every startup so a demoted or freshly restored deployment always has
// at least one admin.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	accounts := identity.New(deps.MemberHubMongoDatabase)
	users := userstore.New(deps.MemberHubMongoDatabase)

	acct, err := accounts.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		temp, perr := passwords.NewTemporary()
		if perr != nil {
			return perr
		}
		acct, err = accounts.Create(ctx, email, temp, "Administrator")
		if err != nil {
			return err
		}
		// Printed once; the operator is expected to sign in and change it.
		logger.Warn("provisioned admin account with a temporary password",
			zap.String("email", acct.Email),
			zap.String("temp_password", temp))
	} else if err != nil {
		return err
	}

	if acct.Role() != models.RoleAdmin {
		if _, err := accounts.SetRoleClaim(ctx, acct.UID, models.RoleAdmin); err != nil {
			return err
		}
	}

	rec, err := users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		_, err = users.Create(ctx, models.User{
			UID:         acct.UID,
			Email:       email,
			DisplayName: acct.DisplayName,
			Role:        models.RoleAdmin,
			Provider:    acct.Provider,
		})
		if err != nil {
			return err
		}
		logger.Info("created admin user record", zap.String("email", email))
		return nil
	} else if err != nil {
		return err
	}

	if rec.Role != models.RoleAdmin {
		if err := users.SetRole(ctx, rec.UID, models.RoleAdmin); err != nil {
			return err
		}
		logger.Info("promoted existing user to admin",
			zap.String("email", email),
			zap.String("previous_role", rec.Role))
	}

	return nil
}
