package userstore

import (
	"context"

	"github.com/clubstack/memberhub/internal/app/identity"
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Fetcher resolves the session user for the auth middleware. Role and
// profile fields are read fresh on every request so a role change
// takes effect on the target's next request, not their next sign-in.
type Fetcher struct {
	users    *Store
	accounts *identity.Store
	log      *zap.Logger
}

func NewFetcher(users *Store, accounts *identity.Store, log *zap.Logger) *Fetcher {
	return &Fetcher{users: users, accounts: accounts, log: log}
}

// FetchUser implements auth.UserFetcher. A nil return means the
// session should be treated as signed out.
func (f *Fetcher) FetchUser(ctx context.Context, uid string) *auth.SessionUser {
	acct, err := f.accounts.GetByID(ctx, uid)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		f.log.Error("fetch account for session", zap.String("uid", uid), zap.Error(err))
		return nil
	}
	if acct.Disabled {
		return nil
	}

	su := &auth.SessionUser{
		ID:    acct.UID,
		Name:  acct.DisplayName,
		Email: acct.Email,
		Role:  acct.Role(),
	}

	// The user record is the source of truth for role; the account's
	// role claim is a mirror that can lag behind.
	u, err := f.users.GetByID(ctx, uid)
	switch {
	case err == mongo.ErrNoDocuments:
		// No record yet: the claim (or the member default) stands.
	case err != nil:
		f.log.Error("fetch user record for session", zap.String("uid", uid), zap.Error(err))
	default:
		if u.Role != "" {
			su.Role = u.Role
		}
		if u.DisplayName != "" {
			su.Name = u.DisplayName
		}
	}
	return su
}
