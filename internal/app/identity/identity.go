// Package identity manages authentication accounts: credentials,
// enabled state, and the role claim mirrored from the user record
// store. Accounts are the authentication source of truth; profile
// data lives in the users collection.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/clubstack/memberhub/internal/app/system/normalize"
	"github.com/clubstack/memberhub/internal/app/system/passwords"
	"github.com/clubstack/memberhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrDuplicateEmail is returned when an account with the email
	// already exists.
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	// ErrBadCredentials is returned for an unknown email or a wrong
	// password. Callers must not distinguish the two.
	ErrBadCredentials = errors.New("invalid email or password")
	// ErrDisabled is returned when the account exists but has been
	// disabled by an administrator.
	ErrDisabled = errors.New("account is disabled")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accounts")}
}

// Create provisions a new account with a bcrypt-hashed password and a
// generated UID. The email is normalized before storage.
func (s *Store) Create(ctx context.Context, email, password, displayName string) (*models.Account, error) {
	hash, err := passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	acct := models.Account{
		UID:          uuid.NewString(),
		Email:        normalize.Email(email),
		DisplayName:  normalize.Name(displayName),
		PasswordHash: hash,
		Provider:     "password",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, acct); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &acct, nil
}

// CreateFederated provisions an account authenticated by an external
// provider (no local password). Used on first Google sign-in.
func (s *Store) CreateFederated(ctx context.Context, email, displayName, provider string) (*models.Account, error) {
	now := time.Now().UTC()
	acct := models.Account{
		UID:           uuid.NewString(),
		Email:         normalize.Email(email),
		DisplayName:   normalize.Name(displayName),
		Provider:      provider,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.c.InsertOne(ctx, acct); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &acct, nil
}

// GetByID loads an account by UID. Returns mongo.ErrNoDocuments when
// absent.
func (s *Store) GetByID(ctx context.Context, uid string) (*models.Account, error) {
	var acct models.Account
	if err := s.c.FindOne(ctx, bson.M{"_id": uid}).Decode(&acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// GetByEmail loads an account by normalized email. Returns
// mongo.ErrNoDocuments when absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acct models.Account
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// SetRoleClaim updates the role claim mirrored onto the account and
// returns the previous claim so a failed follow-up write can restore
// it. An empty role clears the claim.
func (s *Store) SetRoleClaim(ctx context.Context, uid, role string) (previous string, err error) {
	var update bson.M
	if role == "" {
		update = bson.M{
			"$unset": bson.M{"role_claim": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{"role_claim": role, "updated_at": time.Now().UTC()},
		}
	}

	var before struct {
		RoleClaim string `bson:"role_claim"`
	}
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": uid}, update).Decode(&before)
	if err != nil {
		return "", err
	}
	return before.RoleClaim, nil
}

// UpdateDisplayName refreshes the cached display name, typically from
// a federated provider's profile. An empty name is ignored.
func (s *Store) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	if displayName == "" {
		return nil
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{
		"$set": bson.M{"display_name": displayName, "updated_at": time.Now().UTC()},
	})
	return err
}

// Delete removes an account. Used to back out a half-created user when
// the profile write fails.
func (s *Store) Delete(ctx context.Context, uid string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": uid})
	return err
}

// VerifyPassword authenticates an email/password pair and returns the
// account on success.
func (s *Store) VerifyPassword(ctx context.Context, email, password string) (*models.Account, error) {
	acct, err := s.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if acct.Disabled {
		return nil, ErrDisabled
	}
	if acct.PasswordHash == "" || !passwords.Verify(acct.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return acct, nil
}
