package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/clubstack/memberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAccount inserts an identity account with a bcrypt-hashed
// password and returns it.
func (f *Fixtures) CreateAccount(ctx context.Context, email, password string) models.Account {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	acct := models.Account{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  "Fixture User",
		PasswordHash: string(hash),
		Provider:     "password",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("accounts").InsertOne(ctx, acct); err != nil {
		f.t.Fatalf("insert fixture account: %v", err)
	}
	return acct
}

// CreateUser inserts a user record with the given role and returns it.
// A fresh UID is generated when none is set.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		UID:         uuid.NewString(),
		Email:       email,
		FirstName:   "Fixture",
		LastName:    "User",
		DisplayName: "Fixture User",
		NameCI:      text.Fold("Fixture User"),
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("insert fixture user: %v", err)
	}
	return u
}

// CreateActivity inserts an activity feed item and returns it.
func (f *Fixtures) CreateActivity(ctx context.Context, title string, at time.Time) models.Activity {
	f.t.Helper()

	a := models.Activity{
		ID:        primitive.NewObjectID(),
		Type:      "event",
		Title:     title,
		Timestamp: at,
	}
	if _, err := f.db.Collection("activities").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("insert fixture activity: %v", err)
	}
	return a
}
