package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/clubstack/memberhub/internal/app/system/normalize"
	"github.com/clubstack/memberhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when a record with the email already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "member"|"executive"|"admin"`)
	errNoUID          = errors.New("user record requires an account uid")
)

// Store wraps the `users` collection: one UserRecord per identity
// account, keyed by the account UID.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user record by account UID. Returns
// mongo.ErrNoDocuments when absent.
func (s *Store) GetByID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a record by normalized email. Returns
// mongo.ErrNoDocuments when absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleOf resolves the effective role for an account: the record's role
// field, defaulting to member when the record or the field is absent.
// Only a real read failure is reported as an error.
func (s *Store) RoleOf(ctx context.Context, uid string) (string, error) {
	var doc struct {
		Role string `bson:"role"`
	}
	proj := options.FindOne().SetProjection(bson.M{"role": 1})
	err := s.c.FindOne(ctx, bson.M{"_id": uid}, proj).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.RoleMember, nil
	}
	if err != nil {
		return "", err
	}
	if doc.Role == "" {
		return models.RoleMember, nil
	}
	return doc.Role, nil
}

// Create inserts a new user record after normalizing and validating
// fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.UID == "" {
		return models.User{}, errNoUID
	}
	u.Email = normalize.Email(u.Email)
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	if u.DisplayName == "" {
		u.DisplayName = u.FullName()
	}
	u.NameCI = text.Fold(u.FullName())
	if u.Role == "" {
		u.Role = models.RoleMember
	}
	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// EnsureDefault creates a minimal default record (role member) for an
// account that has none yet, leaving an existing record untouched.
// Used at sign-in when the document store has no record for a valid
// identity account.
func (s *Store) EnsureDefault(ctx context.Context, uid, email string) (*models.User, error) {
	u, err := s.GetByID(ctx, uid)
	if err == nil {
		return u, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now().UTC()
	set := bson.M{
		"$setOnInsert": bson.M{
			"email":            normalize.Email(email),
			"role":             models.RoleMember,
			"profile_complete": false,
			"created_at":       now,
			"updated_at":       now,
		},
	}
	// Upsert so a concurrent sign-in can't insert twice.
	opts := options.Update().SetUpsert(true)
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": uid}, set, opts); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, uid)
}

// SetRole merge-upserts the record's role and updated timestamp,
// preserving every other field. A missing record is created with just
// the role, matching the behavior of a role assignment to an account
// that never completed registration.
func (s *Store) SetRole(ctx context.Context, uid, role string) error {
	if !models.IsValidRole(role) {
		return errBadRole
	}
	update := bson.M{
		"$set": bson.M{
			"role":       role,
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"profile_complete": false,
			"created_at":       time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": uid}, update, opts)
	return err
}

// TouchLogin records the last sign-in time and refreshes profile
// fields supplied by a federated provider. Empty values are skipped so
// a provider that returns no photo doesn't erase a stored one.
func (s *Store) TouchLogin(ctx context.Context, uid, displayName, photoURL string) error {
	set := bson.M{
		"last_login": time.Now().UTC(),
		"updated_at": time.Now().UTC(),
	}
	if displayName != "" {
		set["display_name"] = displayName
		set["name_ci"] = text.Fold(displayName)
	}
	if photoURL != "" {
		set["photo_url"] = photoURL
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set})
	return err
}

// List returns every user record, newest first. Admin-panel use only.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListTeam returns member and executive records, newest first. This is
// the roster the executive overview displays; admins are excluded.
func (s *Store) ListTeam(ctx context.Context) ([]models.User, error) {
	filter := bson.M{"role": bson.M{"$in": []string{models.RoleMember, models.RoleExecutive}}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
