// Package roleaudit persists the immutable history of role
// assignments: who changed whose role, from what, to what, and when.
package roleaudit

import (
	"context"
	"time"

	"github.com/clubstack/memberhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("roleAudit")}
}

// Append records a role change. ID and timestamp are filled in when
// zero. Entries are never updated or deleted.
func (s *Store) Append(ctx context.Context, e models.RoleAuditEntry) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// ListByTarget returns the change history for one account, newest
// first.
func (s *Store) ListByTarget(ctx context.Context, uid string, limit int64) ([]models.RoleAuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"target_uid": uid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.RoleAuditEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListRecent returns the most recent role changes across all
// accounts, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.RoleAuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.RoleAuditEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
