// Package systemlogs persists operational events (account creation,
// sign-ins, sign-outs) for the admin audit views.
package systemlogs

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
	return &Store{c: db.Collection("systemLogs")}
}

// Append records an event. ID and timestamp are filled in when zero.
func (s *Store) Append(ctx context.Context, e models.SystemLogEntry) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// ListRecent returns the most recent events, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.SystemLogEntry, error) {
	return s.list(ctx, bson.M{}, limit)
}

// ListByType returns the most recent events of one type, newest first.
func (s *Store) ListByType(ctx context.Context, eventType string, limit int64) ([]models.SystemLogEntry, error) {
	return s.list(ctx, bson.M{"type": eventType}, limit)
}

func (s *Store) list(ctx context.Context, filter bson.M, limit int64) ([]models.SystemLogEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.SystemLogEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
