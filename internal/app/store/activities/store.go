// Package activities reads and writes the activity feed shown on the
// executive overview.
package activities

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
	return &Store{c: db.Collection("activities")}
}

// Add appends an activity to the feed. ID and timestamp are filled in
// when zero.
func (s *Store) Add(ctx context.Context, a models.Activity) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, a)
	return err
}

// ListRecent returns the newest activities first, capped at limit.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Activity
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
