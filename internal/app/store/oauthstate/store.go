// Package oauthstate persists short-lived OAuth state tokens so the
// callback can verify the round trip even across server restarts.
package oauthstate

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a state token is unknown or expired.
var ErrNotFound = errors.New("oauth state not found or expired")

type record struct {
	State     string    `bson:"_id"`
	Redirect  string    `bson:"redirect,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

type Store struct {
	c   *mongo.Collection
	ttl time.Duration
}

func New(db *mongo.Database, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store{c: db.Collection("oauth_state"), ttl: ttl}
}

// Save stores a state token with an optional post-login redirect path.
func (s *Store) Save(ctx context.Context, state, redirect string) error {
	now := time.Now().UTC()
	_, err := s.c.InsertOne(ctx, record{
		State:     state,
		Redirect:  redirect,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
	return err
}

// Consume deletes the token and returns its redirect path. A token can
// be consumed once; unknown or expired tokens report ErrNotFound.
func (s *Store) Consume(ctx context.Context, state string) (string, error) {
	var rec record
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": state}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	// The TTL monitor only sweeps every minute, so check expiry here
	// too.
	if time.Now().UTC().After(rec.ExpiresAt) {
		return "", ErrNotFound
	}
	return rec.Redirect, nil
}
