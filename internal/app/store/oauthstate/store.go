// Package oauthstate persists short-lived OAuth state tokens so callbacks
// can be validated across instances without sticky sessions.
package oauthstate

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

// ErrUnknownState is returned when a callback state was never issued,
// already consumed, or expired.
var ErrUnknownState = errors.New("unknown or expired oauth state")

const stateTTL = 10 * time.Minute

type record struct {
	ID        primitive.ObjectID `bson:"_id"`
	State     string             `bson:"state"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

// Save records a freshly issued state. The TTL index reaps abandoned flows.
func (s *Store) Save(ctx context.Context, state string) error {
	_, err := s.c.InsertOne(ctx, record{
		ID:        primitive.NewObjectID(),
		State:     state,
		ExpiresAt: time.Now().UTC().Add(stateTTL),
	})
	return err
}

// Consume validates and removes a state in one step, so each state is
// single-use. TTL reaping runs on a background cadence, which is why the
// expiry is re-checked here.
func (s *Store) Consume(ctx context.Context, state string) error {
	var rec record
	err := s.c.FindOneAndDelete(ctx, bson.M{"state": state}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return ErrUnknownState
	}
	if err != nil {
		return err
	}
	if time.Now().UTC().After(rec.ExpiresAt) {
		return ErrUnknownState
	}
	return nil
}
