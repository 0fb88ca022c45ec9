package bookmarkstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/mapchelin/mapchelin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bookmarks")}
}

// ErrAlreadyBookmarked is returned when the user has already bookmarked the store.
var ErrAlreadyBookmarked = errors.New("store is already bookmarked")

// Create inserts a bookmark. The (user_id, store_id) unique index makes
// repeat bookmarks surface as ErrAlreadyBookmarked.
func (s *Store) Create(ctx context.Context, userID, storeID primitive.ObjectID) (models.Bookmark, error) {
	b := models.Bookmark{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		StoreID:   storeID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Bookmark{}, ErrAlreadyBookmarked
		}
		return models.Bookmark{}, err
	}
	return b, nil
}

// ListByUser returns the user's bookmarks, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Bookmark, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Bookmark
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one bookmark by owner and store.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, userID, storeID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "store_id": storeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes every bookmark owned by userID.
// Returns the number of documents deleted.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByUser reports how many bookmarks userID holds.
func (s *Store) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}
