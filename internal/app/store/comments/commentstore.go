package commentstore

import (
	"context"
	"errors"
	"time"

	"github.com/mapchelin/mapchelin/internal/app/system/normalize"
	"github.com/mapchelin/mapchelin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

var errEmptyContent = errors.New("comment content must not be empty")

// Create inserts a comment on a store.
func (s *Store) Create(ctx context.Context, storeID, authorID primitive.ObjectID, content string) (models.Comment, error) {
	content = normalize.Text(content)
	if content == "" {
		return models.Comment{}, errEmptyContent
	}

	cm := models.Comment{
		ID:        primitive.NewObjectID(),
		StoreID:   storeID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// ListByStore returns a store's comments, newest first. The sort matches
// the store_created compound index.
func (s *Store) ListByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"store_id": storeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Comment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByAuthor removes every comment written by userID.
// Returns the number of documents deleted.
func (s *Store) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"author_id": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByStore removes every comment attached to storeID.
// Returns the number of documents deleted.
func (s *Store) DeleteByStore(ctx context.Context, storeID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"store_id": storeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByAuthor reports how many comments userID has written.
func (s *Store) CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"author_id": authorID})
}
