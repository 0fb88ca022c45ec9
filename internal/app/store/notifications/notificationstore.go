package notificationstore

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
	return &Store{c: db.Collection("notifications")}
}

var errEmptyMessage = errors.New("notification message must not be empty")

// Create inserts a notification sent from a store to a set of recipients.
func (s *Store) Create(ctx context.Context, senderStoreID primitive.ObjectID, message string, recipients []primitive.ObjectID) (models.Notification, error) {
	message = normalize.Text(message)
	if message == "" {
		return models.Notification{}, errEmptyMessage
	}
	if recipients == nil {
		recipients = []primitive.ObjectID{}
	}

	n := models.Notification{
		ID:            primitive.NewObjectID(),
		SenderStoreID: senderStoreID,
		Message:       message,
		RecipientIDs:  recipients,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// ListByRecipient returns notifications addressed to userID, newest first.
func (s *Store) ListByRecipient(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"recipient_ids": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteBySender removes every notification the store sent.
// Returns the number of documents deleted.
func (s *Store) DeleteBySender(ctx context.Context, senderStoreID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"sender_store_id": senderStoreID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PullRecipient strips userID from the recipient list of every remaining
// notification, so deleted accounts stop appearing as addressees.
// Returns the number of documents modified.
func (s *Store) PullRecipient(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"recipient_ids": userID},
		bson.M{"$pull": bson.M{"recipient_ids": userID}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// CountByRecipient reports how many notifications address userID.
func (s *Store) CountByRecipient(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"recipient_ids": userID})
}
