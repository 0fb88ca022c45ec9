// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is sent by a store to a set of recipient users.
//
// When the sending store is deleted, its notifications go with it. When a
// recipient account is deleted, the user is pulled from recipient_ids but
// the notification itself survives for the remaining recipients.
type Notification struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SenderStoreID primitive.ObjectID   `bson:"sender_store_id" json:"sender_store_id"`
	Message       string               `bson:"message" json:"message"`
	RecipientIDs  []primitive.ObjectID `bson:"recipient_ids" json:"recipient_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
