// internal/domain/models/bookmark.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark marks a store a user wants to come back to.
type Bookmark struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	StoreID primitive.ObjectID `bson:"store_id" json:"store_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
