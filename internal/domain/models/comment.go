// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a review comment attached to a store.
// It is removed when either its author or the store it references is deleted.
type Comment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StoreID  primitive.ObjectID `bson:"store_id" json:"store_id"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"author_id"`
	Content  string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
