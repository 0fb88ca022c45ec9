// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent:
CreateMany is a no-op for indexes that already exist with the same keys
and options. Errors are aggregated so startup can fail fast with the
full picture.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureStores(ctx, db); err != nil {
		problems = append(problems, "stores: "+err.Error())
	}
	if err := ensureComments(ctx, db); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}
	if err := ensureBookmarks(ctx, db); err != nil {
		problems = append(problems, "bookmarks: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}
	if err := ensureOAuthStates(ctx, db); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Unique while allowing OAuth-only accounts with no email.
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("uniq_email").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
		{
			Keys: bson.D{{Key: "provider", Value: 1}, {Key: "provider_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_provider_id").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"provider_id": bson.M{"$type": "string"}}),
		},
	})
	return err
}

func ensureStores(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("stores").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("geo_location"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("uniq_owner").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("name_ci"),
		},
	})
	return err
}

func ensureComments(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("comments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "store_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("store_created"),
		},
		{
			Keys:    bson.D{{Key: "author_id", Value: 1}},
			Options: options.Index().SetName("author"),
		},
	})
	return err
}

func ensureBookmarks(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("bookmarks").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "store_id", Value: 1}},
			Options: options.Index().SetName("uniq_user_store").SetUnique(true),
		},
	})
	return err
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("notifications").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sender_store_id", Value: 1}},
			Options: options.Index().SetName("sender_store"),
		},
		{
			Keys:    bson.D{{Key: "recipient_ids", Value: 1}},
			Options: options.Index().SetName("recipients"),
		},
	})
	return err
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("oauth_states").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetName("uniq_state").SetUnique(true),
		},
		{
			// TTL cleanup for abandoned OAuth flows.
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_expires").SetExpireAfterSeconds(0),
		},
	})
	return err
}
