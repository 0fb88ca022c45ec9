// Package testutil provides helpers for tests that exercise a live
// MongoDB instance. Tests skip cleanly when no instance is reachable.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mapchelin/mapchelin/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const envTestMongoURI = "MAPCHELIN_TEST_MONGO_URI"

// SetupTestDB connects to the test MongoDB instance and returns a fresh,
// uniquely named database with the app's indexes in place. The database is
// dropped when the test finishes. Skips the test when Mongo is unreachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	client := connect(t)

	name := fmt.Sprintf("mapchelin_test_%d", time.Now().UnixNano())
	db := client.Database(name)

	ctx, cancel := TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		_ = db.Drop(ctx)
	})

	return db
}

// SetupTestClient is SetupTestDB for tests that also need the client, such
// as transaction tests.
func SetupTestClient(t *testing.T) (*mongo.Client, *mongo.Database) {
	t.Helper()
	db := SetupTestDB(t)
	return db.Client(), db
}

// TestContext returns a context with the standard test timeout.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func connect(t *testing.T) *mongo.Client {
	t.Helper()

	uri := os.Getenv(envTestMongoURI)
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo unavailable at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		t.Skipf("mongo unavailable at %s: %v", uri, err)
	}

	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		_ = client.Disconnect(ctx)
	})

	return client
}

// SupportsTransactions reports whether the connected deployment accepts
// multi-document transactions (replica set or mongos). Standalone servers
// do not, and transaction-rollback tests skip on them.
func SupportsTransactions(t *testing.T, client *mongo.Client, db *mongo.Database) bool {
	t.Helper()

	ctx, cancel := TestContext()
	defer cancel()

	sess, err := client.StartSession()
	if err != nil {
		return false
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, db.Collection("txn_probe").FindOne(sc, map[string]any{"_id": "probe"}).Err()
	})
	if err == mongo.ErrNoDocuments {
		err = nil
	}
	return err == nil
}
