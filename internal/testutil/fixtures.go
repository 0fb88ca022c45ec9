package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/mapchelin/mapchelin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a local test user with the given email, password, and
// nickname. The password is hashed at the minimum cost to keep tests fast.
func (f *Fixtures) CreateUser(ctx context.Context, email, password, nickname string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	digest := string(hash)
	user := models.User{
		ID:         primitive.NewObjectID(),
		Email:      &email,
		Password:   &digest,
		Nickname:   nickname,
		NicknameCI: text.Fold(nickname),
		Role:       "user",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateKakaoUser creates a test user backed by a Kakao identity, with no
// email or password.
func (f *Fixtures) CreateKakaoUser(ctx context.Context, providerID, nickname string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Nickname:   nickname,
		NicknameCI: text.Fold(nickname),
		Role:       "user",
		Provider:   "kakao",
		ProviderID: providerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test kakao user: %v", err)
	}

	return user
}

// CreateStore creates a test store owned by ownerID at the given point.
func (f *Fixtures) CreateStore(ctx context.Context, ownerID primitive.ObjectID, name string, lat, lon float64) models.Store {
	f.t.Helper()

	now := time.Now().UTC()
	store := models.Store{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Name:      name,
		NameCI:    text.Fold(name),
		Category:  "korean",
		Address:   "1 Test Street",
		Location:  models.NewGeoPoint(lat, lon),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("stores").InsertOne(ctx, store)
	if err != nil {
		f.t.Fatalf("failed to create test store: %v", err)
	}

	return store
}

// CreateComment creates a test comment by authorID on storeID.
func (f *Fixtures) CreateComment(ctx context.Context, storeID, authorID primitive.ObjectID, content string) models.Comment {
	f.t.Helper()

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		StoreID:   storeID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("comments").InsertOne(ctx, comment)
	if err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}

	return comment
}

// CreateBookmark creates a test bookmark of storeID by userID.
func (f *Fixtures) CreateBookmark(ctx context.Context, userID, storeID primitive.ObjectID) models.Bookmark {
	f.t.Helper()

	bookmark := models.Bookmark{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		StoreID:   storeID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("bookmarks").InsertOne(ctx, bookmark)
	if err != nil {
		f.t.Fatalf("failed to create test bookmark: %v", err)
	}

	return bookmark
}

// CreateNotification creates a test notification from senderStoreID to the
// given recipients.
func (f *Fixtures) CreateNotification(ctx context.Context, senderStoreID primitive.ObjectID, message string, recipients ...primitive.ObjectID) models.Notification {
	f.t.Helper()

	if recipients == nil {
		recipients = []primitive.ObjectID{}
	}
	notification := models.Notification{
		ID:            primitive.NewObjectID(),
		SenderStoreID: senderStoreID,
		Message:       message,
		RecipientIDs:  recipients,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := f.db.Collection("notifications").InsertOne(ctx, notification)
	if err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}

	return notification
}
