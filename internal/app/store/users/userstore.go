package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/mapchelin/mapchelin/internal/app/system/normalize"
	"github.com/mapchelin/mapchelin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errEmptyNickname  = errors.New("nickname must not be empty")
)

const bcryptCost = 12

// hiddenCredential excludes the password from read projections. Login uses
// GetByEmailWithPassword, which is the only reader that sees the hash.
var hiddenCredential = bson.M{"password": 0}

// NewUser holds the fields accepted at local registration.
type NewUser struct {
	Email    string
	Password string
	Nickname string
}

// Create inserts a local email/password user. The password is bcrypt-hashed
// here so callers never handle the digest. Duplicate emails surface as
// ErrDuplicateEmail via the unique index, not a read-then-insert check.
func (s *Store) Create(ctx context.Context, nu NewUser) (models.User, error) {
	nickname := normalize.Nickname(nu.Nickname)
	if nickname == "" {
		return models.User{}, errEmptyNickname
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	email := normalize.Email(nu.Email)
	digest := string(hash)
	now := time.Now().UTC()

	u := models.User{
		ID:         primitive.NewObjectID(),
		Email:      &email,
		Password:   &digest,
		Nickname:   nickname,
		NicknameCI: text.Fold(nickname),
		Role:       "user",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// OAuthUser holds the normalized provider profile used at first OAuth login.
type OAuthUser struct {
	Provider   string
	ProviderID string
	Nickname   string
	Email      string
	AvatarURL  string
}

// CreateOAuth inserts a user for a first-seen OAuth identity. No password
// is stored for these accounts.
func (s *Store) CreateOAuth(ctx context.Context, ou OAuthUser) (models.User, error) {
	nickname := normalize.Nickname(ou.Nickname)
	if nickname == "" {
		return models.User{}, errEmptyNickname
	}

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		Nickname:   nickname,
		NicknameCI: text.Fold(nickname),
		Role:       "user",
		Provider:   ou.Provider,
		ProviderID: ou.ProviderID,
		AvatarURL:  ou.AvatarURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if e := normalize.Email(ou.Email); e != "" {
		u.Email = &e
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID, excluding the credential.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	opts := options.FindOne().SetProjection(hiddenCredential)
	if err := s.c.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmailWithPassword loads a user by case-insensitive email including
// the hidden credential field. Only the login path should call this.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByProvider looks up a user by OAuth provider and subject id.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByProvider(ctx context.Context, provider, providerID string) (*models.User, error) {
	var u models.User
	opts := options.FindOne().SetProjection(hiddenCredential)
	filter := bson.M{"provider": provider, "provider_id": providerID}
	if err := s.c.FindOne(ctx, filter, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailExists reports whether the email is already registered.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// VerifyPassword compares a candidate password against the stored digest.
// Users without a credential (OAuth accounts) never match.
func VerifyPassword(u *models.User, password string) bool {
	if u == nil || u.Password == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(password)) == nil
}

// UpdateNickname sets a new nickname and returns the updated user without
// the credential or email fields. FindOneAndUpdate reports
// mongo.ErrNoDocuments itself when the user is missing, so the not-found
// check always reflects the settled update.
func (s *Store) UpdateNickname(ctx context.Context, id primitive.ObjectID, nickname string) (*models.User, error) {
	nickname = normalize.Nickname(nickname)
	if nickname == "" {
		return nil, errEmptyNickname
	}

	set := bson.M{
		"nickname":    nickname,
		"nickname_ci": text.Fold(nickname),
		"updated_at":  time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0, "email": 0})

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes a user record. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
