package storestore

import (
	"context"
	"errors"
	"regexp"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/mapchelin/mapchelin/internal/app/system/normalize"
	"github.com/mapchelin/mapchelin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("stores")}
}

// ErrOwnerHasStore is returned when an owner tries to register a second store.
var ErrOwnerHasStore = errors.New("this user already owns a store")

// NewStore holds the fields accepted at store creation.
type NewStore struct {
	Name        string
	Category    string
	Address     string
	Lat         float64
	Lon         float64
	Description string
}

// Create inserts a store owned by ownerID. The one-store-per-owner rule is
// enforced by the unique owner index.
func (s *Store) Create(ctx context.Context, ownerID primitive.ObjectID, ns NewStore) (models.Store, error) {
	name := normalize.Text(ns.Name)
	now := time.Now().UTC()

	st := models.Store{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		Name:        name,
		NameCI:      text.Fold(name),
		Category:    normalize.Category(ns.Category),
		Address:     normalize.Text(ns.Address),
		Location:    models.NewGeoPoint(ns.Lat, ns.Lon),
		Description: normalize.Text(ns.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.c.InsertOne(ctx, st); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Store{}, ErrOwnerHasStore
		}
		return models.Store{}, err
	}
	return st, nil
}

// GetByID loads a store by ObjectID. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	var st models.Store
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetByOwner loads the store owned by userID.
// Returns mongo.ErrNoDocuments if the user owns none.
func (s *Store) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Store, error) {
	var st models.Store
	if err := s.c.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GeoFilter selects stores near a point, optionally narrowed by category
// and a case-insensitive name prefix.
type GeoFilter struct {
	Lat       float64
	Lon       float64
	MaxMeters float64 // 0 means the default radius
	Category  string
	Name      string
}

const defaultRadiusMeters = 3000

// ListByGeo returns stores near the filter point, nearest first. The
// ordering and distance math are delegated to the 2dsphere index.
func (s *Store) ListByGeo(ctx context.Context, f GeoFilter) ([]models.Store, error) {
	max := f.MaxMeters
	if max <= 0 {
		max = defaultRadiusMeters
	}

	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry":    models.NewGeoPoint(f.Lat, f.Lon),
				"$maxDistance": max,
			},
		},
	}
	if c := normalize.Category(f.Category); c != "" {
		filter["category"] = c
	}
	if n := text.Fold(normalize.Text(f.Name)); n != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(n)}
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Store
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByOwner removes the store owned by userID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Delete removes a store by id. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
