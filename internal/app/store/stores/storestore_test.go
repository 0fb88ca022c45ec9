package storestore

import (
	"testing"

	"github.com/mapchelin/mapchelin/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Coordinates around Gangnam station; lat/lon pairs a few hundred meters
// to a few kilometers apart.
const (
	baseLat = 37.4979
	baseLon = 127.0276
)

func TestCreate_SetsGeoPointAndFolds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	owner := primitive.NewObjectID()

	st, err := store.Create(ctx, owner, NewStore{
		Name:     "Mapo Grill",
		Category: "Korean",
		Address:  "12 Teheran-ro",
		Lat:      baseLat,
		Lon:      baseLon,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if st.Location.Type != "Point" {
		t.Errorf("location type: got %q", st.Location.Type)
	}
	// GeoJSON stores [lon, lat].
	if st.Location.Coordinates[0] != baseLon || st.Location.Coordinates[1] != baseLat {
		t.Errorf("coordinates: got %v", st.Location.Coordinates)
	}
	if st.Category != "korean" {
		t.Errorf("category: got %q, want lowercased", st.Category)
	}
	if st.NameCI == "" {
		t.Error("expected folded name to be set")
	}
}

func TestCreate_SecondStoreForOwnerConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	owner := primitive.NewObjectID()

	if _, err := store.Create(ctx, owner, NewStore{Name: "First", Lat: baseLat, Lon: baseLon}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, owner, NewStore{Name: "Second", Lat: baseLat, Lon: baseLon}); err != ErrOwnerHasStore {
		t.Errorf("expected ErrOwnerHasStore, got %v", err)
	}
}

func TestGetByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	owner := primitive.NewObjectID()

	created, err := store.Create(ctx, owner, NewStore{Name: "Mine", Lat: baseLat, Lon: baseLon})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	st, err := store.GetByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("GetByOwner failed: %v", err)
	}
	if st.ID != created.ID {
		t.Errorf("expected store %s, got %s", created.ID.Hex(), st.ID.Hex())
	}

	if _, err := store.GetByOwner(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments for ownerless user, got %v", err)
	}
}

func TestListByGeo_OrdersNearestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	// ~0m, ~550m, and ~1.1km east of the base point.
	near, err := store.Create(ctx, primitive.NewObjectID(), NewStore{Name: "Near", Lat: baseLat, Lon: baseLon})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	mid, err := store.Create(ctx, primitive.NewObjectID(), NewStore{Name: "Mid", Lat: baseLat, Lon: baseLon + 0.00625})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	far, err := store.Create(ctx, primitive.NewObjectID(), NewStore{Name: "Far", Lat: baseLat, Lon: baseLon + 0.0125})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	out, err := store.ListByGeo(ctx, GeoFilter{Lat: baseLat, Lon: baseLon})
	if err != nil {
		t.Fatalf("ListByGeo failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 stores, got %d", len(out))
	}
	if out[0].ID != near.ID || out[1].ID != mid.ID || out[2].ID != far.ID {
		t.Errorf("expected nearest-first ordering, got %q, %q, %q",
			out[0].Name, out[1].Name, out[2].Name)
	}
}

func TestListByGeo_RadiusExcludesDistantStores(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if _, err := store.Create(ctx, primitive.NewObjectID(), NewStore{Name: "Near", Lat: baseLat, Lon: baseLon}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// ~11km away, outside the 3km default radius.
	if _, err := store.Create(ctx, primitive.NewObjectID(), NewStore{Name: "Distant", Lat: baseLat + 0.1, Lon: baseLon}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	out, err := store.ListByGeo(ctx, GeoFilter{Lat: baseLat, Lon: baseLon})
	if err != nil {
		t.Fatalf("ListByGeo failed: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Near" {
		t.Errorf("expected only the near store inside the default radius, got %d results", len(out))
	}

	out, err = store.ListByGeo(ctx, GeoFilter{Lat: baseLat, Lon: baseLon, MaxMeters: 20000})
	if err != nil {
		t.Fatalf("ListByGeo with radius failed: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected both stores inside 20km, got %d results", len(out))
	}
}

func TestListByGeo_CategoryAndNameFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if _, err := store.Create(ctx, primitive.NewObjectID(), NewStore{Name: "Mapo Grill", Category: "Korean", Lat: baseLat, Lon: baseLon}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, primitive.NewObjectID(), NewStore{Name: "Pasta House", Category: "Italian", Lat: baseLat, Lon: baseLon + 0.001}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tests := []struct {
		name   string
		filter GeoFilter
		want   int
	}{
		{"category match", GeoFilter{Lat: baseLat, Lon: baseLon, Category: "korean"}, 1},
		{"category case-insensitive", GeoFilter{Lat: baseLat, Lon: baseLon, Category: "KOREAN"}, 1},
		{"category miss", GeoFilter{Lat: baseLat, Lon: baseLon, Category: "japanese"}, 0},
		{"name prefix", GeoFilter{Lat: baseLat, Lon: baseLon, Name: "mapo"}, 1},
		{"name prefix case-insensitive", GeoFilter{Lat: baseLat, Lon: baseLon, Name: "MAPO"}, 1},
		{"name miss", GeoFilter{Lat: baseLat, Lon: baseLon, Name: "sushi"}, 0},
		{"no filters", GeoFilter{Lat: baseLat, Lon: baseLon}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := store.ListByGeo(ctx, tc.filter)
			if err != nil {
				t.Fatalf("ListByGeo failed: %v", err)
			}
			if len(out) != tc.want {
				t.Errorf("result count: got %d, want %d", len(out), tc.want)
			}
		})
	}
}

func TestDeleteByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	owner := primitive.NewObjectID()

	if _, err := store.Create(ctx, owner, NewStore{Name: "Doomed", Lat: baseLat, Lon: baseLon}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.DeleteByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("DeleteByOwner failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted count: got %d, want 1", n)
	}

	if _, err := store.GetByOwner(ctx, owner); err != mongo.ErrNoDocuments {
		t.Errorf("expected store to be gone, got %v", err)
	}
}
