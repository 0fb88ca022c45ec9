package oauthstate

import (
	"testing"

	"github.com/mapchelin/mapchelin/internal/testutil"
)

func TestConsume_SingleUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if err := store.Save(ctx, "state-abc"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Consume(ctx, "state-abc"); err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if err := store.Consume(ctx, "state-abc"); err != ErrUnknownState {
		t.Errorf("expected ErrUnknownState on reuse, got %v", err)
	}
}

func TestConsume_UnknownState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if err := store.Consume(ctx, "never-issued"); err != ErrUnknownState {
		t.Errorf("expected ErrUnknownState, got %v", err)
	}
}

func TestSave_DuplicateState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if err := store.Save(ctx, "dup"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, "dup"); err == nil {
		t.Error("expected duplicate state insert to fail")
	}
}
