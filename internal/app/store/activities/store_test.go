package activities_test

import (
	"testing"
	"time"

	"github.com/clubstack/memberhub/internal/app/store/activities"
	"github.com/clubstack/memberhub/internal/domain/models"
	"github.com/clubstack/memberhub/internal/testutil"
)

func TestStore_ListRecent_NewestFirstWithLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activities.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().Add(-time.Hour).UTC()
	for i := 0; i < 12; i++ {
		err := store.Add(ctx, models.Activity{
			Type:      "event",
			Title:     "Weekly meeting",
			UserID:    "uid-1",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	items, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(items) != 10 {
		t.Fatalf("expected 10 activities, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Timestamp.After(items[i-1].Timestamp) {
			t.Fatal("expected newest-first ordering")
		}
	}
}

func TestStore_Add_AutoGeneratesID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activities.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Add(ctx, models.Activity{Type: "announcement", Title: "Welcome"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items, err := store.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(items))
	}
	if items[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
}
