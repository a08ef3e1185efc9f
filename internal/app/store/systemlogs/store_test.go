package systemlogs_test

import (
	"testing"

	"github.com/clubstack/memberhub/internal/app/store/systemlogs"
	"github.com/clubstack/memberhub/internal/domain/models"
	"github.com/clubstack/memberhub/internal/testutil"
)

func TestStore_Append_AutoGeneratesID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := systemlogs.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Append(ctx, models.SystemLogEntry{
		Type:      models.LogUserCreated,
		UserID:    "uid-1",
		UserEmail: "new@example.com",
		ChangedBy: "admin-1",
		Details: map[string]string{
			"firstName": "Jane",
			"role":      models.RoleMember,
		},
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	if entries[0].Details["firstName"] != "Jane" {
		t.Errorf("expected details preserved, got %v", entries[0].Details)
	}
}

func TestStore_ListByType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := systemlogs.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seed := []models.SystemLogEntry{
		{Type: models.LogUserCreated, UserID: "uid-1"},
		{Type: models.LogLoginSuccess, UserID: "uid-1"},
		{Type: models.LogLoginSuccess, UserID: "uid-2"},
	}
	for _, e := range seed {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := store.ListByType(ctx, models.LogLoginSuccess, 10)
	if err != nil {
		t.Fatalf("ListByType failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 login events, got %d", len(entries))
	}
}

func TestStore_ListRecent_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := systemlogs.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, models.SystemLogEntry{Type: models.LogLogout, UserID: "uid-1"}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}
