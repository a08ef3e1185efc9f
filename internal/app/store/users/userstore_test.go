package userstore_test

import (
	"testing"

	userstore "github.com/clubstack/memberhub/internal/app/store/users"
	"github.com/clubstack/memberhub/internal/domain/models"
	"github.com/clubstack/memberhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		UID:       "uid-1",
		Email:     "  Jane.Doe@Example.COM ",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      models.RoleExecutive,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Email != "jane.doe@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
	if created.DisplayName != "Jane Doe" {
		t.Errorf("expected display name from full name, got %q", created.DisplayName)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByID(ctx, "uid-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleExecutive {
		t.Errorf("expected executive role, got %q", got.Role)
	}
}

func TestStore_Create_DefaultsToMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		UID:   "uid-1",
		Email: "someone@example.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Role != models.RoleMember {
		t.Errorf("expected member role, got %q", created.Role)
	}
}

func TestStore_Create_RejectsBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		UID:   "uid-1",
		Email: "someone@example.com",
		Role:  "superadmin",
	})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{UID: "uid-1", Email: "jane@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "JANE@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.UID != "uid-1" {
		t.Errorf("expected uid-1, got %q", got.UID)
	}

	if _, err := store.GetByEmail(ctx, "missing@example.com"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_RoleOf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{UID: "uid-1", Email: "a@example.com", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	role, err := store.RoleOf(ctx, "uid-1")
	if err != nil {
		t.Fatalf("RoleOf failed: %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("expected admin, got %q", role)
	}
}

func TestStore_RoleOf_MissingRecordDefaultsToMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	role, err := store.RoleOf(ctx, "no-such-uid")
	if err != nil {
		t.Fatalf("RoleOf failed: %v", err)
	}
	if role != models.RoleMember {
		t.Errorf("expected member default, got %q", role)
	}
}

func TestStore_SetRole_PreservesOtherFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{
		UID:        "uid-1",
		Email:      "jane@example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		Department: "Engineering",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetRole(ctx, "uid-1", models.RoleExecutive); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}

	got, err := store.GetByID(ctx, "uid-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleExecutive {
		t.Errorf("expected executive, got %q", got.Role)
	}
	if got.Department != "Engineering" {
		t.Errorf("expected department preserved, got %q", got.Department)
	}
	if got.Email != "jane@example.com" {
		t.Errorf("expected email preserved, got %q", got.Email)
	}
}

func TestStore_SetRole_CreatesMissingRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.SetRole(ctx, "uid-new", models.RoleAdmin); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}

	got, err := store.GetByID(ctx, "uid-new")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("expected admin, got %q", got.Role)
	}
}

func TestStore_SetRole_RejectsBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.SetRole(ctx, "uid-1", "owner"); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_EnsureDefault(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.EnsureDefault(ctx, "uid-1", "Jane@Example.com")
	if err != nil {
		t.Fatalf("EnsureDefault failed: %v", err)
	}
	if u.Role != models.RoleMember {
		t.Errorf("expected member, got %q", u.Role)
	}
	if u.Email != "jane@example.com" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}

	// Existing records are left alone.
	if err := store.SetRole(ctx, "uid-1", models.RoleAdmin); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	u, err = store.EnsureDefault(ctx, "uid-1", "jane@example.com")
	if err != nil {
		t.Fatalf("EnsureDefault failed: %v", err)
	}
	if u.Role != models.RoleAdmin {
		t.Errorf("expected admin preserved, got %q", u.Role)
	}
}

func TestStore_ListTeam_ExcludesAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seed := []models.User{
		{UID: "uid-1", Email: "m@example.com", Role: models.RoleMember},
		{UID: "uid-2", Email: "e@example.com", Role: models.RoleExecutive},
		{UID: "uid-3", Email: "a@example.com", Role: models.RoleAdmin},
	}
	for _, u := range seed {
		if _, err := store.Create(ctx, u); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	team, err := store.ListTeam(ctx)
	if err != nil {
		t.Fatalf("ListTeam failed: %v", err)
	}
	if len(team) != 2 {
		t.Fatalf("expected 2 team records, got %d", len(team))
	}
	for _, u := range team {
		if u.Role == models.RoleAdmin {
			t.Errorf("admin %q should not be in team listing", u.UID)
		}
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, u := range []models.User{
		{UID: "uid-1", Email: "a@example.com"},
		{UID: "uid-2", Email: "b@example.com", Role: models.RoleAdmin},
	} {
		if _, err := store.Create(ctx, u); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
}

func TestStore_TouchLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{
		UID:      "uid-1",
		Email:    "jane@example.com",
		PhotoURL: "https://example.com/old.png",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.TouchLogin(ctx, "uid-1", "Jane D", ""); err != nil {
		t.Fatalf("TouchLogin failed: %v", err)
	}

	got, err := store.GetByID(ctx, "uid-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.LastLogin == nil {
		t.Error("expected last_login to be set")
	}
	if got.DisplayName != "Jane D" {
		t.Errorf("expected display name updated, got %q", got.DisplayName)
	}
	if got.PhotoURL != "https://example.com/old.png" {
		t.Errorf("expected empty photo URL to be skipped, got %q", got.PhotoURL)
	}
}
