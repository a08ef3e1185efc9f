package authgoogle_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/clubstack/memberhub/internal/app/features/authgoogle"
	"github.com/clubstack/memberhub/internal/app/identity"
	"github.com/clubstack/memberhub/internal/app/store/oauthstate"
	"github.com/clubstack/memberhub/internal/app/store/roleaudit"
	"github.com/clubstack/memberhub/internal/app/store/systemlogs"
	userstore "github.com/clubstack/memberhub/internal/app/store/users"
	"github.com/clubstack/memberhub/internal/app/system/auditlog"
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/clubstack/memberhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func setupGoogle(t *testing.T, db *mongo.Database, clientID string) *authgoogle.Handler {
	t.Helper()

	sessions, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "memberhub_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	audit := auditlog.New(roleaudit.New(db), systemlogs.New(db), zap.NewNop(), auditlog.Config{
		Roles: "db", Admin: "db", Auth: "db",
	})
	return authgoogle.NewHandler(
		identity.New(db),
		userstore.New(db),
		oauthstate.New(db, 10*time.Minute),
		sessions,
		audit,
		clientID, "client-secret", "https://portal.example.org",
		zap.NewNop(),
	)
}

func TestServeLogin_RedirectsToGoogle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := setupGoogle(t, db, "client-id")

	req := testutil.NewRequest(t, "GET", "/auth/google", nil)
	rec := testutil.NewRecorder()
	h.ServeLogin(rec, req)

	rec.AssertStatus(t, http.StatusTemporaryRedirect)
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "https://accounts.google.com/") {
		t.Errorf("expected redirect to Google, got %q", loc)
	}
	if !strings.Contains(loc, "state=") {
		t.Errorf("expected state parameter in %q", loc)
	}
}

func TestServeLogin_NotConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := setupGoogle(t, db, "")

	req := testutil.NewRequest(t, "GET", "/auth/google", nil)
	rec := testutil.NewRecorder()
	h.ServeLogin(rec, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "google_not_configured") {
		t.Errorf("expected configuration error redirect, got %q", loc)
	}
}

func TestServeCallback_RejectsUnknownState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := setupGoogle(t, db, "client-id")

	req := testutil.NewRequest(t, "GET", "/auth/google/callback?state=bogus&code=abc", nil)
	rec := testutil.NewRecorder()
	h.ServeCallback(rec, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "invalid_state") {
		t.Errorf("expected invalid_state redirect, got %q", loc)
	}
}

func TestServeCallback_RejectsMissingState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := setupGoogle(t, db, "client-id")

	req := testutil.NewRequest(t, "GET", "/auth/google/callback?code=abc", nil)
	rec := testutil.NewRecorder()
	h.ServeCallback(rec, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "invalid_state") {
		t.Errorf("expected invalid_state redirect, got %q", loc)
	}
}

func TestServeCallback_ProviderError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := setupGoogle(t, db, "client-id")

	req := testutil.NewRequest(t, "GET", "/auth/google/callback?error=access_denied", nil)
	rec := testutil.NewRecorder()
	h.ServeCallback(rec, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "google_denied") {
		t.Errorf("expected google_denied redirect, got %q", loc)
	}
}
