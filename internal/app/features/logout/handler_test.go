package logout_test

import (
	"net/http"
	"testing"

	"github.com/clubstack/memberhub/internal/app/features/logout"
	"github.com/clubstack/memberhub/internal/app/store/roleaudit"
	"github.com/clubstack/memberhub/internal/app/store/systemlogs"
	"github.com/clubstack/memberhub/internal/app/system/auditlog"
	"github.com/clubstack/memberhub/internal/app/system/auth"
	"github.com/clubstack/memberhub/internal/domain/models"
	"github.com/clubstack/memberhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleLogout_ClearsSessionAndLogs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	system := systemlogs.New(db)
	audit := auditlog.New(roleaudit.New(db), system, zap.NewNop(), auditlog.Config{
		Roles: "db", Admin: "db", Auth: "db",
	})
	sessions, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "memberhub_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := logout.NewHandler(sessions, audit, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.MemberUser()
	req := testutil.NewAuthenticatedRequest(t, "POST", "/api/logout", user)
	rec := testutil.NewRecorder()
	h.HandleLogout(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	logs, err := system.ListByType(ctx, models.LogLogout, 10)
	if err != nil {
		t.Fatalf("list system logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 logout log, got %d", len(logs))
	}
	if logs[0].UserID != user.ID {
		t.Errorf("expected uid %q, got %q", user.ID, logs[0].UserID)
	}
}

func TestHandleLogout_AnonymousSucceedsQuietly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	system := systemlogs.New(db)
	audit := auditlog.New(roleaudit.New(db), system, zap.NewNop(), auditlog.Config{
		Roles: "db", Admin: "db", Auth: "db",
	})
	sessions, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "memberhub_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := logout.NewHandler(sessions, audit, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewRequest(t, "POST", "/api/logout", nil)
	rec := testutil.NewRecorder()
	h.HandleLogout(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	logs, err := system.ListByType(ctx, models.LogLogout, 10)
	if err != nil {
		t.Fatalf("list system logs: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("expected no logout log for anonymous request, got %d", len(logs))
	}
}
