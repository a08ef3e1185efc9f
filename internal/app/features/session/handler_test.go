package session_test

import (
	"net/http"
	"testing"

	"github.com/clubstack/memberhub/internal/app/features/session"
	"github.com/clubstack/memberhub/internal/testutil"
)

func TestServeSession_Anonymous(t *testing.T) {
	h := session.NewHandler()

	req := testutil.NewRequest(t, "GET", "/api/session", nil)
	rec := testutil.NewRecorder()
	h.ServeSession(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		IsAuthenticated bool   `json:"isAuthenticated"`
		Role            string `json:"role"`
	}
	rec.DecodeJSON(t, &body)
	if body.IsAuthenticated {
		t.Error("expected isAuthenticated=false")
	}
	if body.Role != "" {
		t.Errorf("expected empty role, got %q", body.Role)
	}
}

func TestServeSession_SignedIn(t *testing.T) {
	h := session.NewHandler()

	user := testutil.ExecutiveUser()
	req := testutil.NewAuthenticatedRequest(t, "GET", "/api/session", user)
	rec := testutil.NewRecorder()
	h.ServeSession(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		IsAuthenticated bool   `json:"isAuthenticated"`
		UID             string `json:"uid"`
		Email           string `json:"email"`
		Role            string `json:"role"`
	}
	rec.DecodeJSON(t, &body)
	if !body.IsAuthenticated {
		t.Error("expected isAuthenticated=true")
	}
	if body.UID != user.ID || body.Email != user.Email || body.Role != user.Role {
		t.Errorf("unexpected session payload %+v", body)
	}
}
