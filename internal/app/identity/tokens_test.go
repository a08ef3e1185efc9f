package identity_test

import (
	"testing"
	"time"

	"github.com/clubstack/memberhub/internal/app/identity"
	"github.com/clubstack/memberhub/internal/domain/models"
)

func testAccount() *models.Account {
	return &models.Account{
		UID:         "uid-1",
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
	}
}

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens, err := identity.NewTokens("test-secret-0123456789abcdef", "memberhub", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}

	raw, err := tokens.Issue(testAccount(), models.RoleExecutive)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	su, err := tokens.VerifyToken(raw)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if su.ID != "uid-1" {
		t.Errorf("expected uid-1, got %q", su.ID)
	}
	if su.Email != "jane@example.com" {
		t.Errorf("expected email in claims, got %q", su.Email)
	}
	if su.Role != models.RoleExecutive {
		t.Errorf("expected executive role, got %q", su.Role)
	}
}

func TestTokens_VerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := identity.NewTokens("secret-one-0123456789abcdef", "memberhub", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}
	verifier, err := identity.NewTokens("secret-two-0123456789abcdef", "memberhub", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}

	raw, err := issuer.Issue(testAccount(), models.RoleMember)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := verifier.VerifyToken(raw); err != identity.ErrBadToken {
		t.Errorf("expected ErrBadToken, got %v", err)
	}
}

func TestTokens_VerifyRejectsExpired(t *testing.T) {
	tokens, err := identity.NewTokens("test-secret-0123456789abcdef", "memberhub", time.Nanosecond)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}

	raw, err := tokens.Issue(testAccount(), models.RoleMember)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	time.Sleep(2 * time.Millisecond)

	if _, err := tokens.VerifyToken(raw); err != identity.ErrBadToken {
		t.Errorf("expected ErrBadToken for expired token, got %v", err)
	}
}

func TestTokens_VerifyRejectsWrongIssuer(t *testing.T) {
	issuer, err := identity.NewTokens("test-secret-0123456789abcdef", "other-app", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}
	verifier, err := identity.NewTokens("test-secret-0123456789abcdef", "memberhub", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}

	raw, err := issuer.Issue(testAccount(), models.RoleMember)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := verifier.VerifyToken(raw); err != identity.ErrBadToken {
		t.Errorf("expected ErrBadToken for wrong issuer, got %v", err)
	}
}

func TestTokens_NewTokensRequiresSecret(t *testing.T) {
	if _, err := identity.NewTokens("", "memberhub", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
