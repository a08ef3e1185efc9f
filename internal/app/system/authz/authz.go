// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/clubstack/memberhub/internal/app/system/auth"
)

// UserCtx returns the caller's role (lowercased), name, account UID,
// and a found flag. ok=false means no authenticated caller; the role
// then reads "visitor" so templates and logs have something sensible.
func UserCtx(r *http.Request) (role, name, uid string, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ID == "" {
		return "visitor", "", "", false
	}
	return strings.ToLower(u.Role), u.Name, u.ID, true
}

// HasAnyRole reports whether the caller holds any of the given roles.
// Returns false when not signed in.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsExecutive reports whether the caller is an executive.
func IsExecutive(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "executive"
}

// IsMember reports whether the caller is a plain member.
func IsMember(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "member"
}
