// internal/domain/models/user.go
package models

import (
	"strings"
	"time"
)

// User is the document-store record for a portal member.
//
// NOTE:
//   - The document is keyed by the identity account's UID, not a Mongo
//     ObjectID, so the `users` collection and the identity store share
//     one key space.
//   - Role mirrors the identity account's role claim; after any
//     successful role change both must hold the same value.
type User struct {
	UID         string `bson:"_id" json:"uid"`
	Email       string `bson:"email" json:"email"`
	FirstName   string `bson:"first_name" json:"firstName"`
	LastName    string `bson:"last_name" json:"lastName"`
	DisplayName string `bson:"display_name,omitempty" json:"displayName,omitempty"`
	NameCI      string `bson:"name_ci,omitempty" json:"-"` // lowercase, diacritics-stripped
	PhotoURL    string `bson:"photo_url,omitempty" json:"photoURL,omitempty"`

	Role       string `bson:"role" json:"role"` // member | executive | admin
	Department string `bson:"department,omitempty" json:"department,omitempty"`
	Location   string `bson:"location,omitempty" json:"location,omitempty"`
	Provider   string `bson:"provider,omitempty" json:"provider,omitempty"`

	ProfileComplete bool `bson:"profile_complete" json:"profileComplete"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
	LastLogin *time.Time `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
}

// FullName composes the display name from first/last, falling back to
// the stored display name when the parts are absent.
func (u *User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.DisplayName
	}
	return full
}
