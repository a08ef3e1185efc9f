// internal/domain/models/account.go
package models

import "time"

// Account is an identity-store entity: the thing that authenticates.
// It carries the role claim that mirrors User.Role. Accounts are keyed
// by a generated UID shared with the user record.
type Account struct {
	UID         string `bson:"_id" json:"uid"`
	Email       string `bson:"email" json:"email"`
	DisplayName string `bson:"display_name,omitempty" json:"displayName,omitempty"`

	// PasswordHash is empty for accounts created through a federated
	// provider.
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`
	Provider     string `bson:"provider,omitempty" json:"provider,omitempty"` // "password", "google.com"

	EmailVerified bool `bson:"email_verified" json:"emailVerified"`
	Disabled      bool `bson:"disabled,omitempty" json:"disabled,omitempty"`

	// RoleClaim is the custom role attribute attached to the account.
	// Empty means no claim has been set; callers treat that as "member".
	RoleClaim string `bson:"role_claim,omitempty" json:"roleClaim,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Role returns the effective role carried by the claim, defaulting to
// member when no claim is set.
func (a *Account) Role() string {
	if a.RoleClaim == "" {
		return RoleMember
	}
	return a.RoleClaim
}
