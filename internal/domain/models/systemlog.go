// internal/domain/models/systemlog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// System log entry types.
const (
	LogUserCreated   = "user_created"
	LogLoginSuccess  = "login_success"
	LogLoginFailed   = "login_failed"
	LogLogout        = "logout"
	LogSignup        = "signup"
	LogFederatedAuth = "federated_auth"
)

// SystemLogEntry is an append-only record of an administrative or
// authentication action: who did it, to whom, and a free-form detail
// payload. Written once, never updated.
type SystemLogEntry struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type string             `bson:"type" json:"type"`

	UserID    string `bson:"user_id,omitempty" json:"userId,omitempty"` // target account
	UserEmail string `bson:"user_email,omitempty" json:"userEmail,omitempty"`

	ChangedBy      string `bson:"changed_by,omitempty" json:"changedBy,omitempty"` // actor account
	ChangedByEmail string `bson:"changed_by_email,omitempty" json:"changedByEmail,omitempty"`

	Timestamp time.Time         `bson:"timestamp" json:"timestamp"`
	Details   map[string]string `bson:"details,omitempty" json:"details,omitempty"`
}
