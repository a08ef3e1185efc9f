// internal/domain/models/roleaudit.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleAuditEntry is an append-only record of a role change. One entry is
// written per successful change and never mutated afterwards. OldRole is
// a best-effort snapshot; when the target had no record (or the read
// failed) it holds "unknown".
type RoleAuditEntry struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TargetUID      string             `bson:"target_uid" json:"targetUserId"`
	ChangedBy      string             `bson:"changed_by" json:"changedBy"`
	ChangedByEmail string             `bson:"changed_by_email" json:"changedByEmail"`
	OldRole        string             `bson:"old_role" json:"oldRole"`
	NewRole        string             `bson:"new_role" json:"newRole"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
}

// RoleUnknown is recorded as OldRole when the prior role could not be
// determined.
const RoleUnknown = "unknown"
