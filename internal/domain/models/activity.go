// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is a portal activity record shown on the executive overview.
// The portal only reads this collection; entries are produced elsewhere.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        string             `bson:"type,omitempty" json:"type,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	UserID      string             `bson:"user_id,omitempty" json:"userId,omitempty"`
	UserName    string             `bson:"user_name,omitempty" json:"userName,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
