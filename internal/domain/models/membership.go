// internal/domain/models/membership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership is the authoritative, persisted link between a user and an
// institutional context. One membership document backs exactly one
// workspace descriptor.
//
// Invariant: at most one document per (user_id, institute_id, workspace_type);
// enforced by a unique index, not by in-process checks (two concurrent
// creators can both pass a read-then-write check).
type Membership struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InstituteID   primitive.ObjectID  `bson:"institute_id" json:"institute_id"`
	UserID        primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Role          string              `bson:"role" json:"role"` // student | teacher | institute_admin | admin
	WorkspaceType WorkspaceType       `bson:"workspace_type" json:"workspace_type"`
	WorkspaceName string              `bson:"workspace_name" json:"workspace_name"`
	LinkedClassID *primitive.ObjectID `bson:"linked_class_id,omitempty" json:"linked_class_id,omitempty"`
	Status        string              `bson:"status" json:"status"`
	JoinedAt      time.Time           `bson:"joined_at" json:"joined_at"`
}
