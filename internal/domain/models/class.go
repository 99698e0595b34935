// internal/domain/models/class.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Class is a cohort inside an institute, or the personal class linked to an
// individual-teacher workspace. CreatedBy and OwnerUserID are locality
// attributes consumed by the isolation engine; documents written before the
// locality migration may carry only InstituteID.
type Class struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	NameCI      string              `bson:"name_ci" json:"name_ci"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	InstituteID primitive.ObjectID  `bson:"institute_id" json:"institute_id"`
	SectionID   *primitive.ObjectID `bson:"section_id,omitempty" json:"section_id,omitempty"`
	PeriodID    *primitive.ObjectID `bson:"period_id,omitempty" json:"period_id,omitempty"`
	CreatedBy   *primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	OwnerUserID *primitive.ObjectID `bson:"owner_user_id,omitempty" json:"owner_user_id,omitempty"`
	Personal    bool                `bson:"personal,omitempty" json:"personal,omitempty"`
	Status      string              `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}
