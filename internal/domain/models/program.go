// internal/domain/models/program.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Period is an academic term (program cycle) inside an institute. Deleting a
// period cascades to its sections, subjects, classes, class members, and
// content; the cascade is a sequence of independent deletes, not a
// transaction.
type Period struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"`
	InstituteID primitive.ObjectID `bson:"institute_id" json:"institute_id"`
	StartDate   *time.Time         `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Section is a grade/level subdivision of a period.
type Section struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	NameCI      string              `bson:"name_ci" json:"name_ci"`
	InstituteID primitive.ObjectID  `bson:"institute_id" json:"institute_id"`
	PeriodID    *primitive.ObjectID `bson:"period_id,omitempty" json:"period_id,omitempty"`
	Status      string              `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}

// Subject is a course of study offered inside a period/section.
type Subject struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	NameCI      string              `bson:"name_ci" json:"name_ci"`
	InstituteID primitive.ObjectID  `bson:"institute_id" json:"institute_id"`
	PeriodID    *primitive.ObjectID `bson:"period_id,omitempty" json:"period_id,omitempty"`
	SectionID   *primitive.ObjectID `bson:"section_id,omitempty" json:"section_id,omitempty"`
	Status      string              `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}
