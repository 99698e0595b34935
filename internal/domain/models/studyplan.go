// internal/domain/models/studyplan.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudyPlanItem is one step in a study plan.
type StudyPlanItem struct {
	Title     string     `bson:"title" json:"title"`
	Notes     string     `bson:"notes,omitempty" json:"notes,omitempty"` // sanitized HTML
	ContentID *primitive.ObjectID `bson:"content_id,omitempty" json:"content_id,omitempty"`
	DueDate   *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Done      bool       `bson:"done" json:"done"`
}

// StudyPlan is an ordered set of study items. For individual-student
// workspaces StudentID carries ownership; teacher-assigned plans carry
// CreatedBy and optionally a ClassID.
type StudyPlan struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	NameCI      string              `bson:"name_ci" json:"name_ci"`
	InstituteID primitive.ObjectID  `bson:"institute_id" json:"institute_id"`
	StudentID   *primitive.ObjectID `bson:"student_id,omitempty" json:"student_id,omitempty"`
	OwnerUserID *primitive.ObjectID `bson:"owner_user_id,omitempty" json:"owner_user_id,omitempty"`
	CreatedBy   *primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	ClassID     *primitive.ObjectID `bson:"class_id,omitempty" json:"class_id,omitempty"`
	Items       []StudyPlanItem     `bson:"items,omitempty" json:"items,omitempty"`
	ShareCode   string              `bson:"share_code,omitempty" json:"share_code,omitempty"`
	Status      string              `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}
