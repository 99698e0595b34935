// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content is teaching material (lesson, reading, assignment brief) scoped to
// a workspace through its locality attributes. Body is sanitized HTML.
type Content struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Title       string              `bson:"title" json:"title"`
	TitleCI     string              `bson:"title_ci" json:"title_ci"`
	Body        string              `bson:"body,omitempty" json:"body,omitempty"`
	Kind        string              `bson:"kind" json:"kind"` // lesson | reading | assignment
	InstituteID primitive.ObjectID  `bson:"institute_id" json:"institute_id"`
	ClassID     *primitive.ObjectID `bson:"class_id,omitempty" json:"class_id,omitempty"`
	CreatedBy   *primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	OwnerUserID *primitive.ObjectID `bson:"owner_user_id,omitempty" json:"owner_user_id,omitempty"`
	FileKey     string              `bson:"file_key,omitempty" json:"file_key,omitempty"`
	FileName    string              `bson:"file_name,omitempty" json:"file_name,omitempty"`
	Status      string              `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}
