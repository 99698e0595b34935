// internal/domain/models/classmember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassMember links a user to a class with a scalar role. Exactly one
// document per (class_id, student_id).
type ClassMember struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InstituteID primitive.ObjectID  `bson:"institute_id" json:"institute_id"`
	ClassID     primitive.ObjectID  `bson:"class_id" json:"class_id"`
	StudentID   primitive.ObjectID  `bson:"student_id" json:"student_id"`
	CreatedBy   *primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	FullName    string              `bson:"full_name" json:"full_name"`
	FullNameCI  string              `bson:"full_name_ci" json:"full_name_ci"`
	Role        string              `bson:"role" json:"role"` // student | teacher
	Status      string              `bson:"status" json:"status"`
	JoinedAt    time.Time           `bson:"joined_at" json:"joined_at"`
}
