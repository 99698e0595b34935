// internal/domain/models/workspace.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkspaceType classifies the tenancy model a membership grants.
//
//   - WorkspaceInstitute: a shared institutional workspace; zero or more
//     members, no single owner. Data is partitioned by institute_id.
//   - WorkspaceIndividualTeacher: owned by exactly one teacher; carries an
//     automatically created personal class.
//   - WorkspaceIndividualStudent: owned by exactly one student.
type WorkspaceType string

const (
	WorkspaceInstitute         WorkspaceType = "INSTITUTE"
	WorkspaceIndividualTeacher WorkspaceType = "INDIVIDUAL_TEACHER"
	WorkspaceIndividualStudent WorkspaceType = "INDIVIDUAL_STUDENT"
)

// IsIndividual reports whether the type is one of the single-owner kinds.
func (t WorkspaceType) IsIndividual() bool {
	return t == WorkspaceIndividualTeacher || t == WorkspaceIndividualStudent
}

// IsValid reports whether t is one of the known workspace types.
func (t WorkspaceType) IsValid() bool {
	switch t {
	case WorkspaceInstitute, WorkspaceIndividualTeacher, WorkspaceIndividualStudent:
		return true
	}
	return false
}

// Workspace is the resolved, request-scoped access context derived from a
// membership and its institute. It is never persisted and never cached
// across requests; every request resolves its own descriptor.
type Workspace struct {
	ID            primitive.ObjectID  `json:"id"` // backing membership id
	Type          WorkspaceType       `json:"type"`
	Name          string              `json:"name"`
	OwnerUserID   primitive.ObjectID  `json:"owner_user_id"`
	InstituteID   primitive.ObjectID  `json:"institute_id"`
	LinkedClassID *primitive.ObjectID `json:"linked_class_id,omitempty"`
	Role          string              `json:"role"`
	Permissions   []string            `json:"permissions"`
	Status        string              `json:"status"`
}

// HasPermission reports whether the descriptor carries the named permission.
func (w Workspace) HasPermission(perm string) bool {
	for _, p := range w.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
