// internal/domain/models/roles.go
package models

import "strings"

// Canonical role strings. Roles are normalized to this lowercase form at
// every ingestion point; comparisons elsewhere assume the canonical form.
const (
	RoleStudent        = "student"
	RoleTeacher        = "teacher"
	RoleInstituteAdmin = "institute_admin"
	RoleAdmin          = "admin"
)

// NormalizeRole lowercases and trims a role string. It does not reject
// unknown roles; use IsValidRole for that.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// IsValidRole reports whether the (already normalized) role is canonical.
func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleInstituteAdmin, RoleAdmin:
		return true
	}
	return false
}
