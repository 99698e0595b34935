// Package status defines the shared lifecycle status values used across
// collections. Workspaces, institutes, classes, and content all use the
// same two-state model.
package status

const (
	Active   = "active"
	Inactive = "inactive"
)

// IsValid reports whether s is a known status value.
func IsValid(s string) bool {
	return s == Active || s == Inactive
}
