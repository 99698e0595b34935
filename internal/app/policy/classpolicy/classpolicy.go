// internal/app/policy/classpolicy/classpolicy.go
package classpolicy

import (
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// CanView reports whether the workspace can see the class at all. This is
// the same visibility rule the list filters enforce, applied to a single
// document fetched by id.
func CanView(ws models.Workspace, c models.Class) bool {
	return tenancy.ValidateAccess(tenancy.CategoryClasses, tenancy.ClassLocality(c), ws)
}

// CanManage reports whether the workspace can mutate the class:
//   - the class must be visible to the workspace at all
//   - institute workspaces additionally need the manage_classes permission
//   - a personal class can only be managed by its owning teacher workspace
func CanManage(ws models.Workspace, c models.Class) bool {
	if !CanView(ws, c) {
		return false
	}
	if c.Personal {
		return ws.Type == models.WorkspaceIndividualTeacher &&
			ws.LinkedClassID != nil && *ws.LinkedClassID == c.ID
	}
	return ws.HasPermission(tenancy.PermManageClasses)
}
