// internal/app/system/tenancy/permissions.go
package tenancy

import (
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// Permission strings granted to workspace descriptors. These are computed
// per resolution and never persisted.
const (
	PermViewContent         = "view_content"
	PermManageContent       = "manage_content"
	PermViewClasses         = "view_classes"
	PermManageClasses       = "manage_classes"
	PermManageMembers       = "manage_members"
	PermManageInstitute     = "manage_institute"
	PermManagePlatform      = "manage_platform"
	PermViewStudyPlans      = "view_study_plans"
	PermCreateStudyPlan     = "create_study_plan"
	PermManageStudyPlan     = "manage_study_plan"
	PermManageWorkspace     = "manage_workspace"
	PermEditWorkspace       = "edit_workspace"
	PermManagePersonalClass = "manage_personal_class"
	PermCreateAssignments   = "create_assignments"
)

var basePermissions = map[string][]string{
	models.RoleStudent: {
		PermViewClasses, PermViewContent, PermViewStudyPlans,
	},
	models.RoleTeacher: {
		PermViewClasses, PermManageClasses, PermViewContent,
		PermManageContent, PermViewStudyPlans,
	},
	models.RoleInstituteAdmin: {
		PermViewClasses, PermManageClasses, PermViewContent,
		PermManageContent, PermViewStudyPlans, PermManageMembers,
		PermManageInstitute,
	},
	models.RoleAdmin: {
		PermViewClasses, PermManageClasses, PermViewContent,
		PermManageContent, PermViewStudyPlans, PermManageMembers,
		PermManageInstitute, PermManagePlatform,
	},
}

// PermissionsFor computes the permission set for a role inside a workspace
// type. Pure function: base permissions keyed by role, extended with
// workspace-type extras. Unknown roles get no base permissions but
// individual-workspace extras still apply (the owner can always manage
// their own workspace).
func PermissionsFor(role string, wsType models.WorkspaceType) []string {
	role = models.NormalizeRole(role)

	var perms []string
	perms = append(perms, basePermissions[role]...)

	if wsType.IsIndividual() {
		perms = append(perms, PermManageWorkspace, PermEditWorkspace)
	}
	switch wsType {
	case models.WorkspaceIndividualStudent:
		perms = append(perms, PermCreateStudyPlan, PermManageStudyPlan)
	case models.WorkspaceIndividualTeacher:
		perms = append(perms, PermManagePersonalClass, PermCreateAssignments)
	}

	return dedupe(perms)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, p := range in {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
