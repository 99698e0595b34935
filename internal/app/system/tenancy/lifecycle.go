// internal/app/system/tenancy/lifecycle.go
package tenancy

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	institutestore "github.com/lyceumhq/lyceum/internal/app/store/institutes"
	membershipstore "github.com/lyceumhq/lyceum/internal/app/store/memberships"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/status"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// GenericInstituteName is the display name of the placeholder institute
// that hosts all individual workspaces.
const GenericInstituteName = "Independent Learners"

// Manager owns workspace creation and mutation. Reads go through Resolve;
// everything that writes memberships or their linked classes goes through
// here so the ordering invariants live in one place.
type Manager struct {
	db          *mongo.Database
	log         *zap.Logger
	memberships *membershipstore.Store
	institutes  *institutestore.Store
	classes     *classstore.Store
}

func NewManager(db *mongo.Database, log *zap.Logger) *Manager {
	return &Manager{
		db:          db,
		log:         log,
		memberships: membershipstore.New(db),
		institutes:  institutestore.New(db),
		classes:     classstore.New(db),
	}
}

// CreatePersonalWorkspace provisions an individual workspace for a user.
//
// The membership insert is the uniqueness gate: its unique index decides who
// wins when two requests race, so it happens before any dependent writes.
// For teacher workspaces the personal class is created after, and the
// membership is removed again if the class insert fails, so a teacher
// workspace is never left without its class.
func (m *Manager) CreatePersonalWorkspace(ctx context.Context, userID primitive.ObjectID, wsType models.WorkspaceType, name string) (models.Workspace, error) {
	if !wsType.IsIndividual() {
		return models.Workspace{}, apperr.Validation("workspace type %q is not an individual type", wsType)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Workspace{}, apperr.Validation("workspace name is required")
	}

	inst, err := m.institutes.EnsureGeneric(ctx, GenericInstituteName)
	if err != nil {
		return models.Workspace{}, err
	}

	role := models.RoleStudent
	if wsType == models.WorkspaceIndividualTeacher {
		role = models.RoleTeacher
	}

	mem, err := m.memberships.Create(ctx, models.Membership{
		InstituteID:   inst.ID,
		UserID:        userID,
		Role:          role,
		WorkspaceType: wsType,
		WorkspaceName: name,
	})
	if err != nil {
		if err == membershipstore.ErrDuplicateWorkspace {
			return models.Workspace{}, apperr.Conflict("user already has a %s workspace", wsType)
		}
		return models.Workspace{}, err
	}

	if wsType == models.WorkspaceIndividualTeacher {
		cls, err := m.classes.Create(ctx, models.Class{
			Name:        name,
			InstituteID: inst.ID,
			CreatedBy:   &userID,
			OwnerUserID: &userID,
			Personal:    true,
		})
		if err != nil {
			// Roll the membership back so the failed creation can be retried.
			// Best effort: a leftover membership without a linked class is
			// harmless to other users and repairable on the next attempt.
			if _, derr := m.memberships.Delete(ctx, mem.ID); derr != nil {
				m.log.Warn("orphaned teacher membership after class create failure",
					zap.String("membership_id", mem.ID.Hex()),
					zap.Error(derr))
			}
			return models.Workspace{}, err
		}
		if err := m.memberships.SetLinkedClass(ctx, mem.ID, cls.ID); err != nil {
			return models.Workspace{}, err
		}
		mem.LinkedClassID = &cls.ID
	}

	m.log.Info("personal workspace created",
		zap.String("membership_id", mem.ID.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.String("workspace_type", string(wsType)))

	return assemble(mem, inst, userID), nil
}

// WorkspaceUpdate carries the restricted field set callers may change on a
// workspace. Nil fields are left untouched.
type WorkspaceUpdate struct {
	Name   *string
	Status *string
}

// UpdateWorkspace applies a restricted update to an individual workspace the
// caller owns. Renaming a teacher workspace renames its personal class too,
// so the two never drift apart; the class id is stable across renames.
func (m *Manager) UpdateWorkspace(ctx context.Context, userID, workspaceID primitive.ObjectID, upd WorkspaceUpdate) (models.Workspace, error) {
	mem, err := m.memberships.GetByID(ctx, workspaceID)
	if err != nil {
		if err == membershipstore.ErrNotFound {
			return models.Workspace{}, apperr.NotFound("workspace not found")
		}
		return models.Workspace{}, err
	}
	if !mem.WorkspaceType.IsIndividual() {
		return models.Workspace{}, apperr.Validation("only individual workspaces can be updated here")
	}
	if mem.UserID != userID {
		return models.Workspace{}, apperr.Forbidden("workspace belongs to another user")
	}

	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return models.Workspace{}, apperr.Validation("workspace name cannot be empty")
		}
		upd.Name = &trimmed
	}
	if upd.Status != nil && !status.IsValid(*upd.Status) {
		return models.Workspace{}, apperr.Validation("unknown status %q", *upd.Status)
	}

	if err := m.memberships.UpdateWorkspaceFields(ctx, mem.ID, upd.Name, upd.Status); err != nil {
		return models.Workspace{}, err
	}
	if upd.Name != nil {
		mem.WorkspaceName = *upd.Name
		if mem.LinkedClassID != nil {
			if err := m.classes.Rename(ctx, *mem.LinkedClassID, *upd.Name); err != nil {
				return models.Workspace{}, err
			}
		}
	}
	if upd.Status != nil {
		mem.Status = *upd.Status
	}

	inst, err := m.institutes.GetByID(ctx, mem.InstituteID)
	if err != nil {
		return models.Workspace{}, err
	}
	return assemble(mem, inst, userID), nil
}
