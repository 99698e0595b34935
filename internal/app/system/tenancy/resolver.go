// internal/app/system/tenancy/resolver.go
package tenancy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	institutestore "github.com/lyceumhq/lyceum/internal/app/store/institutes"
	membershipstore "github.com/lyceumhq/lyceum/internal/app/store/memberships"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// Resolve turns a caller identity and a requested workspace reference into
// a workspace descriptor. ref is a membership id in hex, or empty for the
// caller's default (earliest active) membership.
//
// Ownership is confirmed before anything is returned: individual workspace
// types require the backing membership to belong to the caller; an
// institute workspace requires the caller to hold their own membership in
// that institute, and the caller's membership supplies the role.
//
// Resolution is a pure read with no side effects, so resolving the same
// (identity, ref) twice yields identical descriptors.
func Resolve(ctx context.Context, db *mongo.Database, identity primitive.ObjectID, ref string) (models.Workspace, error) {
	memberships := membershipstore.New(db)

	var (
		m   models.Membership
		err error
	)
	if ref == "" {
		m, err = memberships.GetDefault(ctx, identity)
	} else {
		var mid primitive.ObjectID
		mid, err = primitive.ObjectIDFromHex(ref)
		if err != nil {
			return models.Workspace{}, apperr.Validation("malformed workspace reference %q", ref)
		}
		m, err = memberships.GetByID(ctx, mid)
	}
	if err != nil {
		if err == membershipstore.ErrNotFound {
			return models.Workspace{}, apperr.NotFound("workspace not found")
		}
		return models.Workspace{}, err
	}

	if m.WorkspaceType.IsIndividual() {
		if m.UserID != identity {
			return models.Workspace{}, apperr.Forbidden("workspace belongs to another user")
		}
	} else {
		// Institute workspaces are shared: any member of the institute may
		// resolve them, but the caller's own membership carries their role.
		if m.UserID != identity {
			own, err := memberships.GetForUserInInstitute(ctx, identity, m.InstituteID)
			if err != nil {
				if err == membershipstore.ErrNotFound {
					return models.Workspace{}, apperr.Forbidden("caller is not a member of this institute")
				}
				return models.Workspace{}, err
			}
			m = own
		}
	}

	inst, err := institutestore.New(db).GetByID(ctx, m.InstituteID)
	if err != nil {
		if err == institutestore.ErrNotFound {
			return models.Workspace{}, apperr.NotFound("institute not found")
		}
		return models.Workspace{}, err
	}

	return assemble(m, inst, identity), nil
}

// assemble builds the request-scoped descriptor from a membership and its
// institute. OwnerUserID is the resolved caller for institute workspaces
// (which have no single owner) and the membership owner for individual
// types; the two coincide after the ownership checks above.
func assemble(m models.Membership, inst models.Institute, identity primitive.ObjectID) models.Workspace {
	return models.Workspace{
		ID:            m.ID,
		Type:          m.WorkspaceType,
		Name:          m.WorkspaceName,
		OwnerUserID:   identity,
		InstituteID:   inst.ID,
		LinkedClassID: m.LinkedClassID,
		Role:          models.NormalizeRole(m.Role),
		Permissions:   PermissionsFor(m.Role, m.WorkspaceType),
		Status:        m.Status,
	}
}
