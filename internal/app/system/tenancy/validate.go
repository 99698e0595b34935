// internal/app/system/tenancy/validate.go
package tenancy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// Locality is the closed, typed view of a resource's locality attributes.
// Handlers build one from an already-loaded document (via the adapters in
// locality.go) before asking ValidateAccess for a decision. Nil pointers
// mean the document does not carry that attribute — typical for records
// written before the locality migration.
type Locality struct {
	InstituteID primitive.ObjectID
	OwnerUserID *primitive.ObjectID
	CreatedBy   *primitive.ObjectID
	StudentID   *primitive.ObjectID
	ClassID     *primitive.ObjectID
}

// ValidateAccess decides whether a single, fully-loaded resource belongs to
// the workspace. It applies the same rule table as DeriveFilter, evaluated
// against concrete field values, and is the second line of defense for
// documents fetched through paths that could not apply the derived
// predicate inline (joins, aggregations, raw-id lookups).
//
// Equivalence requirement: ValidateAccess(category, loc, ws) is true iff a
// query filtered by DeriveFilter(ws, category) would have returned the
// document loc was built from.
func ValidateAccess(category string, loc Locality, ws models.Workspace) bool {
	attrs, ok := categories[category]
	if !ok {
		return false
	}

	switch ws.Type {
	case models.WorkspaceInstitute:
		return attrs.Institute != "" && loc.InstituteID == ws.InstituteID

	case models.WorkspaceIndividualStudent:
		if attrs.Owner != "" && idEquals(loc.OwnerUserID, ws.OwnerUserID) {
			return true
		}
		if attrs.Student != "" && idEquals(loc.StudentID, ws.OwnerUserID) {
			return true
		}
		return false

	case models.WorkspaceIndividualTeacher:
		if attrs.CreatedBy != "" && idEquals(loc.CreatedBy, ws.OwnerUserID) {
			return true
		}
		if attrs.Owner != "" && idEquals(loc.OwnerUserID, ws.OwnerUserID) {
			return true
		}
		if attrs.Class != "" && ws.LinkedClassID != nil && idEquals(loc.ClassID, *ws.LinkedClassID) {
			return true
		}
		return false

	default:
		// Unknown workspace type: fail closed, same as derivation.
		return false
	}
}

func idEquals(have *primitive.ObjectID, want primitive.ObjectID) bool {
	return have != nil && *have == want
}
