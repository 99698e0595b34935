// internal/app/system/tenancy/filter.go
package tenancy

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// MatchNone returns a predicate that matches no documents. Derivation fails
// closed: an unrecognized workspace type or category must never widen a
// query, so the fallback is an empty result, not an unscoped one.
func MatchNone() bson.M {
	return bson.M{"_id": bson.M{"$exists": false}}
}

// DeriveFilter produces the query predicate that scopes bulk reads and
// writes of the given resource category to the workspace's data partition.
// Handlers must intersect this with any caller-supplied filters; the
// derived predicate is always applied, caller filters only narrow it.
//
// Rule table by workspace type:
//
//	INSTITUTE           institute_id == ws.InstituteID
//	INDIVIDUAL_STUDENT  owner == ws.Owner OR student == ws.Owner
//	INDIVIDUAL_TEACHER  created_by == ws.Owner OR owner == ws.Owner
//	                    OR (linked class set AND class == ws.LinkedClassID)
//
// When a category defines several locality attributes the predicate is a
// disjunction: matching any one path makes the resource visible.
//
// Institute matching is by institute_id alone, so documents written before
// the locality-attribute migration (no workspace tag, no ownership fields)
// remain visible to institute workspaces. Individual workspaces get no such
// fallback: ownership cannot be inferred for untagged documents, so their
// predicates only ever match documents carrying ownership attributes.
func DeriveFilter(ws models.Workspace, category string) bson.M {
	attrs, ok := categories[category]
	if !ok {
		return MatchNone()
	}

	switch ws.Type {
	case models.WorkspaceInstitute:
		if attrs.Institute == "" {
			return MatchNone()
		}
		return bson.M{attrs.Institute: ws.InstituteID}

	case models.WorkspaceIndividualStudent:
		var or []bson.M
		if attrs.Owner != "" {
			or = append(or, bson.M{attrs.Owner: ws.OwnerUserID})
		}
		if attrs.Student != "" {
			or = append(or, bson.M{attrs.Student: ws.OwnerUserID})
		}
		return disjunction(or)

	case models.WorkspaceIndividualTeacher:
		var or []bson.M
		if attrs.CreatedBy != "" {
			or = append(or, bson.M{attrs.CreatedBy: ws.OwnerUserID})
		}
		if attrs.Owner != "" {
			or = append(or, bson.M{attrs.Owner: ws.OwnerUserID})
		}
		if attrs.Class != "" && ws.LinkedClassID != nil {
			or = append(or, bson.M{attrs.Class: *ws.LinkedClassID})
		}
		return disjunction(or)

	default:
		return MatchNone()
	}
}

func disjunction(or []bson.M) bson.M {
	switch len(or) {
	case 0:
		return MatchNone()
	case 1:
		return or[0]
	default:
		return bson.M{"$or": or}
	}
}

// Scope intersects a caller-supplied filter with the derived predicate for
// the category. The derived predicate is combined with $and so caller keys
// can never overwrite or substitute for it.
func Scope(ws models.Workspace, category string, filter bson.M) bson.M {
	derived := DeriveFilter(ws, category)
	if len(filter) == 0 {
		return derived
	}
	return bson.M{"$and": []bson.M{derived, filter}}
}
