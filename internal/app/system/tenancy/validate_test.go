// internal/app/system/tenancy/validate_test.go
package tenancy

import (
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// docFor materializes the document a Locality describes, using the same
// field mapping the derivation consumes.
func docFor(category string, loc Locality) map[string]any {
	attrs := categories[category]
	doc := map[string]any{"_id": primitive.NewObjectID()}
	if attrs.Institute != "" {
		doc[attrs.Institute] = loc.InstituteID
	}
	if attrs.Owner != "" && loc.OwnerUserID != nil {
		doc[attrs.Owner] = *loc.OwnerUserID
	}
	if attrs.CreatedBy != "" && loc.CreatedBy != nil {
		doc[attrs.CreatedBy] = *loc.CreatedBy
	}
	if attrs.Student != "" && loc.StudentID != nil {
		doc[attrs.Student] = *loc.StudentID
	}
	if attrs.Class != "" && loc.ClassID != nil {
		doc[attrs.Class] = *loc.ClassID
	}
	return doc
}

// matches evaluates the subset of query syntax DeriveFilter emits against a
// flat document: field equality, $or, $and, and {$exists: false}.
func matches(filter bson.M, doc map[string]any) bool {
	for key, val := range filter {
		switch key {
		case "$or":
			any := false
			for _, sub := range val.([]bson.M) {
				if matches(sub, doc) {
					any = true
					break
				}
			}
			if !any {
				return false
			}
		case "$and":
			for _, sub := range val.([]bson.M) {
				if !matches(sub, doc) {
					return false
				}
			}
		default:
			if cond, ok := val.(bson.M); ok {
				if exists, ok := cond["$exists"].(bool); ok {
					if _, has := doc[key]; has != exists {
						return false
					}
					continue
				}
			}
			have, has := doc[key]
			if !has || have != val {
				return false
			}
		}
	}
	return true
}

// TestValidateMatchesDerivation checks the two halves of the engine agree:
// a document passes ValidateAccess exactly when a query scoped by
// DeriveFilter would have returned it.
func TestValidateMatchesDerivation(t *testing.T) {
	instID := primitive.NewObjectID()
	otherInst := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	linked := primitive.NewObjectID()
	otherClass := primitive.NewObjectID()

	workspaces := map[string]models.Workspace{
		"institute":       instituteWorkspace(instID),
		"student":         studentWorkspace(owner, instID),
		"teacher":         teacherWorkspace(owner, instID, &linked),
		"teacher_no_link": teacherWorkspace(owner, instID, nil),
	}

	localities := map[string]Locality{
		"same_institute_untagged": {InstituteID: instID},
		"other_institute":         {InstituteID: otherInst},
		"owned":                   {InstituteID: instID, OwnerUserID: &owner},
		"owned_by_stranger":       {InstituteID: otherInst, OwnerUserID: &stranger},
		"created_by_owner":        {InstituteID: instID, CreatedBy: &owner},
		"about_owner":             {InstituteID: instID, StudentID: &owner, CreatedBy: &stranger},
		"in_linked_class":         {InstituteID: instID, ClassID: &linked, CreatedBy: &stranger},
		"in_other_class":          {InstituteID: instID, ClassID: &otherClass, CreatedBy: &stranger},
	}

	for wsName, ws := range workspaces {
		for _, category := range Categories() {
			for locName, loc := range localities {
				name := fmt.Sprintf("%s/%s/%s", wsName, category, locName)
				t.Run(name, func(t *testing.T) {
					validated := ValidateAccess(category, loc, ws)
					derived := matches(DeriveFilter(ws, category), docFor(category, loc))
					if validated != derived {
						t.Errorf("ValidateAccess=%v but derived filter match=%v", validated, derived)
					}
				})
			}
		}
	}
}

func TestValidateAccess_CrossTenant(t *testing.T) {
	instID := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	ws := studentWorkspace(owner, instID)

	// Another user's plan in the same institute stays invisible.
	loc := Locality{InstituteID: instID, OwnerUserID: &stranger, StudentID: &stranger}
	if ValidateAccess(CategoryStudyPlans, loc, ws) {
		t.Error("student workspace saw another student's plan")
	}

	// A plan assigned to the student is visible even though a teacher owns it.
	loc = Locality{InstituteID: instID, CreatedBy: &stranger, StudentID: &owner}
	if !ValidateAccess(CategoryStudyPlans, loc, ws) {
		t.Error("student workspace could not see a plan assigned to them")
	}
}

func TestValidateAccess_LegacyFallback(t *testing.T) {
	instID := primitive.NewObjectID()

	// Untagged documents (no ownership attributes) stay visible to institute
	// workspaces through the institute_id partition alone.
	loc := Locality{InstituteID: instID}
	if !ValidateAccess(CategoryContent, loc, instituteWorkspace(instID)) {
		t.Error("institute workspace lost access to untagged document")
	}

	// Individual workspaces get no such fallback.
	owner := primitive.NewObjectID()
	if ValidateAccess(CategoryContent, loc, studentWorkspace(owner, instID)) {
		t.Error("student workspace matched untagged document")
	}
	if ValidateAccess(CategoryContent, loc, teacherWorkspace(owner, instID, nil)) {
		t.Error("teacher workspace matched untagged document")
	}
}

func TestValidateAccess_FailsClosed(t *testing.T) {
	instID := primitive.NewObjectID()
	loc := Locality{InstituteID: instID}

	if ValidateAccess("no_such_category", loc, instituteWorkspace(instID)) {
		t.Error("unknown category validated")
	}

	ws := instituteWorkspace(instID)
	ws.Type = "WEIRD"
	if ValidateAccess(CategoryClasses, loc, ws) {
		t.Error("unknown workspace type validated")
	}
}
