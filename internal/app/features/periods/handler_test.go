// internal/app/features/periods/handler_test.go
package periods_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/features/periods"
	"github.com/lyceumhq/lyceum/internal/domain/models"
	"github.com/lyceumhq/lyceum/internal/testutil"
)

func TestHandleCascadeDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := zap.NewNop()
	h := periods.NewHandler(db, apierrors.NewErrorLogger(logger), logger)

	adminID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, adminID, inst.ID, models.WorkspaceInstitute, "institute_admin", "Hill Valley High")

	period := f.CreatePeriod(ctx, "2026-2027", inst.ID)
	f.CreateSection(ctx, "Grade 9", inst.ID, &period.ID)
	f.CreateSection(ctx, "Grade 10", inst.ID, &period.ID)
	f.CreateSubject(ctx, "Algebra", inst.ID, &period.ID, nil)

	cls := f.CreateClass(ctx, "Algebra 9A", inst.ID, &adminID, nil, false)
	db.Collection("classes").FindOneAndUpdate(ctx,
		bson.M{"_id": cls.ID},
		bson.M{"$set": bson.M{"period_id": period.ID}})
	f.CreateClassMember(ctx, cls.ID, inst.ID, primitive.NewObjectID(), "Marty McFly")
	f.CreateClassMember(ctx, cls.ID, inst.ID, primitive.NewObjectID(), "Jennifer Parker")
	f.CreateContent(ctx, "Lesson 1", inst.ID, &adminID, nil, &cls.ID)

	// A class outside the period must survive the cascade.
	outside := f.CreateClass(ctx, "Chess Club", inst.ID, &adminID, nil, false)

	req := httptest.NewRequest("DELETE", "/periods/"+period.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	req = testutil.WithChiURLParam(req, "id", period.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleCascadeDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Deleted map[string]int64 `json:"deleted"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	want := map[string]int64{
		"sections":      2,
		"subjects":      1,
		"classes":       1,
		"class_members": 2,
		"content":       1,
		"periods":       1,
	}
	for k, n := range want {
		if resp.Deleted[k] != n {
			t.Errorf("deleted[%s] = %d, want %d", k, resp.Deleted[k], n)
		}
	}

	if n, _ := db.Collection("classes").CountDocuments(ctx, bson.M{"_id": outside.ID}); n != 1 {
		t.Error("class outside the period was deleted")
	}
	if n, _ := db.Collection("periods").CountDocuments(ctx, bson.M{"_id": period.ID}); n != 0 {
		t.Error("period survived its own cascade")
	}
}

func TestHandleCascadeDelete_RequiresInstituteManager(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := zap.NewNop()
	h := periods.NewHandler(db, apierrors.NewErrorLogger(logger), logger)

	studentID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, studentID, inst.ID, models.WorkspaceInstitute, "student", "Hill Valley High")
	period := f.CreatePeriod(ctx, "2026-2027", inst.ID)

	req := httptest.NewRequest("DELETE", "/periods/"+period.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	req = testutil.WithChiURLParam(req, "id", period.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleCascadeDelete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student cascade, got %d", rec.Code)
	}
	if n, _ := db.Collection("periods").CountDocuments(ctx, bson.M{"_id": period.ID}); n != 1 {
		t.Error("period deleted despite forbidden request")
	}
}
