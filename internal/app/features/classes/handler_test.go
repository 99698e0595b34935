// internal/app/features/classes/handler_test.go
package classes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/lyceumhq/lyceum/internal/app/features/classes"
	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/domain/models"
	"github.com/lyceumhq/lyceum/internal/testutil"
)

func newTestHandler(t *testing.T) (*classes.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return classes.NewHandler(db, apierrors.NewErrorLogger(logger), logger), db
}

func TestServeList_ScopedToInstitute(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	mine := f.CreateInstitute(ctx, "Hill Valley High")
	other := f.CreateInstitute(ctx, "Shelbyville Prep")
	mem := f.CreateMembership(ctx, teacherID, mine.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")

	f.CreateClass(ctx, "Algebra", mine.ID, nil, nil, false)
	f.CreateClass(ctx, "Biology", mine.ID, nil, nil, false)
	f.CreateClass(ctx, "Chemistry", other.ID, nil, nil, false)

	req := httptest.NewRequest("GET", "/classes", nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Classes []models.Class `json:"classes"`
		Total   int64          `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Total != 2 || len(resp.Classes) != 2 {
		t.Fatalf("expected 2 classes, got total=%d len=%d", resp.Total, len(resp.Classes))
	}
	for _, c := range resp.Classes {
		if c.InstituteID != mine.ID {
			t.Errorf("class %s leaked from another institute", c.Name)
		}
	}
}

func TestServeList_LiteralPrefixSearch(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, teacherID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")

	f.CreateClass(ctx, "A.P. Chemistry", inst.ID, nil, nil, false)
	f.CreateClass(ctx, "Algebra", inst.ID, nil, nil, false)

	// "a." must match the dot literally, not as a wildcard that would also
	// pick up Algebra.
	req := httptest.NewRequest("GET", "/classes?q=a.", nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Classes []models.Class `json:"classes"`
		Total   int64          `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Total != 1 || len(resp.Classes) != 1 {
		t.Fatalf("expected exactly the dotted class, got total=%d len=%d", resp.Total, len(resp.Classes))
	}
	if resp.Classes[0].Name != "A.P. Chemistry" {
		t.Errorf("wrong class matched: %s", resp.Classes[0].Name)
	}
}

func TestServeView_CrossTenantReadsAsMissing(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	mine := f.CreateInstitute(ctx, "Hill Valley High")
	other := f.CreateInstitute(ctx, "Shelbyville Prep")
	mem := f.CreateMembership(ctx, teacherID, mine.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")
	foreign := f.CreateClass(ctx, "Chemistry", other.ID, nil, nil, false)

	req := httptest.NewRequest("GET", "/classes/"+foreign.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	req = testutil.WithChiURLParam(req, "id", foreign.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeView(rec, req)

	// The raw id exists, but outside the workspace it reads as missing —
	// never as forbidden, which would confirm existence.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cross-tenant fetch, got %d", rec.Code)
	}
}

func TestHandleCreate_RequiresManagePermission(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	studentID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, studentID, inst.ID, models.WorkspaceInstitute, "student", "Hill Valley High")

	body := strings.NewReader(`{"name": "Sneaky Class"}`)
	req := httptest.NewRequest("POST", "/classes", body)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student create, got %d", rec.Code)
	}
}

func TestHandleCreate_IndividualTeacherOwnsClass(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	generic := f.CreateGenericInstitute(ctx)
	mem := f.CreateMembership(ctx, teacherID, generic.ID, models.WorkspaceIndividualTeacher, "teacher", "My Classroom")

	body := strings.NewReader(`{"name": "Evening Algebra"}`)
	req := httptest.NewRequest("POST", "/classes", body)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Class
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if created.OwnerUserID == nil || *created.OwnerUserID != teacherID {
		t.Error("individual teacher's class should carry ownership")
	}
	if created.CreatedBy == nil || *created.CreatedBy != teacherID {
		t.Error("created_by not recorded")
	}
}

func TestHandleDelete_PersonalClassRefused(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	generic := f.CreateGenericInstitute(ctx)
	personal := f.CreateClass(ctx, "My Classroom", generic.ID, &teacherID, &teacherID, true)

	mem := f.CreateMembership(ctx, teacherID, generic.ID, models.WorkspaceIndividualTeacher, "teacher", "My Classroom")
	ws := testutil.WorkspaceFromMembership(mem)
	ws.LinkedClassID = &personal.ID

	req := httptest.NewRequest("DELETE", "/classes/"+personal.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, ws)
	req = testutil.WithChiURLParam(req, "id", personal.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 deleting personal class, got %d", rec.Code)
	}
}

func TestHandleDelete_BlockedByDependents(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, teacherID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")
	cls := f.CreateClass(ctx, "Algebra", inst.ID, &teacherID, nil, false)
	f.CreateClassMember(ctx, cls.ID, inst.ID, primitive.NewObjectID(), "Marty McFly")

	req := httptest.NewRequest("DELETE", "/classes/"+cls.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	req = testutil.WithChiURLParam(req, "id", cls.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 with dependent members, got %d", rec.Code)
	}
}

func TestHandleDelete_EmptyClass(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, teacherID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")
	cls := f.CreateClass(ctx, "Algebra", inst.ID, &teacherID, nil, false)

	req := httptest.NewRequest("DELETE", "/classes/"+cls.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	req = testutil.WithChiURLParam(req, "id", cls.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
}
