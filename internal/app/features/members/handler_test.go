// internal/app/features/members/handler_test.go
package members_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/features/members"
	"github.com/lyceumhq/lyceum/internal/app/system/indexes"
	"github.com/lyceumhq/lyceum/internal/domain/models"
	"github.com/lyceumhq/lyceum/internal/testutil"
)

func newTestHandler(t *testing.T) (*members.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return members.NewHandler(db, apierrors.NewErrorLogger(logger), logger), db
}

func addBody(classID, studentID primitive.ObjectID, fullName, role string) *strings.Reader {
	return strings.NewReader(fmt.Sprintf(
		`{"class_id": %q, "student_id": %q, "full_name": %q, "role": %q}`,
		classID.Hex(), studentID.Hex(), fullName, role))
}

func TestHandleAdd_NormalizesRole(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, teacherID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")
	cls := f.CreateClass(ctx, "Algebra", inst.ID, &teacherID, nil, false)

	req := httptest.NewRequest("POST", "/members",
		addBody(cls.ID, primitive.NewObjectID(), "Marty McFly", "TEACHER"))
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.HandleAdd(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.ClassMember
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if created.Role != models.RoleTeacher {
		t.Errorf("role not normalized at ingestion: got %q", created.Role)
	}
}

func TestHandleAdd_RejectsUnknownRole(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, teacherID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")
	cls := f.CreateClass(ctx, "Algebra", inst.ID, &teacherID, nil, false)

	req := httptest.NewRequest("POST", "/members",
		addBody(cls.ID, primitive.NewObjectID(), "Biff Tannen", "janitor"))
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.HandleAdd(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", rec.Code)
	}
}

func TestHandleAdd_DuplicateConflict(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to ensure indexes: %v", err)
	}

	teacherID := primitive.NewObjectID()
	studentID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, teacherID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")
	cls := f.CreateClass(ctx, "Algebra", inst.ID, &teacherID, nil, false)
	ws := testutil.WorkspaceFromMembership(mem)

	req := httptest.NewRequest("POST", "/members", addBody(cls.ID, studentID, "Marty McFly", "student"))
	req = testutil.WithWorkspace(req, ws)
	rec := httptest.NewRecorder()
	h.HandleAdd(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first add, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("POST", "/members", addBody(cls.ID, studentID, "Marty McFly", "student"))
	req = testutil.WithWorkspace(req, ws)
	rec = httptest.NewRecorder()
	h.HandleAdd(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate add, got %d", rec.Code)
	}
}

func TestHandleAdd_CrossTenantClassReadsAsMissing(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	mine := f.CreateInstitute(ctx, "Hill Valley High")
	other := f.CreateInstitute(ctx, "Shelbyville Prep")
	mem := f.CreateMembership(ctx, teacherID, mine.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")
	foreign := f.CreateClass(ctx, "Chemistry", other.ID, nil, nil, false)

	// An existing class in another institute must be indistinguishable from
	// a missing one.
	req := httptest.NewRequest("POST", "/members",
		addBody(foreign.ID, primitive.NewObjectID(), "Marty McFly", "student"))
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()
	h.HandleAdd(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cross-tenant class, got %d", rec.Code)
	}

	req = httptest.NewRequest("POST", "/members",
		addBody(primitive.NewObjectID(), primitive.NewObjectID(), "Marty McFly", "student"))
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec = httptest.NewRecorder()
	h.HandleAdd(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing class, got %d", rec.Code)
	}
}

func TestHandleAdd_VisibleButUnmanagedForbidden(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	studentID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, studentID, inst.ID, models.WorkspaceInstitute, "student", "Hill Valley High")
	cls := f.CreateClass(ctx, "Algebra", inst.ID, nil, nil, false)

	// A student sees the institute's classes but cannot manage enrollment:
	// this is the one case that answers Forbidden rather than NotFound.
	req := httptest.NewRequest("POST", "/members",
		addBody(cls.ID, primitive.NewObjectID(), "Biff Tannen", "student"))
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.HandleAdd(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for visible but unmanaged class, got %d", rec.Code)
	}
}
