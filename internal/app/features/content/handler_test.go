// internal/app/features/content/handler_test.go
package content_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lyceumhq/lyceum/internal/app/features/content"
	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/domain/models"
	"github.com/lyceumhq/lyceum/internal/testutil"
)

func newTestHandler(t *testing.T) (*content.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return content.NewHandler(db, apierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestHandleCreate_SanitizesBody(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, teacherID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")

	body := strings.NewReader(`{
		"title": "Intro to Time Travel",
		"kind": "lesson",
		"body": "<p>Flux capacitor</p><script>alert('gigawatts')</script>"
	}`)
	req := httptest.NewRequest("POST", "/content", body)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Content
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if strings.Contains(created.Body, "<script>") {
		t.Errorf("script survived sanitization: %q", created.Body)
	}
	if !strings.Contains(created.Body, "<p>Flux capacitor</p>") {
		t.Errorf("benign markup lost: %q", created.Body)
	}
}

func TestHandleCreate_RejectsUnknownKind(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, teacherID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")

	body := strings.NewReader(`{"title": "Mixtape", "kind": "podcast"}`)
	req := httptest.NewRequest("POST", "/content", body)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %d", rec.Code)
	}
}

func TestHandleCreate_StudentForbidden(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	studentID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, studentID, inst.ID, models.WorkspaceInstitute, "student", "Hill Valley High")

	body := strings.NewReader(`{"title": "Homework Answers", "kind": "reading"}`)
	req := httptest.NewRequest("POST", "/content", body)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student create, got %d", rec.Code)
	}
}

func TestServeView_CrossTenantReadsAsMissing(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	generic := f.CreateGenericInstitute(ctx)
	mem := f.CreateMembership(ctx, teacherID, generic.ID, models.WorkspaceIndividualTeacher, "teacher", "My Classroom")

	// Another individual's content in the same generic institute.
	foreign := f.CreateContent(ctx, "Private Notes", generic.ID, &stranger, &stranger, nil)

	req := httptest.NewRequest("GET", "/content/"+foreign.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	req = testutil.WithChiURLParam(req, "id", foreign.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeView(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cross-tenant fetch, got %d", rec.Code)
	}
}

func TestServeView_OwnContentVisible(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacherID := primitive.NewObjectID()
	generic := f.CreateGenericInstitute(ctx)
	mem := f.CreateMembership(ctx, teacherID, generic.ID, models.WorkspaceIndividualTeacher, "teacher", "My Classroom")
	own := f.CreateContent(ctx, "Lesson Plan", generic.ID, &teacherID, &teacherID, nil)

	req := httptest.NewRequest("GET", "/content/"+own.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(mem))
	req = testutil.WithChiURLParam(req, "id", own.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
