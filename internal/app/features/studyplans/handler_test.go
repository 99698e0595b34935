// internal/app/features/studyplans/handler_test.go
package studyplans_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/features/studyplans"
	"github.com/lyceumhq/lyceum/internal/domain/models"
	"github.com/lyceumhq/lyceum/internal/testutil"
)

func newTestHandler(t *testing.T) (*studyplans.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return studyplans.NewHandler(db, apierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func studentWS(f *testutil.Fixtures, t *testing.T) (models.Workspace, primitive.ObjectID) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	generic := f.CreateGenericInstitute(ctx)
	mem := f.CreateMembership(ctx, userID, generic.ID, models.WorkspaceIndividualStudent, "student", "My Studies")
	return testutil.WorkspaceFromMembership(mem), userID
}

func TestHandleCreate_StudentOwnsPlan(t *testing.T) {
	h, f := newTestHandler(t)
	ws, userID := studentWS(f, t)

	body := strings.NewReader(`{
		"name": "Midterm Prep",
		"items": [{"title": "Chapter 1", "notes": "<b>key dates</b><script>x()</script>"}]
	}`)
	req := httptest.NewRequest("POST", "/studyplans", body)
	req = testutil.WithWorkspace(req, ws)
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.StudyPlan
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if created.StudentID == nil || *created.StudentID != userID {
		t.Error("student plan missing student ownership")
	}
	if created.OwnerUserID == nil || *created.OwnerUserID != userID {
		t.Error("student plan missing workspace ownership")
	}
	if len(created.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(created.Items))
	}
	if strings.Contains(created.Items[0].Notes, "<script>") {
		t.Errorf("script survived note sanitization: %q", created.Items[0].Notes)
	}
}

func TestShareRoundTrip(t *testing.T) {
	h, f := newTestHandler(t)
	ws, userID := studentWS(f, t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	plan := f.CreateStudyPlan(ctx, "Midterm Prep", ws.InstituteID, &userID, &userID, &userID)

	// Issue a share code.
	req := httptest.NewRequest("POST", "/studyplans/"+plan.ID.Hex()+"/share", nil)
	req = testutil.WithWorkspace(req, ws)
	req = testutil.WithChiURLParam(req, "id", plan.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleShare(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var shared struct {
		ShareCode string `json:"share_code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&shared); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if shared.ShareCode == "" {
		t.Fatal("empty share code")
	}

	// The code alone retrieves the plan, no workspace locality required.
	otherID := primitive.NewObjectID()
	otherMem := f.CreateMembership(ctx, otherID, ws.InstituteID, models.WorkspaceIndividualTeacher, "teacher", "Someone Else")

	req = httptest.NewRequest("GET", "/studyplans/shared/"+shared.ShareCode, nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(otherMem))
	req = testutil.WithChiURLParam(req, "code", shared.ShareCode)
	rec = httptest.NewRecorder()

	h.ServeShared(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 via share code, got %d", rec.Code)
	}

	// Revoking the code closes the side door.
	req = httptest.NewRequest("DELETE", "/studyplans/"+plan.ID.Hex()+"/share", nil)
	req = testutil.WithWorkspace(req, ws)
	req = testutil.WithChiURLParam(req, "id", plan.ID.Hex())
	rec = httptest.NewRecorder()

	h.HandleUnshare(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 revoking share, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/studyplans/shared/"+shared.ShareCode, nil)
	req = testutil.WithWorkspace(req, testutil.WorkspaceFromMembership(otherMem))
	req = testutil.WithChiURLParam(req, "code", shared.ShareCode)
	rec = httptest.NewRecorder()

	h.ServeShared(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after revocation, got %d", rec.Code)
	}
}

func TestServeView_CrossTenantReadsAsMissing(t *testing.T) {
	h, f := newTestHandler(t)
	ws, _ := studentWS(f, t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	stranger := primitive.NewObjectID()
	foreign := f.CreateStudyPlan(ctx, "Someone Else's Plan", ws.InstituteID, &stranger, &stranger, &stranger)

	req := httptest.NewRequest("GET", "/studyplans/"+foreign.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, ws)
	req = testutil.WithChiURLParam(req, "id", foreign.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeView(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for cross-tenant fetch, got %d", rec.Code)
	}
}

func TestServeView_AssignedPlanVisible(t *testing.T) {
	h, f := newTestHandler(t)
	ws, userID := studentWS(f, t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A plan a teacher created for this student stays visible to them.
	teacherID := primitive.NewObjectID()
	assigned := f.CreateStudyPlan(ctx, "Assigned Reading", ws.InstituteID, &userID, nil, &teacherID)

	req := httptest.NewRequest("GET", "/studyplans/"+assigned.ID.Hex(), nil)
	req = testutil.WithWorkspace(req, ws)
	req = testutil.WithChiURLParam(req, "id", assigned.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for assigned plan, got %d: %s", rec.Code, rec.Body.String())
	}
}
