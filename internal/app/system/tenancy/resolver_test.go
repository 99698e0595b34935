// internal/app/system/tenancy/resolver_test.go
package tenancy_test

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/domain/models"
	"github.com/lyceumhq/lyceum/internal/testutil"
)

func TestResolve_DefaultWorkspace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, userID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")

	ws, err := tenancy.Resolve(ctx, db, userID, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ws.ID != mem.ID {
		t.Errorf("expected membership %s, got %s", mem.ID.Hex(), ws.ID.Hex())
	}
	if ws.Type != models.WorkspaceInstitute {
		t.Errorf("expected INSTITUTE, got %s", ws.Type)
	}
	if ws.Role != "teacher" {
		t.Errorf("expected role teacher, got %q", ws.Role)
	}
	if !ws.HasPermission(tenancy.PermManageClasses) {
		t.Error("teacher descriptor missing manage_classes")
	}
}

func TestResolve_DefaultIsEarliestActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	first := f.CreateInstitute(ctx, "First School")
	second := f.CreateInstitute(ctx, "Second School")
	oldest := f.CreateMembership(ctx, userID, first.ID, models.WorkspaceInstitute, "student", "First School")
	f.CreateMembership(ctx, userID, second.ID, models.WorkspaceInstitute, "student", "Second School")

	ws, err := tenancy.Resolve(ctx, db, userID, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ws.ID != oldest.ID {
		t.Errorf("default should be earliest membership %s, got %s", oldest.ID.Hex(), ws.ID.Hex())
	}
}

func TestResolve_ExplicitRef(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	generic := f.CreateGenericInstitute(ctx)
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	f.CreateMembership(ctx, userID, inst.ID, models.WorkspaceInstitute, "student", "Hill Valley High")
	personal := f.CreateMembership(ctx, userID, generic.ID, models.WorkspaceIndividualStudent, "student", "My Studies")

	ws, err := tenancy.Resolve(ctx, db, userID, personal.ID.Hex())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ws.ID != personal.ID {
		t.Errorf("expected membership %s, got %s", personal.ID.Hex(), ws.ID.Hex())
	}
	if ws.Type != models.WorkspaceIndividualStudent {
		t.Errorf("expected INDIVIDUAL_STUDENT, got %s", ws.Type)
	}
	if !ws.HasPermission(tenancy.PermCreateStudyPlan) {
		t.Error("individual student descriptor missing create_study_plan")
	}
}

func TestResolve_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	mem := f.CreateMembership(ctx, userID, inst.ID, models.WorkspaceInstitute, "teacher", "Hill Valley High")

	a, err := tenancy.Resolve(ctx, db, userID, mem.ID.Hex())
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	b, err := tenancy.Resolve(ctx, db, userID, mem.ID.Hex())
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("resolution not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestResolve_IndividualOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	generic := f.CreateGenericInstitute(ctx)
	personal := f.CreateMembership(ctx, owner, generic.ID, models.WorkspaceIndividualStudent, "student", "My Studies")

	_, err := tenancy.Resolve(ctx, db, intruder, personal.ID.Hex())
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.KindForbidden {
		t.Fatalf("expected Forbidden resolving another user's workspace, got %v", err)
	}
}

func TestResolve_InstituteSharedWithCallerRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adminID := primitive.NewObjectID()
	studentID := primitive.NewObjectID()
	outsiderID := primitive.NewObjectID()
	inst := f.CreateInstitute(ctx, "Hill Valley High")
	adminMem := f.CreateMembership(ctx, adminID, inst.ID, models.WorkspaceInstitute, "institute_admin", "Hill Valley High")
	f.CreateMembership(ctx, studentID, inst.ID, models.WorkspaceInstitute, "student", "Hill Valley High")

	// A student resolving the admin's membership ref gets the institute
	// workspace with their OWN role, not the admin's.
	ws, err := tenancy.Resolve(ctx, db, studentID, adminMem.ID.Hex())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ws.Role != "student" {
		t.Errorf("expected caller's role student, got %q", ws.Role)
	}
	if ws.HasPermission(tenancy.PermManageInstitute) {
		t.Error("student inherited admin permissions through a shared ref")
	}
	if ws.OwnerUserID != studentID {
		t.Errorf("descriptor owner should be the caller, got %s", ws.OwnerUserID.Hex())
	}

	// A non-member cannot resolve the institute workspace at all.
	_, err = tenancy.Resolve(ctx, db, outsiderID, adminMem.ID.Hex())
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.KindForbidden {
		t.Fatalf("expected Forbidden for non-member, got %v", err)
	}
}

func TestResolve_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()

	_, err := tenancy.Resolve(ctx, db, userID, "not-a-hex-id")
	if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.KindValidation {
		t.Errorf("malformed ref: expected Validation, got %v", err)
	}

	_, err = tenancy.Resolve(ctx, db, userID, primitive.NewObjectID().Hex())
	if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.KindNotFound {
		t.Errorf("missing membership: expected NotFound, got %v", err)
	}

	// User with no memberships has no default workspace.
	_, err = tenancy.Resolve(ctx, db, userID, "")
	if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.KindNotFound {
		t.Errorf("no memberships: expected NotFound, got %v", err)
	}
}
