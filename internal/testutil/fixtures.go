// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateInstitute creates a test institute with the given name.
func (f *Fixtures) CreateInstitute(ctx context.Context, name string) models.Institute {
	f.t.Helper()

	now := time.Now().UTC()
	inst := models.Institute{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("institutes").InsertOne(ctx, inst); err != nil {
		f.t.Fatalf("failed to create test institute: %v", err)
	}
	return inst
}

// CreateGenericInstitute creates the placeholder institute that backs
// individual workspaces.
func (f *Fixtures) CreateGenericInstitute(ctx context.Context) models.Institute {
	f.t.Helper()

	now := time.Now().UTC()
	inst := models.Institute{
		ID:        primitive.NewObjectID(),
		Name:      "Independent Learners",
		NameCI:    text.Fold("Independent Learners"),
		Status:    "active",
		Generic:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("institutes").InsertOne(ctx, inst); err != nil {
		f.t.Fatalf("failed to create generic institute: %v", err)
	}
	return inst
}

// CreateMembership creates a membership for a user in an institute.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, instituteID primitive.ObjectID, wsType models.WorkspaceType, role, name string) models.Membership {
	f.t.Helper()

	m := models.Membership{
		ID:            primitive.NewObjectID(),
		InstituteID:   instituteID,
		UserID:        userID,
		Role:          models.NormalizeRole(role),
		WorkspaceType: wsType,
		WorkspaceName: name,
		Status:        "active",
		JoinedAt:      time.Now().UTC(),
	}
	if _, err := f.db.Collection("memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateClass creates a class in an institute. owner is optional; personal
// marks it as a teacher workspace's personal class.
func (f *Fixtures) CreateClass(ctx context.Context, name string, instituteID primitive.ObjectID, createdBy, owner *primitive.ObjectID, personal bool) models.Class {
	f.t.Helper()

	now := time.Now().UTC()
	cls := models.Class{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		InstituteID: instituteID,
		CreatedBy:   createdBy,
		OwnerUserID: owner,
		Personal:    personal,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("classes").InsertOne(ctx, cls); err != nil {
		f.t.Fatalf("failed to create test class: %v", err)
	}
	return cls
}

// CreateClassMember adds a student to a class.
func (f *Fixtures) CreateClassMember(ctx context.Context, classID, instituteID, studentID primitive.ObjectID, fullName string) models.ClassMember {
	f.t.Helper()

	m := models.ClassMember{
		ID:          primitive.NewObjectID(),
		InstituteID: instituteID,
		ClassID:     classID,
		StudentID:   studentID,
		FullName:    fullName,
		FullNameCI:  text.Fold(fullName),
		Role:        "student",
		Status:      "active",
		JoinedAt:    time.Now().UTC(),
	}
	if _, err := f.db.Collection("class_members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test class member: %v", err)
	}
	return m
}

// CreatePeriod creates a period in an institute.
func (f *Fixtures) CreatePeriod(ctx context.Context, name string, instituteID primitive.ObjectID) models.Period {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Period{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		InstituteID: instituteID,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("periods").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test period: %v", err)
	}
	return p
}

// CreateSection creates a section, optionally inside a period.
func (f *Fixtures) CreateSection(ctx context.Context, name string, instituteID primitive.ObjectID, periodID *primitive.ObjectID) models.Section {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.Section{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		InstituteID: instituteID,
		PeriodID:    periodID,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("sections").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test section: %v", err)
	}
	return s
}

// CreateSubject creates a subject, optionally inside a period/section.
func (f *Fixtures) CreateSubject(ctx context.Context, name string, instituteID primitive.ObjectID, periodID, sectionID *primitive.ObjectID) models.Subject {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.Subject{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		InstituteID: instituteID,
		PeriodID:    periodID,
		SectionID:   sectionID,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("subjects").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test subject: %v", err)
	}
	return s
}

// CreateContent creates a content record.
func (f *Fixtures) CreateContent(ctx context.Context, title string, instituteID primitive.ObjectID, createdBy, owner, classID *primitive.ObjectID) models.Content {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Content{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Kind:        "lesson",
		InstituteID: instituteID,
		ClassID:     classID,
		CreatedBy:   createdBy,
		OwnerUserID: owner,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("content").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test content: %v", err)
	}
	return c
}

// CreateStudyPlan creates a study plan.
func (f *Fixtures) CreateStudyPlan(ctx context.Context, name string, instituteID primitive.ObjectID, studentID, owner, createdBy *primitive.ObjectID) models.StudyPlan {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.StudyPlan{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		InstituteID: instituteID,
		StudentID:   studentID,
		OwnerUserID: owner,
		CreatedBy:   createdBy,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("study_plans").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test study plan: %v", err)
	}
	return p
}
