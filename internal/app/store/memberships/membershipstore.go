// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lyceumhq/lyceum/internal/app/system/status"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicateWorkspace is the authoritative conflict signal for the
	// (user_id, institute_id, workspace_type) uniqueness invariant. The
	// unique index raises it; in-process existence checks are advisory only
	// since two concurrent creators can both pass the read.
	ErrDuplicateWorkspace = errors.New("user already has a workspace of this type in this institute")
	ErrNotFound           = errors.New("membership not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("memberships")}
}

// Create inserts a new membership.
func (s *Store) Create(ctx context.Context, m models.Membership) (models.Membership, error) {
	m.ID = primitive.NewObjectID()
	m.Role = models.NormalizeRole(m.Role)
	if m.Status == "" {
		m.Status = status.Active
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, m)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Membership{}, ErrDuplicateWorkspace
		}
		return models.Membership{}, err
	}
	return m, nil
}

// GetByID retrieves a membership by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Membership, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Membership{}, ErrNotFound
		}
		return models.Membership{}, err
	}
	return m, nil
}

// GetDefault returns the user's primary membership: the earliest active one
// by join time. ErrNotFound if the user has no active memberships.
func (s *Store) GetDefault(ctx context.Context, userID primitive.ObjectID) (models.Membership, error) {
	var m models.Membership
	opts := options.FindOne().SetSort(bson.D{{Key: "joined_at", Value: 1}})
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "status": status.Active}, opts).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Membership{}, ErrNotFound
		}
		return models.Membership{}, err
	}
	return m, nil
}

// GetForUserInInstitute returns the user's institute-type membership in the
// given institute, if any.
func (s *Store) GetForUserInInstitute(ctx context.Context, userID, instituteID primitive.ObjectID) (models.Membership, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{
		"user_id":        userID,
		"institute_id":   instituteID,
		"workspace_type": models.WorkspaceInstitute,
	}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Membership{}, ErrNotFound
		}
		return models.Membership{}, err
	}
	return m, nil
}

// ListByUser returns all memberships for a user, oldest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Membership, error) {
	opts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.Membership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// SetLinkedClass records the personal class id on a teacher membership.
func (s *Store) SetLinkedClass(ctx context.Context, id, classID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"linked_class_id": classID}})
	return err
}

// UpdateWorkspaceFields applies the restricted update set for workspaces:
// workspace_name and status. Nil fields are left unchanged.
func (s *Store) UpdateWorkspaceFields(ctx context.Context, id primitive.ObjectID, name, stat *string) error {
	set := bson.M{}
	if name != nil {
		set["workspace_name"] = *name
	}
	if stat != nil {
		set["status"] = *stat
	}
	if len(set) == 0 {
		return nil
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a membership by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByInstitute removes all memberships for an institute.
// Returns the number of documents deleted.
func (s *Store) DeleteByInstitute(ctx context.Context, instituteID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"institute_id": instituteID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByInstitute returns the number of memberships in an institute.
func (s *Store) CountByInstitute(ctx context.Context, instituteID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"institute_id": instituteID})
}

// EnsureIndexes creates indexes for the memberships collection. The unique
// triple index is the storage-level enforcement of the one-workspace-per-
// (user, institute, type) invariant.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "institute_id", Value: 1},
				{Key: "workspace_type", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_membership_user_institute_type"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "joined_at", Value: 1},
			},
			Options: options.Index().SetName("idx_membership_user_joined"),
		},
		{
			Keys:    bson.D{{Key: "institute_id", Value: 1}},
			Options: options.Index().SetName("idx_membership_institute"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
