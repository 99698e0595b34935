// internal/app/store/classmembers/classmemberstore.go
package classmemberstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
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
	ErrDuplicateMember = errors.New("user is already a member of this class")
	ErrBadRole         = errors.New(`role must be "student" or "teacher"`)
	ErrNotFound        = errors.New("class member not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("class_members")}
}

// Add creates a class membership after validating the role.
func (s *Store) Add(ctx context.Context, m models.ClassMember) (models.ClassMember, error) {
	m.Role = models.NormalizeRole(m.Role)
	if m.Role != models.RoleStudent && m.Role != models.RoleTeacher {
		return models.ClassMember{}, ErrBadRole
	}
	m.ID = primitive.NewObjectID()
	m.FullNameCI = text.Fold(m.FullName)
	if m.Status == "" {
		m.Status = status.Active
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ClassMember{}, ErrDuplicateMember
		}
		return models.ClassMember{}, err
	}
	return m, nil
}

// GetByID retrieves a class member by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ClassMember, error) {
	var m models.ClassMember
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.ClassMember{}, ErrNotFound
		}
		return models.ClassMember{}, err
	}
	return m, nil
}

// Find returns class members matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.ClassMember, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.ClassMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Count returns the number of class members matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// CountByClass returns the number of members in a class.
func (s *Store) CountByClass(ctx context.Context, classID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"class_id": classID})
}

// Remove deletes a class member by ID. Returns the number deleted (0 or 1).
func (s *Store) Remove(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByClass removes all members of a class.
// Returns the number of documents deleted.
func (s *Store) DeleteByClass(ctx context.Context, classID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"class_id": classID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByClassIDs removes all members of the given classes.
// Returns the number of documents deleted.
func (s *Store) DeleteByClassIDs(ctx context.Context, classIDs []primitive.ObjectID) (int64, error) {
	if len(classIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"class_id": bson.M{"$in": classIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the class_members collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "class_id", Value: 1},
				{Key: "student_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_member_class_student"),
		},
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}},
			Options: options.Index().SetName("idx_member_student"),
		},
		{
			Keys:    bson.D{{Key: "institute_id", Value: 1}},
			Options: options.Index().SetName("idx_member_institute"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
