// internal/app/store/studyplans/studyplanstore.go
package studyplanstore

import (
	"context"
	"strings"
	"time"

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

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("study_plans")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.StudyPlan, error) {
	var p models.StudyPlan
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.StudyPlan{}, err
	}
	return p, nil
}

// GetByShareCode looks a plan up by its share code.
func (s *Store) GetByShareCode(ctx context.Context, code string) (models.StudyPlan, error) {
	var p models.StudyPlan
	if err := s.c.FindOne(ctx, bson.M{"share_code": code}).Decode(&p); err != nil {
		return models.StudyPlan{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p models.StudyPlan) (models.StudyPlan, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	if p.Status == "" {
		p.Status = status.Active
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.StudyPlan{}, err
	}
	return p, nil
}

// UpdateInfo modifies name, items, and status.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name string, items []models.StudyPlanItem, stat string) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if strings.TrimSpace(name) != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if items != nil {
		set["items"] = items
	}
	if stat != "" {
		set["status"] = stat
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// SetShareCode records a plan's share code. An empty code revokes sharing.
func (s *Store) SetShareCode(ctx context.Context, id primitive.ObjectID, code string) error {
	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if code == "" {
		update["$unset"] = bson.M{"share_code": ""}
	} else {
		update["$set"].(bson.M)["share_code"] = code
	}
	_, err := s.c.UpdateByID(ctx, id, update)
	return err
}

// Find returns study plans matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.StudyPlan, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var plans []models.StudyPlan
	if err := cur.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Count returns the number of study plans matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Delete removes a study plan by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the study_plans collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}},
			Options: options.Index().SetName("idx_plan_student"),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_plan_created_by"),
		},
		{
			Keys:    bson.D{{Key: "share_code", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("idx_plan_share_code"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
