// internal/app/store/sections/sectionstore.go
package sectionstore

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
	return &Store{c: db.Collection("sections")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Section, error) {
	var sec models.Section
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sec); err != nil {
		return models.Section{}, err
	}
	return sec, nil
}

func (s *Store) Create(ctx context.Context, sec models.Section) (models.Section, error) {
	now := time.Now().UTC()
	sec.ID = primitive.NewObjectID()
	sec.NameCI = text.Fold(sec.Name)
	if sec.Status == "" {
		sec.Status = status.Active
	}
	sec.CreatedAt = now
	sec.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sec); err != nil {
		return models.Section{}, err
	}
	return sec, nil
}

func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, stat string) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if strings.TrimSpace(name) != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if stat != "" {
		set["status"] = stat
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Find returns sections matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Section, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sections []models.Section
	if err := cur.All(ctx, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// Count returns the number of sections matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// CountByPeriod returns the number of sections under a period.
func (s *Store) CountByPeriod(ctx context.Context, periodID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"period_id": periodID})
}

// Delete removes a section by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByPeriod removes all sections in a period.
// Returns the number of documents deleted.
func (s *Store) DeleteByPeriod(ctx context.Context, periodID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"period_id": periodID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the sections collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "institute_id", Value: 1},
				{Key: "name_ci", Value: 1},
			},
			Options: options.Index().SetName("idx_section_institute_name_ci"),
		},
		{
			Keys:    bson.D{{Key: "period_id", Value: 1}},
			Options: options.Index().SetName("idx_section_period"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
