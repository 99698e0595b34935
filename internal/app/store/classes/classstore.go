// internal/app/store/classes/classstore.go
package classstore

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
	return &Store{c: db.Collection("classes")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Class, error) {
	var c models.Class
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Class{}, err
	}
	return c, nil
}

func (s *Store) Create(ctx context.Context, c models.Class) (models.Class, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.NameCI = text.Fold(c.Name)
	if c.Status == "" {
		c.Status = status.Active
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Class{}, err
	}
	return c, nil
}

// UpdateInfo modifies name, description, and status. Empty name and status
// are skipped; description can be cleared.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc, stat string) error {
	set := bson.M{
		"updated_at":  time.Now().UTC(),
		"description": desc,
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

// Rename changes only the display name. Used when a workspace rename
// propagates to its linked personal class; the id never changes.
func (s *Store) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Find returns classes matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Class, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var classes []models.Class
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Count returns the number of classes matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// IDsByPeriod returns the ids of all classes in a period. Cascade deletes
// use this to clean up dependent members and content.
func (s *Store) IDsByPeriod(ctx context.Context, periodID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"period_id": periodID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.ID)
	}
	return ids, cur.Err()
}

// Delete removes a class by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByPeriod removes all classes in a period.
// Returns the number of documents deleted.
func (s *Store) DeleteByPeriod(ctx context.Context, periodID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"period_id": periodID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountBySection returns the number of classes attached to a section.
func (s *Store) CountBySection(ctx context.Context, sectionID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"section_id": sectionID})
}

// EnsureIndexes creates indexes for the classes collection. Class names are
// not unique: personal classes all live in the generic institute and may
// repeat names across teachers.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "institute_id", Value: 1},
				{Key: "name_ci", Value: 1},
			},
			Options: options.Index().SetName("idx_class_institute_name_ci"),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_class_created_by"),
		},
		{
			Keys:    bson.D{{Key: "period_id", Value: 1}},
			Options: options.Index().SetName("idx_class_period"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
