// internal/app/store/content/contentstore.go
package contentstore

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
	return &Store{c: db.Collection("content")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Content, error) {
	var c models.Content
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Content{}, err
	}
	return c, nil
}

// Create inserts a content record. Callers sanitize Body before handing it
// over; the store treats it as opaque.
func (s *Store) Create(ctx context.Context, c models.Content) (models.Content, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.TitleCI = text.Fold(c.Title)
	if c.Status == "" {
		c.Status = status.Active
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Content{}, err
	}
	return c, nil
}

// UpdateInfo modifies title, body, and status. Body can be cleared.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, title, body, stat string) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
		"body":       body,
	}
	if strings.TrimSpace(title) != "" {
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if stat != "" {
		set["status"] = stat
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Find returns content records matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Content, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var content []models.Content
	if err := cur.All(ctx, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// Count returns the number of content records matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Delete removes a content record by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByClassIDs removes all content attached to the given classes.
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

// EnsureIndexes creates indexes for the content collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "institute_id", Value: 1},
				{Key: "title_ci", Value: 1},
			},
			Options: options.Index().SetName("idx_content_institute_title_ci"),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_content_created_by"),
		},
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}},
			Options: options.Index().SetName("idx_content_class"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
