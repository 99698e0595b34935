// internal/app/store/institutes/institutestore.go
package institutestore

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
	ErrDuplicateName = errors.New("an institute with this name already exists")
	ErrNotFound      = errors.New("institute not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("institutes")}
}

// Create inserts a new institute.
func (s *Store) Create(ctx context.Context, inst models.Institute) (models.Institute, error) {
	now := time.Now().UTC()
	inst.ID = primitive.NewObjectID()
	inst.NameCI = text.Fold(inst.Name)
	if inst.Status == "" {
		inst.Status = status.Active
	}
	inst.CreatedAt = now
	inst.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, inst)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Institute{}, ErrDuplicateName
		}
		return models.Institute{}, err
	}
	return inst, nil
}

// GetByID retrieves an institute by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Institute, error) {
	var inst models.Institute
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inst)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Institute{}, ErrNotFound
		}
		return models.Institute{}, err
	}
	return inst, nil
}

// UpdateInfo modifies an institute's mutable fields. Empty values are
// skipped.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, stat string) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if name != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if stat != "" {
		set["status"] = stat
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

// Find returns institutes matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Institute, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var institutes []models.Institute
	if err := cur.All(ctx, &institutes); err != nil {
		return nil, err
	}
	return institutes, nil
}

// Count returns the number of institutes matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Delete removes an institute by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureGeneric returns the well-known placeholder institute that backs all
// individual workspaces, creating it on first use. The unique name_ci index
// guards the singleton: if two callers race past the lookup, one insert
// loses with a duplicate-key error and re-reads the winner. Every call
// returns the same identifier.
func (s *Store) EnsureGeneric(ctx context.Context, name string) (models.Institute, error) {
	nameCI := text.Fold(name)

	var inst models.Institute
	err := s.c.FindOne(ctx, bson.M{"name_ci": nameCI, "generic": true}).Decode(&inst)
	if err == nil {
		return inst, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Institute{}, err
	}

	created, err := s.Create(ctx, models.Institute{Name: name, Generic: true})
	if err == nil {
		return created, nil
	}
	if err != ErrDuplicateName {
		return models.Institute{}, err
	}

	// Lost the creation race; the winner's document is authoritative.
	if err := s.c.FindOne(ctx, bson.M{"name_ci": nameCI, "generic": true}).Decode(&inst); err != nil {
		return models.Institute{}, err
	}
	return inst, nil
}

// EnsureIndexes creates indexes for the institutes collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_institute_name_ci"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_institute_status"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
