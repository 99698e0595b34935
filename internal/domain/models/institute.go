// internal/domain/models/institute.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Institute is a top-level institutional tenant. Individual workspaces hang
// off a single well-known placeholder institute (the "generic institute"),
// created lazily on first use and reused thereafter.
type Institute struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"name_ci"`
	Status    string             `bson:"status" json:"status"`
	Generic   bool               `bson:"generic,omitempty" json:"generic,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
