// internal/app/features/classes/handler.go
package classes

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
)

// Handler provides HTTP handlers for class management inside a workspace.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

// NewHandler creates a new classes Handler.
func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog}
}
