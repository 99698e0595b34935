// internal/app/features/workspaces/handler.go
package workspaces

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
)

// Handler provides HTTP handlers for workspace listing, creation, and
// the restricted update surface. Creation and updates go through the
// lifecycle manager; reads go through Resolve.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	ErrLog  *apierrors.ErrorLogger
	Manager *tenancy.Manager
}

// NewHandler creates a new workspaces Handler.
func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		ErrLog:  errLog,
		Manager: tenancy.NewManager(db, logger),
	}
}
