// internal/app/features/content/handler.go
package content

import (
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
)

// bodyPolicy sanitizes submitted HTML bodies. UGC policy: formatting and
// links survive, scripts and event handlers do not.
var bodyPolicy = bluemonday.UGCPolicy()

// Handler provides HTTP handlers for teaching content.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

// NewHandler creates a new content Handler.
func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog}
}
