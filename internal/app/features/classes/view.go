// internal/app/features/classes/view.go
package classes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/policy/classpolicy"
	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// ServeView returns one class by id. A class outside the workspace's
// partition yields the same 404 a nonexistent id would.
// GET /classes/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cls, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, cls)
}

// loadVisible fetches a class by raw id and re-checks it against the
// workspace. The fetch bypasses the derived filter, so the validator is the
// isolation boundary here.
func (h *Handler) loadVisible(ctx context.Context, ws models.Workspace, rawID string) (models.Class, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.Class{}, apperr.Validation("malformed class id")
	}
	cls, err := classstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Class{}, apperr.NotFound("class not found")
		}
		return models.Class{}, err
	}
	if !classpolicy.CanView(ws, cls) {
		return models.Class{}, apperr.NotFound("class not found")
	}
	return cls, nil
}
