// internal/app/features/content/view.go
package content

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	contentstore "github.com/lyceumhq/lyceum/internal/app/store/content"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// ServeView returns one content record by id.
// GET /content/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, rec)
}

// loadVisible fetches a content record by raw id and re-checks it against
// the workspace. A record outside the workspace's reach reads as missing.
func (h *Handler) loadVisible(ctx context.Context, ws models.Workspace, rawID string) (models.Content, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.Content{}, apperr.Validation("malformed content id")
	}
	rec, err := contentstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Content{}, apperr.NotFound("content not found")
		}
		return models.Content{}, err
	}
	if !tenancy.ValidateAccess(tenancy.CategoryContent, tenancy.ContentLocality(rec), ws) {
		return models.Content{}, apperr.NotFound("content not found")
	}
	return rec, nil
}
