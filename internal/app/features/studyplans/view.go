// internal/app/features/studyplans/view.go
package studyplans

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	studyplanstore "github.com/lyceumhq/lyceum/internal/app/store/studyplans"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// ServeView returns one study plan by id.
// GET /studyplans/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	plan, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, plan)
}

// ServeShared returns a plan by its share code. The code itself is the
// grant: no workspace locality check, the holder was given the link.
// GET /studyplans/shared/{code}
func (h *Handler) ServeShared(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	plan, err := studyplanstore.New(h.DB).GetByShareCode(ctx, code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.NotFound(w, r, "study plan not found")
			return
		}
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, plan)
}

// loadVisible fetches a study plan by raw id and re-checks it against the
// workspace. A plan outside the workspace's reach reads as missing.
func (h *Handler) loadVisible(ctx context.Context, ws models.Workspace, rawID string) (models.StudyPlan, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.StudyPlan{}, apperr.Validation("malformed study plan id")
	}
	plan, err := studyplanstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.StudyPlan{}, apperr.NotFound("study plan not found")
		}
		return models.StudyPlan{}, err
	}
	if !tenancy.ValidateAccess(tenancy.CategoryStudyPlans, tenancy.StudyPlanLocality(plan), ws) {
		return models.StudyPlan{}, apperr.NotFound("study plan not found")
	}
	return plan, nil
}
