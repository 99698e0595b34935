// internal/app/features/studyplans/list.go
package studyplans

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	studyplanstore "github.com/lyceumhq/lyceum/internal/app/store/studyplans"
	"github.com/lyceumhq/lyceum/internal/app/system/paging"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type listResponse struct {
	StudyPlans []models.StudyPlan `json:"study_plans"`
	Total      int64              `json:"total"`
}

// ServeList returns the study plans visible to the workspace.
// GET /studyplans?class_id=&q=&limit=&offset=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	filter := bson.M{}
	if raw := r.URL.Query().Get("class_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "malformed class_id")
			return
		}
		filter["class_id"] = id
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}
	scoped := tenancy.Scope(ws, tenancy.CategoryStudyPlans, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := studyplanstore.New(h.DB)
	page := paging.Parse(r)

	total, err := store.Count(ctx, scoped)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	rows, err := store.Find(ctx, scoped, page.FindOptions("name_ci"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.StudyPlan{}
	}

	apierrors.JSON(w, http.StatusOK, listResponse{StudyPlans: rows, Total: total})
}
