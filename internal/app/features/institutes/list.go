// internal/app/features/institutes/list.go
package institutes

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	institutestore "github.com/lyceumhq/lyceum/internal/app/store/institutes"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/paging"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type listResponse struct {
	Institutes []models.Institute `json:"institutes"`
	Total      int64              `json:"total"`
}

// ServeList returns all institutes. Platform administration only: the
// caller's default workspace must carry manage_platform.
// GET /institutes?q=&limit=&offset=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity.Require(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ws, err := tenancy.Resolve(ctx, h.DB, uid, "")
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if !ws.HasPermission(tenancy.PermManagePlatform) {
		h.ErrLog.Render(w, r, apperr.Forbidden("platform administration required"))
		return
	}

	filter := bson.M{}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}

	store := institutestore.New(h.DB)
	page := paging.Parse(r)

	total, err := store.Count(ctx, filter)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	rows, err := store.Find(ctx, filter, page.FindOptions("name_ci"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.Institute{}
	}

	apierrors.JSON(w, http.StatusOK, listResponse{Institutes: rows, Total: total})
}
