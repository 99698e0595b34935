// internal/app/features/classes/list.go
package classes

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	"github.com/lyceumhq/lyceum/internal/app/system/paging"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type listResponse struct {
	Classes []models.Class `json:"classes"`
	Total   int64          `json:"total"`
}

// ServeList returns the classes visible to the workspace. Caller filters
// (name prefix, status) only ever narrow the derived predicate.
// GET /classes?q=&status=&limit=&offset=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	filter := bson.M{}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}
	if st := r.URL.Query().Get("status"); st != "" {
		filter["status"] = st
	}
	scoped := tenancy.Scope(ws, tenancy.CategoryClasses, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := classstore.New(h.DB)
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
		rows = []models.Class{}
	}

	apierrors.JSON(w, http.StatusOK, listResponse{Classes: rows, Total: total})
}
