// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	classmemberstore "github.com/lyceumhq/lyceum/internal/app/store/classmembers"
	"github.com/lyceumhq/lyceum/internal/app/system/paging"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type listResponse struct {
	Members []models.ClassMember `json:"members"`
	Total   int64                `json:"total"`
}

// ServeList returns class members visible to the workspace, optionally
// narrowed to one class or a name prefix.
// GET /members?class_id=&q=&limit=&offset=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	filter := bson.M{}
	if raw := r.URL.Query().Get("class_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "malformed class id")
			return
		}
		filter["class_id"] = id
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter["full_name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}
	scoped := tenancy.Scope(ws, tenancy.CategoryMembers, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := classmemberstore.New(h.DB)
	page := paging.Parse(r)

	total, err := store.Count(ctx, scoped)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	rows, err := store.Find(ctx, scoped, page.FindOptions("full_name_ci"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.ClassMember{}
	}

	apierrors.JSON(w, http.StatusOK, listResponse{Members: rows, Total: total})
}
