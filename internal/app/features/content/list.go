// internal/app/features/content/list.go
package content

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	contentstore "github.com/lyceumhq/lyceum/internal/app/store/content"
	"github.com/lyceumhq/lyceum/internal/app/system/paging"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type listResponse struct {
	Content []models.Content `json:"content"`
	Total   int64            `json:"total"`
}

// ServeList returns the content records visible to the workspace.
// GET /content?class_id=&kind=&q=&limit=&offset=
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
	if kind := strings.TrimSpace(r.URL.Query().Get("kind")); kind != "" {
		if !validKind(kind) {
			h.ErrLog.BadRequest(w, r, "unknown content kind")
			return
		}
		filter["kind"] = kind
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter["title_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}
	scoped := tenancy.Scope(ws, tenancy.CategoryContent, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := contentstore.New(h.DB)
	page := paging.Parse(r)

	total, err := store.Count(ctx, scoped)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	rows, err := store.Find(ctx, scoped, page.FindOptions("title_ci"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.Content{}
	}

	apierrors.JSON(w, http.StatusOK, listResponse{Content: rows, Total: total})
}
