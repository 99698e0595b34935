// internal/app/features/content/edit.go
package content

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	contentstore "github.com/lyceumhq/lyceum/internal/app/store/content"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/status"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
)

type updateRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Status string `json:"status"`
}

// HandleUpdate modifies a content record's title, body, or status. The body
// is re-sanitized on every write.
// PATCH /content/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)
	if !ws.HasPermission(tenancy.PermManageContent) {
		h.ErrLog.Render(w, r, apperr.Forbidden("content management requires the manage_content permission"))
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}
	if req.Status != "" && !status.IsValid(req.Status) {
		h.ErrLog.BadRequest(w, r, "unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	store := contentstore.New(h.DB)
	err = store.UpdateInfo(ctx, rec.ID,
		strings.TrimSpace(req.Title), bodyPolicy.Sanitize(req.Body), req.Status)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	updated, err := store.GetByID(ctx, rec.ID)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("content updated",
		zap.String("content_id", rec.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusOK, updated)
}
