// internal/app/features/content/delete.go
package content

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	contentstore "github.com/lyceumhq/lyceum/internal/app/store/content"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
)

// HandleDelete removes a content record.
// DELETE /content/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)
	if !ws.HasPermission(tenancy.PermManageContent) {
		h.ErrLog.Render(w, r, apperr.Forbidden("content management requires the manage_content permission"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	if _, err := contentstore.New(h.DB).Delete(ctx, rec.ID); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("content deleted",
		zap.String("content_id", rec.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	w.WriteHeader(http.StatusNoContent)
}
