// internal/app/features/studyplans/delete.go
package studyplans

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	studyplanstore "github.com/lyceumhq/lyceum/internal/app/store/studyplans"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
)

// HandleDelete removes a study plan.
// DELETE /studyplans/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	plan, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if !canManage(ws) {
		h.ErrLog.Render(w, r, apperr.Forbidden("workspace cannot modify study plans"))
		return
	}

	if _, err := studyplanstore.New(h.DB).Delete(ctx, plan.ID); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("study plan deleted",
		zap.String("plan_id", plan.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	w.WriteHeader(http.StatusNoContent)
}
