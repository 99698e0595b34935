// internal/app/features/studyplans/share.go
package studyplans

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	studyplanstore "github.com/lyceumhq/lyceum/internal/app/store/studyplans"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
)

type shareResponse struct {
	ShareCode string `json:"share_code"`
}

// HandleShare issues a share code for a plan. Re-sharing an already shared
// plan rotates the code.
// POST /studyplans/{id}/share
func (h *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
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

	code := uuid.NewString()
	if err := studyplanstore.New(h.DB).SetShareCode(ctx, plan.ID, code); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("study plan shared",
		zap.String("plan_id", plan.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusOK, shareResponse{ShareCode: code})
}

// HandleUnshare revokes a plan's share code.
// DELETE /studyplans/{id}/share
func (h *Handler) HandleUnshare(w http.ResponseWriter, r *http.Request) {
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

	if err := studyplanstore.New(h.DB).SetShareCode(ctx, plan.ID, ""); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
