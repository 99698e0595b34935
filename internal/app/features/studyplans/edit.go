// internal/app/features/studyplans/edit.go
package studyplans

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	studyplanstore "github.com/lyceumhq/lyceum/internal/app/store/studyplans"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/status"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type updateRequest struct {
	Name   string                 `json:"name"`
	Items  []models.StudyPlanItem `json:"items"`
	Status string                 `json:"status"`
}

// canManage reports whether the workspace may modify a plan it can see.
// Students manage their own plans (including marking assigned items done);
// content managers cover the rest.
func canManage(ws models.Workspace) bool {
	return ws.HasPermission(tenancy.PermManageStudyPlan) ||
		ws.HasPermission(tenancy.PermManageContent)
}

// HandleUpdate modifies a study plan's name, items, or status.
// PATCH /studyplans/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

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

	plan, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if !canManage(ws) {
		h.ErrLog.Render(w, r, apperr.Forbidden("workspace cannot modify study plans"))
		return
	}

	store := studyplanstore.New(h.DB)
	err = store.UpdateInfo(ctx, plan.ID,
		strings.TrimSpace(req.Name), sanitizeItems(req.Items), req.Status)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	updated, err := store.GetByID(ctx, plan.ID)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("study plan updated",
		zap.String("plan_id", plan.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusOK, updated)
}
