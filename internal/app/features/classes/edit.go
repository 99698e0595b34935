// internal/app/features/classes/edit.go
package classes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/policy/classpolicy"
	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/status"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"

	"github.com/go-chi/chi/v5"
)

type updateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// HandleUpdate modifies a class the workspace can manage.
// PATCH /classes/{id}
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

	cls, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if !classpolicy.CanManage(ws, cls) {
		h.ErrLog.Render(w, r, apperr.Forbidden("cannot manage this class"))
		return
	}

	store := classstore.New(h.DB)
	if err := store.UpdateInfo(ctx, cls.ID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), req.Status); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	updated, err := store.GetByID(ctx, cls.ID)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("class updated",
		zap.String("class_id", cls.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusOK, updated)
}
