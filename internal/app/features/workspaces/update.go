// internal/app/features/workspaces/update.go
package workspaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
)

type updateRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// HandleUpdate applies the restricted update set to a workspace the caller
// owns. Renames propagate to a teacher workspace's personal class.
// PATCH /workspaces/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity.Require(w, r)
	if !ok {
		return
	}

	wsID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "malformed workspace id")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}
	if req.Name == nil && req.Status == nil {
		h.ErrLog.BadRequest(w, r, "nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ws, err := h.Manager.UpdateWorkspace(ctx, uid, wsID, tenancy.WorkspaceUpdate{
		Name:   req.Name,
		Status: req.Status,
	})
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("workspace updated",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("user_id", uid.Hex()))

	apierrors.JSON(w, http.StatusOK, ws)
}
