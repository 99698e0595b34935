// internal/app/features/workspaces/create.go
package workspaces

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type createRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// HandleCreate provisions a personal workspace for the caller.
// POST /workspaces
//
// Only the individual workspace types can be created here; institute
// workspaces come into existence through institute membership management.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity.Require(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}

	wsType := models.WorkspaceType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !wsType.IsValid() {
		h.ErrLog.BadRequest(w, r, "unknown workspace type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ws, err := h.Manager.CreatePersonalWorkspace(ctx, uid, wsType, req.Name)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusCreated, ws)
}
