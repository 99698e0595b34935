// internal/app/features/workspaces/view.go
package workspaces

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
)

// ServeView resolves and returns a single workspace descriptor.
// GET /workspaces/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity.Require(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ws, err := tenancy.Resolve(ctx, h.DB, uid, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, ws)
}

type permissionsResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// ServePermissions returns the permission set of a resolved workspace.
// GET /workspaces/{id}/permissions
func (h *Handler) ServePermissions(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity.Require(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ws, err := tenancy.Resolve(ctx, h.DB, uid, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, permissionsResponse{
		Role:        ws.Role,
		Permissions: ws.Permissions,
	})
}
