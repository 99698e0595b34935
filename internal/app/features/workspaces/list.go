// internal/app/features/workspaces/list.go
package workspaces

import (
	"context"
	"net/http"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	membershipstore "github.com/lyceumhq/lyceum/internal/app/store/memberships"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type listResponse struct {
	Workspaces []models.Workspace `json:"workspaces"`
}

// ServeList returns all of the caller's workspaces as resolved descriptors,
// oldest membership first. The first active entry is the caller's default.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity.Require(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	memberships, err := membershipstore.New(h.DB).ListByUser(ctx, uid)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	resp := listResponse{Workspaces: []models.Workspace{}}
	for _, m := range memberships {
		ws, err := tenancy.Resolve(ctx, h.DB, uid, m.ID.Hex())
		if err != nil {
			h.ErrLog.Render(w, r, err)
			return
		}
		resp.Workspaces = append(resp.Workspaces, ws)
	}

	apierrors.JSON(w, http.StatusOK, resp)
}
