// internal/app/features/institutes/view.go
package institutes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	institutestore "github.com/lyceumhq/lyceum/internal/app/store/institutes"
	membershipstore "github.com/lyceumhq/lyceum/internal/app/store/memberships"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
)

// ServeView returns one institute. Visible only to its members; outsiders
// get the same 404 a nonexistent institute would produce.
// GET /institutes/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity.Require(w, r)
	if !ok {
		return
	}

	instID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "malformed institute id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := membershipstore.New(h.DB).GetForUserInInstitute(ctx, uid, instID); err != nil {
		if err == membershipstore.ErrNotFound {
			h.ErrLog.Render(w, r, apperr.NotFound("institute not found"))
			return
		}
		h.ErrLog.Render(w, r, err)
		return
	}

	inst, err := institutestore.New(h.DB).GetByID(ctx, instID)
	if err != nil {
		if err == institutestore.ErrNotFound {
			h.ErrLog.Render(w, r, apperr.NotFound("institute not found"))
			return
		}
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, inst)
}
