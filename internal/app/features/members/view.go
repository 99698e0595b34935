// internal/app/features/members/view.go
package members

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	classmemberstore "github.com/lyceumhq/lyceum/internal/app/store/classmembers"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// ServeView returns one class member by id, re-validated against the
// workspace since the fetch bypasses the derived filter.
// GET /members/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	member, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, member)
}

func (h *Handler) loadVisible(ctx context.Context, ws models.Workspace, rawID string) (models.ClassMember, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.ClassMember{}, apperr.Validation("malformed member id")
	}
	member, err := classmemberstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == classmemberstore.ErrNotFound {
			return models.ClassMember{}, apperr.NotFound("class member not found")
		}
		return models.ClassMember{}, err
	}
	if !tenancy.ValidateAccess(tenancy.CategoryMembers, tenancy.MemberLocality(member), ws) {
		return models.ClassMember{}, apperr.NotFound("class member not found")
	}
	return member, nil
}
