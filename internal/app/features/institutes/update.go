// internal/app/features/institutes/update.go
package institutes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	institutestore "github.com/lyceumhq/lyceum/internal/app/store/institutes"
	membershipstore "github.com/lyceumhq/lyceum/internal/app/store/memberships"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/status"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type updateRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// HandleUpdate modifies an institute's name or status. The caller needs an
// institute_admin (or admin) membership in this institute.
// PATCH /institutes/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity.Require(w, r)
	if !ok {
		return
	}

	instID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.BadRequest(w, r, "malformed institute id")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" && req.Status == "" {
		h.ErrLog.BadRequest(w, r, "nothing to update")
		return
	}
	if req.Status != "" && !status.IsValid(req.Status) {
		h.ErrLog.BadRequest(w, r, "unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := membershipstore.New(h.DB).GetForUserInInstitute(ctx, uid, instID)
	if err != nil {
		if err == membershipstore.ErrNotFound {
			h.ErrLog.Render(w, r, apperr.NotFound("institute not found"))
			return
		}
		h.ErrLog.Render(w, r, err)
		return
	}
	perms := tenancy.PermissionsFor(m.Role, models.WorkspaceInstitute)
	if !contains(perms, tenancy.PermManageInstitute) {
		h.ErrLog.Render(w, r, apperr.Forbidden("institute administration required"))
		return
	}

	store := institutestore.New(h.DB)
	if err := store.UpdateInfo(ctx, instID, req.Name, req.Status); err != nil {
		if err == institutestore.ErrDuplicateName {
			h.ErrLog.Render(w, r, apperr.Conflict("an institute with this name already exists"))
			return
		}
		h.ErrLog.Render(w, r, err)
		return
	}

	inst, err := store.GetByID(ctx, instID)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("institute updated",
		zap.String("institute_id", instID.Hex()),
		zap.String("updated_by", uid.Hex()))

	apierrors.JSON(w, http.StatusOK, inst)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
