// internal/app/features/institutes/create.go
package institutes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	institutestore "github.com/lyceumhq/lyceum/internal/app/store/institutes"
	membershipstore "github.com/lyceumhq/lyceum/internal/app/store/memberships"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type createRequest struct {
	Name string `json:"name"`
}

// HandleCreate provisions a new institute and makes the creator its first
// institute_admin via an INSTITUTE-type membership.
// POST /institutes
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
	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.ErrLog.BadRequest(w, r, "institute name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	institutes := institutestore.New(h.DB)
	inst, err := institutes.Create(ctx, models.Institute{Name: name})
	if err != nil {
		if err == institutestore.ErrDuplicateName {
			h.ErrLog.Render(w, r, apperr.Conflict("an institute with this name already exists"))
			return
		}
		h.ErrLog.Render(w, r, err)
		return
	}

	_, err = membershipstore.New(h.DB).Create(ctx, models.Membership{
		InstituteID:   inst.ID,
		UserID:        uid,
		Role:          models.RoleInstituteAdmin,
		WorkspaceType: models.WorkspaceInstitute,
		WorkspaceName: inst.Name,
	})
	if err != nil {
		// The institute is unusable without its admin; undo the create.
		if _, derr := institutes.Delete(ctx, inst.ID); derr != nil {
			h.Log.Warn("orphaned institute after admin membership failure",
				zap.String("institute_id", inst.ID.Hex()),
				zap.Error(derr))
		}
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("institute created",
		zap.String("institute_id", inst.ID.Hex()),
		zap.String("created_by", uid.Hex()))

	apierrors.JSON(w, http.StatusCreated, inst)
}
