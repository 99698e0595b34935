// internal/app/features/classes/create.go
package classes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SectionID   string `json:"section_id"`
	PeriodID    string `json:"period_id"`
}

// HandleCreate adds a class to the workspace's institute. The creating user
// is recorded as created_by; individual-teacher workspaces also own the
// class outright so it stays visible to them through the ownership path.
// POST /classes
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)
	if !ws.HasPermission(tenancy.PermManageClasses) {
		h.ErrLog.Render(w, r, apperr.Forbidden("class management requires the manage_classes permission"))
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.ErrLog.BadRequest(w, r, "class name is required")
		return
	}

	owner := ws.OwnerUserID
	cls := models.Class{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		InstituteID: ws.InstituteID,
		CreatedBy:   &owner,
	}
	if ws.Type.IsIndividual() {
		cls.OwnerUserID = &owner
	}
	if req.SectionID != "" {
		id, err := primitive.ObjectIDFromHex(req.SectionID)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "malformed section id")
			return
		}
		cls.SectionID = &id
	}
	if req.PeriodID != "" {
		id, err := primitive.ObjectIDFromHex(req.PeriodID)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "malformed period id")
			return
		}
		cls.PeriodID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := classstore.New(h.DB).Create(ctx, cls)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("class created",
		zap.String("class_id", created.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusCreated, created)
}
