// internal/app/features/studyplans/create.go
package studyplans

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/policy/classpolicy"
	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	studyplanstore "github.com/lyceumhq/lyceum/internal/app/store/studyplans"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type createRequest struct {
	Name    string                 `json:"name"`
	ClassID string                 `json:"class_id"`
	Items   []models.StudyPlanItem `json:"items"`
}

func sanitizeItems(items []models.StudyPlanItem) []models.StudyPlanItem {
	for i := range items {
		items[i].Title = strings.TrimSpace(items[i].Title)
		items[i].Notes = notesPolicy.Sanitize(items[i].Notes)
	}
	return items
}

// canCreate reports whether the workspace may create study plans: students
// plan for themselves, content managers plan for their classes.
func canCreate(ws models.Workspace) bool {
	return ws.HasPermission(tenancy.PermCreateStudyPlan) ||
		ws.HasPermission(tenancy.PermManageContent)
}

// HandleCreate adds a study plan. A student workspace owns the plan it
// creates; a teacher-created plan records the creator and may target a class
// the creator manages.
// POST /studyplans
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)
	if !canCreate(ws) {
		h.ErrLog.Render(w, r, apperr.Forbidden("workspace cannot create study plans"))
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.ErrLog.BadRequest(w, r, "study plan name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	owner := ws.OwnerUserID
	plan := models.StudyPlan{
		Name:        req.Name,
		InstituteID: ws.InstituteID,
		CreatedBy:   &owner,
		Items:       sanitizeItems(req.Items),
	}
	if ws.Type.IsIndividual() {
		plan.OwnerUserID = &owner
	}
	if ws.Type == models.WorkspaceIndividualStudent {
		plan.StudentID = &owner
	}

	if req.ClassID != "" {
		classID, err := primitive.ObjectIDFromHex(req.ClassID)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "malformed class id")
			return
		}
		cls, err := classstore.New(h.DB).GetByID(ctx, classID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				h.ErrLog.NotFound(w, r, "class not found")
				return
			}
			h.ErrLog.Render(w, r, err)
			return
		}
		if !classpolicy.CanManage(ws, cls) {
			h.ErrLog.NotFound(w, r, "class not found")
			return
		}
		plan.ClassID = &cls.ID
	}

	created, err := studyplanstore.New(h.DB).Create(ctx, plan)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("study plan created",
		zap.String("plan_id", created.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusCreated, created)
}
