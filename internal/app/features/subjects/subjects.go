// internal/app/features/subjects/subjects.go
package subjects

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	subjectstore "github.com/lyceumhq/lyceum/internal/app/store/subjects"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/paging"
	"github.com/lyceumhq/lyceum/internal/app/system/status"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type listResponse struct {
	Subjects []models.Subject `json:"subjects"`
	Total    int64            `json:"total"`
}

type upsertRequest struct {
	Name      string `json:"name"`
	PeriodID  string `json:"period_id"`
	SectionID string `json:"section_id"`
	Status    string `json:"status"`
}

// ServeList returns the subjects visible to the workspace.
// GET /subjects?period_id=&section_id=&q=&limit=&offset=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	filter := bson.M{}
	for param, field := range map[string]string{"period_id": "period_id", "section_id": "section_id"} {
		if raw := r.URL.Query().Get(param); raw != "" {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				h.ErrLog.BadRequest(w, r, "malformed "+param)
				return
			}
			filter[field] = id
		}
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}
	scoped := tenancy.Scope(ws, tenancy.CategorySubjects, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := subjectstore.New(h.DB)
	page := paging.Parse(r)

	total, err := store.Count(ctx, scoped)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	rows, err := store.Find(ctx, scoped, page.FindOptions("name_ci"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.Subject{}
	}

	apierrors.JSON(w, http.StatusOK, listResponse{Subjects: rows, Total: total})
}

// HandleCreate adds a subject to the workspace's institute.
// POST /subjects
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.requireInstituteManager(w, r)
	if !ok {
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.ErrLog.BadRequest(w, r, "subject name is required")
		return
	}

	sub := models.Subject{Name: req.Name, InstituteID: ws.InstituteID}
	if req.PeriodID != "" {
		id, err := primitive.ObjectIDFromHex(req.PeriodID)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "malformed period id")
			return
		}
		sub.PeriodID = &id
	}
	if req.SectionID != "" {
		id, err := primitive.ObjectIDFromHex(req.SectionID)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "malformed section id")
			return
		}
		sub.SectionID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := subjectstore.New(h.DB).Create(ctx, sub)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("subject created",
		zap.String("subject_id", created.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusCreated, created)
}

// ServeView returns one subject by id.
// GET /subjects/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, sub)
}

// HandleUpdate modifies a subject's name or status.
// PATCH /subjects/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.requireInstituteManager(w, r)
	if !ok {
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}
	if req.Status != "" && !status.IsValid(req.Status) {
		h.ErrLog.BadRequest(w, r, "unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	store := subjectstore.New(h.DB)
	if err := store.UpdateInfo(ctx, sub.ID, strings.TrimSpace(req.Name), req.Status); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	updated, err := store.GetByID(ctx, sub.ID)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, updated)
}

// HandleDelete removes a subject.
// DELETE /subjects/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.requireInstituteManager(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	if _, err := subjectstore.New(h.DB).Delete(ctx, sub.ID); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("subject deleted",
		zap.String("subject_id", sub.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadVisible(ctx context.Context, ws models.Workspace, rawID string) (models.Subject, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.Subject{}, apperr.Validation("malformed subject id")
	}
	sub, err := subjectstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Subject{}, apperr.NotFound("subject not found")
		}
		return models.Subject{}, err
	}
	if !tenancy.ValidateAccess(tenancy.CategorySubjects, tenancy.SubjectLocality(sub), ws) {
		return models.Subject{}, apperr.NotFound("subject not found")
	}
	return sub, nil
}

func (h *Handler) requireInstituteManager(w http.ResponseWriter, r *http.Request) (models.Workspace, bool) {
	ws, _ := wsctx.FromRequest(r)
	if ws.Type != models.WorkspaceInstitute || !ws.HasPermission(tenancy.PermManageClasses) {
		h.ErrLog.Render(w, r, apperr.Forbidden("institute class management required"))
		return models.Workspace{}, false
	}
	return ws, true
}
