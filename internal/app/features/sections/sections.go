// internal/app/features/sections/sections.go
package sections

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
	sectionstore "github.com/lyceumhq/lyceum/internal/app/store/sections"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/paging"
	"github.com/lyceumhq/lyceum/internal/app/system/status"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type listResponse struct {
	Sections []models.Section `json:"sections"`
	Total    int64            `json:"total"`
}

type upsertRequest struct {
	Name     string `json:"name"`
	PeriodID string `json:"period_id"`
	Status   string `json:"status"`
}

// ServeList returns the sections visible to the workspace.
// GET /sections?period_id=&q=&limit=&offset=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	filter := bson.M{}
	if raw := r.URL.Query().Get("period_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "malformed period id")
			return
		}
		filter["period_id"] = id
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}
	scoped := tenancy.Scope(ws, tenancy.CategorySections, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := sectionstore.New(h.DB)
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
		rows = []models.Section{}
	}

	apierrors.JSON(w, http.StatusOK, listResponse{Sections: rows, Total: total})
}

// HandleCreate adds a section to the workspace's institute.
// POST /sections
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
		h.ErrLog.BadRequest(w, r, "section name is required")
		return
	}

	sec := models.Section{Name: req.Name, InstituteID: ws.InstituteID}
	if req.PeriodID != "" {
		id, err := primitive.ObjectIDFromHex(req.PeriodID)
		if err != nil {
			h.ErrLog.BadRequest(w, r, "malformed period id")
			return
		}
		sec.PeriodID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := sectionstore.New(h.DB).Create(ctx, sec)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("section created",
		zap.String("section_id", created.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusCreated, created)
}

// ServeView returns one section by id.
// GET /sections/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sec, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, sec)
}

// HandleUpdate modifies a section's name or status.
// PATCH /sections/{id}
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

	sec, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	store := sectionstore.New(h.DB)
	if err := store.UpdateInfo(ctx, sec.ID, strings.TrimSpace(req.Name), req.Status); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	updated, err := store.GetByID(ctx, sec.ID)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, updated)
}

// HandleDelete removes a section.
// DELETE /sections/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.requireInstituteManager(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sec, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	if _, err := sectionstore.New(h.DB).Delete(ctx, sec.ID); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("section deleted",
		zap.String("section_id", sec.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadVisible(ctx context.Context, ws models.Workspace, rawID string) (models.Section, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.Section{}, apperr.Validation("malformed section id")
	}
	sec, err := sectionstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Section{}, apperr.NotFound("section not found")
		}
		return models.Section{}, err
	}
	if !tenancy.ValidateAccess(tenancy.CategorySections, tenancy.SectionLocality(sec), ws) {
		return models.Section{}, apperr.NotFound("section not found")
	}
	return sec, nil
}

// requireInstituteManager gates the mutating section endpoints: program
// structure belongs to institute workspaces with the manage_classes
// permission.
func (h *Handler) requireInstituteManager(w http.ResponseWriter, r *http.Request) (models.Workspace, bool) {
	ws, _ := wsctx.FromRequest(r)
	if ws.Type != models.WorkspaceInstitute || !ws.HasPermission(tenancy.PermManageClasses) {
		h.ErrLog.Render(w, r, apperr.Forbidden("institute class management required"))
		return models.Workspace{}, false
	}
	return ws, true
}
