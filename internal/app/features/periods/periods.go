// internal/app/features/periods/periods.go
package periods

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	periodstore "github.com/lyceumhq/lyceum/internal/app/store/periods"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/paging"
	"github.com/lyceumhq/lyceum/internal/app/system/status"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type listResponse struct {
	Periods []models.Period `json:"periods"`
	Total   int64           `json:"total"`
}

type upsertRequest struct {
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Status    string     `json:"status"`
}

// ServeList returns the periods visible to the workspace.
// GET /periods?q=&limit=&offset=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	filter := bson.M{}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}
	scoped := tenancy.Scope(ws, tenancy.CategoryPeriods, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := periodstore.New(h.DB)
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
		rows = []models.Period{}
	}

	apierrors.JSON(w, http.StatusOK, listResponse{Periods: rows, Total: total})
}

// HandleCreate adds a period to the workspace's institute.
// POST /periods
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
		h.ErrLog.BadRequest(w, r, "period name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := periodstore.New(h.DB).Create(ctx, models.Period{
		Name:        req.Name,
		InstituteID: ws.InstituteID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("period created",
		zap.String("period_id", created.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusCreated, created)
}

// ServeView returns one period by id.
// GET /periods/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, p)
}

// HandleUpdate modifies a period's name or status.
// PATCH /periods/{id}
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

	p, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	store := periodstore.New(h.DB)
	if err := store.UpdateInfo(ctx, p.ID, strings.TrimSpace(req.Name), req.Status); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	updated, err := store.GetByID(ctx, p.ID)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	apierrors.JSON(w, http.StatusOK, updated)
}

func (h *Handler) loadVisible(ctx context.Context, ws models.Workspace, rawID string) (models.Period, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.Period{}, apperr.Validation("malformed period id")
	}
	p, err := periodstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Period{}, apperr.NotFound("period not found")
		}
		return models.Period{}, err
	}
	if !tenancy.ValidateAccess(tenancy.CategoryPeriods, tenancy.PeriodLocality(p), ws) {
		return models.Period{}, apperr.NotFound("period not found")
	}
	return p, nil
}

func (h *Handler) requireInstituteManager(w http.ResponseWriter, r *http.Request) (models.Workspace, bool) {
	ws, _ := wsctx.FromRequest(r)
	if ws.Type != models.WorkspaceInstitute || !ws.HasPermission(tenancy.PermManageClasses) {
		h.ErrLog.Render(w, r, apperr.Forbidden("institute class management required"))
		return models.Workspace{}, false
	}
	return ws, true
}
