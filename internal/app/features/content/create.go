// internal/app/features/content/create.go
package content

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	"github.com/lyceumhq/lyceum/internal/app/policy/classpolicy"
	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	contentstore "github.com/lyceumhq/lyceum/internal/app/store/content"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type createRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Kind     string `json:"kind"`
	ClassID  string `json:"class_id"`
	FileName string `json:"file_name"`
}

func validKind(kind string) bool {
	switch kind {
	case "lesson", "reading", "assignment":
		return true
	}
	return false
}

// HandleCreate adds a content record. The body is sanitized before storage;
// attaching to a class requires manage rights on that class.
// POST /content
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)
	if !ws.HasPermission(tenancy.PermManageContent) {
		h.ErrLog.Render(w, r, apperr.Forbidden("content management requires the manage_content permission"))
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		h.ErrLog.BadRequest(w, r, "content title is required")
		return
	}
	if !validKind(req.Kind) {
		h.ErrLog.BadRequest(w, r, `content kind must be "lesson", "reading", or "assignment"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	owner := ws.OwnerUserID
	rec := models.Content{
		Title:       req.Title,
		Body:        bodyPolicy.Sanitize(req.Body),
		Kind:        req.Kind,
		InstituteID: ws.InstituteID,
		CreatedBy:   &owner,
		FileName:    strings.TrimSpace(req.FileName),
	}
	if ws.Type.IsIndividual() {
		rec.OwnerUserID = &owner
	}
	if rec.FileName != "" {
		rec.FileKey = uuid.NewString()
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
		rec.ClassID = &cls.ID
	}

	created, err := contentstore.New(h.DB).Create(ctx, rec)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("content created",
		zap.String("content_id", created.ID.Hex()),
		zap.String("kind", created.Kind),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusCreated, created)
}
