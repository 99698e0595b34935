// internal/app/features/classes/delete.go
package classes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/lyceumhq/lyceum/internal/app/policy/classpolicy"
	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	classmemberstore "github.com/lyceumhq/lyceum/internal/app/store/classmembers"
	contentstore "github.com/lyceumhq/lyceum/internal/app/store/content"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
)

// HandleDelete removes a class, but only when nothing depends on it: the
// dependent member count and the count of content attached to the class
// must both be zero, checked with two count queries before the delete. A
// class with dependents goes through the period cascade instead.
// DELETE /classes/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cls, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if !classpolicy.CanManage(ws, cls) {
		h.ErrLog.Render(w, r, apperr.Forbidden("cannot manage this class"))
		return
	}
	if cls.Personal {
		h.ErrLog.Render(w, r, apperr.Validation("a personal class cannot be deleted; it belongs to its workspace"))
		return
	}

	members, err := classmemberstore.New(h.DB).CountByClass(ctx, cls.ID)
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if members > 0 {
		h.ErrLog.Render(w, r, apperr.Conflict("class still has %d members", members))
		return
	}
	attached, err := contentstore.New(h.DB).Count(ctx, bson.M{"class_id": cls.ID})
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}
	if attached > 0 {
		h.ErrLog.Render(w, r, apperr.Conflict("class still has %d content records", attached))
		return
	}

	if _, err := classstore.New(h.DB).Delete(ctx, cls.ID); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("class deleted",
		zap.String("class_id", cls.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	w.WriteHeader(http.StatusNoContent)
}
