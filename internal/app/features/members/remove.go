// internal/app/features/members/remove.go
package members

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/lyceumhq/lyceum/internal/app/policy/classpolicy"
	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	classmemberstore "github.com/lyceumhq/lyceum/internal/app/store/classmembers"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
)

// HandleRemove withdraws a member from a class the workspace can manage.
// DELETE /members/{id}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	member, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	cls, err := classstore.New(h.DB).GetByID(ctx, member.ClassID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.Render(w, r, apperr.NotFound("class not found"))
			return
		}
		h.ErrLog.Render(w, r, err)
		return
	}
	if !classpolicy.CanManage(ws, cls) {
		h.ErrLog.Render(w, r, apperr.Forbidden("cannot manage members of this class"))
		return
	}

	if _, err := classmemberstore.New(h.DB).Remove(ctx, member.ID); err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	h.Log.Info("class member removed",
		zap.String("member_id", member.ID.Hex()),
		zap.String("class_id", member.ClassID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	w.WriteHeader(http.StatusNoContent)
}
