// internal/app/features/periods/cascade.go
package periods

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierrors "github.com/lyceumhq/lyceum/internal/app/features/errors"
	classstore "github.com/lyceumhq/lyceum/internal/app/store/classes"
	classmemberstore "github.com/lyceumhq/lyceum/internal/app/store/classmembers"
	contentstore "github.com/lyceumhq/lyceum/internal/app/store/content"
	periodstore "github.com/lyceumhq/lyceum/internal/app/store/periods"
	sectionstore "github.com/lyceumhq/lyceum/internal/app/store/sections"
	subjectstore "github.com/lyceumhq/lyceum/internal/app/store/subjects"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
)

type cascadeResponse struct {
	Deleted map[string]int64 `json:"deleted"`
}

// HandleCascadeDelete removes a period and everything under it: sections,
// subjects, classes, class members, and class-attached content.
//
// The cascade is a sequence of independent deletes, not a transaction. Each
// step's deleted count is recorded as it completes; a failure partway
// through returns a PartialFailure carrying the counts of what was actually
// removed so the caller knows the store's state.
// DELETE /periods/{id}
func (h *Handler) HandleCascadeDelete(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.requireInstituteManager(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, err := h.loadVisible(ctx, ws, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Render(w, r, err)
		return
	}

	counts := map[string]int64{}
	fail := func(step string, err error) {
		h.ErrLog.Render(w, r, apperr.PartialFailure(
			"period delete failed at "+step, counts, err))
	}

	// Dependent class ids are collected up front; class-scoped cleanup uses
	// them after the classes themselves are gone.
	classIDs, err := classstore.New(h.DB).IDsByPeriod(ctx, p.ID)
	if err != nil {
		fail("collecting classes", err)
		return
	}

	n, err := sectionstore.New(h.DB).DeleteByPeriod(ctx, p.ID)
	if err != nil {
		fail("sections", err)
		return
	}
	counts["sections"] = n

	n, err = subjectstore.New(h.DB).DeleteByPeriod(ctx, p.ID)
	if err != nil {
		fail("subjects", err)
		return
	}
	counts["subjects"] = n

	n, err = classstore.New(h.DB).DeleteByPeriod(ctx, p.ID)
	if err != nil {
		fail("classes", err)
		return
	}
	counts["classes"] = n

	n, err = classmemberstore.New(h.DB).DeleteByClassIDs(ctx, classIDs)
	if err != nil {
		fail("class members", err)
		return
	}
	counts["class_members"] = n

	n, err = contentstore.New(h.DB).DeleteByClassIDs(ctx, classIDs)
	if err != nil {
		fail("content", err)
		return
	}
	counts["content"] = n

	n, err = periodstore.New(h.DB).Delete(ctx, p.ID)
	if err != nil {
		fail("period", err)
		return
	}
	counts["periods"] = n

	h.Log.Info("period cascade delete completed",
		zap.String("period_id", p.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()),
		zap.Int64("sections", counts["sections"]),
		zap.Int64("subjects", counts["subjects"]),
		zap.Int64("classes", counts["classes"]),
		zap.Int64("class_members", counts["class_members"]),
		zap.Int64("content", counts["content"]))

	apierrors.JSON(w, http.StatusOK, cascadeResponse{Deleted: counts})
}
