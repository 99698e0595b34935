// internal/app/features/members/add.go
package members

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
	classmemberstore "github.com/lyceumhq/lyceum/internal/app/store/classmembers"
	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type addRequest struct {
	ClassID   string `json:"class_id"`
	StudentID string `json:"student_id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
}

// HandleAdd enrolls a user into a class the workspace can manage. The
// member's role is normalized at ingestion; only student and teacher are
// accepted on class membership records.
// POST /members
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ws, _ := wsctx.FromRequest(r)

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "malformed request body")
		return
	}
	classID, err := primitive.ObjectIDFromHex(req.ClassID)
	if err != nil {
		h.ErrLog.BadRequest(w, r, "malformed class id")
		return
	}
	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		h.ErrLog.BadRequest(w, r, "malformed student id")
		return
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		h.ErrLog.BadRequest(w, r, "member full name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cls, err := classstore.New(h.DB).GetByID(ctx, classID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.Render(w, r, apperr.NotFound("class not found"))
			return
		}
		h.ErrLog.Render(w, r, err)
		return
	}
	// A class outside the workspace reads as missing; Forbidden is reserved
	// for classes the caller can see but not manage.
	if !classpolicy.CanView(ws, cls) {
		h.ErrLog.Render(w, r, apperr.NotFound("class not found"))
		return
	}
	if !classpolicy.CanManage(ws, cls) {
		h.ErrLog.Render(w, r, apperr.Forbidden("cannot manage members of this class"))
		return
	}

	creator := ws.OwnerUserID
	member, err := classmemberstore.New(h.DB).Add(ctx, models.ClassMember{
		InstituteID: cls.InstituteID,
		ClassID:     cls.ID,
		StudentID:   studentID,
		CreatedBy:   &creator,
		FullName:    fullName,
		Role:        req.Role,
	})
	if err != nil {
		switch err {
		case classmemberstore.ErrDuplicateMember:
			h.ErrLog.Render(w, r, apperr.Conflict("user is already a member of this class"))
		case classmemberstore.ErrBadRole:
			h.ErrLog.Render(w, r, apperr.Validation(`member role must be "student" or "teacher"`))
		default:
			h.ErrLog.Render(w, r, err)
		}
		return
	}

	h.Log.Info("class member added",
		zap.String("member_id", member.ID.Hex()),
		zap.String("class_id", cls.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()))

	apierrors.JSON(w, http.StatusCreated, member)
}
