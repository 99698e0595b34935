// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithIdentity attaches an authenticated user id to the request.
func WithIdentity(r *http.Request, uid primitive.ObjectID) *http.Request {
	return r.WithContext(identity.WithUserID(r.Context(), uid))
}

// WithWorkspace attaches a resolved workspace descriptor to the request.
func WithWorkspace(r *http.Request, ws models.Workspace) *http.Request {
	return r.WithContext(wsctx.WithTestWorkspace(r.Context(), ws))
}

// WorkspaceFromMembership builds the descriptor a resolution of the given
// membership would produce, without going through the database.
func WorkspaceFromMembership(m models.Membership) models.Workspace {
	return models.Workspace{
		ID:            m.ID,
		Type:          m.WorkspaceType,
		Name:          m.WorkspaceName,
		OwnerUserID:   m.UserID,
		InstituteID:   m.InstituteID,
		LinkedClassID: m.LinkedClassID,
		Role:          models.NormalizeRole(m.Role),
		Permissions:   tenancy.PermissionsFor(m.Role, m.WorkspaceType),
		Status:        m.Status,
	}
}
