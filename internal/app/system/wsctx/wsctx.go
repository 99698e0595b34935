// Package wsctx resolves the caller's workspace for each request and carries
// the resolved descriptor through the request context.
package wsctx

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/lyceumhq/lyceum/internal/app/system/apperr"
	"github.com/lyceumhq/lyceum/internal/app/system/identity"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

type ctxKey string

const workspaceKey ctxKey = "workspace"

// DefaultHeader names the request header carrying the workspace reference
// (a membership id in hex). Absent or empty means the caller's default
// workspace.
const DefaultHeader = "X-Lyceum-Workspace"

// Middleware resolves the request's workspace descriptor and stores it in
// the context. Requests without an authenticated identity pass through
// unresolved; handlers that need a workspace use Require.
//
// Resolution happens once per request and the descriptor is never cached
// beyond it, so membership changes take effect on the next request.
func Middleware(db *mongo.Database, header string, logger *zap.Logger) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := identity.UserID(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			ws, err := tenancy.Resolve(ctx, db, uid, r.Header.Get(header))
			cancel()
			if err != nil {
				if e, ok := apperr.As(err); ok {
					logger.Debug("workspace resolution rejected",
						zap.String("user_id", uid.Hex()),
						zap.String("reason", e.Message))
					http.Error(w, e.Message, e.HTTPStatus())
					return
				}
				logger.Error("workspace resolution failed",
					zap.String("user_id", uid.Hex()),
					zap.Error(err))
				http.Error(w, "workspace resolution failed", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(withWorkspace(r.Context(), ws)))
		})
	}
}

// Require rejects requests that reached the handler without a resolved
// workspace (typically because no identity header was present).
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, "workspace required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FromRequest returns the resolved workspace for the request, if any.
func FromRequest(r *http.Request) (models.Workspace, bool) {
	return FromContext(r.Context())
}

// FromContext returns the resolved workspace from the context, if any.
func FromContext(ctx context.Context) (models.Workspace, bool) {
	ws, ok := ctx.Value(workspaceKey).(models.Workspace)
	return ws, ok
}

func withWorkspace(ctx context.Context, ws models.Workspace) context.Context {
	return context.WithValue(ctx, workspaceKey, ws)
}

// WithTestWorkspace returns a context carrying the given descriptor.
// Exported for handler tests only.
func WithTestWorkspace(ctx context.Context, ws models.Workspace) context.Context {
	return withWorkspace(ctx, ws)
}
