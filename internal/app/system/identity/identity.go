// Package identity extracts the trusted caller identity attached to each
// request by the upstream authentication layer.
//
// Verification of identity tokens happens before requests reach this
// service; by the time a request arrives, the authenticated user id is
// carried in a trusted header set by the gateway. This package only parses
// and exposes it.
package identity

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultHeader is the header the gateway uses for the authenticated user id.
const DefaultHeader = "X-Lyceum-User"

type ctxKey string

const userKey ctxKey = "identity.user"

// Middleware parses the trusted identity header into the request context.
// Requests without a parseable identity proceed unauthenticated; handlers
// that need an identity use Require.
func Middleware(header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(header))
			if raw != "" {
				if uid, err := primitive.ObjectIDFromHex(raw); err == nil {
					r = r.WithContext(WithUserID(r.Context(), uid))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, uid primitive.ObjectID) context.Context {
	return context.WithValue(ctx, userKey, uid)
}

// UserID returns the authenticated user id from the context.
// ok=false means the request is unauthenticated (or carried a malformed id,
// which is treated the same: fail closed).
func UserID(ctx context.Context) (primitive.ObjectID, bool) {
	uid, ok := ctx.Value(userKey).(primitive.ObjectID)
	if !ok || uid == primitive.NilObjectID {
		return primitive.NilObjectID, false
	}
	return uid, true
}

// Require returns the caller's user id or writes a 401 and reports ok=false.
func Require(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	uid, ok := UserID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}
	return uid, true
}
