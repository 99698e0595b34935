// internal/app/features/workspaces/routes.go
package workspaces

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the workspace endpoints. These operate on the caller's own
// memberships and do not require a resolved workspace context — only an
// authenticated identity.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.HandleUpdate)
	r.Get("/{id}/permissions", h.ServePermissions)

	return r
}
