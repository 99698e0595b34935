// internal/app/features/members/routes.go
package members

import (
	"github.com/go-chi/chi/v5"

	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
)

// Routes mounts the class-member endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(wsctx.Require)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleAdd)
	r.Get("/{id}", h.ServeView)
	r.Delete("/{id}", h.HandleRemove)

	return r
}
