// internal/app/features/content/routes.go
package content

import (
	"github.com/go-chi/chi/v5"

	"github.com/lyceumhq/lyceum/internal/app/system/wsctx"
)

// Routes mounts the content endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(wsctx.Require)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
