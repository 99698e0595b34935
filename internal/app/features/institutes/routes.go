// internal/app/features/institutes/routes.go
package institutes

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the institute endpoints. Creation only needs an identity
// (the creator becomes the first institute_admin); everything else checks
// membership or platform permissions inside the handler.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.HandleUpdate)

	return r
}
