// internal/app/features/detail/routes.go
package detail

import "github.com/go-chi/chi/v5"

// Routes returns the detail subrouter, mounted under /recurso.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}
