// internal/app/features/catalog/routes.go
package catalog

import "github.com/go-chi/chi/v5"

// Routes returns the catalog subrouter, mounted under /recursos.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/grid", h.Grid)
	r.Post("/{id}/abrir", h.Open)
	return r
}
