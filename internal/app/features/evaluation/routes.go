// internal/app/features/evaluation/routes.go
package evaluation

import "github.com/go-chi/chi/v5"

// Routes returns the evaluation subrouter, mounted under /evaluacion.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/iniciar", h.Start)
	r.Post("/respuesta", h.Answer)
	r.Post("/enviar", h.Submit)
	r.Post("/reintentar", h.Retry)
	r.Post("/entrega", h.Deliver)
	return r
}
