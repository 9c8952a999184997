// internal/app/features/submit/routes.go
package submit

import "github.com/go-chi/chi/v5"

// Routes returns the submission subrouter, mounted under /subir.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Form)
	r.Post("/", h.Publish)
	r.Post("/previsualizar", h.Preview)
	r.Post("/archivo", h.UploadFile)
	r.Post("/lista/{kind}", h.AddListItem)
	r.Post("/lista/{kind}/eliminar", h.RemoveListItem)
	return r
}
