package home

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	"github.com/uniajc/educadigital/internal/app/system/timeouts"
	"github.com/uniajc/educadigital/internal/app/system/viewdata"
	"github.com/uniajc/educadigital/internal/domain/models"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing page.
type Handler struct {
	Catalog *catalogstore.Store
	Log     *zap.Logger
}

func NewHandler(catalog *catalogstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog: catalog,
		Log:     logger,
	}
}

const maxFeatured = 6

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all := h.Catalog.Load(ctx)
	featured := make([]models.Resource, 0, maxFeatured)
	for _, res := range all {
		if !res.Usage.Featured {
			continue
		}
		featured = append(featured, res)
		if len(featured) == maxFeatured {
			break
		}
	}

	data := struct {
		viewdata.BaseVM
		Featured []models.Resource
		Total    int
	}{
		BaseVM:   viewdata.NewBaseVM(r, "Bienvenido", "/"),
		Featured: featured,
		Total:    len(all),
	}

	templates.Render(w, r, "home", data)
}
