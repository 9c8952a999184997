// internal/app/features/catalog/handler.go
package catalog

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/uniajc/educadigital/internal/app/features/errors"
	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	"github.com/uniajc/educadigital/internal/app/system/sessions"
	"github.com/uniajc/educadigital/internal/app/system/timeouts"
	"github.com/uniajc/educadigital/internal/app/system/viewdata"
	"github.com/uniajc/educadigital/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the resource catalog: the browse page, the filtered
// grid partial, and resource selection.
type Handler struct {
	Catalog *catalogstore.Store
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(catalog *catalogstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog: catalog,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// List handles GET /recursos: the catalog page with the filter bar and
// the current result grid.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	data := h.buildListData(w, r)
	templates.Render(w, r, "catalog", data)
}

// Grid handles GET /recursos/grid: just the result grid, re-queried
// with the current filters, for in-page updates.
func (h *Handler) Grid(w http.ResponseWriter, r *http.Request) {
	data := h.buildListData(w, r)
	templates.Render(w, r, "catalog_grid", data)
}

func (h *Handler) buildListData(w http.ResponseWriter, r *http.Request) listPageData {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q, filters := parseQuery(r)
	results := catalogstore.Filter(h.Catalog.Load(ctx), q)

	data := listPageData{
		BaseVM:       viewdata.NewBaseVM(r, "Recursos", "/"),
		Resources:    results,
		Count:        len(results),
		Filters:      filters,
		FacultyCodes: facultyOptions(),
		ContentTypes: models.ContentTypes,
		Levels:       models.Levels,
	}
	if when, ok := sessions.ConsumeCatalogUpdate(w, r); ok {
		data.CatalogUpdated = when
	}
	return data
}

// Open handles POST /recursos/{id}/abrir: remembers the selection for
// the detail page and redirects to it.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id := chi.URLParam(r, "id")
	if _, ok := h.Catalog.Get(ctx, id); !ok {
		h.ErrLog.LogNotFound(w, r, "resource to open not found",
			"Recurso no encontrado.", "/recursos")
		return
	}
	if err := sessions.SetSelectedResource(w, r, id); err != nil {
		h.Log.Warn("saving selection failed", zap.Error(err))
	}
	http.Redirect(w, r, "/recurso?id="+id, http.StatusSeeOther)
}
