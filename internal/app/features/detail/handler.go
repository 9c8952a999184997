// internal/app/features/detail/handler.go
package detail

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/uniajc/educadigital/internal/app/features/errors"
	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	"github.com/uniajc/educadigital/internal/app/system/htmlsanitize"
	"github.com/uniajc/educadigital/internal/app/system/sessions"
	"github.com/uniajc/educadigital/internal/app/system/timeouts"
	"github.com/uniajc/educadigital/internal/app/system/viewdata"
	"github.com/uniajc/educadigital/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the stepped resource detail page.
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

// Serve handles GET /recurso. The resource comes from the id query
// parameter, falling back to the selection remembered when the visitor
// opened it from the catalog; that slot is one-shot and is cleared on
// read. With neither, a short notice renders and the page returns to
// the catalog.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id := query.Get(r, "id")
	if id == "" {
		if id = sessions.SelectedResource(r); id != "" {
			if err := sessions.ClearSelectedResource(w, r); err != nil {
				h.Log.Warn("clearing resource selection failed", zap.Error(err))
			}
		}
	}
	if id == "" {
		h.renderMissing(w, r)
		return
	}

	res, ok := h.Catalog.Get(ctx, id)
	if !ok {
		h.Log.Info("detail request for unknown resource", zap.String("id", id))
		h.renderMissing(w, r)
		return
	}

	res.Usage.Views = h.Catalog.BumpViews(ctx, id)

	data := detailPageData{
		BaseVM:           viewdata.NewBaseVM(r, res.Title, "/recursos"),
		Resource:         res,
		ObjectiveHTML:    htmlsanitize.PrepareForDisplay(res.Objective.Description),
		TeacherGuideHTML: htmlsanitize.PrepareForDisplay(res.Implementation.TeacherGuide),
		StudentGuideHTML: htmlsanitize.PrepareForDisplay(res.Implementation.StudentGuide),
		HasEvaluation:    res.HasEvaluation(),
		EvaluationType:   res.Evaluation.Type,
		QuestionCount:    len(res.Evaluation.Questions),
		PassingScore:     res.Evaluation.PassingScore,
	}
	if res.Content.Type == models.ContentTypeEmbed && res.Content.EmbedMarkup != "" {
		data.EmbedHTML = htmlsanitize.SanitizeEmbed(res.Content.EmbedMarkup)
	}

	templates.Render(w, r, "detail", data)
}

func (h *Handler) renderMissing(w http.ResponseWriter, r *http.Request) {
	data := missingPageData{
		BaseVM:     viewdata.NewBaseVM(r, "Recurso no encontrado", "/recursos"),
		RedirectTo: "/recursos",
	}
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "detail_missing", data)
}
