// internal/app/features/submit/handler.go
package submit

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/uniajc/educadigital/internal/app/features/errors"
	submissionstore "github.com/uniajc/educadigital/internal/app/store/submissions"
	"github.com/uniajc/educadigital/internal/app/system/htmlsanitize"
	"github.com/uniajc/educadigital/internal/app/system/sessions"
	"github.com/uniajc/educadigital/internal/app/system/timeouts"
	"github.com/uniajc/educadigital/internal/app/system/uploads"
	"github.com/uniajc/educadigital/internal/app/system/viewdata"
	"github.com/uniajc/educadigital/internal/domain/models"
	"go.uber.org/zap"
)

// multipartMemory caps how much of an upload is buffered in memory; the
// rest spills to temp files.
const multipartMemory = 32 << 20

// Handler drives the submission flow: the form with its incremental
// lists, the file upload, the preview, and the final publish into the
// local slot.
type Handler struct {
	Subs    *submissionstore.Store
	Uploads *uploads.Store
	Drafts  *Drafts
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(subs *submissionstore.Store, up *uploads.Store, drafts *Drafts, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Subs:    subs,
		Uploads: up,
		Drafts:  drafts,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// Form handles GET /subir: the submission form, with whatever the draft
// has accumulated so far.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	id := h.ensureDraft(w, r)
	d, _ := h.Drafts.Snapshot(id)
	in := submitInput{EvaluationType: models.EvaluationTypeNone, PassingScore: models.DefaultPassingScore}
	h.renderForm(w, r, in, d, nil)
}

// AddListItem handles POST /subir/lista/{kind}: appends one item to the
// named draft list and returns to the form.
func (h *Handler) AddListItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parsing list form failed", err,
			"No se pudo procesar el formulario.", "/subir")
		return
	}
	id := h.ensureDraft(w, r)
	kind := chi.URLParam(r, "kind")

	var addErr error
	err := h.Drafts.With(id, func(d *Draft) error {
		switch kind {
		case "competencias":
			addErr = d.AddCompetency(r.FormValue("valor"))
		case "materiales":
			addErr = d.AddMaterial(r.FormValue("valor"))
		case "requisitos":
			addErr = d.AddRequirement(r.FormValue("valor"))
		case "preguntas":
			correct, convErr := strconv.Atoi(r.FormValue("respuesta_correcta"))
			if convErr != nil {
				correct = -1
			}
			addErr = d.AddQuestion(r.FormValue("pregunta"), r.Form["opcion"], correct)
		default:
			return ErrDraftNotFound
		}
		return nil
	})
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "unknown draft list",
			"Lista desconocida.", "/subir")
		return
	}
	if addErr != nil {
		d, _ := h.Drafts.Snapshot(id)
		h.renderForm(w, r, parseSubmitInput(r), d, []string{addErr.Error()})
		return
	}
	http.Redirect(w, r, "/subir", http.StatusSeeOther)
}

// RemoveListItem handles POST /subir/lista/{kind}/eliminar: drops the
// item at the posted index from the named draft list.
func (h *Handler) RemoveListItem(w http.ResponseWriter, r *http.Request) {
	id := h.ensureDraft(w, r)
	kind := chi.URLParam(r, "kind")
	index, err := strconv.Atoi(r.FormValue("indice"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "malformed list index", err,
			"Elemento inválido.", "/subir")
		return
	}
	_ = h.Drafts.With(id, func(d *Draft) error {
		d.RemoveAt(kind, index)
		return nil
	})
	http.Redirect(w, r, "/subir", http.StatusSeeOther)
}

// UploadFile handles POST /subir/archivo: stores the chosen file and
// attaches it to the draft. A rejected file reports one global error and
// leaves the draft untouched, earlier selection included.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	id := h.ensureDraft(w, r)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parsing upload form failed", err,
			"No se pudo procesar el archivo.", "/subir")
		return
	}
	file, header, err := r.FormFile("archivo")
	if err != nil {
		d, _ := h.Drafts.Snapshot(id)
		h.renderForm(w, r, parseSubmitInput(r), d, []string{"Selecciona un archivo para subir."})
		return
	}
	defer file.Close()

	info, err := h.Uploads.Save(ctx, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, uploads.ErrUnsupportedType):
			msg = "Formato no permitido. Usa " + uploads.AllowedTypesHint + "."
		case errors.Is(err, uploads.ErrFileTooLarge):
			msg = "El archivo supera el límite de 100MB."
		default:
			h.ErrLog.LogServerError(w, r, "storing upload failed", err,
				"No se pudo guardar el archivo. Intenta de nuevo.", "/subir")
			return
		}
		d, _ := h.Drafts.Snapshot(id)
		h.renderForm(w, r, parseSubmitInput(r), d, []string{msg})
		return
	}

	_ = h.Drafts.With(id, func(d *Draft) error {
		d.File = &info
		return nil
	})
	http.Redirect(w, r, "/subir", http.StatusSeeOther)
}

// Preview handles POST /subir/previsualizar: validates at the preview
// tier and renders the assembled resource without persisting anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	id := h.ensureDraft(w, r)
	d, _ := h.Drafts.Snapshot(id)
	in := parseSubmitInput(r)

	if errs := validateInput(in, d, false); len(errs) > 0 {
		h.renderForm(w, r, in, d, errs)
		return
	}

	res := h.assemble(in, d)
	data := previewPageData{
		BaseVM:   viewdata.NewBaseVM(r, "Previsualización", "/subir"),
		Resource: res,
	}
	if d.File != nil {
		data.FileName = d.File.FileName
	}
	templates.Render(w, r, "submit_preview", data)
}

// Publish handles POST /subir: validates at the publish tier, appends
// the resource to the local slot, and sends the author to the catalog
// with the fresh-data notice armed.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id := h.ensureDraft(w, r)
	d, _ := h.Drafts.Snapshot(id)
	in := parseSubmitInput(r)

	if errs := validateInput(in, d, true); len(errs) > 0 {
		h.renderForm(w, r, in, d, errs)
		return
	}

	res := h.assemble(in, d)
	res.ID = NewResourceID()
	if err := h.Subs.Append(ctx, res); err != nil {
		h.ErrLog.LogServerError(w, r, "appending submission failed", err,
			"No se pudo guardar el recurso. Intenta de nuevo.", "/subir")
		return
	}
	h.Log.Info("resource published",
		zap.String("id", res.ID),
		zap.String("title", res.Title))

	if err := sessions.MarkCatalogUpdated(w, r, time.Now().UTC().Format(time.RFC3339)); err != nil {
		h.Log.Warn("marking catalog update failed", zap.Error(err))
	}
	if err := sessions.ClearDraft(w, r); err != nil {
		h.Log.Warn("clearing draft failed", zap.Error(err))
	}
	h.Drafts.Drop(id)

	http.Redirect(w, r, "/recursos", http.StatusSeeOther)
}

// assemble builds the catalog record from the scalar input and the
// draft's lists. Rich text fields are sanitized on the way in; the ID is
// left empty for previews and minted at publish time.
func (h *Handler) assemble(in submitInput, d Draft) models.Resource {
	content := models.Content{
		Type:     in.ContentType,
		URL:      in.ContentURL,
		Duration: in.Duration,
	}
	if d.File != nil {
		content.URL = h.Uploads.URL(d.File.Path)
		content.Format = formatLabel(d.File.ContentType)
	}
	if in.ContentType == models.ContentTypeEmbed && in.EmbedMarkup != "" {
		content.EmbedMarkup = string(htmlsanitize.SanitizeEmbed(in.EmbedMarkup))
	}

	impl := models.Implementation{
		TeacherGuide:      htmlsanitize.Sanitize(in.TeacherGuide),
		StudentGuide:      htmlsanitize.Sanitize(in.StudentGuide),
		EstimatedTime:     in.EstimatedTime,
		RequiredMaterials: d.Materials,
	}
	if in.Prerequisites != "" {
		impl.Prerequisites = models.StringList{in.Prerequisites}
	}

	return models.Resource{
		Title:       in.Title,
		Faculty:     in.Faculty,
		Program:     in.Program,
		Level:       in.Level,
		Author:      in.Author,
		CreatedDate: time.Now().UTC().Format("2006-01-02"),
		Objective: models.Objective{
			Description:  htmlsanitize.Sanitize(in.ObjectiveDescription),
			Competencies: d.Competencies,
		},
		Content:        content,
		Implementation: impl,
		Evaluation:     assembleEvaluation(in, d),
		Usage: models.Usage{
			Tags:     in.tags(),
			Featured: in.Featured,
			Public:   in.Public,
		},
	}
}

func assembleEvaluation(in submitInput, d Draft) models.Evaluation {
	passing := in.PassingScore
	if passing <= 0 {
		passing = models.DefaultPassingScore
	}
	switch in.EvaluationType {
	case models.EvaluationTypeQuiz:
		return models.Evaluation{
			Type:              models.EvaluationTypeQuiz,
			Questions:         d.Questions,
			PassingScore:      passing,
			ImmediateFeedback: in.ImmediateFeedback,
		}
	case models.EvaluationTypeActivity:
		return models.Evaluation{
			Type:         models.EvaluationTypeActivity,
			Description:  in.EvaluationDescription,
			PassingScore: passing,
		}
	case models.EvaluationTypeProject:
		return models.Evaluation{
			Type:         models.EvaluationTypeProject,
			Description:  in.EvaluationDescription,
			PassingScore: passing,
			Requirements: d.Requirements,
		}
	default:
		return models.Evaluation{Type: models.EvaluationTypeNone}
	}
}

// formatLabel maps an upload content type to the short format label
// shown on cards.
func formatLabel(contentType string) string {
	switch contentType {
	case "video/mp4":
		return "MP4"
	case "application/pdf":
		return "PDF"
	case "application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation":
		return "PPT"
	case "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "DOC"
	case "image/jpeg":
		return "JPG"
	case "image/png":
		return "PNG"
	default:
		return ""
	}
}

// ensureDraft returns the browser's draft ID, creating and binding a
// fresh draft when none exists or the known one has been dropped.
func (h *Handler) ensureDraft(w http.ResponseWriter, r *http.Request) string {
	id := sessions.Draft(r)
	if id != "" {
		if _, ok := h.Drafts.Snapshot(id); ok {
			return id
		}
	}
	id = h.Drafts.Create()
	if err := sessions.SetDraft(w, r, id); err != nil {
		h.Log.Warn("saving draft binding failed", zap.Error(err))
	}
	return id
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, in submitInput, d Draft, errs []string) {
	data := formPageData{
		BaseVM:          viewdata.NewBaseVM(r, "Subir recurso", "/recursos"),
		Input:           in,
		Competencies:    d.Competencies,
		Materials:       d.Materials,
		Requirements:    d.Requirements,
		Questions:       d.Questions,
		File:            d.File,
		Faculties:       models.Faculties,
		Levels:          models.Levels,
		ContentTypes:    models.ContentTypes,
		EvaluationTypes: models.EvaluationTypes,
		Errors:          errs,
	}
	templates.Render(w, r, "submit", data)
}
