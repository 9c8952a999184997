// internal/app/features/submit/types.go
package submit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/uniajc/educadigital/internal/app/system/inputval"
	"github.com/uniajc/educadigital/internal/app/system/uploads"
	"github.com/uniajc/educadigital/internal/app/system/viewdata"
	"github.com/uniajc/educadigital/internal/domain/models"
)

// submitInput carries the scalar form fields of a submission. The list
// fields (competencies, materials, requirements, questions) and the
// uploaded file live in the Draft instead.
type submitInput struct {
	Title                string `validate:"required,max=200" label:"Título"`
	Author               string `validate:"required,max=120" label:"Autor"`
	Faculty              string `validate:"required" label:"Facultad"`
	Program              string `validate:"max=120" label:"Programa"`
	Level                string `validate:"required,oneof=Pregrado Posgrado 'Educación Continua'" label:"Nivel"`
	ObjectiveDescription string `validate:"required" label:"Descripción del objetivo"`
	TeacherGuide         string
	StudentGuide         string `validate:"required" label:"Guía del estudiante"`
	ContentType          string `validate:"required" label:"Tipo de contenido"`
	ContentURL           string
	EmbedMarkup          string
	Duration             string `validate:"required,max=40" label:"Duración"`
	EstimatedTime        string
	Prerequisites        string
	TagsRaw              string

	EvaluationType        string
	EvaluationDescription string
	PassingScore          int
	ImmediateFeedback     bool

	Featured bool
	Public   bool
}

// parseSubmitInput reads the scalar fields from a form POST. Field names
// match the wire spellings used across the portal.
func parseSubmitInput(r *http.Request) submitInput {
	passing, _ := strconv.Atoi(r.FormValue("puntaje_aprobacion"))
	return submitInput{
		Title:                strings.TrimSpace(r.FormValue("titulo")),
		Author:               strings.TrimSpace(r.FormValue("autor")),
		Faculty:              strings.TrimSpace(r.FormValue("facultad")),
		Program:              strings.TrimSpace(r.FormValue("programa")),
		Level:                strings.TrimSpace(r.FormValue("nivel")),
		ObjectiveDescription: strings.TrimSpace(r.FormValue("objetivo_descripcion")),
		TeacherGuide:         strings.TrimSpace(r.FormValue("guia_docente")),
		StudentGuide:         strings.TrimSpace(r.FormValue("guia_estudiante")),
		ContentType:          strings.TrimSpace(r.FormValue("tipo_contenido")),
		ContentURL:           strings.TrimSpace(r.FormValue("url_contenido")),
		EmbedMarkup:          strings.TrimSpace(r.FormValue("iframe")),
		Duration:             strings.TrimSpace(r.FormValue("duracion")),
		EstimatedTime:        strings.TrimSpace(r.FormValue("tiempo_estimado")),
		Prerequisites:        strings.TrimSpace(r.FormValue("prerrequisitos")),
		TagsRaw:              r.FormValue("etiquetas"),
		EvaluationType:        strings.TrimSpace(r.FormValue("tipo_evaluacion")),
		EvaluationDescription: strings.TrimSpace(r.FormValue("descripcion_evaluacion")),
		PassingScore:          passing,
		ImmediateFeedback:     r.FormValue("feedback_inmediato") != "",
		Featured:              r.FormValue("destacado") != "",
		Public:                r.FormValue("publico") != "",
	}
}

// tags splits the comma-separated tag field into trimmed, non-empty tags.
func (in submitInput) tags() []string {
	parts := strings.Split(in.TagsRaw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateInput checks a submission at one of two tiers. The preview
// tier (publish=false) needs the required scalars plus at least one
// competency and one tag; publishing additionally needs two of each and
// actual content, either a valid URL or an uploaded file.
func validateInput(in submitInput, d Draft, publish bool) []string {
	errs := inputval.Validate(in).All()

	if in.Faculty != "" && !containsFold(models.Faculties, in.Faculty) {
		errs = append(errs, "Selecciona una facultad válida.")
	}
	if in.ContentType != "" && !models.IsValidContentType(in.ContentType) {
		errs = append(errs, "Selecciona un tipo de contenido válido.")
	}
	if in.EvaluationType != "" && !models.IsValidEvaluationType(in.EvaluationType) {
		errs = append(errs, "Selecciona un tipo de evaluación válido.")
	}
	if in.ContentURL != "" && !inputval.IsValidHTTPURL(in.ContentURL) {
		errs = append(errs, "La URL del contenido no es válida.")
	}

	minCompetencies, minTags := 1, 1
	if publish {
		minCompetencies, minTags = 2, 2
	}
	if len(d.Competencies) < minCompetencies {
		errs = append(errs, countMsg("competencia", minCompetencies))
	}
	if len(in.tags()) < minTags {
		errs = append(errs, countMsg("etiqueta", minTags))
	}

	if publish {
		if in.ContentURL == "" && d.File == nil {
			errs = append(errs, "Proporciona una URL de contenido o sube un archivo.")
		}
		if in.EvaluationType == models.EvaluationTypeQuiz && len(d.Questions) == 0 {
			errs = append(errs, "Agrega al menos 1 pregunta al cuestionario.")
		}
	}
	return errs
}

func countMsg(noun string, n int) string {
	if n == 1 {
		return "Agrega al menos 1 " + noun + "."
	}
	return "Agrega al menos " + strconv.Itoa(n) + " " + noun + "s."
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

// formPageData backs the submission form page.
type formPageData struct {
	viewdata.BaseVM
	Input submitInput

	Competencies []string
	Materials    []string
	Requirements []string
	Questions    []models.Question
	File         *uploads.Info

	Faculties       []string
	Levels          []string
	ContentTypes    []string
	EvaluationTypes []string

	Errors []string
}

// previewPageData backs the read-only preview of an assembled submission.
type previewPageData struct {
	viewdata.BaseVM
	Resource models.Resource
	FileName string
}
