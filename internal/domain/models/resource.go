package models

import "encoding/json"

// Resource is one catalog entry describing a learning asset and its
// pedagogical metadata. The JSON tags follow the seed file's wire names,
// which are Spanish; both the seed document and the local submission slot
// use this exact shape.
type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"titulo"`
	Faculty     string `json:"facultad"`
	Program     string `json:"programa,omitempty"`
	Level       string `json:"nivel"`
	Author      string `json:"autor"`
	CreatedDate string `json:"fecha_creacion"` // date-only, YYYY-MM-DD

	Objective      Objective      `json:"objetivo"`
	Content        Content        `json:"contenido"`
	Implementation Implementation `json:"implementacion"`
	Evaluation     Evaluation     `json:"evaluacion"`
	Usage          Usage          `json:"metadata"`
}

// Objective describes what the learner should achieve with the resource.
type Objective struct {
	Description  string   `json:"descripcion"`
	Competencies []string `json:"competencias"`
}

// Content points at the actual learning material. EmbedMarkup is only
// meaningful when Type is ContentTypeEmbed (embedded slide decks carry
// their own iframe snippet).
type Content struct {
	Type        string `json:"tipo"`
	URL         string `json:"url,omitempty"`
	Duration    string `json:"duracion,omitempty"`
	Format      string `json:"formato,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	EmbedMarkup string `json:"iframe,omitempty"`
}

// Implementation carries the guidance for using the resource in class.
type Implementation struct {
	TeacherGuide      string     `json:"guia_docente,omitempty"`
	StudentGuide      string     `json:"guia_estudiante"`
	EstimatedTime     string     `json:"tiempo_estimado,omitempty"`
	RequiredMaterials []string   `json:"materiales_necesarios,omitempty"`
	Prerequisites     StringList `json:"prerrequisitos,omitempty"`
}

// StringList is a []string that also accepts a single JSON string when
// decoding. Older submissions stored prerequisites as one free-text
// string; the seed document stores them as an array.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one == "" {
		*l = nil
		return nil
	}
	*l = StringList{one}
	return nil
}

// Evaluation is a tagged variant over {none, quiz, activity, project}.
// Which fields are meaningful depends on Type:
//   - quiz: Questions + PassingScore + ImmediateFeedback
//   - activity: Description + PassingScore
//   - project: Description + PassingScore + Requirements
//   - none: no further fields
type Evaluation struct {
	Type         string     `json:"tipo"`
	Questions    []Question `json:"preguntas,omitempty"`
	PassingScore int        `json:"puntaje_aprobacion,omitempty"`
	Description  string     `json:"descripcion,omitempty"`
	Requirements []string   `json:"requisitos,omitempty"`

	// ImmediateFeedback lets a quiz show the verdict on each answer as
	// it is recorded; grading is unaffected either way.
	ImmediateFeedback bool `json:"feedback_inmediato,omitempty"`
}

// Question is one multiple-choice quiz question. CorrectOption indexes
// into Options.
type Question struct {
	Prompt        string   `json:"pregunta"`
	Options       []string `json:"opciones"`
	CorrectOption int      `json:"respuesta_correcta"`
}

// Usage holds view/rating counters and discovery metadata. Views is the
// only field mutated after creation (bumped when the detail page opens);
// for seed-sourced records that bump is ephemeral by design.
type Usage struct {
	Views     int      `json:"visitas"`
	Rating    float64  `json:"valoracion"`
	Downloads int      `json:"descargas"`
	Tags      []string `json:"etiquetas"`
	Featured  bool     `json:"destacado"`
	Public    bool     `json:"publico,omitempty"`
}

// HasEvaluation reports whether the resource carries a gradeable
// evaluation block.
func (r Resource) HasEvaluation() bool {
	return r.Evaluation.Type != "" && r.Evaluation.Type != EvaluationTypeNone
}
