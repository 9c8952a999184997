// internal/app/features/submit/draft.go
package submit

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/uniajc/educadigital/internal/app/system/uploads"
	"github.com/uniajc/educadigital/internal/domain/models"
)

// ErrDraftNotFound is returned for unknown or abandoned draft IDs.
var ErrDraftNotFound = errors.New("submission draft not found")

// Draft accumulates the list-shaped parts of a submission while the
// author fills the form: the items added one by one, the quiz questions,
// and the uploaded file. Scalar fields travel with each POST instead.
type Draft struct {
	Competencies []string
	Materials    []string
	Requirements []string
	Questions    []models.Question

	// File is set once an upload succeeds; nil otherwise.
	File *uploads.Info
}

// AddCompetency appends one competency, rejecting blanks and repeats.
func (d *Draft) AddCompetency(v string) error {
	return addUnique(&d.Competencies, v,
		"La competencia no puede estar vacía.",
		"Esta competencia ya fue agregada.")
}

// AddMaterial appends one required material, rejecting blanks and repeats.
func (d *Draft) AddMaterial(v string) error {
	return addUnique(&d.Materials, v,
		"El material no puede estar vacío.",
		"Este material ya fue agregado.")
}

// AddRequirement appends one project requirement, rejecting blanks and
// repeats.
func (d *Draft) AddRequirement(v string) error {
	return addUnique(&d.Requirements, v,
		"El requisito no puede estar vacío.",
		"Este requisito ya fue agregado.")
}

// AddQuestion appends one quiz question. The answer key must point at
// one of the given options.
func (d *Draft) AddQuestion(prompt string, options []string, correct int) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return errors.New("La pregunta no puede estar vacía.")
	}
	clean := make([]string, 0, len(options))
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			clean = append(clean, o)
		}
	}
	if len(clean) < 2 {
		return errors.New("Cada pregunta necesita al menos 2 opciones.")
	}
	if correct < 0 || correct >= len(clean) {
		return errors.New("Selecciona cuál opción es la correcta.")
	}
	d.Questions = append(d.Questions, models.Question{
		Prompt:        prompt,
		Options:       clean,
		CorrectOption: correct,
	})
	return nil
}

// RemoveAt deletes the item at index from the named list. Out-of-range
// indices are ignored.
func (d *Draft) RemoveAt(kind string, index int) {
	var list *[]string
	switch kind {
	case "competencias":
		list = &d.Competencies
	case "materiales":
		list = &d.Materials
	case "requisitos":
		list = &d.Requirements
	case "preguntas":
		if index >= 0 && index < len(d.Questions) {
			d.Questions = append(d.Questions[:index], d.Questions[index+1:]...)
		}
		return
	default:
		return
	}
	if index >= 0 && index < len(*list) {
		*list = append((*list)[:index], (*list)[index+1:]...)
	}
}

func addUnique(list *[]string, v, emptyMsg, dupMsg string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New(emptyMsg)
	}
	for _, have := range *list {
		if strings.EqualFold(have, v) {
			return errors.New(dupMsg)
		}
	}
	*list = append(*list, v)
	return nil
}

// Drafts keeps live submission drafts in memory, keyed by an opaque ID
// carried in the browser session. A draft is dropped when its submission
// publishes; abandoned drafts die with the process.
type Drafts struct {
	mu sync.Mutex
	m  map[string]*Draft
}

// NewDrafts builds an empty draft registry.
func NewDrafts() *Drafts {
	return &Drafts{m: make(map[string]*Draft)}
}

// Create registers a fresh draft and returns its ID.
func (ds *Drafts) Create() string {
	id := uuid.NewString()
	ds.mu.Lock()
	ds.m[id] = &Draft{}
	ds.mu.Unlock()
	return id
}

// With runs fn against the draft with the given ID. The registry lock is
// held for the duration of fn.
func (ds *Drafts) With(id string, fn func(*Draft) error) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	d, ok := ds.m[id]
	if !ok {
		return ErrDraftNotFound
	}
	return fn(d)
}

// Snapshot returns a copy of the draft for rendering.
func (ds *Drafts) Snapshot(id string) (Draft, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	d, ok := ds.m[id]
	if !ok {
		return Draft{}, false
	}
	cp := Draft{
		Competencies: append([]string(nil), d.Competencies...),
		Materials:    append([]string(nil), d.Materials...),
		Requirements: append([]string(nil), d.Requirements...),
		Questions:    append([]models.Question(nil), d.Questions...),
	}
	if d.File != nil {
		f := *d.File
		cp.File = &f
	}
	return cp, true
}

// Drop removes a draft, typically after its submission publishes.
func (ds *Drafts) Drop(id string) {
	ds.mu.Lock()
	delete(ds.m, id)
	ds.mu.Unlock()
}
