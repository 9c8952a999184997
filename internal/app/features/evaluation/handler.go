// internal/app/features/evaluation/handler.go
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/uniajc/educadigital/internal/app/features/errors"
	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	"github.com/uniajc/educadigital/internal/app/system/evalsessions"
	"github.com/uniajc/educadigital/internal/app/system/sessions"
	"github.com/uniajc/educadigital/internal/app/system/timeouts"
	"github.com/uniajc/educadigital/internal/app/system/viewdata"
	"github.com/uniajc/educadigital/internal/domain/evaluation"
	"github.com/uniajc/educadigital/internal/domain/models"
	"go.uber.org/zap"
)

// Handler drives evaluation attempts: starting one from the detail page,
// recording answers, grading, retries, and activity/project hand-ins.
type Handler struct {
	Catalog  *catalogstore.Store
	Attempts *evalsessions.Registry
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(catalog *catalogstore.Store, attempts *evalsessions.Registry, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog:  catalog,
		Attempts: attempts,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// Start handles POST /evaluacion/iniciar: registers a fresh attempt for
// the posted resource and renders the quiz or hand-in page.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id := r.FormValue("recurso")
	res, ok := h.Catalog.Get(ctx, id)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "evaluation start for unknown resource",
			"Recurso no encontrado.", "/recursos")
		return
	}

	sess, err := evaluation.NewSession(res)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "starting evaluation failed", err,
			"Este recurso no tiene evaluación.", "/recurso?id="+id)
		return
	}

	attemptID := h.Attempts.Put(sess)
	if err := sessions.SetEvalSession(w, r, attemptID); err != nil {
		h.Log.Warn("saving evaluation attempt failed", zap.Error(err))
	}

	if sess.Type == models.EvaluationTypeQuiz {
		templates.Render(w, r, "eval_quiz", h.quizData(r, sess, "", ""))
		return
	}
	templates.Render(w, r, "eval_delivery", deliveryPageData{
		BaseVM:     viewdata.NewBaseVM(r, "Entrega", "/recurso?id="+id),
		ResourceID: id,
		Type:       sess.Type,
	})
}

// Answer handles POST /evaluacion/respuesta: records one choice and
// re-renders the quiz, with the verdict shown when the resource opted
// into immediate feedback.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	attemptID := sessions.EvalSession(r)
	if attemptID == "" {
		h.noAttempt(w, r)
		return
	}

	question, qErr := strconv.Atoi(r.FormValue("pregunta"))
	option, oErr := strconv.Atoi(r.FormValue("opcion"))
	if qErr != nil || oErr != nil {
		h.ErrLog.LogBadRequest(w, r, "malformed answer", errors.Join(qErr, oErr),
			"Respuesta inválida.", "/recursos")
		return
	}

	var data quizPageData
	err := h.Attempts.With(attemptID, func(s *evaluation.Session) error {
		correct, err := s.Answer(question, option)
		if err != nil {
			return err
		}
		data = h.quizData(r, s, feedbackFor(s, correct), "")
		return nil
	})
	switch {
	case errors.Is(err, evalsessions.ErrNotFound):
		h.noAttempt(w, r)
		return
	case err != nil:
		h.ErrLog.LogBadRequest(w, r, "recording answer failed", err,
			"No se pudo registrar la respuesta.", "/recursos")
		return
	}

	templates.Render(w, r, "eval_quiz", data)
}

// Submit handles POST /evaluacion/enviar: grades the quiz. Unanswered
// questions keep the attempt open; a pass closes it.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	attemptID := sessions.EvalSession(r)
	if attemptID == "" {
		h.noAttempt(w, r)
		return
	}

	var (
		quiz   quizPageData
		page   resultPageData
		passed bool
	)
	err := h.Attempts.With(attemptID, func(s *evaluation.Session) error {
		result, err := s.SubmitQuiz()
		if err != nil {
			var inc *evaluation.IncompleteError
			if errors.As(err, &inc) {
				quiz = h.quizData(r, s,
					"", fmt.Sprintf("Responde todas las preguntas antes de enviar. Faltan %d.", len(inc.Unanswered)))
				return nil
			}
			return err
		}
		passed = result.Passed
		page = resultPageData{
			BaseVM:     viewdata.NewBaseVM(r, "Resultado", "/recurso?id="+s.ResourceID),
			ResourceID: s.ResourceID,
			Result:     result,
		}
		return nil
	})
	switch {
	case errors.Is(err, evalsessions.ErrNotFound):
		h.noAttempt(w, r)
		return
	case err != nil:
		h.ErrLog.LogBadRequest(w, r, "grading quiz failed", err,
			"No se pudo calificar el cuestionario.", "/recursos")
		return
	}

	if quiz.Total > 0 && quiz.Error != "" {
		templates.Render(w, r, "eval_quiz", quiz)
		return
	}

	if passed {
		// Drop after With returns; the registry lock is not reentrant.
		h.Attempts.Drop(attemptID)
		if err := sessions.ClearEvalSession(w, r); err != nil {
			h.Log.Warn("clearing evaluation attempt failed", zap.Error(err))
		}
	}
	templates.Render(w, r, "eval_result", page)
}

// Retry handles POST /evaluacion/reintentar: discards the current
// attempt and starts a clean one for the same resource.
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	attemptID := sessions.EvalSession(r)
	if attemptID == "" {
		h.noAttempt(w, r)
		return
	}

	var resourceID string
	err := h.Attempts.With(attemptID, func(s *evaluation.Session) error {
		resourceID = s.ResourceID
		return nil
	})
	if err != nil {
		h.noAttempt(w, r)
		return
	}
	h.Attempts.Drop(attemptID)

	res, ok := h.Catalog.Get(ctx, resourceID)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "retry for vanished resource",
			"Recurso no encontrado.", "/recursos")
		return
	}
	sess, err := evaluation.NewSession(res)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "restarting evaluation failed", err,
			"Este recurso ya no tiene evaluación.", "/recursos")
		return
	}
	freshID := h.Attempts.Put(sess)
	if err := sessions.SetEvalSession(w, r, freshID); err != nil {
		h.Log.Warn("saving evaluation attempt failed", zap.Error(err))
	}
	templates.Render(w, r, "eval_quiz", h.quizData(r, sess, "", ""))
}

// Deliver handles POST /evaluacion/entrega: accepts an activity or
// project hand-in and closes the attempt.
func (h *Handler) Deliver(w http.ResponseWriter, r *http.Request) {
	attemptID := sessions.EvalSession(r)
	if attemptID == "" {
		h.noAttempt(w, r)
		return
	}

	description := r.FormValue("descripcion")
	var (
		retry deliveryPageData
		done  deliveryDonePageData
	)
	err := h.Attempts.With(attemptID, func(s *evaluation.Session) error {
		if _, err := s.SubmitDelivery(description); err != nil {
			if errors.Is(err, evaluation.ErrEmptyDelivery) {
				retry = deliveryPageData{
					BaseVM:     viewdata.NewBaseVM(r, "Entrega", "/recurso?id="+s.ResourceID),
					ResourceID: s.ResourceID,
					Type:       s.Type,
					Error:      "La descripción de la entrega no puede estar vacía.",
				}
				return nil
			}
			return err
		}
		done = deliveryDonePageData{
			BaseVM:     viewdata.NewBaseVM(r, "Entrega recibida", "/recurso?id="+s.ResourceID),
			ResourceID: s.ResourceID,
		}
		return nil
	})
	switch {
	case errors.Is(err, evalsessions.ErrNotFound):
		h.noAttempt(w, r)
		return
	case err != nil:
		h.ErrLog.LogBadRequest(w, r, "submitting delivery failed", err,
			"No se pudo registrar la entrega.", "/recursos")
		return
	}

	if retry.Error != "" {
		templates.Render(w, r, "eval_delivery", retry)
		return
	}

	h.Attempts.Drop(attemptID)
	if err := sessions.ClearEvalSession(w, r); err != nil {
		h.Log.Warn("clearing evaluation attempt failed", zap.Error(err))
	}
	templates.Render(w, r, "eval_delivery_done", done)
}

// feedbackFor phrases the verdict on the answer just recorded. Quizzes
// without the immediate-feedback flag get none.
func feedbackFor(s *evaluation.Session, correct bool) string {
	if !s.ImmediateFeedback() {
		return ""
	}
	if correct {
		return "¡Correcto!"
	}
	return "Incorrecto. Revisa el contenido e intenta de nuevo."
}

func (h *Handler) noAttempt(w http.ResponseWriter, r *http.Request) {
	h.ErrLog.LogNotFound(w, r, "no active evaluation attempt",
		"No hay una evaluación en curso. Abre el recurso para comenzar.", "/recursos")
}

func (h *Handler) quizData(r *http.Request, s *evaluation.Session, feedback, errMsg string) quizPageData {
	return quizPageData{
		BaseVM:       viewdata.NewBaseVM(r, "Cuestionario", "/recurso?id="+s.ResourceID),
		ResourceID:   s.ResourceID,
		Questions:    s.Questions(),
		Answered:     s.Answered(),
		Total:        len(s.Questions()),
		PassingScore: s.PassingScore(),
		Feedback:     feedback,
		Error:        errMsg,
	}
}
