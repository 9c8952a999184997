// Package evaluation implements the per-resource evaluation session: the
// state a learner accumulates while answering a quiz or handing in an
// activity/project, and the grading of a quiz against its answer key.
//
// Nothing here is persisted. A completed session does not write back into
// the catalog; reopening a resource's evaluation starts a fresh session.
package evaluation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/uniajc/educadigital/internal/domain/models"
)

// Status is the lifecycle state of one evaluation session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
)

var (
	// ErrNoEvaluation is returned when a session is requested for a
	// resource whose evaluation type is "ninguna" (or absent).
	ErrNoEvaluation = errors.New("resource has no evaluation")

	// ErrAlreadySubmitted is returned for mutations after a session
	// reached StatusSubmitted.
	ErrAlreadySubmitted = errors.New("evaluation already submitted")

	// ErrEmptyDelivery is returned when an activity/project delivery is
	// empty after trimming.
	ErrEmptyDelivery = errors.New("delivery description is empty")
)

// IncompleteError reports a quiz submission attempted while some
// questions have no recorded answer. Unanswered holds zero-based
// question indices, in question order.
type IncompleteError struct {
	Unanswered []int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%d question(s) unanswered", len(e.Unanswered))
}

// Result summarizes a graded submission.
type Result struct {
	Passed       bool
	Correct      int
	Total        int
	Score        float64 // unrounded percentage, the value compared against PassingScore
	DisplayScore int     // Score rounded to the nearest integer, for rendering only
	PassingScore int
	Detail       []QuestionResult // quiz only; empty for activity/project
}

// QuestionResult is the per-question breakdown shown after a quiz submit.
type QuestionResult struct {
	Index   int
	Prompt  string
	Chosen  int
	Correct int
	IsRight bool
}

// Session tracks one attempt at a resource's evaluation. It is not safe
// for concurrent use; the registry that owns sessions serializes access.
type Session struct {
	ResourceID string
	Type       string

	status  Status
	eval    models.Evaluation
	answers map[int]int // question index -> chosen option index
	result  *Result
}

// NewSession builds a session for the resource's evaluation block.
// Resources with evaluation type "ninguna" have nothing to attempt.
func NewSession(r models.Resource) (*Session, error) {
	if !r.HasEvaluation() {
		return nil, ErrNoEvaluation
	}
	eval := r.Evaluation
	if eval.PassingScore <= 0 {
		eval.PassingScore = models.DefaultPassingScore
	}
	return &Session{
		ResourceID: r.ID,
		Type:       eval.Type,
		status:     StatusNotStarted,
		eval:       eval,
		answers:    make(map[int]int),
	}, nil
}

// Status returns the session's lifecycle state.
func (s *Session) Status() Status { return s.status }

// Result returns the grading outcome, or nil before a successful submit.
func (s *Session) Result() *Result { return s.result }

// Questions returns the quiz question set in its fixed order.
func (s *Session) Questions() []models.Question { return s.eval.Questions }

// PassingScore returns the effective passing threshold.
func (s *Session) PassingScore() int { return s.eval.PassingScore }

// ImmediateFeedback reports whether this quiz opted into per-answer
// feedback via its feedback_inmediato flag.
func (s *Session) ImmediateFeedback() bool { return s.eval.ImmediateFeedback }

// Answer records the chosen option for one question and moves a fresh
// session into StatusInProgress. Re-answering a question replaces the
// previous choice. correct reports whether the chosen option matches the
// answer key, for optional immediate feedback; it does not affect grading.
func (s *Session) Answer(question, option int) (correct bool, err error) {
	if s.status == StatusSubmitted {
		return false, ErrAlreadySubmitted
	}
	if s.Type != models.EvaluationTypeQuiz {
		return false, fmt.Errorf("evaluation type %q takes no answers", s.Type)
	}
	if question < 0 || question >= len(s.eval.Questions) {
		return false, fmt.Errorf("question index %d out of range", question)
	}
	q := s.eval.Questions[question]
	if option < 0 || option >= len(q.Options) {
		return false, fmt.Errorf("option index %d out of range for question %d", option, question)
	}
	s.answers[question] = option
	s.status = StatusInProgress
	return option == q.CorrectOption, nil
}

// SubmitQuiz grades the quiz. Every question must have a recorded answer;
// otherwise an *IncompleteError enumerating the unanswered indices is
// returned and the session stays InProgress.
//
// The pass decision compares the unrounded percentage against the passing
// score (pass iff score >= passing). On a fail the recorded answers are
// cleared and the session returns to InProgress so the learner can retry
// the same question set in the same order.
func (s *Session) SubmitQuiz() (*Result, error) {
	if s.status == StatusSubmitted {
		return nil, ErrAlreadySubmitted
	}
	if s.Type != models.EvaluationTypeQuiz {
		return nil, fmt.Errorf("evaluation type %q is not a quiz", s.Type)
	}

	var unanswered []int
	for i := range s.eval.Questions {
		if _, ok := s.answers[i]; !ok {
			unanswered = append(unanswered, i)
		}
	}
	if len(unanswered) > 0 {
		return nil, &IncompleteError{Unanswered: unanswered}
	}

	total := len(s.eval.Questions)
	correct := 0
	detail := make([]QuestionResult, 0, total)
	for i, q := range s.eval.Questions {
		chosen := s.answers[i]
		right := chosen == q.CorrectOption
		if right {
			correct++
		}
		detail = append(detail, QuestionResult{
			Index:   i,
			Prompt:  q.Prompt,
			Chosen:  chosen,
			Correct: q.CorrectOption,
			IsRight: right,
		})
	}

	score := float64(correct) / float64(total) * 100
	res := &Result{
		Passed:       score >= float64(s.eval.PassingScore),
		Correct:      correct,
		Total:        total,
		Score:        score,
		DisplayScore: int(math.Round(score)),
		PassingScore: s.eval.PassingScore,
		Detail:       detail,
	}

	if res.Passed {
		s.status = StatusSubmitted
		s.result = res
	} else {
		// Failed attempts reset for a retry with the same questions.
		s.answers = make(map[int]int)
		s.status = StatusInProgress
	}
	return res, nil
}

// SubmitDelivery accepts an activity or project hand-in. There is no
// automatic grading: a non-empty description transitions the session
// straight to Submitted{passed}; review happens downstream, by a person.
func (s *Session) SubmitDelivery(description string) (*Result, error) {
	if s.status == StatusSubmitted {
		return nil, ErrAlreadySubmitted
	}
	if s.Type != models.EvaluationTypeActivity && s.Type != models.EvaluationTypeProject {
		return nil, fmt.Errorf("evaluation type %q takes no delivery", s.Type)
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDelivery
	}
	res := &Result{
		Passed:       true,
		PassingScore: s.eval.PassingScore,
	}
	s.status = StatusSubmitted
	s.result = res
	return res, nil
}

// Answered returns how many questions currently have a recorded answer.
func (s *Session) Answered() int { return len(s.answers) }
