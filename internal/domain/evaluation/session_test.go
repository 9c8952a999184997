package evaluation

import (
	"errors"
	"testing"

	"github.com/uniajc/educadigital/internal/domain/models"
)

func quizResource(t *testing.T, passing int) models.Resource {
	t.Helper()
	return models.Resource{
		ID:    "REC-QUIZ",
		Title: "Quiz de prueba",
		Objective: models.Objective{
			Description:  "desc",
			Competencies: []string{"c1"},
		},
		Evaluation: models.Evaluation{
			Type:         models.EvaluationTypeQuiz,
			PassingScore: passing,
			Questions: []models.Question{
				{Prompt: "P1", Options: []string{"a", "b", "c"}, CorrectOption: 0},
				{Prompt: "P2", Options: []string{"a", "b", "c"}, CorrectOption: 1},
				{Prompt: "P3", Options: []string{"a", "b", "c"}, CorrectOption: 2},
				{Prompt: "P4", Options: []string{"a", "b", "c"}, CorrectOption: 0},
			},
		},
	}
}

func TestNewSession_NoEvaluation(t *testing.T) {
	r := models.Resource{ID: "REC-1", Evaluation: models.Evaluation{Type: models.EvaluationTypeNone}}
	if _, err := NewSession(r); !errors.Is(err, ErrNoEvaluation) {
		t.Fatalf("expected ErrNoEvaluation, got %v", err)
	}
}

func TestSession_StatusTransitions(t *testing.T) {
	s, err := NewSession(quizResource(t, 70))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if s.Status() != StatusNotStarted {
		t.Errorf("initial status: got %q, want %q", s.Status(), StatusNotStarted)
	}

	if _, err := s.Answer(0, 0); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if s.Status() != StatusInProgress {
		t.Errorf("status after first answer: got %q, want %q", s.Status(), StatusInProgress)
	}
}

func TestSubmitQuiz_Incomplete(t *testing.T) {
	s, _ := NewSession(quizResource(t, 70))

	// Answer only questions 0 and 2.
	s.Answer(0, 0)
	s.Answer(2, 2)

	_, err := s.SubmitQuiz()
	var inc *IncompleteError
	if !errors.As(err, &inc) {
		t.Fatalf("expected IncompleteError, got %v", err)
	}
	if got, want := len(inc.Unanswered), 2; got != want {
		t.Fatalf("unanswered count: got %d, want %d", got, want)
	}
	if inc.Unanswered[0] != 1 || inc.Unanswered[1] != 3 {
		t.Errorf("unanswered indices: got %v, want [1 3]", inc.Unanswered)
	}
	if s.Status() != StatusInProgress {
		t.Errorf("status after incomplete submit: got %q, want %q", s.Status(), StatusInProgress)
	}
}

func TestSubmitQuiz_OneOfFourFails(t *testing.T) {
	s, _ := NewSession(quizResource(t, 70))

	// One correct (question 0), three wrong.
	s.Answer(0, 0)
	s.Answer(1, 0)
	s.Answer(2, 0)
	s.Answer(3, 1)

	res, err := s.SubmitQuiz()
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	if res.DisplayScore != 25 {
		t.Errorf("DisplayScore: got %d, want 25", res.DisplayScore)
	}
	if res.Correct != 1 || res.Total != 4 {
		t.Errorf("Correct/Total: got %d/%d, want 1/4", res.Correct, res.Total)
	}
	if res.Passed {
		t.Error("expected Submitted{failed} with passingScore 70")
	}
	if s.Status() != StatusInProgress {
		t.Errorf("status after failed submit: got %q, want %q", s.Status(), StatusInProgress)
	}
}

func TestSubmitQuiz_RetryClearsAnswers(t *testing.T) {
	s, _ := NewSession(quizResource(t, 70))

	// Fail once with all-wrong answers.
	s.Answer(0, 1)
	s.Answer(1, 0)
	s.Answer(2, 0)
	s.Answer(3, 1)
	if res, err := s.SubmitQuiz(); err != nil || res.Passed {
		t.Fatalf("expected clean failed submit, got res=%+v err=%v", res, err)
	}

	// Prior answers are gone: an immediate resubmit is incomplete.
	if s.Answered() != 0 {
		t.Fatalf("answers not cleared after fail: %d recorded", s.Answered())
	}
	if _, err := s.SubmitQuiz(); err == nil {
		t.Fatal("expected IncompleteError on retry without answers")
	}

	// Retry with all-correct answers passes.
	s.Answer(0, 0)
	s.Answer(1, 1)
	s.Answer(2, 2)
	s.Answer(3, 0)
	res, err := s.SubmitQuiz()
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	if !res.Passed || res.DisplayScore != 100 {
		t.Errorf("retry result: got passed=%v score=%d, want passed=true score=100", res.Passed, res.DisplayScore)
	}
	if s.Status() != StatusSubmitted {
		t.Errorf("status after pass: got %q, want %q", s.Status(), StatusSubmitted)
	}

	// Submitting again is rejected.
	if _, err := s.SubmitQuiz(); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestSubmitQuiz_UnroundedThreshold(t *testing.T) {
	// 2 of 3 correct is 66.66…%: fails at 67 even though it displays as 67.
	r := quizResource(t, 67)
	r.Evaluation.Questions = r.Evaluation.Questions[:3]
	s, _ := NewSession(r)

	s.Answer(0, 0)
	s.Answer(1, 1)
	s.Answer(2, 0) // wrong

	res, err := s.SubmitQuiz()
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	if res.DisplayScore != 67 {
		t.Errorf("DisplayScore: got %d, want 67", res.DisplayScore)
	}
	if res.Passed {
		t.Error("pass decision must use the unrounded score (66.67 < 67)")
	}
}

func TestAnswer_ImmediateFeedback(t *testing.T) {
	s, _ := NewSession(quizResource(t, 70))

	correct, err := s.Answer(1, 1)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if !correct {
		t.Error("expected correct=true for the keyed option")
	}
	correct, _ = s.Answer(1, 0)
	if correct {
		t.Error("expected correct=false after changing to a wrong option")
	}
}

func TestAnswer_Bounds(t *testing.T) {
	s, _ := NewSession(quizResource(t, 70))

	if _, err := s.Answer(9, 0); err == nil {
		t.Error("expected error for out-of-range question index")
	}
	if _, err := s.Answer(0, 9); err == nil {
		t.Error("expected error for out-of-range option index")
	}
}

func TestSubmitDelivery_Activity(t *testing.T) {
	r := models.Resource{
		ID: "REC-ACT",
		Evaluation: models.Evaluation{
			Type:        models.EvaluationTypeActivity,
			Description: "Crear un esquema del sistema cardiovascular",
		},
	}
	s, err := NewSession(r)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if _, err := s.SubmitDelivery("   \t  "); !errors.Is(err, ErrEmptyDelivery) {
		t.Fatalf("expected ErrEmptyDelivery, got %v", err)
	}
	if s.Status() == StatusSubmitted {
		t.Fatal("empty delivery must not submit the session")
	}

	res, err := s.SubmitDelivery("Esquema con 12 estructuras identificadas")
	if err != nil {
		t.Fatalf("SubmitDelivery failed: %v", err)
	}
	if !res.Passed {
		t.Error("delivery submissions pass directly; grading is human review")
	}
	if s.Status() != StatusSubmitted {
		t.Errorf("status: got %q, want %q", s.Status(), StatusSubmitted)
	}
}

func TestSubmitDelivery_WrongType(t *testing.T) {
	s, _ := NewSession(quizResource(t, 70))
	if _, err := s.SubmitDelivery("texto"); err == nil {
		t.Error("expected error delivering against a quiz session")
	}
}

func TestDefaultPassingScore(t *testing.T) {
	r := quizResource(t, 0)
	s, err := NewSession(r)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.PassingScore() != models.DefaultPassingScore {
		t.Errorf("PassingScore: got %d, want %d", s.PassingScore(), models.DefaultPassingScore)
	}
}
