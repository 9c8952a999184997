package testutil

import (
	"path/filepath"
	"testing"

	submissionstore "github.com/uniajc/educadigital/internal/app/store/submissions"
	"github.com/uniajc/educadigital/internal/domain/models"
	"go.uber.org/zap"
)

// SampleResource builds a minimal valid resource for tests.
func SampleResource(id, title string) models.Resource {
	return models.Resource{
		ID:          id,
		Title:       title,
		Faculty:     "Ingeniería",
		Program:     "Ingeniería de Sistemas",
		Level:       "Pregrado",
		Author:      "Prof. de Prueba",
		CreatedDate: "2024-01-15",
		Objective: models.Objective{
			Description:  "Objetivo de prueba",
			Competencies: []string{"Competencia 1", "Competencia 2"},
		},
		Content: models.Content{
			Type:     models.ContentTypeVideo,
			URL:      "https://example.com/video.mp4",
			Duration: "10:00",
			Format:   "MP4",
		},
		Implementation: models.Implementation{
			StudentGuide:      "Ver el video y hacer los ejercicios",
			EstimatedTime:     "1 hora",
			RequiredMaterials: []string{"Computador"},
		},
		Evaluation: models.Evaluation{Type: models.EvaluationTypeNone},
		Usage: models.Usage{
			Tags: []string{"prueba", "sistemas"},
		},
	}
}

// QuizResource builds a resource carrying a four-question quiz, with
// immediate feedback on, whose answer key is option 0 for every question.
func QuizResource(id string, passingScore int) models.Resource {
	r := SampleResource(id, "Recurso con cuestionario")
	questions := make([]models.Question, 4)
	for i := range questions {
		questions[i] = models.Question{
			Prompt:        "Pregunta",
			Options:       []string{"correcta", "incorrecta", "incorrecta"},
			CorrectOption: 0,
		}
	}
	r.Evaluation = models.Evaluation{
		Type:              models.EvaluationTypeQuiz,
		Questions:         questions,
		PassingScore:      passingScore,
		ImmediateFeedback: true,
	}
	return r
}

// NewSubmissionStore builds a submission store over a temp-dir slot that
// is cleaned up with the test.
func NewSubmissionStore(t *testing.T) *submissionstore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), submissionstore.SlotKey+".json")
	return submissionstore.New(path, zap.NewNop())
}
