// internal/app/features/evaluation/types.go
package evaluation

import (
	"github.com/uniajc/educadigital/internal/app/system/viewdata"
	"github.com/uniajc/educadigital/internal/domain/evaluation"
	"github.com/uniajc/educadigital/internal/domain/models"
)

// quizPageData backs the question page of a quiz attempt.
type quizPageData struct {
	viewdata.BaseVM
	ResourceID   string
	Questions    []models.Question
	Answered     int
	Total        int
	PassingScore int

	// Feedback is the immediate verdict on the last answered question.
	Feedback string
	Error    string
}

// resultPageData backs the page shown after a quiz is graded.
type resultPageData struct {
	viewdata.BaseVM
	ResourceID string
	Result     *evaluation.Result
}

// deliveryPageData backs the hand-in form for activities and projects.
type deliveryPageData struct {
	viewdata.BaseVM
	ResourceID  string
	Type        string
	Description string
	Error       string
}

// deliveryDonePageData backs the confirmation after a hand-in.
type deliveryDonePageData struct {
	viewdata.BaseVM
	ResourceID string
}
