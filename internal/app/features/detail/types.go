// internal/app/features/detail/types.go
package detail

import (
	"html/template"

	"github.com/uniajc/educadigital/internal/app/system/viewdata"
	"github.com/uniajc/educadigital/internal/domain/models"
)

// detailPageData is the view model for the stepped detail page.
type detailPageData struct {
	viewdata.BaseVM
	Resource models.Resource

	// Pre-rendered rich text blocks.
	ObjectiveHTML    template.HTML
	TeacherGuideHTML template.HTML
	StudentGuideHTML template.HTML
	EmbedHTML        template.HTML

	HasEvaluation  bool
	EvaluationType string
	QuestionCount  int
	PassingScore   int
}

// missingPageData is the view model shown when no resource is selected;
// the page redirects back to the catalog after a short pause.
type missingPageData struct {
	viewdata.BaseVM
	RedirectTo string
}
