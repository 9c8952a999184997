// internal/domain/models/evaluationtypes.go
package models

// Canonical evaluation type identifiers (wire spellings, as stored in
// Resource.Evaluation.Type).
const (
	EvaluationTypeNone     = "ninguna"
	EvaluationTypeQuiz     = "cuestionario"
	EvaluationTypeActivity = "actividad"
	EvaluationTypeProject  = "proyecto"
)

// EvaluationTypes is the full set of allowed evaluation type identifiers.
var EvaluationTypes = []string{
	EvaluationTypeNone,
	EvaluationTypeQuiz,
	EvaluationTypeActivity,
	EvaluationTypeProject,
}

// DefaultPassingScore is used when a quiz/activity/project omits an
// explicit passing score.
const DefaultPassingScore = 70

// IsValidEvaluationType reports whether t is one of EvaluationTypes.
func IsValidEvaluationType(t string) bool {
	for _, v := range EvaluationTypes {
		if v == t {
			return true
		}
	}
	return false
}
