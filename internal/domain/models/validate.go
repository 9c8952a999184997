// internal/domain/models/validate.go
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResource wraps the reason a decoded record was rejected at
// an input boundary (seed file, submission slot, form assembly).
var ErrMalformedResource = errors.New("malformed resource")

// Validate checks the structural invariants a Resource must satisfy to
// enter the catalog, regardless of which source it came from:
//
//   - non-empty id and title
//   - at least one competency on the objective
//   - a known content type (empty is coerced to "otro" by callers, not here)
//   - for quiz evaluations, every question needs ≥2 options and an
//     in-bounds correct option index
//
// Malformed records from external inputs are quarantined (skipped and
// logged) by the loaders rather than propagated into rendering.
func (r Resource) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedResource)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: %s: missing title", ErrMalformedResource, r.ID)
	}
	if len(r.Objective.Competencies) < 1 {
		return fmt.Errorf("%w: %s: objective needs at least one competency", ErrMalformedResource, r.ID)
	}
	if r.Content.Type != "" && !IsValidContentType(r.Content.Type) {
		return fmt.Errorf("%w: %s: unknown content type %q", ErrMalformedResource, r.ID, r.Content.Type)
	}
	if r.Evaluation.Type != "" && !IsValidEvaluationType(r.Evaluation.Type) {
		return fmt.Errorf("%w: %s: unknown evaluation type %q", ErrMalformedResource, r.ID, r.Evaluation.Type)
	}
	if r.Evaluation.Type == EvaluationTypeQuiz {
		for i, q := range r.Evaluation.Questions {
			if len(q.Options) < 2 {
				return fmt.Errorf("%w: %s: question %d needs at least two options", ErrMalformedResource, r.ID, i+1)
			}
			if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
				return fmt.Errorf("%w: %s: question %d has out-of-range answer index %d", ErrMalformedResource, r.ID, i+1, q.CorrectOption)
			}
		}
	}
	if r.Usage.Views < 0 || r.Usage.Downloads < 0 {
		return fmt.Errorf("%w: %s: negative usage counter", ErrMalformedResource, r.ID)
	}
	return nil
}
