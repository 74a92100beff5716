// internal/domain/models/validation.go
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the sentinel every ValidationError unwraps to.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

func blank(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}

// ValidateItems checks the rules shared by create and patch:
// at least one item, every item has a course, and scores stay in range.
func ValidateItems(items []EvaluationItem) error {
	if len(items) == 0 {
		return invalid("items", "at least one item is required")
	}
	for i, it := range items {
		if blank(it.Course) {
			return invalid(fmt.Sprintf("items[%d].course", i), "each item must include a non-empty course")
		}
		if err := checkScore(fmt.Sprintf("items[%d].score", i), it.Score); err != nil {
			return err
		}
		if err := checkScore(fmt.Sprintf("items[%d].self_score", i), it.SelfScore); err != nil {
			return err
		}
	}
	return nil
}

func checkScore(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if *v < MinItemScore || *v > MaxItemScore {
		return invalid(field, fmt.Sprintf("must be between %d and %d", MinItemScore, MaxItemScore))
	}
	return nil
}

// Validate enforces the fields required when an evaluation is created.
func (e Evaluation) Validate() error {
	if e.UserID.IsZero() {
		return invalid("user_id", "is required")
	}
	if e.EvaluationDate.IsZero() {
		return invalid("evaluation_date", "is required")
	}
	if blank(e.EvaluatorName) {
		return invalid("evaluator_name", "is required")
	}
	if blank(e.EvaluatorEmail) {
		return invalid("evaluator_email", "is required")
	}
	return ValidateItems(e.Items)
}

// Validate enforces the fields required when a metric is created.
func (m Metric) Validate() error {
	if m.UserID.IsZero() {
		return invalid("user_id", "is required")
	}
	if _, ok := ParseMetricType(string(m.MetricType)); !ok {
		return invalid("metric_type", `must be "merit" or "demerit"`)
	}
	if strings.TrimSpace(m.Comment) == "" {
		return invalid("comment", "is required")
	}
	if strings.TrimSpace(m.Commenter) == "" {
		return invalid("commenter", "is required")
	}
	return nil
}
