// internal/domain/models/evaluation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Score bounds for evaluation items.
const (
	MinItemScore = 0
	MaxItemScore = 10
)

// EvaluationItem is one scored course or criterion inside an evaluation.
// Category is free text and defaults to "" on write.
type EvaluationItem struct {
	Course    *string  `bson:"course" json:"course"`
	Completed *bool    `bson:"completed" json:"completed"`
	Category  *string  `bson:"category" json:"category"`
	Score     *float64 `bson:"score" json:"score"`
	SelfScore *float64 `bson:"self_score" json:"self_score"`
}

// Evaluation is one performance review of a user. UserID is a weak
// reference: deleting the user leaves the evaluation in place.
// overall_score is derived from Items on output and never stored.
type Evaluation struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Year           *int      `bson:"year" json:"year"`
	EvaluationDate time.Time `bson:"evaluation_date" json:"evaluation_date"`

	CycleLabel  *string    `bson:"cycle_label" json:"cycle_label"`
	PeriodStart *time.Time `bson:"period_start" json:"period_start"`
	PeriodEnd   *time.Time `bson:"period_end" json:"period_end"`

	EvaluatorName  *string `bson:"evaluator_name" json:"evaluator_name"`
	EvaluatorEmail *string `bson:"evaluator_email" json:"evaluator_email"`
	EvaluatorID    *string `bson:"evaluator_id" json:"evaluator_id"`

	Items []EvaluationItem `bson:"items" json:"items"`

	EmployeeComments  *string `bson:"employee_comments" json:"employee_comments"`
	EvaluatorComments *string `bson:"evaluator_comments" json:"evaluator_comments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
