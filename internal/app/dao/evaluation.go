package dao

import (
	"time"

	"github.com/dalemusser/staffhub/internal/domain/models"
	"github.com/dalemusser/staffhub/internal/domain/scoring"
)

// ItemServer is an evaluation item as held in memory. It has the same
// nullability as the stored item.
type ItemServer = models.EvaluationItem

// EvaluationServer is the in-process shape of an evaluation.
type EvaluationServer struct {
	ID     string
	UserID string

	Year           *int
	EvaluationDate time.Time

	CycleLabel  *string
	PeriodStart *time.Time
	PeriodEnd   *time.Time

	EvaluatorName  *string
	EvaluatorEmail *string
	EvaluatorID    *string

	Items []ItemServer

	EmployeeComments  *string
	EvaluatorComments *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OverallScore is the mean of the item scores, recomputed on every call.
func (e EvaluationServer) OverallScore() *float64 {
	scores := make([]*float64, 0, len(e.Items))
	for _, it := range e.Items {
		scores = append(scores, it.Score)
	}
	return scoring.Overall(scores)
}

// ItemClient is the JSON shape of an evaluation item. Course and Category
// are never null on the wire.
type ItemClient struct {
	Course    string   `json:"course"`
	Completed *bool    `json:"completed"`
	Category  string   `json:"category"`
	Score     *float64 `json:"score"`
	SelfScore *float64 `json:"self_score"`
}

// EvaluationClient is the JSON shape of an evaluation.
type EvaluationClient struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Year           *int   `json:"year"`
	EvaluationDate string `json:"evaluation_date"`

	CycleLabel  *string `json:"cycle_label"`
	PeriodStart *string `json:"period_start"`
	PeriodEnd   *string `json:"period_end"`

	EvaluatorName  string  `json:"evaluator_name"`
	EvaluatorEmail string  `json:"evaluator_email"`
	EvaluatorID    *string `json:"evaluator_id"`

	Items []ItemClient `json:"items"`

	EmployeeComments  *string  `json:"employee_comments"`
	EvaluatorComments *string  `json:"evaluator_comments"`
	OverallScore      *float64 `json:"overall_score"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// EvaluationToServer maps a stored evaluation.
func EvaluationToServer(e models.Evaluation) EvaluationServer {
	items := make([]ItemServer, len(e.Items))
	copy(items, e.Items)
	return EvaluationServer{
		ID:                e.ID.Hex(),
		UserID:            e.UserID.Hex(),
		Year:              e.Year,
		EvaluationDate:    e.EvaluationDate,
		CycleLabel:        e.CycleLabel,
		PeriodStart:       e.PeriodStart,
		PeriodEnd:         e.PeriodEnd,
		EvaluatorName:     e.EvaluatorName,
		EvaluatorEmail:    e.EvaluatorEmail,
		EvaluatorID:       e.EvaluatorID,
		Items:             items,
		EmployeeComments:  e.EmployeeComments,
		EvaluatorComments: e.EvaluatorComments,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// EvaluationsToServer maps a slice of stored evaluations.
func EvaluationsToServer(es []models.Evaluation) []EvaluationServer {
	out := make([]EvaluationServer, 0, len(es))
	for _, e := range es {
		out = append(out, EvaluationToServer(e))
	}
	return out
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// EvaluationToClient maps a server evaluation for transport and fills in
// overall_score.
func EvaluationToClient(e EvaluationServer) EvaluationClient {
	items := make([]ItemClient, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, ItemClient{
			Course:    orEmpty(it.Course),
			Completed: it.Completed,
			Category:  orEmpty(it.Category),
			Score:     it.Score,
			SelfScore: it.SelfScore,
		})
	}
	return EvaluationClient{
		ID:                e.ID,
		UserID:            e.UserID,
		Year:              e.Year,
		EvaluationDate:    FormatISO(e.EvaluationDate),
		CycleLabel:        e.CycleLabel,
		PeriodStart:       FormatISOPtr(e.PeriodStart),
		PeriodEnd:         FormatISOPtr(e.PeriodEnd),
		EvaluatorName:     orEmpty(e.EvaluatorName),
		EvaluatorEmail:    orEmpty(e.EvaluatorEmail),
		EvaluatorID:       e.EvaluatorID,
		Items:             items,
		EmployeeComments:  e.EmployeeComments,
		EvaluatorComments: e.EvaluatorComments,
		OverallScore:      e.OverallScore(),
		CreatedAt:         FormatISO(e.CreatedAt),
		UpdatedAt:         FormatISO(e.UpdatedAt),
	}
}

// EvaluationsToClient maps a slice of server evaluations.
func EvaluationsToClient(es []EvaluationServer) []EvaluationClient {
	out := make([]EvaluationClient, 0, len(es))
	for _, e := range es {
		out = append(out, EvaluationToClient(e))
	}
	return out
}
