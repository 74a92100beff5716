package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/staffhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts an active crew member with the given name. mutate, if
// non-nil, adjusts the user before insert.
func (f *Fixtures) CreateUser(ctx context.Context, first, last string, mutate func(*models.User)) models.User {
	f.t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	role := models.RoleCrewMember
	status := models.StatusActive
	u := models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    &first,
		LastName:     &last,
		RolePosition: &role,
		Status:       &status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if mutate != nil {
		mutate(&u)
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateEvaluation inserts an evaluation for userID on date with one item
// per score.
func (f *Fixtures) CreateEvaluation(ctx context.Context, userID primitive.ObjectID, date time.Time, scores ...float64) models.Evaluation {
	f.t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	year := date.Year()
	items := make([]models.EvaluationItem, 0, len(scores))
	for i, s := range scores {
		course := "Course " + string(rune('A'+i))
		category := ""
		score := s
		items = append(items, models.EvaluationItem{Course: &course, Category: &category, Score: &score})
	}
	e := models.Evaluation{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		Year:           &year,
		EvaluationDate: date.UTC(),
		EvaluatorName:  Ptr("Test Evaluator"),
		EvaluatorEmail: Ptr("evaluator@test.com"),
		Items:          items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("evaluations").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test evaluation: %v", err)
	}
	return e
}

// CreateMetric inserts a metric for userID. It does not touch the user's
// merits or demerits list.
func (f *Fixtures) CreateMetric(ctx context.Context, userID primitive.ObjectID, t models.MetricType, comment string) models.Metric {
	f.t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	m := models.Metric{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		MetricType: t,
		Comment:    comment,
		Commenter:  "Test Commenter",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("metrics").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test metric: %v", err)
	}
	return m
}
