package dao

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/staffhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEvaluationToClient_CoercesRequiredStrings(t *testing.T) {
	e := EvaluationServer{
		ID:     primitive.NewObjectID().Hex(),
		UserID: primitive.NewObjectID().Hex(),
		Items: []ItemServer{
			{Course: sp("A"), Score: fp(8)},
			{Course: nil, Category: nil, Score: fp(6)},
		},
	}
	c := EvaluationToClient(e)

	if c.EvaluatorName != "" || c.EvaluatorEmail != "" {
		t.Errorf("evaluator fields should be empty strings, got %q %q", c.EvaluatorName, c.EvaluatorEmail)
	}
	if c.Items[1].Course != "" || c.Items[1].Category != "" {
		t.Errorf("item strings should be empty, got %+v", c.Items[1])
	}
	if c.OverallScore == nil || *c.OverallScore != 7 {
		t.Errorf("overall_score = %v, want 7", c.OverallScore)
	}
	if c.PeriodStart != nil {
		t.Errorf("period_start = %v, want nil", c.PeriodStart)
	}
}

func TestEvaluationToClient_NoScores(t *testing.T) {
	c := EvaluationToClient(EvaluationServer{Items: []ItemServer{{Course: sp("A")}}})
	if c.OverallScore != nil {
		t.Errorf("overall_score = %v, want nil", *c.OverallScore)
	}
}

func validEvaluationBody(userID string) string {
	return `{
		"user_id": "` + userID + `",
		"evaluation_date": "2024-04-10T15:00:00.000Z",
		"year": 2024,
		"evaluator_name": " Sam Rivera ",
		"evaluator_email": "sam@example.edu",
		"items": [
			{"course": "A", "score": 8, "completed": true},
			{"course": "B", "score": "6", "self_score": 7, "category": "Safety"}
		],
		"evaluator_comments": "<p>Solid <script>x</script>term</p>"
	}`
}

func TestDecodeEvaluationPatch_Create(t *testing.T) {
	uid := primitive.NewObjectID()
	p, err := DecodeEvaluationPatch([]byte(validEvaluationBody(uid.Hex())))
	if err != nil {
		t.Fatalf("DecodeEvaluationPatch: %v", err)
	}
	e, err := p.Evaluation()
	if err != nil {
		t.Fatalf("Evaluation: %v", err)
	}

	if e.UserID != uid {
		t.Errorf("user_id = %v, want %v", e.UserID, uid)
	}
	if *e.EvaluatorName != "Sam Rivera" {
		t.Errorf("evaluator_name = %q", *e.EvaluatorName)
	}
	if e.Year == nil || *e.Year != 2024 {
		t.Errorf("year = %v", e.Year)
	}
	if want := time.Date(2024, 4, 10, 15, 0, 0, 0, time.UTC); !e.EvaluationDate.Equal(want) {
		t.Errorf("evaluation_date = %v", e.EvaluationDate)
	}
	if len(e.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(e.Items))
	}
	if e.Items[0].Category == nil || *e.Items[0].Category != "" {
		t.Errorf("missing category should default to empty string, got %v", e.Items[0].Category)
	}
	if *e.Items[1].Score != 6 || *e.Items[1].SelfScore != 7 || *e.Items[1].Category != "Safety" {
		t.Errorf("item[1] = %+v", e.Items[1])
	}
	if e.Items[1].Completed != nil {
		t.Errorf("completed should be unknown, got %v", *e.Items[1].Completed)
	}
	if e.EvaluatorComments == nil || *e.EvaluatorComments != "<p>Solid term</p>" {
		t.Errorf("evaluator_comments = %v", e.EvaluatorComments)
	}

	got := EvaluationToClient(EvaluationToServer(e))
	if got.OverallScore == nil || *got.OverallScore != 7 {
		t.Errorf("overall_score = %v, want 7", got.OverallScore)
	}
}

func TestDecodeEvaluationPatch_CommentsKeepPunctuation(t *testing.T) {
	uid := primitive.NewObjectID()
	const comment = `He's "great" & improving`
	body, _ := json.Marshal(map[string]any{
		"user_id":            uid.Hex(),
		"evaluation_date":    "2024-04-10T15:00:00Z",
		"evaluator_name":     "Sam Rivera",
		"evaluator_email":    "sam@example.edu",
		"employee_comments":  comment,
		"evaluator_comments": "<p>" + comment + "</p>",
	})
	p, err := DecodeEvaluationPatch(body)
	if err != nil {
		t.Fatalf("DecodeEvaluationPatch: %v", err)
	}
	e, err := p.Evaluation()
	if err != nil {
		t.Fatalf("Evaluation: %v", err)
	}

	got := EvaluationToClient(EvaluationToServer(e))
	if got.EmployeeComments == nil || *got.EmployeeComments != comment {
		t.Errorf("employee_comments = %v, want %q", got.EmployeeComments, comment)
	}
	if got.EvaluatorComments == nil || *got.EvaluatorComments != "<p>"+comment+"</p>" {
		t.Errorf("evaluator_comments = %v", got.EvaluatorComments)
	}
}

func TestDecodeEvaluationPatch_Rejects(t *testing.T) {
	uid := primitive.NewObjectID().Hex()
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"not an object", `[1]`, "body"},
		{"bad user id", `{"user_id":"nope"}`, "user_id"},
		{"null date", `{"evaluation_date":null}`, "evaluation_date"},
		{"garbage date", `{"evaluation_date":"soon"}`, "evaluation_date"},
		{"blank evaluator", `{"evaluator_name":"   "}`, "evaluator_name"},
		{"null evaluator email", `{"evaluator_email":null}`, "evaluator_email"},
		{"empty items", `{"items":[]}`, "items"},
		{"null items", `{"items":null}`, "items"},
		{"blank course", `{"items":[{"course":"A"},{"course":" "}]}`, "items[1].course"},
		{"score too high", `{"items":[{"course":"A","score":11}]}`, "items[0].score"},
		{"self score negative", `{"items":[{"course":"A","self_score":-1}]}`, "items[0].self_score"},
		{"user id only", `{"user_id":"` + uid + `","items":[{"course":"A"}]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvaluationPatch([]byte(tt.body))
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestEvaluationPatch_EvaluationRequiresFields(t *testing.T) {
	uid := primitive.NewObjectID().Hex()
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"no user", `{"evaluation_date":"2024-01-01","evaluator_name":"a","evaluator_email":"b","items":[{"course":"A"}]}`, "user_id"},
		{"no date", `{"user_id":"` + uid + `","evaluator_name":"a","evaluator_email":"b","items":[{"course":"A"}]}`, "evaluation_date"},
		{"no evaluator", `{"user_id":"` + uid + `","evaluation_date":"2024-01-01","evaluator_email":"b","items":[{"course":"A"}]}`, "evaluator_name"},
		{"no items", `{"user_id":"` + uid + `","evaluation_date":"2024-01-01","evaluator_name":"a","evaluator_email":"b"}`, "items"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeEvaluationPatch([]byte(tt.body))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			_, err = p.Evaluation()
			var ve *models.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("expected %s validation error, got %v", tt.field, err)
			}
		})
	}
}

func TestEvaluationPatch_UpdateOmitsUserAndUntouchedFields(t *testing.T) {
	p, err := DecodeEvaluationPatch([]byte(`{"user_id":"` + primitive.NewObjectID().Hex() + `","evaluator_comments":"ok","cycle_label":""}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	set := p.Set()
	if _, ok := set["user_id"]; ok {
		t.Error("user_id must never be in the update document")
	}
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2 (%v)", p.Len(), set)
	}
	if set["cycle_label"] != nil {
		t.Errorf("blank cycle_label should clear, got %v", set["cycle_label"])
	}
	if p.Has("items") || p.Has("evaluation_date") {
		t.Error("absent fields must stay absent")
	}
}

// store -> server -> client -> write model reproduces the stored fields.
func TestEvaluationRoundTrip(t *testing.T) {
	year := 2024
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	orig := models.Evaluation{
		ID:                primitive.NewObjectID(),
		UserID:            primitive.NewObjectID(),
		Year:              &year,
		EvaluationDate:    time.Date(2024, 5, 2, 13, 30, 0, 250000000, time.UTC),
		CycleLabel:        sp("Spring"),
		PeriodStart:       &start,
		PeriodEnd:         &end,
		EvaluatorName:     sp("Sam"),
		EvaluatorEmail:    sp("sam@example.edu"),
		EvaluatorID:       sp("E-9"),
		Items:             []models.EvaluationItem{{Course: sp("A"), Completed: bp(true), Category: sp("OPS"), Score: fp(9), SelfScore: fp(8.5)}},
		EmployeeComments:  sp("Thanks"),
		EvaluatorComments: sp("<p>Great</p>"),
	}

	body, err := json.Marshal(EvaluationToClient(EvaluationToServer(orig)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	p, err := DecodeEvaluationPatch(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, k := range []string{"overall_score", "id", "created_at", "updated_at"} {
		if p.Has(k) {
			t.Errorf("write model must not carry %q", k)
		}
	}
	got, err := p.Evaluation()
	if err != nil {
		t.Fatalf("Evaluation: %v", err)
	}
	got.ID = orig.ID

	want, _ := json.Marshal(EvaluationToClient(EvaluationToServer(orig)))
	have, _ := json.Marshal(EvaluationToClient(EvaluationToServer(got)))
	if string(want) != string(have) {
		t.Fatalf("round trip mismatch\nwant %s\n got %s", want, have)
	}
}

func TestDecodeMetricInput(t *testing.T) {
	in, err := DecodeMetricInput([]byte(`{"metric_type":"Merit","comment":" Covered a shift ","commenter_email":""}`))
	if err != nil {
		t.Fatalf("DecodeMetricInput: %v", err)
	}
	if in.MetricType != models.MetricMerit || in.Comment != "Covered a shift" || in.Commenter != "" || in.CommenterEmail != nil {
		t.Errorf("unexpected input: %+v", in)
	}

	for body, field := range map[string]string{
		`{"metric_type":"kudos","comment":"x"}`:  "metric_type",
		`{"metric_type":"demerit"}`:              "comment",
		`{"metric_type":"demerit","comment":""}`: "comment",
		`nope`:                                   "body",
	} {
		_, err := DecodeMetricInput([]byte(body))
		var ve *models.ValidationError
		if !errors.As(err, &ve) || ve.Field != field {
			t.Errorf("%s: expected %s validation error, got %v", body, field, err)
		}
	}
}
