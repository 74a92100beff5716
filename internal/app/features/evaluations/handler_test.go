package evaluations_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/staffhub/internal/app/dao"
	"github.com/dalemusser/staffhub/internal/app/features/evaluations"
	"github.com/dalemusser/staffhub/internal/app/staff"
	"github.com/dalemusser/staffhub/internal/app/system/limits"
	"github.com/dalemusser/staffhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type env struct {
	router chi.Router
	svc    *staff.Service
	evals  *testutil.MemEvaluations
}

func newEnv() *env {
	c := testutil.NewClock()
	me := testutil.NewMemEvaluations(c)
	svc := staff.New(staff.Deps{
		Users:       testutil.NewMemUsers(c),
		Evaluations: me,
		Metrics:     testutil.NewMemMetrics(c),
		Tx:          &testutil.MemTx{},
	}, staff.Config{})

	r := chi.NewRouter()
	r.Mount("/api/evaluations", evaluations.Routes(evaluations.NewHandler(svc, zap.NewNop())))
	return &env{router: r, svc: svc, evals: me}
}

func (e *env) do(req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *env) user(t *testing.T) string {
	t.Helper()
	p, err := dao.DecodeUserPatch([]byte(`{"first_name":"Ada"}`))
	if err != nil {
		t.Fatalf("DecodeUserPatch: %v", err)
	}
	u, err := e.svc.CreateUser(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u.ID
}

func body(userID, date string, scores ...float64) string {
	items := ""
	for i, s := range scores {
		if i > 0 {
			items += ","
		}
		items += fmt.Sprintf(`{"course":"C%d","score":%g}`, i, s)
	}
	return fmt.Sprintf(`{"user_id":%q,"evaluation_date":%q,"year":%s,
		"evaluator_name":"Grace","evaluator_email":"grace@example.edu","items":[%s]}`,
		userID, date, date[:4], items)
}

func (e *env) create(t *testing.T, b string) dao.EvaluationClient {
	t.Helper()
	rec := e.do(testutil.NewJSONRequest("POST", "/api/evaluations", b))
	rec.AssertStatus(t, http.StatusCreated)
	var ev dao.EvaluationClient
	rec.DecodeJSON(t, &ev)
	return ev
}

func TestCreateAndGet(t *testing.T) {
	e := newEnv()
	uid := e.user(t)
	created := e.create(t, body(uid, "2024-05-01", 8, 6))

	if created.OverallScore == nil || *created.OverallScore != 7 {
		t.Errorf("overall_score = %v, want 7", created.OverallScore)
	}

	rec := e.do(testutil.NewRequest("GET", "/api/evaluations/"+created.ID))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"evaluation_date":"2024-05-01T00:00:00.000Z"`)
	rec.AssertContains(t, `"user_id":"`+uid+`"`)
}

func TestCreate_Rejects(t *testing.T) {
	e := newEnv()
	uid := e.user(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"not an object", `"x"`, http.StatusBadRequest},
		{"missing user", `{"evaluation_date":"2024-05-01","evaluator_name":"G","evaluator_email":"g@x","items":[{"course":"A"}]}`, http.StatusBadRequest},
		{"score out of range", body(uid, "2024-05-01", 11), http.StatusBadRequest},
		{"no items", body(uid, "2024-05-01"), http.StatusBadRequest},
		{"unknown user", body("65a000000000000000000000", "2024-05-01", 5), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(testutil.NewJSONRequest("POST", "/api/evaluations", tt.body))
			rec.AssertStatus(t, tt.status)
		})
	}
	if n := e.evals.Count(); n != 0 {
		t.Errorf("stored %d evaluations, want 0", n)
	}
}

func TestCreate_OversizedBody(t *testing.T) {
	e := newEnv()
	uid := e.user(t)
	b := strings.Replace(body(uid, "2024-05-01", 5), `"items"`,
		`"employee_comments":"`+strings.Repeat("x", limits.MaxJSONBody)+`","items"`, 1)

	rec := e.do(testutil.NewJSONRequest("POST", "/api/evaluations", b))
	rec.AssertStatus(t, http.StatusRequestEntityTooLarge)
	rec.AssertContains(t, `"kind":"too_large"`)
}

func TestCreate_CommentsKeepPunctuation(t *testing.T) {
	e := newEnv()
	uid := e.user(t)
	b := strings.Replace(body(uid, "2024-05-01", 5), `"items"`,
		`"employee_comments":"He's \"great\" & improving","items"`, 1)
	created := e.create(t, b)

	rec := e.do(testutil.NewRequest("GET", "/api/evaluations/"+created.ID))
	rec.AssertStatus(t, http.StatusOK)
	var got dao.EvaluationClient
	rec.DecodeJSON(t, &got)
	if got.EmployeeComments == nil || *got.EmployeeComments != `He's "great" & improving` {
		t.Errorf("employee_comments = %v", got.EmployeeComments)
	}
}

func TestList_YearAndPaging(t *testing.T) {
	e := newEnv()
	uid := e.user(t)
	e.create(t, body(uid, "2023-04-01", 5))
	e.create(t, body(uid, "2024-01-10", 6))
	newest := e.create(t, body(uid, "2024-06-10", 7))

	rec := e.do(testutil.NewRequest("GET", "/api/evaluations?user_id="+uid+"&year=2024&pageSize=1"))
	rec.AssertStatus(t, http.StatusOK)
	var page staff.EvaluationPage
	rec.DecodeJSON(t, &page)
	if page.Total != 2 || page.Pages != 2 || len(page.Data) != 1 || page.Data[0].ID != newest.ID {
		t.Errorf("page = %+v", page)
	}

	rec = e.do(testutil.NewRequest("GET", "/api/evaluations?userId="+uid))
	rec.DecodeJSON(t, &page)
	if page.Total != 3 {
		t.Errorf("total = %d, want 3", page.Total)
	}
	if e.evals.ListCalls != 1 {
		t.Errorf("store list calls = %d, want 1", e.evals.ListCalls)
	}
}

func TestList_BadParams(t *testing.T) {
	e := newEnv()

	rec := e.do(testutil.NewRequest("GET", "/api/evaluations"))
	rec.AssertStatus(t, http.StatusBadRequest)

	rec = e.do(testutil.NewRequest("GET", "/api/evaluations?user_id=nope"))
	rec.AssertStatus(t, http.StatusBadRequest)

	rec = e.do(testutil.NewRequest("GET", "/api/evaluations?user_id=65a000000000000000000000&year=soon"))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestUpdate(t *testing.T) {
	e := newEnv()
	uid := e.user(t)
	ev := e.create(t, body(uid, "2024-05-01", 8))

	rec := e.do(testutil.NewJSONRequest("PATCH", "/api/evaluations/"+ev.ID,
		`{"items":[{"course":"A","score":4},{"course":"B","score":5}],"user_id":"65a000000000000000000000"}`))
	rec.AssertStatus(t, http.StatusOK)
	var got dao.EvaluationClient
	rec.DecodeJSON(t, &got)
	if got.UserID != uid {
		t.Errorf("user_id = %s, want %s", got.UserID, uid)
	}
	if got.OverallScore == nil || *got.OverallScore != 4.5 {
		t.Errorf("overall_score = %v, want 4.5", got.OverallScore)
	}

	rec = e.do(testutil.NewJSONRequest("PUT", "/api/evaluations/"+ev.ID, `{"evaluator_name":"  "}`))
	rec.AssertStatus(t, http.StatusBadRequest)

	rec = e.do(testutil.NewJSONRequest("PUT", "/api/evaluations/65a000000000000000000000", `{"cycle_label":"Spring"}`))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDelete(t *testing.T) {
	e := newEnv()
	uid := e.user(t)
	ev := e.create(t, body(uid, "2024-05-01", 8))

	rec := e.do(testutil.NewRequest("DELETE", "/api/evaluations/"+ev.ID))
	rec.AssertStatus(t, http.StatusOK)

	rec = e.do(testutil.NewRequest("DELETE", "/api/evaluations/"+ev.ID))
	rec.AssertStatus(t, http.StatusNotFound)

	rec = e.do(testutil.NewRequest("GET", "/api/evaluations?user_id="+uid))
	var page staff.EvaluationPage
	rec.DecodeJSON(t, &page)
	if page.Total != 0 {
		t.Errorf("total = %d after delete", page.Total)
	}
}
