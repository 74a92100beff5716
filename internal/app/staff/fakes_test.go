package staff

import (
	"errors"
	"testing"

	"github.com/dalemusser/staffhub/internal/app/dao"
	"github.com/dalemusser/staffhub/internal/domain/models"
	"github.com/dalemusser/staffhub/internal/testutil"
)

var errBoom = errors.New("boom")

type harness struct {
	svc   *Service
	users *testutil.MemUsers
	evals *testutil.MemEvaluations
	mets  *testutil.MemMetrics
	tx    *testutil.MemTx
}

func newHarness() *harness {
	c := testutil.NewClock()
	h := &harness{
		users: testutil.NewMemUsers(c),
		evals: testutil.NewMemEvaluations(c),
		mets:  testutil.NewMemMetrics(c),
		tx:    &testutil.MemTx{},
	}
	h.svc = New(Deps{
		Users:       h.users,
		Evaluations: h.evals,
		Metrics:     h.mets,
		Tx:          h.tx,
	}, Config{DefaultPageSize: 20, MaxPageSize: 100, EvaluationPageSize: 10, PlaceholderActor: "system"})
	return h
}

func mustUserModel(t *testing.T, body string) models.User {
	t.Helper()
	p, err := dao.DecodeUserPatch([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	u, err := p.User()
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	return u
}
