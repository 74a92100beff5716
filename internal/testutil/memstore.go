package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/staffhub/internal/app/store"
	"github.com/dalemusser/staffhub/internal/app/system/txn"
	"github.com/dalemusser/staffhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The Mem* stores are in-memory stand-ins for the Mongo stores, used by
// service and handler tests that do not need a database. Write failures
// can be injected through their exported fields.

// Clock hands out strictly increasing timestamps.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

func NewClock() *Clock {
	return &Clock{t: time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// applySet overlays set on doc using the bson field names.
func applySet[T any](doc T, set bson.M) (T, error) {
	var out T
	b, err := bson.Marshal(doc)
	if err != nil {
		return out, err
	}
	m := bson.M{}
	if err := bson.Unmarshal(b, &m); err != nil {
		return out, err
	}
	for k, v := range set {
		m[k] = v
	}
	if b, err = bson.Marshal(m); err != nil {
		return out, err
	}
	err = bson.Unmarshal(b, &out)
	return out, err
}

// MemUsers stands in for the users store. Mav ids are kept unique.
type MemUsers struct {
	mu       sync.Mutex
	clock    *Clock
	rows     map[primitive.ObjectID]models.User
	AllCalls int
	FailNext error // returned once by the next write
	PushErr  error
}

func NewMemUsers(c *Clock) *MemUsers {
	return &MemUsers{clock: c, rows: map[primitive.ObjectID]models.User{}}
}

func (f *MemUsers) takeFail() error {
	err := f.FailNext
	f.FailNext = nil
	return err
}

func (f *MemUsers) GetByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *MemUsers) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	return ok, nil
}

func (f *MemUsers) All(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AllCalls++
	out := make([]models.User, 0, len(f.rows))
	for _, u := range f.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *MemUsers) Create(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail(); err != nil {
		return models.User{}, err
	}
	if u.MavID != nil {
		for _, other := range f.rows {
			if other.MavID != nil && *other.MavID == *u.MavID {
				return models.User{}, store.ErrDuplicate
			}
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = f.clock.Now()
	u.UpdatedAt = u.CreatedAt
	f.rows[u.ID] = u
	return u, nil
}

func (f *MemUsers) Update(_ context.Context, id primitive.ObjectID, set bson.M) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail(); err != nil {
		return models.User{}, err
	}
	u, ok := f.rows[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	u, err := applySet(u, set)
	if err != nil {
		return models.User{}, err
	}
	u.UpdatedAt = f.clock.Now()
	f.rows[id] = u
	return u, nil
}

func (f *MemUsers) UpsertByMavID(_ context.Context, mavID int64, set bson.M) (models.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.rows {
		if u.MavID != nil && *u.MavID == mavID {
			u, err := applySet(u, set)
			if err != nil {
				return models.User{}, false, err
			}
			u.MavID = &mavID
			u.UpdatedAt = f.clock.Now()
			f.rows[id] = u
			return u, false, nil
		}
	}
	u, err := applySet(models.User{}, set)
	if err != nil {
		return models.User{}, false, err
	}
	u.ID = primitive.NewObjectID()
	u.MavID = &mavID
	u.CreatedAt = f.clock.Now()
	u.UpdatedAt = u.CreatedAt
	f.rows[u.ID] = u
	return u, true, nil
}

func (f *MemUsers) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFail(); err != nil {
		return false, err
	}
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

func (f *MemUsers) PushMetric(_ context.Context, userID primitive.ObjectID, t models.MetricType, metricID primitive.ObjectID) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PushErr != nil {
		return models.User{}, f.PushErr
	}
	u, ok := f.rows[userID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	if t == models.MetricMerit {
		u.Merits = append(append([]primitive.ObjectID{}, u.Merits...), metricID)
	} else {
		u.Demerits = append(append([]primitive.ObjectID{}, u.Demerits...), metricID)
	}
	u.UpdatedAt = f.clock.Now()
	f.rows[userID] = u
	return u, nil
}

// MemEvaluations stands in for the evaluations store.
type MemEvaluations struct {
	mu        sync.Mutex
	clock     *Clock
	rows      map[primitive.ObjectID]models.Evaluation
	ListCalls int
	FailNext  error
}

func NewMemEvaluations(c *Clock) *MemEvaluations {
	return &MemEvaluations{clock: c, rows: map[primitive.ObjectID]models.Evaluation{}}
}

func (f *MemEvaluations) GetByID(_ context.Context, id primitive.ObjectID) (models.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return models.Evaluation{}, store.ErrNotFound
	}
	return e, nil
}

func (f *MemEvaluations) ListByUser(_ context.Context, userID primitive.ObjectID, year *int) ([]models.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	out := []models.Evaluation{}
	for _, e := range f.rows {
		if e.UserID != userID {
			continue
		}
		if year != nil && (e.Year == nil || *e.Year != *year) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EvaluationDate.Equal(out[j].EvaluationDate) {
			return out[i].EvaluationDate.After(out[j].EvaluationDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *MemEvaluations) Create(_ context.Context, e models.Evaluation) (models.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.FailNext; err != nil {
		f.FailNext = nil
		return models.Evaluation{}, err
	}
	e.ID = primitive.NewObjectID()
	e.CreatedAt = f.clock.Now()
	e.UpdatedAt = e.CreatedAt
	f.rows[e.ID] = e
	return e, nil
}

func (f *MemEvaluations) Update(_ context.Context, id primitive.ObjectID, set bson.M) (models.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return models.Evaluation{}, store.ErrNotFound
	}
	delete(set, "user_id")
	e, err := applySet(e, set)
	if err != nil {
		return models.Evaluation{}, err
	}
	e.UpdatedAt = f.clock.Now()
	f.rows[id] = e
	return e, nil
}

func (f *MemEvaluations) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

// Count reports how many evaluations are stored.
func (f *MemEvaluations) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// MemMetrics stands in for the metrics store.
type MemMetrics struct {
	mu        sync.Mutex
	clock     *Clock
	rows      map[primitive.ObjectID]models.Metric
	DeleteErr error
}

func NewMemMetrics(c *Clock) *MemMetrics {
	return &MemMetrics{clock: c, rows: map[primitive.ObjectID]models.Metric{}}
}

func (f *MemMetrics) Create(_ context.Context, m models.Metric) (models.Metric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = f.clock.Now()
	m.UpdatedAt = m.CreatedAt
	f.rows[m.ID] = m
	return m, nil
}

func (f *MemMetrics) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *MemMetrics) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Metric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Metric{}
	for _, m := range f.rows {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Count reports how many metrics are stored.
func (f *MemMetrics) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// MemTx runs fn directly, or reports that transactions are unsupported.
type MemTx struct {
	Unsupported bool
	Runs        int
}

func (f *MemTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	f.Runs++
	if f.Unsupported {
		return errors.Join(txn.ErrNotSupported, errors.New("standalone server"))
	}
	return fn(ctx)
}
