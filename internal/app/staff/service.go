// Package staff implements the staff-management operations: users, their
// evaluations, and their merit/demerit metrics. Reads are served from the
// injected cache; writes go to the store first and patch the cache only
// after the store confirms them.
package staff

import (
	"context"
	"fmt"

	"github.com/dalemusser/staffhub/internal/app/cache"
	"github.com/dalemusser/staffhub/internal/app/store"
	"github.com/dalemusser/staffhub/internal/app/system/actor"
	"github.com/dalemusser/staffhub/internal/app/system/paging"
	"github.com/dalemusser/staffhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserStore is the user persistence the service needs.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	All(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.User, error)
	UpsertByMavID(ctx context.Context, mavID int64, set bson.M) (models.User, bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	PushMetric(ctx context.Context, userID primitive.ObjectID, t models.MetricType, metricID primitive.ObjectID) (models.User, error)
}

// EvaluationStore is the evaluation persistence the service needs.
type EvaluationStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Evaluation, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, year *int) ([]models.Evaluation, error)
	Create(ctx context.Context, e models.Evaluation) (models.Evaluation, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Evaluation, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// MetricStore is the metric persistence the service needs.
type MetricStore interface {
	Create(ctx context.Context, m models.Metric) (models.Metric, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Metric, error)
}

// TxRunner runs fn inside a store transaction. Run returns an error wrapping
// txn.ErrNotSupported when the deployment has no transactions.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config holds paging defaults and the identity recorded when a request
// carries none.
type Config struct {
	DefaultPageSize    int
	MaxPageSize        int
	EvaluationPageSize int
	PlaceholderActor   string
}

func (c Config) withDefaults() Config {
	if c.MaxPageSize < 1 {
		c.MaxPageSize = paging.MaxPageSize
	}
	if c.DefaultPageSize < 1 {
		c.DefaultPageSize = 20
	}
	if c.EvaluationPageSize < 1 {
		c.EvaluationPageSize = 10
	}
	if c.PlaceholderActor == "" {
		c.PlaceholderActor = "system"
	}
	return c
}

// Service is the staff core. It is safe for concurrent use.
type Service struct {
	users       UserStore
	evaluations EvaluationStore
	metrics     MetricStore
	tx          TxRunner
	cache       *cache.Service
	cfg         Config
	log         *zap.Logger
}

// Deps groups the collaborators handed to New. Tx may be nil, in which case
// AddMetric always uses its compensating path.
type Deps struct {
	Users       UserStore
	Evaluations EvaluationStore
	Metrics     MetricStore
	Tx          TxRunner
	Cache       *cache.Service
	Log         *zap.Logger
}

// New builds a Service.
func New(d Deps, cfg Config) *Service {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Cache == nil {
		d.Cache = cache.NewService(d.Log)
	}
	return &Service{
		users:       d.Users,
		evaluations: d.Evaluations,
		metrics:     d.Metrics,
		tx:          d.Tx,
		cache:       d.Cache,
		cfg:         cfg.withDefaults(),
		log:         d.Log,
	}
}

// Cache exposes the cache the service patches.
func (s *Service) Cache() *cache.Service { return s.cache }

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.cfg }

func parseID(field, s string) (primitive.ObjectID, error) {
	oid, err := store.ParseID(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s %q: %w", field, s, ErrInvalidID)
	}
	return oid, nil
}

// actorName is the identity recorded on a write made under ctx.
func (s *Service) actorName(ctx context.Context) string {
	if a := actor.From(ctx); a != "" {
		return a
	}
	return s.cfg.PlaceholderActor
}
