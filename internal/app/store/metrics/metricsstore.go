package metricsstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/staffhub/internal/app/store"
	"github.com/dalemusser/staffhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the metrics collection name.
const Collection = "metrics"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts m with a fresh id and timestamps.
func (s *Store) Create(ctx context.Context, m models.Metric) (models.Metric, error) {
	m.ID = primitive.NewObjectID()
	now := time.Now().UTC().Truncate(time.Millisecond)
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Metric{}, err
	}
	return m, nil
}

// Delete removes a metric. Used only to undo a create whose user push
// failed.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// GetByID loads a metric by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Metric, error) {
	var m models.Metric
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Metric{}, store.ErrNotFound
		}
		return models.Metric{}, err
	}
	return m, nil
}

// ListByUser returns a user's metrics, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Metric, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Metric{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Counts is the set of totals shown on the dashboard.
type Counts struct {
	Users         int64 `json:"users"`
	ActiveUsers   int64 `json:"active_users"`
	InactiveUsers int64 `json:"inactive_users"`
	Evaluations   int64 `json:"evaluations"`
	Merits        int64 `json:"merits"`
	Demerits      int64 `json:"demerits"`
}

// FetchDashboardCounts returns the high-level counts used by the dashboard.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts

	users := db.Collection("users")
	if n, err := users.CountDocuments(ctx, bson.M{}); err == nil {
		out.Users = n
	}
	if n, err := users.CountDocuments(ctx, bson.M{"status": models.StatusActive}); err == nil {
		out.ActiveUsers = n
	}
	if n, err := users.CountDocuments(ctx, bson.M{"status": models.StatusInactive}); err == nil {
		out.InactiveUsers = n
	}

	if n, err := db.Collection("evaluations").CountDocuments(ctx, bson.M{}); err == nil {
		out.Evaluations = n
	}

	metrics := db.Collection(Collection)
	if n, err := metrics.CountDocuments(ctx, bson.M{"metric_type": models.MetricMerit}); err == nil {
		out.Merits = n
	}
	if n, err := metrics.CountDocuments(ctx, bson.M{"metric_type": models.MetricDemerit}); err == nil {
		out.Demerits = n
	}

	return out
}
