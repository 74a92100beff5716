package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/staffhub/internal/app/store"
	"github.com/dalemusser/staffhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the users collection name.
const Collection = "users"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case wafflemongo.IsDup(err):
		return store.ErrDuplicate
	}
	return err
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// Exists reports whether a user with id is stored.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// All returns every user, newest first.
func (s *Store) All(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts u with a fresh id and timestamps. A mav_id already held by
// another user yields store.ErrDuplicate.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	t := now()
	u.CreatedAt = t
	u.UpdatedAt = t

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// Update applies set with $set semantics and returns the updated user.
// Keys absent from set are left untouched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.User, error) {
	doc := bson.M{}
	for k, v := range set {
		doc[k] = v
	}
	doc["updated_at"] = now()

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": doc},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// UpsertByMavID updates the user holding mavID, or creates one. It returns
// the stored user and whether it was created.
func (s *Store) UpsertByMavID(ctx context.Context, mavID int64, set bson.M) (models.User, bool, error) {
	t := now()
	doc := bson.M{}
	for k, v := range set {
		if k == "created_at" {
			continue
		}
		doc[k] = v
	}
	doc["mav_id"] = mavID
	doc["updated_at"] = t

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"mav_id": mavID},
		bson.M{"$set": doc, "$setOnInsert": bson.M{"created_at": t}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return models.User{}, false, translate(err)
	}
	return u, u.CreatedAt.Equal(t), nil
}

// Delete removes a user. It reports whether a document was deleted.
// Evaluations and metrics referencing the user are left in place.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

// PushMetric appends metricID to the user's merits or demerits list and
// returns the updated user.
func (s *Store) PushMetric(ctx context.Context, userID primitive.ObjectID, t models.MetricType, metricID primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{t.UserField(): metricID},
			"$set":  bson.M{"updated_at": now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}
