package evaluationstore

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

// Collection is the evaluations collection name.
const Collection = "evaluations"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

// newestFirst is the order every evaluation list is returned in.
var newestFirst = bson.D{
	{Key: "evaluation_date", Value: -1},
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}

// GetByID loads an evaluation by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Evaluation, error) {
	var e models.Evaluation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Evaluation{}, notFound(err)
	}
	return e, nil
}

// ListByUser returns a user's evaluations, newest first, optionally only
// those for one year.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID, year *int) ([]models.Evaluation, error) {
	filter := bson.M{"user_id": userID}
	if year != nil {
		filter["year"] = *year
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Evaluation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts e with a fresh id and timestamps.
func (s *Store) Create(ctx context.Context, e models.Evaluation) (models.Evaluation, error) {
	e.ID = primitive.NewObjectID()
	now := time.Now().UTC().Truncate(time.Millisecond)
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Evaluation{}, err
	}
	return e, nil
}

// Update applies set with $set semantics and returns the updated
// evaluation. user_id is never changed here.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Evaluation, error) {
	doc := bson.M{}
	for k, v := range set {
		if k == "user_id" || k == "_id" || k == "created_at" {
			continue
		}
		doc[k] = v
	}
	doc["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)

	var e models.Evaluation
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": doc},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&e)
	if err != nil {
		return models.Evaluation{}, notFound(err)
	}
	return e, nil
}

// Delete removes an evaluation. It reports whether a document was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
