// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/staffhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Collection names covered by EnsureAll.
const (
	UsersCollection       = "users"
	EvaluationsCollection = "evaluations"
	MetricsCollection     = "metrics"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure(UsersCollection, usersSchema())
	ensure(EvaluationsCollection, evaluationsSchema())
	ensure(MetricsCollection, metricsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nullableString = bson.M{"bsonType": bson.A{"string", "null"}}
	nullableBool   = bson.M{"bsonType": bson.A{"bool", "null"}}
	nullableDate   = bson.M{"bsonType": bson.A{"date", "null"}}
	numberTypes    = bson.A{"double", "int", "long", "decimal", "null"}
	nonBlank       = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	objectIDList   = bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}}
)

// nullableEnum allows null or one of values.
func nullableEnum[T ~string](values []T) bson.M {
	a := bson.A{nil}
	for _, v := range values {
		a = append(a, string(v))
	}
	return bson.M{"enum": a}
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"created_at", "updated_at"},
			"properties": bson.M{
				"first_name":                nullableString,
				"last_name":                 nullableString,
				"role_position":             nullableEnum(models.RolePositions),
				"mav_id":                    bson.M{"bsonType": bson.A{"int", "long", "null"}, "minimum": 0},
				"w2w_employee_id":           nullableString,
				"teams_id":                  nullableString,
				"status":                    nullableEnum(models.UserStatuses),
				"phone_number":              nullableString,
				"student_email":             nullableString,
				"work_email":                nullableString,
				"shirt_size":                nullableEnum(models.ShirtSizes),
				"date_hired":                nullableDate,
				"graduation_date":           nullableDate,
				"birthday":                  nullableDate,
				"dietary_restrictions":      nullableString,
				"favorite_plant":            nullableString,
				"address":                   nullableString,
				"major":                     nullableString,
				"updated_by":                nullableString,
				"has_a_second_job":          nullableBool,
				"has_ssn":                   nullableBool,
				"key_request":               nullableBool,
				"hourly_pay_rate":           bson.M{"bsonType": numberTypes, "minimum": 0},
				"most_recent_raise_granted": nullableDate,
				"merits":                    objectIDList,
				"demerits":                  objectIDList,
				"created_at":                bson.M{"bsonType": "date"},
				"updated_at":                bson.M{"bsonType": "date"},
			},
		},
	}
}

func evaluationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "evaluation_date", "evaluator_name", "evaluator_email", "items"},
			"properties": bson.M{
				"user_id":         bson.M{"bsonType": "objectId"},
				"year":            bson.M{"bsonType": bson.A{"int", "long", "null"}},
				"evaluation_date": bson.M{"bsonType": "date"},
				"cycle_label":     nullableString,
				"period_start":    nullableDate,
				"period_end":      nullableDate,
				"evaluator_name":  nonBlank,
				"evaluator_email": nonBlank,
				"evaluator_id":    nullableString,
				"items": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"properties": bson.M{
							"course":     nullableString,
							"completed":  nullableBool,
							"category":   nullableString,
							"score":      bson.M{"bsonType": numberTypes, "minimum": models.MinItemScore, "maximum": models.MaxItemScore},
							"self_score": bson.M{"bsonType": numberTypes, "minimum": models.MinItemScore, "maximum": models.MaxItemScore},
						},
					},
				},
				"employee_comments":  nullableString,
				"evaluator_comments": nullableString,
			},
		},
	}
}

func metricsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "metric_type", "comment", "commenter"},
			"properties": bson.M{
				"user_id":         bson.M{"bsonType": "objectId"},
				"metric_type":     bson.M{"enum": bson.A{string(models.MetricMerit), string(models.MetricDemerit)}},
				"comment":         nonBlank,
				"commenter":       nonBlank,
				"commenter_email": nullableString,
			},
		},
	}
}
