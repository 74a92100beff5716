package dao

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dalemusser/staffhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EvaluationPatch is a decoded evaluation write. Items, when present,
// replace the stored list wholesale.
type EvaluationPatch struct {
	userID *primitive.ObjectID
	set    bson.M
}

func invalidField(field, msg string) error {
	return &models.ValidationError{Field: field, Msg: msg}
}

// DecodeEvaluationPatch parses a JSON object body. Required fields that are
// present must be valid: evaluation_date must parse, evaluator name/email
// must be non-blank, and items must be a non-empty list of items with a
// course and in-range scores.
func DecodeEvaluationPatch(data []byte) (EvaluationPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return EvaluationPatch{}, invalidField("body", "must be a JSON object")
	}

	p := EvaluationPatch{set: bson.M{}}

	if v, ok := raw["user_id"]; ok {
		s, _ := jsonString(v)
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
		if err != nil {
			return EvaluationPatch{}, invalidField("user_id", "invalid id")
		}
		p.userID = &oid
	}

	if v, ok := raw["evaluation_date"]; ok {
		t := coerceDate(v)
		if t == nil {
			return EvaluationPatch{}, invalidField("evaluation_date", "is required and must be a date")
		}
		p.set["evaluation_date"] = *t
	}

	if v, ok := raw["year"]; ok {
		var year any
		if n := coerceInt(v); n != nil {
			year = int(*n)
		}
		p.set["year"] = year
	}

	for _, f := range []string{"cycle_label", "evaluator_id"} {
		if v, ok := raw[f]; ok {
			p.set[f] = value(coerceText(v))
		}
	}
	for _, f := range []string{"period_start", "period_end"} {
		if v, ok := raw[f]; ok {
			p.set[f] = value(coerceDate(v))
		}
	}
	for _, f := range []string{"evaluator_name", "evaluator_email"} {
		if v, ok := raw[f]; ok {
			s := coerceText(v)
			if s == nil {
				return EvaluationPatch{}, invalidField(f, "is required")
			}
			p.set[f] = *s
		}
	}
	for _, f := range []string{"employee_comments", "evaluator_comments"} {
		if v, ok := raw[f]; ok {
			p.set[f] = value(coerceRichText(v))
		}
	}

	if v, ok := raw["items"]; ok {
		items, err := decodeItems(v)
		if err != nil {
			return EvaluationPatch{}, err
		}
		p.set["items"] = items
	}

	return p, nil
}

func decodeItems(v json.RawMessage) ([]models.EvaluationItem, error) {
	var raws []map[string]json.RawMessage
	if isNull(v) || json.Unmarshal(v, &raws) != nil {
		return nil, invalidField("items", "must be a list")
	}
	items := make([]models.EvaluationItem, 0, len(raws))
	for _, r := range raws {
		category := ""
		if c := coerceText(r["category"]); c != nil {
			category = *c
		}
		items = append(items, models.EvaluationItem{
			Course:    coerceText(r["course"]),
			Completed: coerceBool(r["completed"]),
			Category:  &category,
			Score:     coerceFloat(r["score"]),
			SelfScore: coerceFloat(r["self_score"]),
		})
	}
	if err := models.ValidateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

// UserID returns the owning user named in the body, if any.
func (p EvaluationPatch) UserID() (primitive.ObjectID, bool) {
	if p.userID == nil {
		return primitive.NilObjectID, false
	}
	return *p.userID, true
}

// Len reports how many stored fields the patch writes. user_id is not
// counted; it is only honored on create.
func (p EvaluationPatch) Len() int { return len(p.set) }

// Has reports whether field was present in the request.
func (p EvaluationPatch) Has(field string) bool {
	_, ok := p.set[field]
	return ok
}

// Set returns a copy of the $set document. The owning user is never part
// of it.
func (p EvaluationPatch) Set() bson.M {
	out := make(bson.M, len(p.set))
	for k, v := range p.set {
		out[k] = v
	}
	return out
}

// Evaluation builds a new stored evaluation and checks the fields required
// at creation.
func (p EvaluationPatch) Evaluation() (models.Evaluation, error) {
	var e models.Evaluation
	b, err := bson.Marshal(p.set)
	if err != nil {
		return e, fmt.Errorf("encode evaluation patch: %w", err)
	}
	if err := bson.Unmarshal(b, &e); err != nil {
		return e, fmt.Errorf("decode evaluation patch: %w", err)
	}
	if p.userID != nil {
		e.UserID = *p.userID
	}
	if err := e.Validate(); err != nil {
		return models.Evaluation{}, err
	}
	return e, nil
}
