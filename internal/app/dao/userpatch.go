package dao

import (
	"encoding/json"
	"fmt"

	"github.com/dalemusser/staffhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

type userFieldKind int

const (
	userText userFieldKind = iota
	userRole
	userStatus
	userShirt
	userMavID
	userPayRate
	userDate
	userBool
)

// userFields lists every writable user field. Keys not listed here (id,
// merits, demerits, next_raise_eligibility, timestamps) are ignored.
var userFields = map[string]userFieldKind{
	"first_name":                userText,
	"last_name":                 userText,
	"role_position":             userRole,
	"mav_id":                    userMavID,
	"w2w_employee_id":           userText,
	"teams_id":                  userText,
	"status":                    userStatus,
	"phone_number":              userText,
	"student_email":             userText,
	"work_email":                userText,
	"shirt_size":                userShirt,
	"date_hired":                userDate,
	"graduation_date":           userDate,
	"birthday":                  userDate,
	"dietary_restrictions":      userText,
	"favorite_plant":            userText,
	"address":                   userText,
	"major":                     userText,
	"updated_by":                userText,
	"has_a_second_job":          userBool,
	"has_ssn":                   userBool,
	"key_request":               userBool,
	"hourly_pay_rate":           userPayRate,
	"most_recent_raise_granted": userDate,
}

// UserPatch is a decoded user write. Only fields present in the request
// body appear in it; an explicit null clears the field.
type UserPatch struct {
	set bson.M
}

// DecodeUserPatch parses a JSON object body into a UserPatch.
func DecodeUserPatch(data []byte) (UserPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return UserPatch{}, &models.ValidationError{Field: "body", Msg: "must be a JSON object"}
	}
	return UserPatchFromRaw(raw), nil
}

// UserPatchFromRaw coerces each known field. Unknown enum values, blank
// text, and non-numeric numbers all become nil. It never fails.
func UserPatchFromRaw(raw map[string]json.RawMessage) UserPatch {
	set := bson.M{}
	for key, v := range raw {
		kind, ok := userFields[key]
		if !ok {
			continue
		}
		if isNull(v) {
			set[key] = nil
			continue
		}
		set[key] = coerceUserField(kind, v)
	}
	return UserPatch{set: set}
}

func coerceUserField(kind userFieldKind, v json.RawMessage) any {
	switch kind {
	case userRole:
		s, _ := jsonString(v)
		if r, ok := models.ParseRolePosition(s); ok {
			return r
		}
		return nil
	case userStatus:
		s, _ := jsonString(v)
		if st, ok := models.ParseUserStatus(s); ok {
			return st
		}
		return nil
	case userShirt:
		s, _ := jsonString(v)
		if sz, ok := models.ParseShirtSize(s); ok {
			return sz
		}
		return nil
	case userMavID:
		n := coerceInt(v)
		if n == nil || *n < 0 {
			return nil
		}
		return *n
	case userPayRate:
		f := coerceFloat(v)
		if f == nil || *f < 0 {
			return nil
		}
		return *f
	case userDate:
		return value(coerceDate(v))
	case userBool:
		return value(coerceBool(v))
	default:
		return value(coerceText(v))
	}
}

// Len reports how many fields the patch writes.
func (p UserPatch) Len() int { return len(p.set) }

// Has reports whether field was present in the request.
func (p UserPatch) Has(field string) bool {
	_, ok := p.set[field]
	return ok
}

// Set returns a copy of the $set document.
func (p UserPatch) Set() bson.M {
	out := make(bson.M, len(p.set))
	for k, v := range p.set {
		out[k] = v
	}
	return out
}

// With returns a copy of p that also writes field.
func (p UserPatch) With(field string, v any) UserPatch {
	out := p.Set()
	out[field] = v
	return UserPatch{set: out}
}

// User builds a new stored user from the patch. Fields the patch does not
// mention stay nil.
func (p UserPatch) User() (models.User, error) {
	var u models.User
	b, err := bson.Marshal(p.set)
	if err != nil {
		return u, fmt.Errorf("encode user patch: %w", err)
	}
	if err := bson.Unmarshal(b, &u); err != nil {
		return u, fmt.Errorf("decode user patch: %w", err)
	}
	return u, nil
}
