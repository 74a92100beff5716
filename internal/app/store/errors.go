// Package store holds what the per-collection stores share: the errors
// they report and id parsing.
package store

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no document matches the id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned for ids that are not 24-character hex.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate value")
)

// ParseID converts a hex id, reporting ErrInvalidID when malformed.
func ParseID(s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
