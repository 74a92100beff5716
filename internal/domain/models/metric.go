// internal/domain/models/metric.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Metric is a merit or demerit note about a user. Its id is also appended
// to the user's merits or demerits list. Metrics are never edited.
type Metric struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	MetricType     MetricType `bson:"metric_type" json:"metric_type"`
	Comment        string     `bson:"comment" json:"comment"`
	Commenter      string     `bson:"commenter" json:"commenter"`
	CommenterEmail *string    `bson:"commenter_email" json:"commenter_email"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
