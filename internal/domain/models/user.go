// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the stored shape of a staff member.
//
// Every attribute is nullable: a nil pointer is persisted as null and means
// "not on file". next_raise_eligibility is derived on output and never stored.
// MavID is expected to be unique among users that have one; the partial
// unique index on users.mav_id enforces it.
type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	FirstName    *string       `bson:"first_name" json:"first_name"`
	LastName     *string       `bson:"last_name" json:"last_name"`
	RolePosition *RolePosition `bson:"role_position" json:"role_position"`

	MavID         *int64  `bson:"mav_id" json:"mav_id"`
	W2WEmployeeID *string `bson:"w2w_employee_id" json:"w2w_employee_id"`
	TeamsID       *string `bson:"teams_id" json:"teams_id"`

	Status       *UserStatus `bson:"status" json:"status"`
	PhoneNumber  *string     `bson:"phone_number" json:"phone_number"`
	StudentEmail *string     `bson:"student_email" json:"student_email"`
	WorkEmail    *string     `bson:"work_email" json:"work_email"`

	ShirtSize *ShirtSize `bson:"shirt_size" json:"shirt_size"`

	DateHired      *time.Time `bson:"date_hired" json:"date_hired"`
	GraduationDate *time.Time `bson:"graduation_date" json:"graduation_date"`
	Birthday       *time.Time `bson:"birthday" json:"birthday"`

	DietaryRestrictions *string `bson:"dietary_restrictions" json:"dietary_restrictions"`
	FavoritePlant       *string `bson:"favorite_plant" json:"favorite_plant"`
	Address             *string `bson:"address" json:"address"`
	Major               *string `bson:"major" json:"major"`
	UpdatedBy           *string `bson:"updated_by" json:"updated_by"`

	HasASecondJob *bool `bson:"has_a_second_job" json:"has_a_second_job"`
	HasSSN        *bool `bson:"has_ssn" json:"has_ssn"`
	KeyRequest    *bool `bson:"key_request" json:"key_request"`

	HourlyPayRate          *float64   `bson:"hourly_pay_rate" json:"hourly_pay_rate"`
	MostRecentRaiseGranted *time.Time `bson:"most_recent_raise_granted" json:"most_recent_raise_granted"`

	// Metric references; see metrics collection.
	Merits   []primitive.ObjectID `bson:"merits,omitempty" json:"merits,omitempty"`
	Demerits []primitive.ObjectID `bson:"demerits,omitempty" json:"demerits,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
