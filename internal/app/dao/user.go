package dao

import (
	"time"

	"github.com/dalemusser/staffhub/internal/domain/models"
	"github.com/dalemusser/staffhub/internal/domain/payraise"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserServer is the in-process shape of a user. It is what the cache holds.
type UserServer struct {
	ID string

	FirstName    *string
	LastName     *string
	RolePosition *models.RolePosition

	MavID         *int64
	W2WEmployeeID *string
	TeamsID       *string

	Status       *models.UserStatus
	PhoneNumber  *string
	StudentEmail *string
	WorkEmail    *string
	ShirtSize    *models.ShirtSize

	DateHired      *time.Time
	GraduationDate *time.Time
	Birthday       *time.Time

	DietaryRestrictions *string
	FavoritePlant       *string
	Address             *string
	Major               *string
	UpdatedBy           *string

	HasASecondJob *bool
	HasSSN        *bool
	KeyRequest    *bool

	HourlyPayRate          *float64
	MostRecentRaiseGranted *time.Time

	Merits   []string
	Demerits []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextRaiseEligibility is recomputed on every call; it is never stored.
func (u UserServer) NextRaiseEligibility() *time.Time {
	return payraise.NextEligibility(payraise.Inputs{
		Role:          u.RolePosition,
		HourlyPayRate: u.HourlyPayRate,
		DateHired:     u.DateHired,
		LastRaise:     u.MostRecentRaiseGranted,
	})
}

// UserClient is the JSON shape of a user.
type UserClient struct {
	ID string `json:"id"`

	FirstName    *string              `json:"first_name"`
	LastName     *string              `json:"last_name"`
	RolePosition *models.RolePosition `json:"role_position"`

	MavID         *int64  `json:"mav_id"`
	W2WEmployeeID *string `json:"w2w_employee_id"`
	TeamsID       *string `json:"teams_id"`

	Status       *models.UserStatus `json:"status"`
	PhoneNumber  *string            `json:"phone_number"`
	StudentEmail *string            `json:"student_email"`
	WorkEmail    *string            `json:"work_email"`
	ShirtSize    *models.ShirtSize  `json:"shirt_size"`

	DateHired      *string `json:"date_hired"`
	GraduationDate *string `json:"graduation_date"`
	Birthday       *string `json:"birthday"`

	DietaryRestrictions *string `json:"dietary_restrictions"`
	FavoritePlant       *string `json:"favorite_plant"`
	Address             *string `json:"address"`
	Major               *string `json:"major"`
	UpdatedBy           *string `json:"updated_by"`

	HasASecondJob *bool `json:"has_a_second_job"`
	HasSSN        *bool `json:"has_ssn"`
	KeyRequest    *bool `json:"key_request"`

	HourlyPayRate          *float64 `json:"hourly_pay_rate"`
	MostRecentRaiseGranted *string  `json:"most_recent_raise_granted"`
	NextRaiseEligibility   *string  `json:"next_raise_eligibility"`

	Merits   []string `json:"merits"`
	Demerits []string `json:"demerits"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

// UserToServer maps a stored user. Missing fields stay nil.
func UserToServer(u models.User) UserServer {
	return UserServer{
		ID:                     u.ID.Hex(),
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		RolePosition:           u.RolePosition,
		MavID:                  u.MavID,
		W2WEmployeeID:          u.W2WEmployeeID,
		TeamsID:                u.TeamsID,
		Status:                 u.Status,
		PhoneNumber:            u.PhoneNumber,
		StudentEmail:           u.StudentEmail,
		WorkEmail:              u.WorkEmail,
		ShirtSize:              u.ShirtSize,
		DateHired:              u.DateHired,
		GraduationDate:         u.GraduationDate,
		Birthday:               u.Birthday,
		DietaryRestrictions:    u.DietaryRestrictions,
		FavoritePlant:          u.FavoritePlant,
		Address:                u.Address,
		Major:                  u.Major,
		UpdatedBy:              u.UpdatedBy,
		HasASecondJob:          u.HasASecondJob,
		HasSSN:                 u.HasSSN,
		KeyRequest:             u.KeyRequest,
		HourlyPayRate:          u.HourlyPayRate,
		MostRecentRaiseGranted: u.MostRecentRaiseGranted,
		Merits:                 hexIDs(u.Merits),
		Demerits:               hexIDs(u.Demerits),
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

// UsersToServer maps a slice of stored users.
func UsersToServer(us []models.User) []UserServer {
	out := make([]UserServer, 0, len(us))
	for _, u := range us {
		out = append(out, UserToServer(u))
	}
	return out
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// UserToClient maps a server user for transport and fills in
// next_raise_eligibility.
func UserToClient(u UserServer) UserClient {
	return UserClient{
		ID:                     u.ID,
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		RolePosition:           u.RolePosition,
		MavID:                  u.MavID,
		W2WEmployeeID:          u.W2WEmployeeID,
		TeamsID:                u.TeamsID,
		Status:                 u.Status,
		PhoneNumber:            u.PhoneNumber,
		StudentEmail:           u.StudentEmail,
		WorkEmail:              u.WorkEmail,
		ShirtSize:              u.ShirtSize,
		DateHired:              FormatISOPtr(u.DateHired),
		GraduationDate:         FormatISOPtr(u.GraduationDate),
		Birthday:               FormatISOPtr(u.Birthday),
		DietaryRestrictions:    u.DietaryRestrictions,
		FavoritePlant:          u.FavoritePlant,
		Address:                u.Address,
		Major:                  u.Major,
		UpdatedBy:              u.UpdatedBy,
		HasASecondJob:          u.HasASecondJob,
		HasSSN:                 u.HasSSN,
		KeyRequest:             u.KeyRequest,
		HourlyPayRate:          u.HourlyPayRate,
		MostRecentRaiseGranted: FormatISOPtr(u.MostRecentRaiseGranted),
		NextRaiseEligibility:   FormatISOPtr(u.NextRaiseEligibility()),
		Merits:                 copyStrings(u.Merits),
		Demerits:               copyStrings(u.Demerits),
		CreatedAt:              FormatISO(u.CreatedAt),
		UpdatedAt:              FormatISO(u.UpdatedAt),
	}
}

// UsersToClient maps a slice of server users.
func UsersToClient(us []UserServer) []UserClient {
	out := make([]UserClient, 0, len(us))
	for _, u := range us {
		out = append(out, UserToClient(u))
	}
	return out
}

// UserFromClient reverses UserToClient. next_raise_eligibility is dropped.
// Unparseable dates are reported as a validation error on that field.
func UserFromClient(c UserClient) (UserServer, error) {
	u := UserServer{
		ID:                  c.ID,
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		RolePosition:        c.RolePosition,
		MavID:               c.MavID,
		W2WEmployeeID:       c.W2WEmployeeID,
		TeamsID:             c.TeamsID,
		Status:              c.Status,
		PhoneNumber:         c.PhoneNumber,
		StudentEmail:        c.StudentEmail,
		WorkEmail:           c.WorkEmail,
		ShirtSize:           c.ShirtSize,
		DietaryRestrictions: c.DietaryRestrictions,
		FavoritePlant:       c.FavoritePlant,
		Address:             c.Address,
		Major:               c.Major,
		UpdatedBy:           c.UpdatedBy,
		HasASecondJob:       c.HasASecondJob,
		HasSSN:              c.HasSSN,
		KeyRequest:          c.KeyRequest,
		HourlyPayRate:       c.HourlyPayRate,
		Merits:              copyStrings(c.Merits),
		Demerits:            copyStrings(c.Demerits),
	}

	dates := []struct {
		field string
		in    *string
		out   **time.Time
	}{
		{"date_hired", c.DateHired, &u.DateHired},
		{"graduation_date", c.GraduationDate, &u.GraduationDate},
		{"birthday", c.Birthday, &u.Birthday},
		{"most_recent_raise_granted", c.MostRecentRaiseGranted, &u.MostRecentRaiseGranted},
	}
	for _, d := range dates {
		t, ok := parseISOPtr(d.in)
		if !ok {
			return UserServer{}, &models.ValidationError{Field: d.field, Msg: "invalid date"}
		}
		*d.out = t
	}

	var ok bool
	if u.CreatedAt, ok = ParseISO(c.CreatedAt); !ok && c.CreatedAt != "" {
		return UserServer{}, &models.ValidationError{Field: "created_at", Msg: "invalid date"}
	}
	if u.UpdatedAt, ok = ParseISO(c.UpdatedAt); !ok && c.UpdatedAt != "" {
		return UserServer{}, &models.ValidationError{Field: "updated_at", Msg: "invalid date"}
	}
	return u, nil
}
