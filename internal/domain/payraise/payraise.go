// Package payraise computes when a staff member is next eligible for a raise.
//
// Raises follow the anniversary of the hire month: one raise per year, due on
// the first day of the month the user was hired. Each role has a maximum
// payable hourly rate; users at or above it are not scheduled for a raise.
//
// All computations are pure and never fail. Missing inputs yield nil
// ("not applicable"). Dates are evaluated in UTC, which is how the store
// hands them back.
package payraise

import (
	"time"

	"github.com/dalemusser/staffhub/internal/domain/models"
)

// PayCaps is the maximum hourly rate payable for each role. Roles missing
// from the table are uncapped and never scheduled.
var PayCaps = map[models.RolePosition]float64{
	models.RoleFrontDeskAssistant:                13,
	models.RoleFrontDeskTrainerOrLead:            15,
	models.RoleMarketingWebsiteAssistant:         14,
	models.RoleBuildingManagementAssociate:       15,
	models.RoleCampusInformationAssistant:        13,
	models.RoleCampusInformationAssistantTrainer: 15,
	models.RoleCampusInformationAssistantLead:    16,
	models.RoleCrewMember:                        12,
	models.RoleCrewLead:                          13,
	models.RoleEventPersonnel:                    16,
	models.RoleOperationsAssistant:               16,
	models.RoleDepartmentHead:                    15,
	models.RoleTechnician:                        18,
	models.RoleOperations:                        20,
}

// CapFor returns the pay cap configured for role.
func CapFor(role *models.RolePosition) (float64, bool) {
	if role == nil {
		return 0, false
	}
	c, ok := PayCaps[*role]
	return c, ok
}

// Inputs are the user attributes the schedule depends on.
type Inputs struct {
	Role          *models.RolePosition
	HourlyPayRate *float64
	DateHired     *time.Time
	LastRaise     *time.Time
}

// FromUser extracts Inputs from a stored user.
func FromUser(u models.User) Inputs {
	return Inputs{
		Role:          u.RolePosition,
		HourlyPayRate: u.HourlyPayRate,
		DateHired:     u.DateHired,
		LastRaise:     u.MostRecentRaiseGranted,
	}
}

// NextEligibility returns the first day of the hire month in the year after
// the most recent raise (or after the hire year when no raise was granted).
// It returns nil when the role is uncapped or missing, the pay rate is
// missing or already at the cap, or the hire date is missing.
func NextEligibility(in Inputs) *time.Time {
	limit, ok := CapFor(in.Role)
	if !ok || in.HourlyPayRate == nil {
		return nil
	}
	if *in.HourlyPayRate >= limit {
		return nil
	}
	if in.DateHired == nil || in.DateHired.IsZero() {
		return nil
	}

	hired := in.DateHired.UTC()
	year := hired.Year() + 1
	if in.LastRaise != nil && !in.LastRaise.IsZero() {
		year = in.LastRaise.UTC().Year() + 1
	}

	next := time.Date(year, hired.Month(), 1, 0, 0, 0, 0, time.UTC)
	return &next
}
