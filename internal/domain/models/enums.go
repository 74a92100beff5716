// internal/domain/models/enums.go
package models

import "strings"

// RolePosition is the staff position a user holds. The set is closed; values
// outside it never reach the store.
type RolePosition string

const (
	RoleDepartmentHead                    RolePosition = "Department Head"
	RoleTechnician                        RolePosition = "Technician"
	RoleOperations                        RolePosition = "Operations"
	RoleCrewLead                          RolePosition = "Crew Lead"
	RoleFrontDeskAssistant                RolePosition = "Front Desk Assistant"
	RoleFrontDeskTrainerOrLead            RolePosition = "Front Desk Trainer or Lead"
	RoleMarketingWebsiteAssistant         RolePosition = "Marketing | Website Assistant"
	RoleBuildingManagementAssociate       RolePosition = "Building Management Associate"
	RoleCampusInformationAssistant        RolePosition = "Campus Information Assistant"
	RoleCampusInformationAssistantTrainer RolePosition = "Campus Information Assistant Trainer"
	RoleCampusInformationAssistantLead    RolePosition = "Campus Information Assistant Lead"
	RoleCrewMember                        RolePosition = "Crew Member"
	RoleEventPersonnel                    RolePosition = "Event Personnel"
	RoleOperationsAssistant               RolePosition = "Operations Assistant"
)

// RolePositions lists every valid role in display order.
var RolePositions = []RolePosition{
	RoleDepartmentHead,
	RoleTechnician,
	RoleOperations,
	RoleCrewLead,
	RoleFrontDeskAssistant,
	RoleFrontDeskTrainerOrLead,
	RoleMarketingWebsiteAssistant,
	RoleBuildingManagementAssociate,
	RoleCampusInformationAssistant,
	RoleCampusInformationAssistantTrainer,
	RoleCampusInformationAssistantLead,
	RoleCrewMember,
	RoleEventPersonnel,
	RoleOperationsAssistant,
}

// ParseRolePosition returns the role matching s exactly (after trimming).
func ParseRolePosition(s string) (RolePosition, bool) {
	s = strings.TrimSpace(s)
	for _, r := range RolePositions {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// UserStatus is the employment status of a user.
type UserStatus string

const (
	StatusActive   UserStatus = "Active"
	StatusInactive UserStatus = "Inactive"
)

var UserStatuses = []UserStatus{StatusActive, StatusInactive}

// ParseUserStatus returns the status matching s exactly (after trimming).
func ParseUserStatus(s string) (UserStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range UserStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ShirtSize is the uniform shirt size on file for a user.
type ShirtSize string

const (
	ShirtS   ShirtSize = "S"
	ShirtM   ShirtSize = "M"
	ShirtL   ShirtSize = "L"
	ShirtXL  ShirtSize = "XL"
	ShirtXXL ShirtSize = "2XL"
)

var ShirtSizes = []ShirtSize{ShirtS, ShirtM, ShirtL, ShirtXL, ShirtXXL}

// ParseShirtSize returns the size matching s exactly (after trimming).
func ParseShirtSize(s string) (ShirtSize, bool) {
	s = strings.TrimSpace(s)
	for _, sz := range ShirtSizes {
		if string(sz) == s {
			return sz, true
		}
	}
	return "", false
}

// MetricType distinguishes merits from demerits.
type MetricType string

const (
	MetricMerit   MetricType = "merit"
	MetricDemerit MetricType = "demerit"
)

// ParseMetricType accepts "merit" or "demerit" in any case.
func ParseMetricType(s string) (MetricType, bool) {
	switch MetricType(strings.ToLower(strings.TrimSpace(s))) {
	case MetricMerit:
		return MetricMerit, true
	case MetricDemerit:
		return MetricDemerit, true
	}
	return "", false
}

// UserField is the user list field a metric id is appended to.
func (t MetricType) UserField() string {
	if t == MetricMerit {
		return "merits"
	}
	return "demerits"
}
