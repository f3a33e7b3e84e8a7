package models

// RoleType defines the account role type
type RoleType string

const (
	RoleStudent  RoleType = "student"
	RoleEmployer RoleType = "employer"
)

// IsValid reports whether the role is one of the recognized values
func (r RoleType) IsValid() bool {
	return r == RoleStudent || r == RoleEmployer
}

// GenderType is an optional self-description tag on an account
type GenderType string

const (
	GenderMale   GenderType = "male"
	GenderFemale GenderType = "female"
	GenderOther  GenderType = "other"
)

// ApplicationStatus defines the lifecycle state of an application.
// An application starts as pending; the owning employer is the only actor
// that may move it to any other recognized state.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every recognized status value
var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusReviewed,
	StatusAccepted,
	StatusRejected,
}

// IsValid reports whether the status is one of the recognized values
func (s ApplicationStatus) IsValid() bool {
	for _, status := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}
