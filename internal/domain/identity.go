package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleSurvivor Role = "survivor"
	RoleLawyer   Role = "lawyer"
	RoleAdmin    Role = "admin"
	RoleDonor    Role = "donor"
)

// ValidRole reports whether the role belongs to the closed set.
func ValidRole(r Role) bool {
	switch r {
	case RoleSurvivor, RoleLawyer, RoleAdmin, RoleDonor:
		return true
	}
	return false
}

// ApprovalStatus tracks whether privileged roles have been vetted.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

// DefaultApproval returns the initial approval status for a role.
// Lawyers and admins require out-of-band approval; survivors and donors
// are approved immediately.
func DefaultApproval(role Role) ApprovalStatus {
	if role == RoleLawyer || role == RoleAdmin {
		return ApprovalPending
	}
	return ApprovalApproved
}

// Identity is one account record with credentials, role and profile.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	Status       ApprovalStatus

	PreferredName string
	LegalName     string
	ContactMethod ContactMethod
	Phone         string
	SafeToContact bool
	Province      string
	City          string
	Language      string
	ContactTimes  string
	AccessNeeds   string
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
