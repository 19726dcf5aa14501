package domain

import "time"

// LawyerAvailability is the self-reported availability signal.
type LawyerAvailability string

const (
	LawyerAvailable   LawyerAvailability = "Available"
	LawyerBusy        LawyerAvailability = "Busy"
	LawyerUnavailable LawyerAvailability = "Unavailable"
)

// LawyerStatus is the admin-controlled roster state.
type LawyerStatus string

const (
	LawyerStatusActive   LawyerStatus = "Active"
	LawyerStatusOnLeave  LawyerStatus = "On Leave"
	LawyerStatusInactive LawyerStatus = "Inactive"
)

// Lawyer is one roster directory entry available for case assignment.
type Lawyer struct {
	ID              string
	FullName        string
	Specialization  string
	Province        string
	LicenseProvince string
	LicenseNumber   string
	YearsExperience int

	Email string
	Phone string

	Availability   LawyerAvailability
	Status         LawyerStatus
	AcceptingCases bool

	// Optional back-reference to the Identity created at registration.
	IdentityID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assignable reports whether the entry may receive new cases.
func (l *Lawyer) Assignable() bool {
	return l.Status == LawyerStatusActive && l.AcceptingCases
}
