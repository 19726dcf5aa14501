package domain

import "time"

// CaseStatus enumerates lifecycle states for intake cases.
type CaseStatus string

const (
	CaseStatusSubmitted CaseStatus = "Submitted"
	CaseStatusReview    CaseStatus = "Review"
	CaseStatusAssigned  CaseStatus = "Assigned"
	CaseStatusClosed    CaseStatus = "Closed"
)

// ValidCaseStatus reports whether s belongs to the closed status set.
func ValidCaseStatus(s CaseStatus) bool {
	switch s {
	case CaseStatusSubmitted, CaseStatusReview, CaseStatusAssigned, CaseStatusClosed:
		return true
	}
	return false
}

// Urgency enumerates survivor-reported urgency; assignment priority reuses
// the same scale.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// ValidUrgency reports whether u belongs to the closed urgency set.
func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// ContactMethod enumerates how a survivor wants to be reached.
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
	ContactSMS   ContactMethod = "sms"
	ContactInApp ContactMethod = "in-app"
)

// ValidContactMethod reports whether m belongs to the closed set.
func ValidContactMethod(m ContactMethod) bool {
	switch m {
	case ContactEmail, ContactPhone, ContactSMS, ContactInApp:
		return true
	}
	return false
}

// Attachment describes one uploaded file attached to a case. Storage
// mechanics live outside the service; this is metadata only.
type Attachment struct {
	ID           string
	CaseID       string
	FileName     string
	OriginalName string
	SizeBytes    int64
	MimeType     string
	StoragePath  string
	CreatedAt    time.Time
}

// Case is the aggregate for one survivor assistance request.
type Case struct {
	ID      string
	OwnerID string

	// Public human-readable identifier, JC-<year>-<seq>. Immutable once set.
	CaseID string

	PreferredName string
	ContactMethod ContactMethod
	ContactValue  string
	SafeToContact bool

	Province string
	City     string
	Language string

	IssueCategory  string
	DesiredOutcome string
	Situation      string

	Urgency       Urgency
	SafetyConcern bool

	ContactTimes      string
	AccessNeeds       string
	ConfidentialNotes string

	Attachments []Attachment

	AssignedLawyerID   *string
	AssignedLawyerName string
	Priority           Urgency
	InternalNotes      string

	Status    CaseStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assigned reports whether a lawyer has been linked to the case.
func (c *Case) Assigned() bool {
	return c.AssignedLawyerID != nil && *c.AssignedLawyerID != ""
}

// Normal flow is one-directional: Submitted -> Review -> Assigned -> Closed,
// with Assigned reachable directly from Submitted.
var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseStatusSubmitted: {CaseStatusReview, CaseStatusAssigned},
	CaseStatusReview:    {CaseStatusAssigned, CaseStatusClosed},
	CaseStatusAssigned:  {CaseStatusClosed},
	CaseStatusClosed:    {},
}

// ValidTransition reports whether moving from current to next follows the
// one-directional case lifecycle.
func ValidTransition(current, next CaseStatus) bool {
	for _, candidate := range caseTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
