package events

import (
	"time"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCaseCreated       EventType = "case_created"
	EventCaseAssigned      EventType = "case_assigned"
	EventCaseStatusChanged EventType = "case_status_changed"
	EventCaseDeleted       EventType = "case_deleted"
)

// Event represents a domain event emitted by services. CaseID is the public
// JC-<year>-<seq> identifier, never the internal record ID.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CaseID    string      `json:"case_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CaseCreatedPayload payload.
type CaseCreatedPayload struct {
	Province      string            `json:"province"`
	IssueCategory string            `json:"issue_category"`
	Urgency       domain.Urgency    `json:"urgency"`
	Status        domain.CaseStatus `json:"status"`
}

// CaseAssignedPayload payload.
type CaseAssignedPayload struct {
	LawyerID   string            `json:"lawyer_id"`
	LawyerName string            `json:"lawyer_name"`
	Priority   domain.Urgency    `json:"priority"`
	Status     domain.CaseStatus `json:"status"`
}

// CaseStatusChangedPayload payload.
type CaseStatusChangedPayload struct {
	OldStatus domain.CaseStatus `json:"old_status"`
	NewStatus domain.CaseStatus `json:"new_status"`
}
