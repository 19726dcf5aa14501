package domain

import "time"

// CaseChangeType labels what a history entry recorded.
type CaseChangeType string

const (
	ChangeTypeStatus     CaseChangeType = "status"
	ChangeTypeAssignment CaseChangeType = "assignment"
	ChangeTypePriority   CaseChangeType = "priority"
)

// CaseHistory is one audit entry for a case mutation.
type CaseHistory struct {
	ID          string
	CaseID      string
	ChangedByID *string
	ChangeType  CaseChangeType
	OldValue    map[string]any
	NewValue    map[string]any
	CreatedAt   time.Time
}
