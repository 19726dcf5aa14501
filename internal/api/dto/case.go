package dto

import (
	"time"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// SubmitCaseRequest is the intake form. Uploads arrive alongside it as
// multipart files under the "attachments" field.
type SubmitCaseRequest struct {
	PreferredName     string `form:"preferredName" json:"preferredName"`
	ContactMethod     string `form:"contactMethod" json:"contactMethod"`
	ContactValue      string `form:"contactValue" json:"contactValue"`
	SafeToContact     *bool  `form:"safeToContact" json:"safeToContact"`
	Province          string `form:"province" json:"province"`
	City              string `form:"city" json:"city"`
	Language          string `form:"language" json:"language"`
	IssueCategory     string `form:"issueCategory" json:"issueCategory"`
	DesiredOutcome    string `form:"desiredOutcome" json:"desiredOutcome"`
	Situation         string `form:"situation" json:"situation"`
	Urgency           string `form:"urgency" json:"urgency"`
	SafetyConcern     bool   `form:"safetyConcern" json:"safetyConcern"`
	ContactTimes      string `form:"contactTimes" json:"contactTimes"`
	AccessNeeds       string `form:"accessNeeds" json:"accessNeeds"`
	ConfidentialNotes string `form:"confidentialNotes" json:"confidentialNotes"`
}

// AttachmentResponse is one stored upload.
type AttachmentResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	SizeBytes    int64     `json:"sizeBytes"`
	MimeType     string    `json:"mimeType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CaseSummary is the owner-facing list view.
type CaseSummary struct {
	ID            string            `json:"id"`
	CaseID        string            `json:"caseId"`
	IssueCategory string            `json:"issueCategory"`
	Province      string            `json:"province"`
	Urgency       domain.Urgency    `json:"urgency"`
	Status        domain.CaseStatus `json:"status"`
	LawyerName    string            `json:"lawyerName,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// CaseDetailResponse is the full case view.
type CaseDetailResponse struct {
	ID                string               `json:"id"`
	CaseID            string               `json:"caseId"`
	PreferredName     string               `json:"preferredName,omitempty"`
	ContactMethod     domain.ContactMethod `json:"contactMethod"`
	ContactValue      string               `json:"contactValue"`
	SafeToContact     bool                 `json:"safeToContact"`
	Province          string               `json:"province"`
	City              string               `json:"city,omitempty"`
	Language          string               `json:"language,omitempty"`
	IssueCategory     string               `json:"issueCategory"`
	DesiredOutcome    string               `json:"desiredOutcome,omitempty"`
	Situation         string               `json:"situation"`
	Urgency           domain.Urgency       `json:"urgency"`
	SafetyConcern     bool                 `json:"safetyConcern"`
	ContactTimes      string               `json:"contactTimes,omitempty"`
	AccessNeeds       string               `json:"accessNeeds,omitempty"`
	ConfidentialNotes string               `json:"confidentialNotes,omitempty"`
	Attachments       []AttachmentResponse `json:"attachments"`
	LawyerName        string               `json:"lawyerName,omitempty"`
	Priority          domain.Urgency       `json:"priority"`
	Status            domain.CaseStatus    `json:"status"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}
