package dto

import (
	"time"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// AssignRequest is the admin assignment form.
type AssignRequest struct {
	LawyerID      string `json:"lawyerId"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	InternalNotes string `json:"internalNotes"`
}

// StatusUpdateRequest moves a case along its lifecycle.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// LawyerCreateRequest adds a roster entry directly.
type LawyerCreateRequest struct {
	FullName        string `json:"fullName"`
	Specialization  string `json:"specialization"`
	Province        string `json:"province"`
	LicenseProvince string `json:"licenseProvince"`
	LicenseNumber   string `json:"licenseNumber"`
	YearsExperience int    `json:"yearsExperience"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Availability    string `json:"availability"`
	Status          string `json:"status"`
	AcceptingCases  bool   `json:"acceptingCases"`
}

// LawyerUpdateRequest applies partial roster changes.
type LawyerUpdateRequest struct {
	FullName        *string `json:"fullName"`
	Specialization  *string `json:"specialization"`
	Province        *string `json:"province"`
	LicenseProvince *string `json:"licenseProvince"`
	LicenseNumber   *string `json:"licenseNumber"`
	YearsExperience *int    `json:"yearsExperience"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Availability    *string `json:"availability"`
	Status          *string `json:"status"`
	AcceptingCases  *bool   `json:"acceptingCases"`
}

// LawyerResponse is one roster entry.
type LawyerResponse struct {
	ID              string                    `json:"id"`
	FullName        string                    `json:"fullName"`
	Specialization  string                    `json:"specialization"`
	Province        string                    `json:"province,omitempty"`
	LicenseProvince string                    `json:"licenseProvince,omitempty"`
	LicenseNumber   string                    `json:"licenseNumber,omitempty"`
	YearsExperience int                       `json:"yearsExperience"`
	Email           string                    `json:"email,omitempty"`
	Phone           string                    `json:"phone,omitempty"`
	Availability    domain.LawyerAvailability `json:"availability"`
	Status          domain.LawyerStatus       `json:"status"`
	AcceptingCases  bool                      `json:"acceptingCases"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

// CaseHistoryResponse is one audit entry in the admin case view.
type CaseHistoryResponse struct {
	ID         string                `json:"id"`
	ChangeType domain.CaseChangeType `json:"changeType"`
	OldValue   map[string]any        `json:"oldValue,omitempty"`
	NewValue   map[string]any        `json:"newValue,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// AdminCaseDetailResponse bundles the case with its audit trail.
type AdminCaseDetailResponse struct {
	CaseDetailResponse
	InternalNotes string                `json:"internalNotes,omitempty"`
	History       []CaseHistoryResponse `json:"history"`
}
