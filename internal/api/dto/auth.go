package dto

import (
	"time"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	Role          string   `json:"role"`
	PreferredName string   `json:"preferredName"`
	LegalName     string   `json:"legalName"`
	ContactMethod string   `json:"contactMethod"`
	Phone         string   `json:"phone"`
	SafeToContact *bool    `json:"safeToContact"`
	Province      string   `json:"province"`
	City          string   `json:"city"`
	Language      string   `json:"language"`
	ContactTimes  string   `json:"contactTimes"`
	AccessNeeds   string   `json:"accessNeeds"`
	Expertise     []string `json:"expertise"`
	LicenseNumber string   `json:"licenseNumber"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest asks for a reset token.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest consumes a reset token.
type PasswordResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ProfileUpdateRequest carries mutable profile fields.
type ProfileUpdateRequest struct {
	PreferredName *string `json:"preferredName"`
	LegalName     *string `json:"legalName"`
	ContactMethod *string `json:"contactMethod"`
	Phone         *string `json:"phone"`
	SafeToContact *bool   `json:"safeToContact"`
	Province      *string `json:"province"`
	City          *string `json:"city"`
	Language      *string `json:"language"`
	ContactTimes  *string `json:"contactTimes"`
	AccessNeeds   *string `json:"accessNeeds"`
	Notes         *string `json:"notes"`
}

// IdentityResponse is the account view returned to its owner. The password
// hash never leaves the service layer.
type IdentityResponse struct {
	ID            string                `json:"id"`
	Email         string                `json:"email"`
	Role          domain.Role           `json:"role"`
	Status        domain.ApprovalStatus `json:"status"`
	PreferredName string                `json:"preferredName,omitempty"`
	LegalName     string                `json:"legalName,omitempty"`
	ContactMethod domain.ContactMethod  `json:"contactMethod"`
	Phone         string                `json:"phone,omitempty"`
	SafeToContact bool                  `json:"safeToContact"`
	Province      string                `json:"province,omitempty"`
	City          string                `json:"city,omitempty"`
	Language      string                `json:"language,omitempty"`
	ContactTimes  string                `json:"contactTimes,omitempty"`
	AccessNeeds   string                `json:"accessNeeds,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}
